// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/jeranaias/datafield-tui/internal/store"
)

// HandleReset handles the "reset" command: every stored value is removed,
// so sink fields start empty and bound fields start from their defaults.
func HandleReset(ctx context.Context, storePath string, w io.Writer) error {
	s, err := store.Open(ctx, storePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer s.Close()

	n, err := s.Reset(ctx)
	if err != nil {
		return err
	}
	log.Printf("STORE_RESET | path=%s removed=%d", storePath, n)
	fmt.Fprintf(w, "%s %d stored value(s) from %s\n", SuccessStyle.Render("Removed"), n, storePath)
	return nil
}
