// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store persists committed field text in SQLite.
//
// Values are stored as the text a field rendered when it committed, keyed
// by a caller-chosen name. Fields re-parse that text on the next run, so a
// stored value that no longer parses is simply dropped by the field.
//
//	s, err := store.Open(ctx, store.DefaultPath())
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	s.Put(ctx, "name", "marcus")
package store
