// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package form hosts data fields in a Bubble Tea program.
//
// The form keeps a cursor over its fields. Enter starts an editing session
// on the selected field; enter, esc, tab and quitting end it, which is when
// a valid value is committed. Each commit is logged as a FIELD_COMMIT line
// and emitted as a CommitMsg.
//
// A ConfigMsg swaps the theme, width and help footer of a running form.
package form
