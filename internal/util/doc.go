// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the datafield packages.
//
// # Key Functions
//
// Display width (backed by go-runewidth):
//   - StringWidth, MaxWidth: display columns of strings
//   - TruncateWidth, TruncateRunes: safe truncation with ellipsis
//   - PadRightWidth: align titles in a column
//
// Type Conversion:
//   - IntToString, Int64ToString
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
package util
