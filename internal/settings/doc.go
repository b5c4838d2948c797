// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings builds the alarm form: one field of each kind the
// datafield package supports, persisted in the value store.
//
// Bound fields (Hour, Budget, Volume) edit cells of an Alarm and write the
// store whenever a cell is set. Sink fields (Name, Snooze, Server) start
// from the stored text and write the store from their sink callback.
// Stored values that no longer parse are ignored and the default is used.
package settings
