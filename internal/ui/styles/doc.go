// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for datafield.

# Color System (colors.go)

All colors are Lip Gloss AdaptiveColor values so the same palette works on
light and dark terminals:

  - Purple - form titles and the label of the field being edited
  - Cyan - prompt, cursor and focus ring
  - Emerald - committed values
  - Rose - text that does not parse
  - Amber - warnings

# Theme System (theme.go)

	theme := styles.NewThemeNamed("dark")
	box := theme.FieldBoxFocused.Render(text)

NewTheme detects the terminal background with termenv; NewThemeNamed forces
"dark" or "light" (the ui.theme config key).

# Accessibility

StatusIndicators pairs every color state with an ASCII marker ([OK], [X],
[*]) for colorblind users.
*/
package styles
