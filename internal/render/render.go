// Package render holds the store's fixed 80-column text layout helpers,
// shared by the terminal menus and the receipt printer.
package render

import "strings"

// Width is the store's line width for menus, banners and receipts.
const Width = 80

// Rule returns a full-width star rule.
func Rule() string {
	return strings.Repeat("*", Width)
}

// Center pads a line with leading spaces so it sits centered in the width.
// Lines already at or past the width are returned unchanged.
func Center(s string) string {
	if len(s) >= Width {
		return s
	}
	pad := (Width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// Banner wraps a title in star padding out to the full width.
func Banner(title string) string {
	padded := " " + title + " "
	stars := Width - len(padded)
	left := stars / 2
	return strings.Repeat("*", left) + padded + strings.Repeat("*", stars-left)
}
