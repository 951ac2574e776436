// Package display provides terminal UI utilities for progress, warnings,
// and status messages.
//
// This package centralizes user-facing display logic so commands do not
// hand-roll ANSI escape codes: folder-scan progress indicators, formatted
// warnings for skipped folders, and the score table shown before the
// archive confirmation step all live here.
package display
