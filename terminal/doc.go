// Package terminal insulates the rest of the application from terminal
// hardware differences behind two boundaries.
//
// Inbound, keystrokes are kept separate from command keys: a keystroke
// produces a sequence of raw bytes, and the recognition engine turns that
// sequence into a single command integer whose high byte names the command
// and whose low byte carries the final keystroke byte as an argument.
//
// Outbound, symbols are kept separate from graphics: each symbol names one
// display unit (a literal byte or a pseudo-symbol such as horizontal-bar),
// and the renderer picks the byte sequence and display mode that draw it on
// the attached terminal, switching between normal, graphics and standout
// modes only when the mode actually changes.
//
// Both conversion tables are built once at startup from built-in defaults,
// the terminfo database entry for the terminal named by TERM, and the KEYMAP
// and GRAPHICS environment variables, then treated as read-only.
package terminal
