// Package render binds abstract colour classes to terminal colours.
//
// The line pipeline never names a colour. It tags each rendered fragment
// with a Class and hands it to a Colorizer. This package provides the
// Colorizer implementations:
//
//   - Plain: returns text unchanged (pipes, files, tests)
//   - Theme.Colorizer: lipgloss styles for one of the built-in themes
//
// # Classes
//
//   - Neutral: default foreground (INFO label, message, stack trace)
//   - Dim: low visual weight (timestamps)
//   - Alert: ERROR and FATAL
//   - Caution: WARN
//   - Secondary: TRACE and DEBUG
//
// # Themes
//
// Terminal maps classes onto the base 16-colour palette so it follows
// the user's terminal scheme. Nightfox and Slate use fixed hex palettes and
// also carry the chrome colours the viewer needs.
package render
