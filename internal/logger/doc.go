// Package logger wraps zap for the release tool:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and adjustment,
//   - convenience functions (Infof, WarnKV, etc.).
//
// Services take a context and log through the logger stored in it, so a
// plugin name attached once shows up on every line of that plugin's work.
package logger
