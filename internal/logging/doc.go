// Package logging provides structured logging for the novamix daemon.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the daemon. It provides both general logging
// functions and specialized functions for HID protocol logging needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (packet hex dumps, dispatch decisions)
//   - Info: Normal operations (device open/close, sink lifecycle)
//   - Warn: Non-fatal issues (opcode conflicts, sink restarts)
//   - Error: Fatal issues (startup failures, transport errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Device opened",
//	    zap.String("model", "Nova 5X"),
//	    zap.Int("interface", 5),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogPacket("rx", "chatmix", packet)
//	logging.LogSinkEvent("NovaGame", "started")
//	logging.LogRawBytes("unparsed report", data)
//
// # Configuration
//
// Initialize logging at daemon startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When no level is given, the NOVAMIX_LOG_LEVEL environment variable is
// consulted; if that is also unset, logging is silent. This keeps one-shot
// CLI commands quiet by default.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
