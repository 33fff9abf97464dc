// Package logging provides structured logging utilities for the recipes API.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// so the API server and the CLI log the same way. It supports environment-based
// log level configuration, module/version context injection, and source
// location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// When no level is given explicitly, the deployment environment decides:
// dev and test log at DEBUG, prod at ERROR.
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("recipesd", "v1.0.0")
//	    slog.Info("listening", "port", 8080)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("recipes", "v1.0.0", "warn")
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "recipe created",
//	    "module": "recipesd",
//	    "version": "v1.0.0",
//	    "id": 42
//	}
package logging
