// Package logging provides a simple leveled logging interface for the
// folder playlist daemon and CLI.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information, including Diagnostics traces
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the DEBUG or LOG_LEVEL environment
// variables and can be overridden at runtime with SetLevel.
package logging
