// Package logger provides structured logging for the application.
//
// Loggers are log/slog JSON loggers. Request-scoped loggers travel in the
// context: middleware stores one with WithLogger and lower layers fetch it
// with FromContext or FromContextOrDefault.
package logger
