// Package logger provides structured logging for divide and its harness
// using zerolog.
//
// It supports JSON and console output, level configuration, component-scoped
// loggers and trace-aware context enrichment.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("divide")
//	log.Debug("dispatching workers", logger.Fields("workers", 8, "length", 1000))
package logger
