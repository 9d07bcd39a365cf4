// Package logger provides structured logging for the graph-engine CLI
// binaries using zerolog.
//
// It supports console and JSON output formats and log level configuration.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("wordcount")
//	log = log.WithContext(ctx)
//	log.Info("run complete", logger.Fields("rows", 1024))
package logger
