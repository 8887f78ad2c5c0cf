// Package logger provides structured logging for voicecheck using zerolog.
//
// It supports JSON and console output, level configuration, component-scoped
// loggers and request-scoped loggers that carry the request id placed in the
// context by the HTTP middleware.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("detection")
//	log.Info("clip classified", logger.Fields("language", "Tamil"))
package logger
