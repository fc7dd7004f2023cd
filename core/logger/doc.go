// Package logger provides a structured logging facility based on Zap.
//
// The debug level selects zap's development configuration, anything else the production
// one. The console format uses colored capital levels and disables stack traces, which
// suits the per-dependency status lines printed by the update command.
//
// HTTP handlers attach the request's ray id with WithRayID so every log line of a request
// can be correlated.
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Dependency", zap.String("coordinate", "log4j:log4j"))
package logger
