// Package logger builds the zap loggers used across the inventory.
//
// New selects the development preset for the debug level and the production
// preset otherwise, with json or console encoding. Malformed levels are an
// error so a typo in LOG_LEVEL does not silently fall back to info.
//
// Request scoped logging relies on the ray id stored by the rayid middleware:
// WithRayID attaches it to a logger, and Requests logs method, path, status
// and latency for every request.
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	app.Use(rayid.New(), logger.Requests(log))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
