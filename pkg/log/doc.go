// Package log provides a logging abstraction for officetimer components.
//
// This package defines a Logger interface that can be implemented by
// any logging library. Default implementations are provided for zerolog
// and a no-op logger for tests and embedders that want silence.
//
// # Usage
//
// Use the provided zerolog adapter:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//
// Or the no-op logger:
//
//	logger := log.NewNoopLogger()
//
// Fields are built with the helpers in this package:
//
//	logger.Warn("sound unavailable, using fallback beep",
//	    log.String("path", path),
//	    log.Err(err),
//	)
package log
