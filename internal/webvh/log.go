package webvh

import "go.uber.org/zap"

// logger is the package-level structured logger used around signer and
// resolver suspension points and chain-verification failures. It never
// logs at Info level per entry; callers wire in a real logger via
// SetLogger.
var logger = zap.NewNop()

// SetLogger attaches a structured logger to the webvh engine. Passing
// nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
