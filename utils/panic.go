package utils

import (
	"runtime/debug"

	"go.uber.org/zap"
)

// PanicRecovery recovers and logs a panic with its stack. Meant to be
// deferred at the top of goroutines that must not take the process down.
func PanicRecovery(log *zap.Logger) {
	if r := recover(); r != nil {
		log.With(zap.String("stack", string(debug.Stack()))).Error("recovered panic")
	}
}
