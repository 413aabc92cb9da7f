package stt

import (
	"context"
	"errors"

	"github.com/veselins/parla/store"
	"github.com/veselins/parla/utils"
	"go.uber.org/zap"
)

// ServiceReady reports whether the worker pool is currently marked ready.
// It runs under its own short timeout and treats every failure — missing
// flag, unreachable store, expired deadline — as "not ready"; it never
// returns an error. Used as a fast-fail guard so audio that nobody would
// consume is not submitted.
func (e *Engine) ServiceReady(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, e.probeTimeout)
	defer cancel()

	value, err := e.store.Get(ctx, StatusKey)
	if errors.Is(err, store.ErrNotFound) {
		return false
	} else if err != nil {
		utils.GetLogFromContext(ctx, e.log).Warn("status probe failed", zap.Error(err))
		return false
	}

	return string(value) == StatusReady
}
