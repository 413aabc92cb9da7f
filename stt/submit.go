package stt

import (
	"context"
	"fmt"

	"github.com/veselins/parla/utils"
	"go.uber.org/zap"
)

// Submit writes the clip's audio record to the store under a fresh job key
// and returns the key immediately, without waiting for a worker to pick it
// up. The record carries AudioRecordTTL, so storage is reclaimed even if no
// worker ever consumes it. Callers are expected to have validated the clip.
func (e *Engine) Submit(ctx context.Context, clip Clip) (string, error) {
	log := utils.GetLogFromContext(ctx, e.log)

	jobKey, err := NewJobKey()
	if err != nil {
		return "", fmt.Errorf("minting job key: %w", err)
	}

	if err := e.store.Set(ctx, AudioKey(jobKey), clip.Data, AudioRecordTTL); err != nil {
		return "", fmt.Errorf("writing audio record: %w", err)
	}

	e.countSubmission(ctx, clip.Language)
	log.With(
		zap.String("job_key", jobKey),
		zap.Int("audio_bytes", len(clip.Data)),
	).Debug("audio record submitted")

	return jobKey, nil
}
