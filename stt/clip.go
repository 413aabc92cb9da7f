package stt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/veselins/parla/utils"
)

// Clip is the inbound payload from recording capture: a finite audio blob
// (single-channel PCM/WAV by convention), its MIME type, and the speaker's
// target-language hint. The hint is not transmitted to the worker — the store
// schema carries audio bytes only — but it feeds logs and metric attributes.
type Clip struct {
	Data        []byte
	ContentType string
	Language    string
}

// Validate rejects payloads the transport must never carry. maxBytes <= 0
// disables the size check.
func (c Clip) Validate(maxBytes int) error {
	if len(c.Data) == 0 {
		return errors.New("empty audio payload")
	}
	if maxBytes > 0 && len(c.Data) > maxBytes {
		return fmt.Errorf("audio payload exceeds %d bytes", maxBytes)
	}
	if c.ContentType != "" && !strings.HasPrefix(c.ContentType, "audio/") {
		return fmt.Errorf("unsupported content type %q", c.ContentType)
	}
	return nil
}

// ReadClip buffers a recording from r, enforcing the size cap while reading
// so an oversized upload never fully lands in memory.
func ReadClip(r io.Reader, contentType, language string, maxBytes int) (Clip, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxClipBytes
	}

	data, err := utils.ReadAllLimit(r, maxBytes)
	if errors.Is(err, utils.ErrIOLimitReached) {
		return Clip{}, fmt.Errorf("audio payload exceeds %d bytes: %w", maxBytes, err)
	} else if err != nil {
		return Clip{}, fmt.Errorf("reading audio stream: %w", err)
	}

	return Clip{
		Data:        data,
		ContentType: contentType,
		Language:    language,
	}, nil
}
