// Package messages renders the user-facing display documents for
// transcription outcomes from embedded jsonnet templates. The hosting web
// layer decides where they go; this package only decides what they say.
//
// The template index is imported once at construction — no lazy population,
// so concurrent first callers never race on it.
package messages

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/google/go-jsonnet"
)

//go:embed jsonnet/*
var messages embed.FS

// Template names understood by ExecuteMessage.
const (
	MessageProgress = "stt_progress"
	MessageResult   = "stt_result"
	MessageError    = "stt_error"
)

// DisplayMessage is a rendered outcome document. Body is emitted verbatim by
// the templates: transcript text and error messages arrive already sanitized
// from the transport core.
type DisplayMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ResultContext feeds MessageResult.
type ResultContext struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// ErrorContext feeds MessageError.
type ErrorContext struct {
	Message string `json:"message"`
}

type MessageProvider struct {
	vm *jsonnet.VM
}

func NewMessageProvider() (*MessageProvider, error) {
	m := &MessageProvider{
		vm: jsonnet.MakeVM(),
	}

	imports := make(map[string]jsonnet.Contents)
	fs.WalkDir(messages, ".", func(path string, d fs.DirEntry, err error) error {
		if d != nil && !d.IsDir() {
			content, _ := messages.ReadFile(path)
			imports[strings.TrimPrefix(path, "jsonnet/")] = jsonnet.MakeContentsRaw(content)
		}
		return nil
	})

	m.vm.Importer(&jsonnet.MemoryImporter{
		Data: imports,
	})

	_, _, err := m.vm.ImportData("anonymous", "index.jsonnet")
	if err != nil {
		return nil, fmt.Errorf("importing index: %w", err)
	}

	return m, nil
}

func (m *MessageProvider) ExecuteMessage(messageName string, data any) (DisplayMessage, error) {
	m.vm.TLAVar("message_key", messageName)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return DisplayMessage{}, fmt.Errorf("marshaling data: %w", err)
	}
	m.vm.TLACode("data", string(jsonData))

	defer m.vm.TLAReset()

	jsonOut, err := m.vm.EvaluateAnonymousSnippet("anonymous", "function(message_key, data) (import 'index.jsonnet')[message_key](data)")
	if err != nil {
		return DisplayMessage{}, fmt.Errorf("evaluating jsonnet: %w", err)
	}

	message := DisplayMessage{}
	if err := json.Unmarshal([]byte(jsonOut), &message); err != nil {
		return DisplayMessage{}, fmt.Errorf("decoding rendered message: %w", err)
	}

	return message, nil
}
