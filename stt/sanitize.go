package stt

import "strings"

// & must come first so entity ampersands aren't double-escaped.
var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Escape replaces markup-significant characters with their entity
// equivalents. Every string that crosses the transport boundary goes through
// it, transcripts and error text alike: the worker pool is a separate trust
// domain and its output must not be treated as trusted markup.
func Escape(s string) string {
	return markupEscaper.Replace(s)
}
