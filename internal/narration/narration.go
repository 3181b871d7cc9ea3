// Package narration delivers battle narration to its readers.
package narration

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"
)

//go:generate mockgen -destination=mock/mock_sink.go -package=narrationmock github.com/KirkDiggler/pokeduel/internal/narration Sink

// PageBudget is the largest page, in characters, a chat message carries.
const PageBudget = 2000

// Sink receives the narration of one duel after every turn.
type Sink interface {
	Send(ctx context.Context, duelID string, text string) error
}

// Paginate splits text into pages of at most budget characters, breaking
// only between lines. A single line longer than budget becomes a page of its
// own. Surrounding whitespace is trimmed and empty input yields no pages.
func Paginate(text string, budget int) []string {
	if budget <= 0 {
		budget = PageBudget
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var pages []string
	var page strings.Builder
	n := 0
	for _, line := range strings.Split(text, "\n") {
		size := utf8.RuneCountInString(line)
		if n > 0 && n+1+size > budget {
			pages = append(pages, page.String())
			page.Reset()
			n = 0
		}
		if n > 0 {
			page.WriteByte('\n')
			n++
		}
		page.WriteString(line)
		n += size
	}
	if page.Len() > 0 {
		pages = append(pages, page.String())
	}
	return pages
}

// LogSink writes narration pages to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink logs through logger, or the default logger when nil.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Send implements Sink.
func (s *LogSink) Send(ctx context.Context, duelID string, text string) error {
	for i, page := range Paginate(text, PageBudget) {
		s.logger.InfoContext(ctx, "Narration",
			"duel_id", duelID,
			"page", i+1,
			"text", page,
		)
	}
	return nil
}

// Recorder keeps narration in memory, per duel.
type Recorder struct {
	mu    sync.Mutex
	texts map[string][]string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{texts: make(map[string][]string)}
}

// Send implements Sink.
func (r *Recorder) Send(_ context.Context, duelID string, text string) error {
	if text == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts[duelID] = append(r.texts[duelID], text)
	return nil
}

// Texts returns everything sent for duelID, one entry per Send.
func (r *Recorder) Texts(duelID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts[duelID]...)
}

// Transcript joins everything sent for duelID.
func (r *Recorder) Transcript(duelID string) string {
	return strings.Join(r.Texts(duelID), "")
}

// Fanout sends to every sink in order, stopping at the first error.
type Fanout []Sink

// Send implements Sink.
func (f Fanout) Send(ctx context.Context, duelID string, text string) error {
	for _, s := range f {
		if err := s.Send(ctx, duelID, text); err != nil {
			return err
		}
	}
	return nil
}
