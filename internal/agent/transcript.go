package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"
)

// TranscriptConfig controls NDJSON chat transcript logging.
type TranscriptConfig struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// TranscriptEvent is one logged chat event.
type TranscriptEvent struct {
	Timestamp string `json:"ts"`
	SessionID string `json:"session_id"`
	Room      string `json:"room,omitempty"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	IsError   bool   `json:"is_error,omitempty"`
}

var sessionFilePattern = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// TranscriptLogger appends chat events to per-session NDJSON files through a
// bounded async queue. Events are dropped, not blocked on, when the queue is
// full.
type TranscriptLogger struct {
	enabled bool
	dir     string
	queue   chan TranscriptEvent
	done    chan struct{}
	logger  *slog.Logger

	closeOnce sync.Once
}

// NewTranscriptLogger creates a transcript logger. A disabled config returns
// a no-op logger.
func NewTranscriptLogger(cfg TranscriptConfig, logger *slog.Logger) (*TranscriptLogger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Enabled {
		return &TranscriptLogger{enabled: false, logger: logger}, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create transcript directory: %w", err)
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}

	t := &TranscriptLogger{
		enabled: true,
		dir:     cfg.Dir,
		queue:   make(chan TranscriptEvent, cfg.QueueSize),
		done:    make(chan struct{}),
		logger:  logger,
	}
	go t.drain()
	return t, nil
}

// Log enqueues one event. It never blocks; when the queue is full the event
// is dropped and counted in the server log.
func (t *TranscriptLogger) Log(event TranscriptEvent) {
	if !t.enabled {
		return
	}
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	select {
	case t.queue <- event:
	default:
		t.logger.Warn("transcript queue full, dropping event", "session_id", event.SessionID)
	}
}

// Close flushes queued events and stops the writer goroutine.
func (t *TranscriptLogger) Close() error {
	if !t.enabled {
		return nil
	}
	t.closeOnce.Do(func() {
		close(t.queue)
		<-t.done
	})
	return nil
}

func (t *TranscriptLogger) drain() {
	defer close(t.done)
	for event := range t.queue {
		if err := t.write(event); err != nil {
			t.logger.Warn("failed to write transcript event", "session_id", event.SessionID, "error", err)
		}
	}
}

func (t *TranscriptLogger) write(event TranscriptEvent) error {
	name := sessionFilePattern.ReplaceAllString(event.SessionID, "_")
	if name == "" {
		name = "unknown"
	}
	path := filepath.Join(t.dir, name+".ndjson")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open transcript file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode transcript event: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append transcript event: %w", err)
	}
	return nil
}
