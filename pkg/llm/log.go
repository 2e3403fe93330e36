package llm

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/notesage/notesage/internal/models"
)

// SinkFunc persists the full entry list after an append. A nil sink keeps
// the log in memory only.
type SinkFunc func(entries []models.InteractionEntry) error

// InteractionLog is the append-only record of every generation call.
// Appends are mutex-guarded so concurrent callers stay safe, and a sink
// failure never propagates to the caller: losing a log entry must not
// abort the primary operation.
type InteractionLog struct {
	mu      sync.Mutex
	entries []models.InteractionEntry
	sink    SinkFunc
	logger  *logrus.Logger
}

func NewInteractionLog(seed []models.InteractionEntry, sink SinkFunc, logger *logrus.Logger) *InteractionLog {
	if logger == nil {
		logger = logrus.New()
	}
	return &InteractionLog{
		entries: append([]models.InteractionEntry(nil), seed...),
		sink:    sink,
		logger:  logger,
	}
}

// Append records one entry and synchronously persists the log.
func (l *InteractionLog) Append(entry models.InteractionEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)

	if l.sink == nil {
		return
	}
	if err := l.sink(append([]models.InteractionEntry(nil), l.entries...)); err != nil {
		l.logger.WithError(err).Warn("failed to persist interaction log")
	}
}

// Entries returns a copy of the log in append order.
func (l *InteractionLog) Entries() []models.InteractionEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]models.InteractionEntry(nil), l.entries...)
}

// Len reports the number of recorded entries.
func (l *InteractionLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}
