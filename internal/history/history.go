// Package history keeps the in-memory chat transcript for the running
// session. Messages are immutable once appended and the buffer is trimmed
// after every mutation.
package history

import (
	"sync"
	"time"
)

const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
	SenderSystem    = "system"
)

const (
	// LoadCap bounds how much persisted history is rehydrated on startup.
	LoadCap = 20
	// PersistCap bounds the transcript kept in memory and written on save.
	PersistCap = 100
)

type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
}

type Log struct {
	mu   sync.RWMutex
	msgs []Message
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Append(sender, text string) Message {
	msg := Message{Timestamp: time.Now(), Sender: sender, Text: text}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
	if len(l.msgs) > PersistCap {
		l.msgs = l.msgs[len(l.msgs)-PersistCap:]
	}
	return msg
}

// Recent returns a copy of the newest n messages, oldest first.
func (l *Log) Recent(n int) []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	msgs := l.msgs
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// All returns a copy of the full transcript, oldest first.
func (l *Log) All() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Message, len(l.msgs))
	copy(out, l.msgs)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.msgs)
}

// Restore replaces the transcript with persisted messages, keeping only the
// newest LoadCap entries.
func (l *Log) Restore(msgs []Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(msgs) > LoadCap {
		msgs = msgs[len(msgs)-LoadCap:]
	}
	l.msgs = make([]Message, len(msgs))
	copy(l.msgs, msgs)
}
