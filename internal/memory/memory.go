// Package memory persists the session: a whole-file JSON snapshot read once
// on startup and rewritten on save, plus an append-only plain-text chat log.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"raven/internal/history"
	"raven/internal/mood"
)

const snapshotFile = "history.json"

type Snapshot struct {
	ChatHistory  []history.Message `json:"chat_history"`
	LanguageMode string            `json:"language_mode"`
	MoodHistory  []mood.Record     `json:"mood_history"`
	LastUpdated  time.Time         `json:"last_updated"`
}

type Store struct {
	mu           sync.Mutex
	dir          string
	sessionID    string
	snapshotPath string
	chatLogPath  string
}

// NewStore ensures the memory directory exists and opens a fresh chat log
// for this session. Each session gets its own id and log file.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure memory dir: %w", err)
	}
	sessionID := uuid.NewString()
	logName := fmt.Sprintf("chat_%s_%s.txt", time.Now().Format("20060102_150405"), sessionID[:8])
	s := &Store{
		dir:          dir,
		sessionID:    sessionID,
		snapshotPath: filepath.Join(dir, snapshotFile),
		chatLogPath:  filepath.Join(dir, logName),
	}
	f, err := os.OpenFile(s.chatLogPath, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("init chat log: %w", err)
	}
	_ = f.Close()
	return s, nil
}

// Load reads the snapshot file. A missing or malformed file is not fatal:
// the returned snapshot is empty and the error only describes why.
func (s *Store) Load() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Save rewrites the whole snapshot file, trimming the chat history to the
// persist cap first.
func (s *Store) Save(snap Snapshot) error {
	if len(snap.ChatHistory) > history.PersistCap {
		snap.ChatHistory = snap.ChatHistory[len(snap.ChatHistory)-history.PersistCap:]
	}
	snap.LastUpdated = time.Now()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.snapshotPath, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// AppendChatLine writes one timestamped line to the session chat log.
func (s *Store) AppendChatLine(sender, text string) error {
	line := fmt.Sprintf("[%s] %s: %s\n", time.Now().Format("15:04:05"), sender, text)
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.chatLogPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open chat log: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append chat log: %w", err)
	}
	return nil
}

// Dir returns the memory directory (screenshots live alongside the snapshot).
func (s *Store) Dir() string { return s.dir }

// SessionID identifies this run; it is stamped on the chat log file name.
func (s *Store) SessionID() string { return s.sessionID }
