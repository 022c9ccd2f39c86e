package mood

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const historyCap = 5

// Record is one mood detection. It is persisted as part of the memory
// snapshot, hence the json tags.
type Record struct {
	Mood      Tag       `json:"mood"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Tracker keeps the most recent detections and derives the current mood.
type Tracker struct {
	mu      sync.Mutex
	records []Record
	current Tag
}

func NewTracker() *Tracker {
	return &Tracker{current: Neutral}
}

// Update appends a detection and trims the history to the newest five.
// A neutral detection is recorded but never overwrites a non-neutral current
// mood: the adaptive prompt prefix exists to steer the user out of a bad
// state, and one flat message should not erase that signal.
func (t *Tracker) Update(tag Tag, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = append(t.records, Record{Mood: tag, Text: text, Timestamp: time.Now()})
	if len(t.records) > historyCap {
		t.records = t.records[len(t.records)-historyCap:]
	}
	if tag != Neutral {
		t.current = tag
	}
}

// Current returns the mood driving the adaptive prefix.
func (t *Tracker) Current() Tag {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Records returns a copy of the mood history, oldest first.
func (t *Tracker) Records() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Restore replaces the history with persisted records, reapplying the trim
// cap and recomputing the current mood.
func (t *Tracker) Restore(records []Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(records) > historyCap {
		records = records[len(records)-historyCap:]
	}
	t.records = make([]Record, len(records))
	copy(t.records, records)
	t.current = Neutral
	for _, r := range t.records {
		if r.Mood != Neutral {
			t.current = r.Mood
		}
	}
}

// Context returns a human-readable summary of the last three moods plus the
// current mood. It is injected verbatim into the LLM prompt.
func (t *Tracker) Context() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.records) == 0 {
		return ""
	}
	recent := t.records
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	tags := make([]string, 0, len(recent))
	for _, r := range recent {
		tags = append(tags, string(r.Mood))
	}
	return fmt.Sprintf("Recent user moods: %s. Current mood: %s.", strings.Join(tags, ", "), t.current)
}

// AdaptivePrefix returns mood-specific persona instructions prepended to the
// system prompt. This is authoritative prompt content, not UI cosmetics.
func (t *Tracker) AdaptivePrefix() string {
	switch t.Current() {
	case Stressed:
		return "The user seems stressed. Stay calm and reassuring, keep answers short, and avoid adding new demands."
	case Sad:
		return "The user seems sad. Be gentle and supportive before being practical."
	case Tired:
		return "The user seems tired. Keep replies brief and easy to act on."
	case Happy:
		return "The user is in a good mood. Match their upbeat energy."
	default:
		return ""
	}
}
