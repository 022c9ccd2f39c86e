// Package session holds the mutable per-session state as one explicit value
// passed to every handler, instead of ambient globals.
package session

import "sync"

// UIState drives the avatar/status presentation. It is distinct from a mood
// tag, though mood influences it.
type UIState string

const (
	StateIdle      UIState = "idle"
	StateListening UIState = "listening"
	StateThinking  UIState = "thinking"
	StateTalking   UIState = "talking"
	StateHappy     UIState = "happy"
	StateStressed  UIState = "stressed"
)

// LanguageMode selects the response persona: pure English or Bengali/English
// code-mixed ("banglish").
type LanguageMode string

const (
	LangEnglish  LanguageMode = "english"
	LangBanglish LanguageMode = "banglish"
)

// ParseLanguage normalizes a configured language name; anything unrecognized
// falls back to banglish, the default mode.
func ParseLanguage(s string) LanguageMode {
	if LanguageMode(s) == LangEnglish {
		return LangEnglish
	}
	return LangBanglish
}

// State is safe for concurrent use; voice and UI loops touch it from their
// own goroutines.
type State struct {
	mu       sync.Mutex
	language LanguageMode
	vision   bool
	voice    bool
	ui       UIState
}

func New(lang LanguageMode, vision, voice bool) *State {
	return &State{language: lang, vision: vision, voice: voice, ui: StateIdle}
}

func (s *State) Language() LanguageMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

func (s *State) SetLanguage(lang LanguageMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
}

func (s *State) VisionEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vision
}

func (s *State) SetVisionEnabled(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vision = v
}

func (s *State) VoiceEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voice
}

func (s *State) SetVoiceEnabled(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voice = v
}

func (s *State) UI() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui
}

func (s *State) SetUI(ui UIState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui = ui
}
