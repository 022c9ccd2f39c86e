// Package voice runs the listen loop around external speech collaborators.
// Capture and synthesis engines live outside the core; this package only
// owns retry, timeout and shutdown behavior.
package voice

import (
	"context"
	"errors"
	"log"
	"time"

	"raven/internal/session"
)

// ErrNoSpeech is the soft signal for a listen attempt that timed out or
// produced nothing recognizable. The loop just retries.
var ErrNoSpeech = errors.New("no speech detected")

type Transcriber interface {
	// Transcribe blocks for one listen attempt and returns the recognized
	// text. ErrNoSpeech means retry; other errors count as hard failures.
	Transcribe(ctx context.Context) (string, error)
}

type Speaker interface {
	Speak(text string) error
}

// hardFailureLimit is how many consecutive hard failures disable voice mode
// for the session.
const hardFailureLimit = 3

type Loop struct {
	Transcriber Transcriber
	// OnListening fires before each attempt (earcon, avatar state).
	OnListening func()
	// OnUtterance receives each recognized utterance.
	OnUtterance func(text string)
	// AttemptTimeout bounds a single listen attempt.
	AttemptTimeout time.Duration
	// IdlePoll is how often the loop rechecks a disabled voice mode.
	IdlePoll time.Duration
}

// Run blocks until the context is cancelled. Voice mode toggles are observed
// between attempts.
func (l *Loop) Run(ctx context.Context, sess *session.State) {
	attempt := l.AttemptTimeout
	if attempt <= 0 {
		attempt = 15 * time.Second
	}
	poll := l.IdlePoll
	if poll <= 0 {
		poll = 500 * time.Millisecond
	}

	failures := 0
	for {
		if ctx.Err() != nil {
			return
		}
		if !sess.VoiceEnabled() {
			select {
			case <-ctx.Done():
				return
			case <-time.After(poll):
			}
			continue
		}

		if l.OnListening != nil {
			l.OnListening()
		}

		attemptCtx, cancel := context.WithTimeout(ctx, attempt)
		text, err := l.Transcriber.Transcribe(attemptCtx)
		cancel()

		switch {
		case err == nil && text != "":
			failures = 0
			if l.OnUtterance != nil {
				l.OnUtterance(text)
			}
		case err == nil:
			// empty transcription, treat like silence
		case errors.Is(err, ErrNoSpeech), errors.Is(err, context.DeadlineExceeded):
			// soft signal, retry
		case errors.Is(err, context.Canceled):
			return
		default:
			failures++
			log.Printf("voice recognition error (%d/%d): %v", failures, hardFailureLimit, err)
			if failures >= hardFailureLimit {
				log.Printf("microphone looks broken, disabling voice mode")
				sess.SetVoiceEnabled(false)
				failures = 0
			}
		}
	}
}
