// Package assistant wires the pieces into conversational turns: mood update,
// routing, rendering, speech and persistence.
package assistant

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"raven/internal/config"
	"raven/internal/history"
	"raven/internal/memory"
	"raven/internal/mood"
	"raven/internal/router"
	"raven/internal/scheduler"
	"raven/internal/screenshot"
	"raven/internal/session"
	"raven/internal/ui"
	"raven/internal/voice"
)

type Assistant struct {
	cfg *config.Config

	// turnMu serializes turns: voice and manual input may fire concurrently.
	turnMu sync.Mutex

	Session  *session.State
	History  *history.Log
	Moods    *mood.Tracker
	Store    *memory.Store
	Router   *router.Router
	Renderer ui.Renderer
	Speaker  voice.Speaker
	Jobs     *scheduler.Scheduler

	Clock func() time.Time
}

func New(cfg *config.Config, sess *session.State, hist *history.Log, moods *mood.Tracker,
	store *memory.Store, rt *router.Router, renderer ui.Renderer, speaker voice.Speaker) *Assistant {
	return &Assistant{
		cfg:      cfg,
		Session:  sess,
		History:  hist,
		Moods:    moods,
		Store:    store,
		Router:   rt,
		Renderer: renderer,
		Speaker:  speaker,
		Jobs:     scheduler.New(),
		Clock:    time.Now,
	}
}

// Restore rehydrates history, mood history and language mode from the
// persisted snapshot. Any load failure starts an empty session.
func (a *Assistant) Restore() {
	snap, err := a.Store.Load()
	if err != nil {
		log.Printf("no previous memory, starting fresh: %v", err)
		return
	}
	a.History.Restore(snap.ChatHistory)
	a.Moods.Restore(snap.MoodHistory)
	if snap.LanguageMode != "" {
		a.Session.SetLanguage(session.ParseLanguage(snap.LanguageMode))
	}
	log.Printf("memory loaded: %d messages", a.History.Len())
}

// Save writes the whole snapshot.
func (a *Assistant) Save() error {
	err := a.Store.Save(memory.Snapshot{
		ChatHistory:  a.History.All(),
		LanguageMode: string(a.Session.Language()),
		MoodHistory:  a.Moods.Records(),
	})
	if err != nil {
		return fmt.Errorf("save memory: %w", err)
	}
	return nil
}

// HandleInput runs one conversational turn and returns the routed result.
// Within a turn the order is fixed: mood update, routing, render, speech,
// persistence.
func (a *Assistant) HandleInput(ctx context.Context, input string) router.Result {
	a.turnMu.Lock()
	defer a.turnMu.Unlock()

	a.Renderer.Render(session.StateThinking, "")
	a.Session.SetUI(session.StateThinking)

	a.record(history.SenderUser, input)
	a.Moods.Update(mood.Detect(input), input)

	res := a.Router.Route(ctx, input, a.Session)

	a.record(history.SenderAssistant, res.Text)
	a.Session.SetUI(res.State)
	a.Renderer.Render(res.State, res.Text)

	if a.Session.VoiceEnabled() && a.Speaker != nil {
		go func(text string) {
			if err := a.Speaker.Speak(text); err != nil {
				log.Printf("tts failed: %v", err)
			}
		}(res.Text)
	}

	if err := a.Save(); err != nil {
		log.Printf("turn persistence failed: %v", err)
	}
	return res
}

func (a *Assistant) record(sender, text string) {
	a.History.Append(sender, text)
	if err := a.Store.AppendChatLine(sender, text); err != nil {
		log.Printf("chat log append failed: %v", err)
	}
}

// Greeting builds the startup line from clock and weekday context.
func (a *Assistant) Greeting() string {
	now := a.Clock()
	var greeting string
	switch hour := now.Hour(); {
	case hour >= 5 && hour < 12:
		greeting = "Good morning"
	case hour >= 12 && hour < 17:
		greeting = "Good afternoon"
	case hour >= 17 && hour < 22:
		greeting = "Good evening"
	default:
		greeting = "Hello"
	}

	day := now.Weekday()
	if day == time.Saturday || day == time.Sunday {
		return fmt.Sprintf("%s! Happy %s!", greeting, day)
	}
	return fmt.Sprintf("%s! Hope your %s is going well.", greeting, day)
}

// StartJobs schedules the periodic chores: memory autosave and the
// screenshot retention sweep.
func (a *Assistant) StartJobs() error {
	if err := a.Jobs.Add(a.cfg.AutosaveSpec, "memory-autosave", a.Save); err != nil {
		return fmt.Errorf("schedule autosave: %w", err)
	}
	sweep := func() error {
		removed, err := screenshot.Sweep(a.Store.Dir())
		if err != nil {
			return err
		}
		if removed > 0 {
			log.Printf("screenshot sweep removed %d files", removed)
		}
		return nil
	}
	if err := a.Jobs.Add(a.cfg.ScreenshotSweepSpec, "screenshot-sweep", sweep); err != nil {
		return fmt.Errorf("schedule screenshot sweep: %w", err)
	}
	a.Jobs.Start()
	return nil
}

// Shutdown stops scheduled jobs and saves a final snapshot.
func (a *Assistant) Shutdown() {
	a.Jobs.Stop()
	if err := a.Save(); err != nil {
		log.Printf("final save failed: %v", err)
	}
}
