// Package ui delivers avatar state to whatever frontend is attached. The
// core only ever calls Render(state, message); frontends are collaborators.
package ui

import (
	"log"
	"time"

	"raven/internal/session"
)

type Frame struct {
	State   session.UIState `json:"state"`
	Message string          `json:"message"`
	Ts      time.Time       `json:"ts"`
}

type Renderer interface {
	Render(state session.UIState, message string)
}

// LogRenderer is the headless fallback: frames go to the process log.
type LogRenderer struct{}

func (LogRenderer) Render(state session.UIState, message string) {
	log.Printf("[render] state=%s message=%q", state, message)
}

// Multi fans a frame out to several renderers.
type Multi []Renderer

func (m Multi) Render(state session.UIState, message string) {
	for _, r := range m {
		r.Render(state, message)
	}
}
