// Package commands implements the concrete actions behind each routed
// intent. Handlers return the reply text; OS failures surface as short
// apologies, never as errors that kill the turn.
package commands

import (
	"fmt"
	"log"
	"strings"
	"time"

	"raven/internal/automation"
	"raven/internal/contacts"
)

type Handlers struct {
	Auto     automation.Automator
	Contacts *contacts.Book
	// Clock is injectable for tests; defaults to time.Now.
	Clock func() time.Time
}

func New(auto automation.Automator, book *contacts.Book) *Handlers {
	return &Handlers{Auto: auto, Contacts: book, Clock: time.Now}
}

func (h *Handlers) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}

func (h *Handlers) Time() string {
	return fmt.Sprintf("The current time is %s.", h.now().Format("03:04 PM"))
}

func (h *Handlers) Date() string {
	return fmt.Sprintf("Today is %s.", h.now().Format("Monday, January 2, 2006"))
}

// knownApps maps spoken names to what gets typed into the OS launcher.
var knownApps = []struct{ spoken, launch string }{
	{"chrome", "chrome"},
	{"whatsapp", "whatsapp"},
	{"vscode", "code"},
	{"code", "code"},
	{"notepad", "notepad"},
	{"calculator", "calculator"},
}

// KnownApp reports whether the input names an application we can launch.
func KnownApp(input string) (string, bool) {
	lower := strings.ToLower(input)
	for _, app := range knownApps {
		if strings.Contains(lower, app.spoken) {
			return app.launch, true
		}
	}
	return "", false
}

func (h *Handlers) OpenApplication(input string) string {
	app, ok := KnownApp(input)
	if !ok {
		return "I'm not sure which application to open."
	}
	if err := h.Auto.LaunchApp(app); err != nil {
		log.Printf("launch %s failed: %v", app, err)
		return fmt.Sprintf("I had trouble opening %s.", app)
	}
	return fmt.Sprintf("Opening %s...", app)
}

var searchKeywords = []string{"search for", "search", "look up", "google", "khuje dekho", "khujo"}

// SearchKeyword reports whether the input carries a web-search trigger.
func SearchKeyword(input string) bool {
	lower := strings.ToLower(input)
	for _, kw := range searchKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (h *Handlers) SearchWeb(input string) string {
	term := strings.ToLower(input)
	for _, kw := range searchKeywords {
		term = strings.ReplaceAll(term, kw, "")
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return "What would you like me to search for?"
	}
	url := "https://www.google.com/search?q=" + strings.ReplaceAll(term, " ", "+")
	if err := h.Auto.OpenURL(url); err != nil {
		log.Printf("search open failed: %v", err)
		return "I had trouble opening the browser."
	}
	return fmt.Sprintf("Searching for '%s'...", term)
}

// TypeMarker finds the "type this:"/"type:" marker and returns the text
// after it.
func TypeMarker(input string) (string, bool) {
	lower := strings.ToLower(input)
	for _, marker := range []string{"type this:", "type:"} {
		if idx := strings.Index(lower, marker); idx >= 0 {
			return strings.TrimSpace(input[idx+len(marker):]), true
		}
	}
	return "", false
}

func (h *Handlers) TypeText(input string) string {
	text, ok := TypeMarker(input)
	if !ok || text == "" {
		return "What would you like me to type?"
	}
	if err := h.Auto.TypeText(text); err != nil {
		log.Printf("type failed: %v", err)
		return "I had trouble typing the text."
	}
	return fmt.Sprintf("Typed: %s", text)
}

func (h *Handlers) MinimizeAll() string {
	if err := h.Auto.Hotkey("super+d"); err != nil {
		log.Printf("minimize failed: %v", err)
		return "I had trouble minimizing windows."
	}
	return "All windows minimized."
}
