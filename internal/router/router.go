// Package router decides which handler answers a user message. Rules are an
// explicit ordered list evaluated first-match-wins; the order is part of the
// contract, since later rules can shadow earlier ones on overlapping
// keywords.
package router

import (
	"context"
	"encoding/base64"
	"log"
	"strings"
	"unicode"

	"raven/internal/commands"
	"raven/internal/conversation"
	"raven/internal/screenshot"
	"raven/internal/session"
)

type Result struct {
	Text  string
	State session.UIState
}

type Rule struct {
	Name   string
	Match  func(input string, sess *session.State) bool
	Handle func(ctx context.Context, input string, sess *session.State) Result
}

type Router struct {
	rules []Rule
}

// Route runs the rule chain; the first matching rule short-circuits the
// rest. The final rule always matches, so a result is guaranteed.
func (r *Router) Route(ctx context.Context, input string, sess *session.State) Result {
	for _, rule := range r.rules {
		if rule.Match(input, sess) {
			log.Printf("routed to %s", rule.Name)
			return rule.Handle(ctx, input, sess)
		}
	}
	// Unreachable: the fallback rule matches everything.
	return Result{Text: "", State: session.StateIdle}
}

// Rules exposes the chain for precedence auditing in tests.
func (r *Router) Rules() []Rule {
	return r.rules
}

var englishSwitchPhrases = []string{"english", "speak english", "switch to english"}

// Common Banglish words that signal the user has drifted into Bengali while
// the session is in English mode.
var banglishWords = []string{"kemon acho", "bhalo", "tumi", "ki koro", "accha", "thik ache", "koro"}

func isEnglishSwitch(input string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	for _, p := range englishSwitchPhrases {
		if trimmed == p {
			return true
		}
	}
	return false
}

func hasBengali(input string) bool {
	for _, r := range input {
		if unicode.Is(unicode.Bengali, r) {
			return true
		}
	}
	lower := strings.ToLower(input)
	for _, w := range banglishWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func containsAny(input string, words []string) bool {
	lower := strings.ToLower(input)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// New builds the rule chain in its fixed order.
func New(h *commands.Handlers, conv *conversation.Builder, capture screenshot.Capturer) *Router {
	rules := []Rule{
		{
			Name: "switch-to-english",
			Match: func(input string, _ *session.State) bool {
				return isEnglishSwitch(input)
			},
			Handle: func(_ context.Context, _ string, sess *session.State) Result {
				sess.SetLanguage(session.LangEnglish)
				return Result{Text: "Okay, switching to English.", State: session.StateHappy}
			},
		},
		{
			Name: "switch-to-banglish",
			Match: func(input string, sess *session.State) bool {
				return sess.Language() == session.LangEnglish && hasBengali(input)
			},
			Handle: func(_ context.Context, _ string, sess *session.State) Result {
				sess.SetLanguage(session.LangBanglish)
				return Result{Text: "Thik ache, ekhon theke Banglish e kotha bolbo!", State: session.StateHappy}
			},
		},
		{
			Name: "file-open",
			Match: func(input string, _ *session.State) bool {
				path, ok := commands.DetectPath(input)
				if !ok {
					return false
				}
				return commands.HasOpenVerb(input) || commands.Exists(path)
			},
			Handle: func(_ context.Context, input string, _ *session.State) Result {
				return Result{Text: h.OpenFile(input), State: session.StateHappy}
			},
		},
		{
			Name: "time-query",
			Match: func(input string, _ *session.State) bool {
				return containsAny(input, []string{"what time", "time", "clock"})
			},
			Handle: func(_ context.Context, _ string, _ *session.State) Result {
				return Result{Text: h.Time(), State: session.StateHappy}
			},
		},
		{
			Name: "date-query",
			Match: func(input string, _ *session.State) bool {
				return containsAny(input, []string{"what day", "date", "today"})
			},
			Handle: func(_ context.Context, _ string, _ *session.State) Result {
				return Result{Text: h.Date(), State: session.StateHappy}
			},
		},
		{
			Name: "whatsapp",
			Match: func(input string, _ *session.State) bool {
				return commands.WhatsAppIntent(input)
			},
			Handle: func(ctx context.Context, input string, _ *session.State) Result {
				return Result{Text: h.WhatsApp(ctx, input), State: session.StateHappy}
			},
		},
		{
			Name: "web-search",
			Match: func(input string, _ *session.State) bool {
				return commands.SearchKeyword(input)
			},
			Handle: func(_ context.Context, input string, _ *session.State) Result {
				return Result{Text: h.SearchWeb(input), State: session.StateHappy}
			},
		},
		{
			Name: "open-app",
			Match: func(input string, _ *session.State) bool {
				if !strings.Contains(strings.ToLower(input), "open") {
					return false
				}
				_, ok := commands.KnownApp(input)
				return ok
			},
			Handle: func(_ context.Context, input string, _ *session.State) Result {
				return Result{Text: h.OpenApplication(input), State: session.StateHappy}
			},
		},
		{
			Name: "type-text",
			Match: func(input string, _ *session.State) bool {
				_, ok := commands.TypeMarker(input)
				return ok
			},
			Handle: func(_ context.Context, input string, _ *session.State) Result {
				return Result{Text: h.TypeText(input), State: session.StateHappy}
			},
		},
		{
			Name: "minimize-all",
			Match: func(input string, _ *session.State) bool {
				lower := strings.ToLower(input)
				return strings.Contains(lower, "minimize") && strings.Contains(lower, "everything")
			},
			Handle: func(_ context.Context, _ string, _ *session.State) Result {
				return Result{Text: h.MinimizeAll(), State: session.StateHappy}
			},
		},
		{
			Name: "screenshot-describe",
			Match: func(input string, _ *session.State) bool {
				return strings.Contains(strings.ToLower(input), "screenshot")
			},
			Handle: func(ctx context.Context, _ string, _ *session.State) Result {
				if capture == nil {
					return Result{Text: "I couldn't capture the screenshot.", State: session.StateIdle}
				}
				data, err := capture.Capture(ctx)
				if err != nil {
					log.Printf("screenshot capture failed: %v", err)
					return Result{Text: "I couldn't capture the screenshot.", State: session.StateIdle}
				}
				desc, err := conv.Describe(ctx, base64.StdEncoding.EncodeToString(data))
				if err != nil {
					log.Printf("screenshot describe failed: %v", err)
					return Result{Text: "I captured the screen but couldn't describe it.", State: session.StateIdle}
				}
				return Result{Text: desc, State: session.StateTalking}
			},
		},
		{
			Name: "chat",
			Match: func(string, *session.State) bool {
				return true
			},
			Handle: func(ctx context.Context, input string, sess *session.State) Result {
				text, state := conv.Respond(ctx, input, sess)
				return Result{Text: text, State: state}
			},
		},
	}
	return &Router{rules: rules}
}
