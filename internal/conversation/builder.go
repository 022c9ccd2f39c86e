// Package conversation assembles LLM prompts from history, mood and clock
// context, and turns model output into a reply plus a UI state.
package conversation

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"raven/internal/history"
	"raven/internal/llm"
	"raven/internal/mood"
	"raven/internal/screenshot"
	"raven/internal/session"
)

// historyWindow is how many transcript entries are replayed into the prompt.
const historyWindow = 10

const englishPersona = "You are Raven, a helpful desktop assistant. Respond in clear, natural English. Keep replies conversational and concise."

const banglishPersona = "You are Raven, a friendly desktop assistant. Respond in a natural Bengali-English code-mixed style (Banglish), the way Bengali speakers casually chat online. Keep replies warm and conversational."

// Canned apologies, per language mode. Connection refusal, an error status
// from a reachable server, and everything else get distinct strings so the
// user can tell the failures apart.
const (
	connApologyEnglish    = "Sorry, I can't reach my AI brain right now. Please make sure the model server is running."
	connApologyBanglish   = "Sorry, amar AI brain er shathe connect korte parchi na. Model server ta cholche kina dekho, please."
	statusApologyEnglish  = "I'm having trouble connecting to my AI brain. Please try again in a moment."
	statusApologyBanglish = "AI brain er shathe connect korte ektu trouble hocche. Ektu pore abar try koro."
	genApologyEnglish     = "I ran into a problem while processing that. Please try again."
	genApologyBanglish    = "Ekta problem hoye gelo process korte giye. Abar try koro, please."
)

// Positive-sentiment markers checked against the assistant's own output,
// independent of the user-input mood detector.
var positiveMarkers = []string{"great", "excellent", "success", "done", "perfect", "!"}

type Builder struct {
	LLM           llm.Client
	Moods         *mood.Tracker
	History       *history.Log
	Capture       screenshot.Capturer
	TextModel     string
	VisionModel   string
	AssistantName string
	UserName      string
	Clock         func() time.Time
}

func (b *Builder) now() time.Time {
	if b.Clock != nil {
		return b.Clock()
	}
	return time.Now()
}

// Prompt builds the full generation prompt for the given input and language
// mode: persona, mood guidance, clock context, recent transcript, then the
// user's turn.
func (b *Builder) Prompt(input string, lang session.LanguageMode) string {
	var sb strings.Builder

	persona := banglishPersona
	if lang == session.LangEnglish {
		persona = englishPersona
	}
	sb.WriteString(persona)
	sb.WriteString("\n")

	if prefix := b.Moods.AdaptivePrefix(); prefix != "" {
		sb.WriteString(prefix)
		sb.WriteString("\n")
	}
	if moodCtx := b.Moods.Context(); moodCtx != "" {
		sb.WriteString(moodCtx)
		sb.WriteString("\n")
	}

	now := b.now()
	fmt.Fprintf(&sb, "\nCurrent time: %s\nCurrent date: %s\n", now.Format("03:04 PM"), now.Format("Monday, January 2, 2006"))

	recent := b.History.Recent(historyWindow)
	if len(recent) > 0 {
		sb.WriteString("\nRecent conversation:\n")
		for _, msg := range recent {
			fmt.Fprintf(&sb, "%s: %s\n", msg.Sender, msg.Text)
		}
	}

	fmt.Fprintf(&sb, "\n%s: %s\n%s (respond naturally and helpfully):", b.UserName, input, b.AssistantName)
	return sb.String()
}

// Respond runs a generic chat turn. Failures come back as canned apologies
// in the active language; they never raise and never touch session state.
func (b *Builder) Respond(ctx context.Context, input string, sess *session.State) (string, session.UIState) {
	lang := sess.Language()

	var images []string
	model := b.TextModel
	if sess.VisionEnabled() && b.Capture != nil {
		if data, err := b.Capture.Capture(ctx); err == nil {
			images = append(images, base64.StdEncoding.EncodeToString(data))
			model = b.VisionModel
		} else {
			log.Printf("vision capture failed, continuing text-only: %v", err)
		}
	}

	resp, err := b.LLM.Generate(ctx, llm.Request{Prompt: b.Prompt(input, lang), Model: model, Images: images})
	if err != nil {
		log.Printf("llm generate failed: %v", err)
		return b.apology(lang, err), session.StateTalking
	}

	return resp.Content, classifyResponse(resp.Content)
}

// Describe sends a screenshot to the vision model with a fixed descriptive
// prompt.
func (b *Builder) Describe(ctx context.Context, imageB64 string) (string, error) {
	resp, err := b.LLM.Generate(ctx, llm.Request{
		Prompt: "Describe what you see in this screenshot in detail.",
		Model:  b.VisionModel,
		Images: []string{imageB64},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (b *Builder) apology(lang session.LanguageMode, err error) string {
	english := lang == session.LangEnglish
	switch {
	case errors.Is(err, llm.ErrUnavailable):
		if english {
			return connApologyEnglish
		}
		return connApologyBanglish
	case errors.Is(err, llm.ErrBadResponse):
		if english {
			return statusApologyEnglish
		}
		return statusApologyBanglish
	default:
		if english {
			return genApologyEnglish
		}
		return genApologyBanglish
	}
}

// classifyResponse picks the UI state from the assistant's output text.
func classifyResponse(text string) session.UIState {
	lower := strings.ToLower(text)
	for _, marker := range positiveMarkers {
		if strings.Contains(lower, marker) {
			return session.StateHappy
		}
	}
	return session.StateTalking
}
