package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"raven/internal/history"
	"raven/internal/llm"
	"raven/internal/mood"
	"raven/internal/session"
)

type fakeLLM struct {
	resp    string
	err     error
	lastReq llm.Request
}

func (f *fakeLLM) Generate(_ context.Context, req llm.Request) (llm.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Content: f.resp, Model: req.Model}, nil
}

type fakeCapturer struct {
	data []byte
	err  error
}

func (f *fakeCapturer) Capture(context.Context) ([]byte, error) {
	return f.data, f.err
}

func newTestBuilder() (*Builder, *fakeLLM) {
	fake := &fakeLLM{resp: "hello"}
	b := &Builder{
		LLM:           fake,
		Moods:         mood.NewTracker(),
		History:       history.NewLog(),
		TextModel:     "raven",
		VisionModel:   "llama3.2-vision",
		AssistantName: "Raven",
		UserName:      "User",
		Clock: func() time.Time {
			return time.Date(2025, time.March, 3, 15, 4, 0, 0, time.UTC)
		},
	}
	return b, fake
}

func TestPromptPersonaPerLanguage(t *testing.T) {
	b, _ := newTestBuilder()
	en := b.Prompt("hi", session.LangEnglish)
	if !strings.Contains(en, "clear, natural English") {
		t.Fatalf("english persona missing: %q", en)
	}
	bn := b.Prompt("hi", session.LangBanglish)
	if !strings.Contains(bn, "Banglish") {
		t.Fatalf("banglish persona missing: %q", bn)
	}
}

func TestPromptIncludesMoodAndClock(t *testing.T) {
	b, _ := newTestBuilder()
	b.Moods.Update(mood.Stressed, "deadline")

	p := b.Prompt("help me", session.LangEnglish)
	if !strings.Contains(p, "The user seems stressed") {
		t.Fatalf("adaptive prefix missing: %q", p)
	}
	if !strings.Contains(p, "Current mood: stressed") {
		t.Fatalf("mood context missing: %q", p)
	}
	if !strings.Contains(p, "Current time: 03:04 PM") {
		t.Fatalf("time context missing: %q", p)
	}
	if !strings.Contains(p, "Current date: Monday, March 3, 2025") {
		t.Fatalf("date context missing: %q", p)
	}
	if !strings.Contains(p, "User: help me") {
		t.Fatalf("user turn missing: %q", p)
	}
	if !strings.HasSuffix(p, "Raven (respond naturally and helpfully):") {
		t.Fatalf("prompt should end with the response cue: %q", p)
	}
}

func TestPromptHistoryWindow(t *testing.T) {
	b, _ := newTestBuilder()
	for i := 0; i < 15; i++ {
		b.History.Append(history.SenderUser, fmt.Sprintf("msg-%02d", i))
	}
	p := b.Prompt("next", session.LangEnglish)
	if strings.Contains(p, "msg-04") {
		t.Fatalf("history window leaked beyond 10 entries")
	}
	if !strings.Contains(p, "msg-05") || !strings.Contains(p, "msg-14") {
		t.Fatalf("newest 10 history entries expected: %q", p)
	}
}

func TestRespondSentimentPass(t *testing.T) {
	b, fake := newTestBuilder()
	sess := session.New(session.LangEnglish, false, false)

	fake.resp = "Done, all set."
	if _, state := b.Respond(context.Background(), "do it", sess); state != session.StateHappy {
		t.Fatalf("positive response should map to happy, got %s", state)
	}

	fake.resp = "The capital of France is Paris."
	if _, state := b.Respond(context.Background(), "capital of france", sess); state != session.StateTalking {
		t.Fatalf("plain response should map to talking, got %s", state)
	}
}

func TestRespondConnectionFailure(t *testing.T) {
	b, fake := newTestBuilder()
	fake.err = fmt.Errorf("%w: dial tcp refused", llm.ErrUnavailable)

	sess := session.New(session.LangEnglish, false, false)
	text, _ := b.Respond(context.Background(), "hi", sess)
	if text != connApologyEnglish {
		t.Fatalf("unexpected apology: %q", text)
	}

	sess = session.New(session.LangBanglish, false, false)
	text, _ = b.Respond(context.Background(), "hi", sess)
	if text != connApologyBanglish {
		t.Fatalf("unexpected apology: %q", text)
	}
	if sess.Language() != session.LangBanglish {
		t.Fatalf("failure must not flip language mode")
	}
}

func TestRespondBadStatus(t *testing.T) {
	b, fake := newTestBuilder()
	fake.err = fmt.Errorf("%w: status 500", llm.ErrBadResponse)

	sess := session.New(session.LangEnglish, false, false)
	text, _ := b.Respond(context.Background(), "hi", sess)
	if text != statusApologyEnglish {
		t.Fatalf("unexpected apology: %q", text)
	}

	sess = session.New(session.LangBanglish, false, false)
	text, _ = b.Respond(context.Background(), "hi", sess)
	if text != statusApologyBanglish {
		t.Fatalf("unexpected apology: %q", text)
	}
}

func TestRespondGenericFailure(t *testing.T) {
	b, fake := newTestBuilder()
	fake.err = errors.New("boom")
	sess := session.New(session.LangEnglish, false, false)
	text, _ := b.Respond(context.Background(), "hi", sess)
	if text != genApologyEnglish {
		t.Fatalf("unexpected apology: %q", text)
	}
}

func TestRespondVisionMode(t *testing.T) {
	b, fake := newTestBuilder()
	b.Capture = &fakeCapturer{data: []byte("png")}
	sess := session.New(session.LangEnglish, true, false)

	_, _ = b.Respond(context.Background(), "what's on my screen", sess)
	if fake.lastReq.Model != "llama3.2-vision" {
		t.Fatalf("vision mode should use the vision model, got %q", fake.lastReq.Model)
	}
	if len(fake.lastReq.Images) != 1 {
		t.Fatalf("screenshot not attached in vision mode")
	}
}

func TestRespondVisionCaptureFailureFallsBack(t *testing.T) {
	b, fake := newTestBuilder()
	b.Capture = &fakeCapturer{err: errors.New("no display")}
	sess := session.New(session.LangEnglish, true, false)

	_, _ = b.Respond(context.Background(), "hello", sess)
	if fake.lastReq.Model != "raven" {
		t.Fatalf("capture failure should fall back to the text model, got %q", fake.lastReq.Model)
	}
	if len(fake.lastReq.Images) != 0 {
		t.Fatalf("no image expected after capture failure")
	}
}
