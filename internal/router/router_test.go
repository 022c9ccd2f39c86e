package router

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"raven/internal/automation"
	"raven/internal/commands"
	"raven/internal/contacts"
	"raven/internal/conversation"
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

type testEnv struct {
	router *Router
	sess   *session.State
	llm    *fakeLLM
	nop    *automation.Nop
}

func newTestEnv(lang session.LanguageMode, capture *fakeCapturer) *testEnv {
	fake := &fakeLLM{resp: "okay"}
	nop := &automation.Nop{}
	h := commands.New(nop, contacts.NewBook(map[string]string{"mom": "+8801711000001"}))
	builder := &conversation.Builder{
		LLM:           fake,
		Moods:         mood.NewTracker(),
		History:       history.NewLog(),
		TextModel:     "raven",
		VisionModel:   "llama3.2-vision",
		AssistantName: "Raven",
		UserName:      "User",
	}
	var rt *Router
	if capture != nil {
		rt = New(h, builder, capture)
	} else {
		rt = New(h, builder, nil)
	}
	return &testEnv{
		router: rt,
		sess:   session.New(lang, false, false),
		llm:    fake,
		nop:    nop,
	}
}

func TestFileOpenBeatsTimeQuery(t *testing.T) {
	env := newTestEnv(session.LangBanglish, nil)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	// Matches both the file-path pattern and a time keyword: first match wins.
	res := env.router.Route(context.Background(), "open "+path+" and tell me the time", env.sess)
	if !strings.HasPrefix(res.Text, "Opening notes.txt") {
		t.Fatalf("file-open should shadow the time handler, got %q", res.Text)
	}
	if res.State != session.StateHappy {
		t.Fatalf("want happy, got %s", res.State)
	}
}

func TestFileOpenExistenceFallbackWithoutVerb(t *testing.T) {
	env := newTestEnv(session.LangBanglish, nil)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	// No verb at all: an existing path on disk is enough.
	res := env.router.Route(context.Background(), path, env.sess)
	if !strings.HasPrefix(res.Text, "Opening notes.txt") {
		t.Fatalf("existence fallback did not fire: %q", res.Text)
	}
	if res.State != session.StateHappy {
		t.Fatalf("want happy, got %s", res.State)
	}
}

func TestTimeQueryDefaultBanglish(t *testing.T) {
	env := newTestEnv(session.LangBanglish, nil)
	res := env.router.Route(context.Background(), "what time is it", env.sess)
	if !strings.Contains(res.Text, "The current time is") {
		t.Fatalf("unexpected reply: %q", res.Text)
	}
	if res.State != session.StateHappy {
		t.Fatalf("want happy, got %s", res.State)
	}
	// The command path never touches the language mode.
	if env.sess.Language() != session.LangBanglish {
		t.Fatalf("language mode should be untouched")
	}
}

func TestDateQuery(t *testing.T) {
	env := newTestEnv(session.LangBanglish, nil)
	res := env.router.Route(context.Background(), "what day is today", env.sess)
	if !strings.Contains(res.Text, "Today is") {
		t.Fatalf("unexpected reply: %q", res.Text)
	}
}

func TestLanguageSwitchIdempotent(t *testing.T) {
	env := newTestEnv(session.LangBanglish, nil)
	for i := 0; i < 2; i++ {
		res := env.router.Route(context.Background(), "english", env.sess)
		if env.sess.Language() != session.LangEnglish {
			t.Fatalf("round %d: language not english", i)
		}
		if res.State != session.StateHappy {
			t.Fatalf("round %d: want happy, got %s", i, res.State)
		}
	}
}

func TestBanglishAutoSwitch(t *testing.T) {
	env := newTestEnv(session.LangEnglish, nil)
	env.router.Route(context.Background(), "tumi kemon acho?", env.sess)
	if env.sess.Language() != session.LangBanglish {
		t.Fatalf("banglish words should flip the mode")
	}

	env = newTestEnv(session.LangEnglish, nil)
	env.router.Route(context.Background(), "আমি ভালো আছি", env.sess)
	if env.sess.Language() != session.LangBanglish {
		t.Fatalf("bengali script should flip the mode")
	}
}

func TestBanglishDetectionInactiveWhileBanglish(t *testing.T) {
	env := newTestEnv(session.LangBanglish, nil)
	res := env.router.Route(context.Background(), "tumi kemon acho?", env.sess)
	// Already in banglish mode: the message falls through to chat.
	if res.Text != "okay" {
		t.Fatalf("expected chat fallback, got %q", res.Text)
	}
}

func TestWhatsAppShadowsOpenApp(t *testing.T) {
	env := newTestEnv(session.LangBanglish, nil)
	res := env.router.Route(context.Background(), "open whatsapp", env.sess)
	if res.Text != "Opening WhatsApp Web..." {
		t.Fatalf("whatsapp rule should win over the app launcher: %q", res.Text)
	}
}

func TestSearchRule(t *testing.T) {
	env := newTestEnv(session.LangBanglish, nil)
	res := env.router.Route(context.Background(), "google golang generics", env.sess)
	if !strings.HasPrefix(res.Text, "Searching for") {
		t.Fatalf("unexpected reply: %q", res.Text)
	}
}

func TestScreenshotWithoutCapturer(t *testing.T) {
	env := newTestEnv(session.LangBanglish, nil)
	res := env.router.Route(context.Background(), "take a screenshot", env.sess)
	if res.Text != "I couldn't capture the screenshot." {
		t.Fatalf("unexpected reply: %q", res.Text)
	}
	if res.State != session.StateIdle {
		t.Fatalf("want idle on capture failure, got %s", res.State)
	}
}

func TestScreenshotDescribe(t *testing.T) {
	env := newTestEnv(session.LangBanglish, &fakeCapturer{data: []byte("png-bytes")})
	env.llm.resp = "A code editor is open."
	res := env.router.Route(context.Background(), "take a screenshot", env.sess)
	if res.Text != "A code editor is open." {
		t.Fatalf("unexpected reply: %q", res.Text)
	}
	if res.State != session.StateTalking {
		t.Fatalf("want talking, got %s", res.State)
	}
	if env.llm.lastReq.Model != "llama3.2-vision" {
		t.Fatalf("describe should use the vision model, got %q", env.llm.lastReq.Model)
	}
	if len(env.llm.lastReq.Images) != 1 {
		t.Fatalf("screenshot not attached to the request")
	}
}

func TestChatFallbackOnConnectionFailure(t *testing.T) {
	env := newTestEnv(session.LangEnglish, nil)
	env.llm.err = llm.ErrUnavailable
	res := env.router.Route(context.Background(), "tell me something interesting", env.sess)
	if !strings.Contains(res.Text, "can't reach my AI brain") {
		t.Fatalf("expected canned connection apology, got %q", res.Text)
	}
	if env.sess.Language() != session.LangEnglish {
		t.Fatalf("failures must not touch language mode")
	}
}

func TestRuleOrderIsStable(t *testing.T) {
	env := newTestEnv(session.LangBanglish, nil)
	want := []string{
		"switch-to-english", "switch-to-banglish", "file-open", "time-query",
		"date-query", "whatsapp", "web-search", "open-app", "type-text",
		"minimize-all", "screenshot-describe", "chat",
	}
	rules := env.router.Rules()
	if len(rules) != len(want) {
		t.Fatalf("want %d rules, got %d", len(want), len(rules))
	}
	for i, name := range want {
		if rules[i].Name != name {
			t.Fatalf("rule %d: want %s, got %s", i, name, rules[i].Name)
		}
	}
}

func TestChatFallbackGenericError(t *testing.T) {
	env := newTestEnv(session.LangBanglish, nil)
	env.llm.err = errors.New("boom")
	res := env.router.Route(context.Background(), "bolo to kichu", env.sess)
	if !strings.Contains(res.Text, "Abar try koro") {
		t.Fatalf("expected banglish generic apology, got %q", res.Text)
	}
}
