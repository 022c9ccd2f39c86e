package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOllama LLMProvider = "ollama"
	ProviderOpenAI LLMProvider = "openai"
)

type Config struct {
	// Identity shown in prompts and the chat log.
	UserName      string `env:"RAVEN_USER_NAME" envDefault:"User"`
	AssistantName string `env:"RAVEN_ASSISTANT_NAME" envDefault:"Raven"`

	// LLM settings
	LLMProvider   LLMProvider   `env:"LLM_PROVIDER" envDefault:"ollama"`
	OllamaBaseURL string        `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	TextModel     string        `env:"TEXT_MODEL" envDefault:"raven"`
	VisionModel   string        `env:"VISION_MODEL" envDefault:"llama3.2-vision"`
	LLMTimeout    time.Duration `env:"LLM_TIMEOUT" envDefault:"120s"`
	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL"`

	// Storage
	MemoryDir    string `env:"MEMORY_DIR" envDefault:"memory"`
	ContactsPath string `env:"CONTACTS_PATH" envDefault:"contacts.yaml"`

	// Session defaults
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"banglish"`
	VisionEnabled   bool   `env:"VISION_ENABLED" envDefault:"false"`
	VoiceEnabled    bool   `env:"VOICE_ENABLED" envDefault:"false"`

	// Renderer websocket listen address; empty disables the hub.
	UIListenAddr string `env:"UI_LISTEN_ADDR" envDefault:"127.0.0.1:8765"`

	// OS automation collaborators
	EditorCommand     string `env:"EDITOR_COMMAND" envDefault:"code"`
	OpenCommand       string `env:"OPEN_COMMAND" envDefault:"xdg-open"`
	TypeCommand       string `env:"TYPE_COMMAND" envDefault:"xdotool"`
	ScreenshotCommand string `env:"SCREENSHOT_COMMAND" envDefault:"scrot"`
	SpeakCommand      string `env:"SPEAK_COMMAND" envDefault:"espeak-ng"`
	ListenCommand     string `env:"LISTEN_COMMAND"`
	EarconPath        string `env:"EARCON_PATH"`

	// Scheduling (cron specs)
	AutosaveSpec        string `env:"AUTOSAVE_SPEC" envDefault:"@every 5m"`
	ScreenshotSweepSpec string `env:"SCREENSHOT_SWEEP_SPEC" envDefault:"@every 30m"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
