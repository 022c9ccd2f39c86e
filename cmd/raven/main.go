package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"raven/internal/assistant"
	"raven/internal/automation"
	"raven/internal/commands"
	"raven/internal/config"
	"raven/internal/contacts"
	"raven/internal/conversation"
	"raven/internal/history"
	"raven/internal/llm"
	"raven/internal/memory"
	"raven/internal/mood"
	"raven/internal/notify"
	"raven/internal/router"
	"raven/internal/screenshot"
	"raven/internal/session"
	"raven/internal/ui"
	"raven/internal/voice"
)

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	headless := cli.Bool("headless", false, "Disable the avatar websocket hub")
	logPrefix := cli.String("log-prefix", "", "Prefix for log lines")
	cli.Parse()

	if *logPrefix != "" {
		log.SetPrefix(*logPrefix + " ")
	}
	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("Warning: env file not loaded: %v", err)
	}
	cfg := config.New()

	llmClient, err := llm.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	store, err := memory.NewStore(cfg.MemoryDir)
	if err != nil {
		log.Fatalf("failed to init memory store: %v", err)
	}

	book, err := contacts.Load(cfg.ContactsPath)
	if err != nil {
		log.Fatalf("failed to load contacts: %v", err)
	}
	log.Printf("loaded %d contacts", book.Len())

	sess := session.New(session.ParseLanguage(cfg.DefaultLanguage), cfg.VisionEnabled, cfg.VoiceEnabled)
	hist := history.NewLog()
	moods := mood.NewTracker()

	auto := automation.NewExec(cfg.OpenCommand, cfg.TypeCommand, cfg.EditorCommand)
	capturer := screenshot.NewExec(cfg.ScreenshotCommand, cfg.MemoryDir)
	handlers := commands.New(auto, book)

	builder := &conversation.Builder{
		LLM:           llmClient,
		Moods:         moods,
		History:       hist,
		Capture:       capturer,
		TextModel:     cfg.TextModel,
		VisionModel:   cfg.VisionModel,
		AssistantName: cfg.AssistantName,
		UserName:      cfg.UserName,
	}
	rt := router.New(handlers, builder, capturer)

	renderers := ui.Multi{ui.LogRenderer{}}
	var hub *ui.Hub
	if cfg.UIListenAddr != "" && !*headless {
		hub = ui.NewHub()
		if err := hub.Start(cfg.UIListenAddr); err != nil {
			log.Printf("ui hub disabled: %v", err)
			hub = nil
		} else {
			renderers = append(renderers, hub)
		}
	}

	speaker := &voice.ExecSpeaker{Cmd: cfg.SpeakCommand}
	asst := assistant.New(cfg, sess, hist, moods, store, rt, renderers, speaker)
	asst.Restore()
	if err := asst.StartJobs(); err != nil {
		log.Fatalf("failed to start scheduled jobs: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	greeting := asst.Greeting()
	renderers.Render(session.StateIdle, greeting)
	fmt.Println(greeting)

	if cfg.ListenCommand != "" {
		loop := &voice.Loop{
			Transcriber: &voice.ExecTranscriber{Cmd: cfg.ListenCommand},
			OnListening: func() {
				renderers.Render(session.StateListening, "")
				if cfg.EarconPath != "" {
					if err := notify.Earcon(cfg.EarconPath); err != nil {
						log.Printf("earcon skipped: %v", err)
					}
				}
			},
			OnUtterance: func(text string) {
				fmt.Printf("(heard) %s\n", text)
				res := asst.HandleInput(ctx, text)
				fmt.Println(res.Text)
			},
		}
		go loop.Run(ctx, sess)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	inputs := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			inputs <- scanner.Text()
		}
		close(inputs)
	}()

	for {
		select {
		case <-quit:
			shutdown(cancel, asst, hub)
			return
		case line, ok := <-inputs:
			if !ok {
				shutdown(cancel, asst, hub)
				return
			}
			input := strings.TrimSpace(line)
			if input == "" {
				continue
			}
			switch strings.ToLower(input) {
			case "exit", "quit":
				shutdown(cancel, asst, hub)
				return
			case "voice on":
				sess.SetVoiceEnabled(true)
				fmt.Println("Voice mode on.")
			case "voice off":
				sess.SetVoiceEnabled(false)
				fmt.Println("Voice mode off.")
			case "vision on":
				sess.SetVisionEnabled(true)
				fmt.Println("Vision mode on.")
			case "vision off":
				sess.SetVisionEnabled(false)
				fmt.Println("Vision mode off.")
			default:
				res := asst.HandleInput(ctx, input)
				fmt.Println(res.Text)
			}
		}
	}
}

func shutdown(cancel context.CancelFunc, asst *assistant.Assistant, hub *ui.Hub) {
	log.Printf("shutting down")
	cancel()
	asst.Shutdown()
	if hub != nil {
		ctx, done := context.WithTimeout(context.Background(), 3*time.Second)
		defer done()
		if err := hub.Shutdown(ctx); err != nil {
			log.Printf("ui shutdown: %v", err)
		}
	}
}
