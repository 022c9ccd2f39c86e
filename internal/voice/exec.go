package voice

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExecTranscriber delegates one listen attempt to an external speech-to-text
// program (a whisper CLI wrapper, for instance) that records, transcribes
// and prints the text to stdout. An empty transcript maps to ErrNoSpeech.
type ExecTranscriber struct {
	Cmd string
}

func (t *ExecTranscriber) Transcribe(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, t.Cmd).Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%s: %w", t.Cmd, err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}
