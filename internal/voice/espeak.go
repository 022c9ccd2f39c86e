package voice

import (
	"fmt"
	"os/exec"
)

// ExecSpeaker synthesizes speech through an external program such as
// espeak-ng. Playback blocks until the utterance finishes.
type ExecSpeaker struct {
	Cmd string
}

func (s *ExecSpeaker) Speak(text string) error {
	if text == "" {
		return nil
	}
	if err := exec.Command(s.Cmd, text).Run(); err != nil {
		return fmt.Errorf("%s: %w", s.Cmd, err)
	}
	return nil
}
