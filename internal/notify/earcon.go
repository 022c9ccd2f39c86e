// Package notify plays the short earcon that tells the user the microphone
// is live.
package notify

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Earcon plays the mp3 at path and blocks until it finishes. A missing or
// undecodable file is an error for the caller to log; listening proceeds
// without the cue.
func Earcon(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open earcon: %w", err)
	}
	defer func() { _ = f.Close() }()

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return fmt.Errorf("decode earcon: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}
