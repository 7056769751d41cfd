package notify

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/tomatoclock/tomato/timer"
)

const speakerRate = beep.SampleRate(44100)

var errInvalidSoundFormat = errors.New(
	"sound file must be in mp3, ogg, flac, or wav format",
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// PlayFunc plays the sound file at path and returns once it has finished.
type PlayFunc func(path string) error

// Sound plays an alert when the timer moves to a new phase or completes.
type Sound struct {
	mu     sync.Mutex
	path   string
	play   PlayFunc
	logger *slog.Logger
}

// NewSound returns a Sound that plays the file at path through the
// speaker. An empty path disables it.
func NewSound(path string, logger *slog.Logger) *Sound {
	return NewSoundWith(path, PlayFile, logger)
}

// NewSoundWith returns a Sound that plays through play.
func NewSoundWith(path string, play PlayFunc, logger *slog.Logger) *Sound {
	return &Sound{path: path, play: play, logger: logger}
}

// SetPath changes the alert sound.
func (s *Sound) SetPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = path
}

func (s *Sound) HandleEvent(ev timer.Event) {
	if ev.Type != timer.EventPhaseChanged && ev.Type != timer.EventCompleted {
		return
	}

	s.mu.Lock()
	path := s.path
	s.mu.Unlock()

	if path == "" {
		return
	}

	if err := s.play(path); err != nil {
		s.logger.Warn(
			"unable to play sound",
			slog.String("file", path),
			slog.Any("error", err),
		)
	}
}

// decode returns an audio stream for f, choosing the decoder by the
// file extension.
func decode(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(f.Name())) {
	case ".ogg":
		return vorbis.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".wav":
		return wav.Decode(f)
	}

	return nil, beep.Format{}, errInvalidSoundFormat
}

// PlayFile plays the sound file at path to completion.
func PlayFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close()

	stream, format, err := decode(f)
	if err != nil {
		return err
	}

	defer stream.Close()

	speakerOnce.Do(func() {
		bufferSize := 10
		speakerErr = speaker.Init(
			speakerRate,
			speakerRate.N(time.Duration(int(time.Second)/bufferSize)),
		)
	})

	if speakerErr != nil {
		return fmt.Errorf("initialising speaker: %w", speakerErr)
	}

	var streamer beep.Streamer = stream
	if format.SampleRate != speakerRate {
		streamer = beep.Resample(4, format.SampleRate, speakerRate, stream)
	}

	done := make(chan struct{})

	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))

	<-done

	return nil
}
