package mentor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const filePlaceholder = "{file}"

// runner plays one file and blocks until playback ends or ctx is cancelled.
type runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Player keeps replies on disk and plays them one at a time. Starting a new
// reply stops the one still playing.
type Player struct {
	fs      afero.Fs
	dir     string
	command []string
	logger  *zap.Logger
	run     runner
	now     func() time.Time

	mu      sync.Mutex
	seq     int
	current *playback
}

type playback struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// NewPlayer stores replies under dir. command is the player invocation, for
// example "mpv --no-video {file}"; the file path is appended when the command
// has no placeholder. An empty command only saves the files.
func NewPlayer(fs afero.Fs, dir, command string, logger *zap.Logger) *Player {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		fs:      fs,
		dir:     dir,
		command: strings.Fields(command),
		logger:  logger,
		run:     execRunner,
		now:     time.Now,
	}
}

// Play saves the reply and starts playing it in the background. It returns
// the saved file path. Concurrent calls are serialized: each one stops the
// playback started before it.
func (p *Player) Play(ctx context.Context, reply *Reply) (string, error) {
	if reply == nil || len(reply.Audio) == 0 {
		return "", errors.New("reply has no audio")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	if err := p.fs.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reply directory: %w", err)
	}

	p.seq++
	name := fmt.Sprintf("mentor-%s-%03d%s", p.now().UTC().Format("20060102T150405"), p.seq, extensionFor(reply.ContentType))
	path := filepath.Join(p.dir, name)
	if err := afero.WriteFile(p.fs, path, reply.Audio, 0o644); err != nil {
		return "", fmt.Errorf("save reply audio: %w", err)
	}

	if len(p.command) == 0 {
		p.logger.Debug("reply saved, no player command configured", zap.String("path", path))
		return path, nil
	}

	args := make([]string, 0, len(p.command))
	substituted := false
	for _, arg := range p.command[1:] {
		if strings.Contains(arg, filePlaceholder) {
			arg = strings.ReplaceAll(arg, filePlaceholder, path)
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, path)
	}

	playCtx, cancel := context.WithCancel(ctx)
	pb := &playback{cancel: cancel, done: make(chan struct{})}
	p.current = pb

	go func(name string) {
		defer close(pb.done)
		pb.err = p.run(playCtx, name, args...)
		if pb.err != nil && playCtx.Err() == nil {
			p.logger.Warn("reply playback failed", zap.String("path", path), zap.Error(pb.err))
		}
	}(p.command[0])

	return path, nil
}

// Stop interrupts the current playback and waits for it to end.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// stopLocked must be called with p.mu held. The playback goroutine never
// takes p.mu, so waiting for it here cannot deadlock.
func (p *Player) stopLocked() {
	pb := p.current
	p.current = nil
	if pb == nil {
		return
	}
	pb.cancel()
	<-pb.done
}

// Wait blocks until the current playback ends on its own.
func (p *Player) Wait() error {
	p.mu.Lock()
	pb := p.current
	p.mu.Unlock()

	if pb == nil {
		return nil
	}
	<-pb.done
	return pb.err
}

func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "mpeg"), strings.Contains(contentType, "mp3"):
		return ".mp3"
	case strings.Contains(contentType, "wav"):
		return ".wav"
	case strings.Contains(contentType, "ogg"):
		return ".ogg"
	case strings.Contains(contentType, "webm"):
		return ".webm"
	default:
		return ".mp3"
	}
}
