// Package audio plays reference recordings through an external player.
//
// A Player holds at most one running playback. Play stops and reaps the
// previous process before starting the next one.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoAudio is returned for a text without a recording.
	ErrNoAudio = errors.New("no audio file for this text")
	// ErrNoPlayer is returned when no player command is configured or installed.
	ErrNoPlayer = errors.New("no audio player available (set [audio] player)")
)

// candidates are probed in order when no player is configured.
var candidates = [][]string{
	{"mpv", "--no-video", "--really-quiet"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"afplay"},
	{"paplay"},
	{"aplay", "-q"},
}

// ParseCommand splits a configured player command line on whitespace.
func ParseCommand(s string) []string {
	return strings.Fields(s)
}

// DetectCommand returns the first installed candidate player, or nil.
func DetectCommand() []string {
	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return append([]string(nil), c...)
		}
	}
	return nil
}

// Playback identifies one started recording. Done receives the exit result
// once and is then closed; a stopped playback reports nil.
type Playback struct {
	ID   uint64
	Path string
	Done <-chan error
}

type process struct {
	id     uint64
	path   string
	cancel context.CancelFunc
	exited chan struct{}
}

// Player runs one external player process at a time.
type Player struct {
	mu      sync.Mutex
	command []string
	logger  logrus.FieldLogger
	seq     uint64
	cur     *process
}

// NewPlayer returns a Player that runs command with the file path appended.
func NewPlayer(command []string, logger logrus.FieldLogger) *Player {
	return &Player{
		command: append([]string(nil), command...),
		logger:  logger,
	}
}

// Command returns the configured player command line.
func (p *Player) Command() string {
	return strings.Join(p.command, " ")
}

// Play stops any running playback and starts path.
func (p *Player) Play(ctx context.Context, path string) (Playback, error) {
	if strings.TrimSpace(path) == "" {
		return Playback{}, ErrNoAudio
	}
	if len(p.command) == 0 {
		return Playback{}, ErrNoPlayer
	}
	if _, err := os.Stat(path); err != nil {
		return Playback{}, fmt.Errorf("failed to open audio file: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	args := append(append([]string(nil), p.command[1:]...), path)
	cmd := exec.CommandContext(runCtx, p.command[0], args...)
	if err := cmd.Start(); err != nil {
		cancel()
		return Playback{}, fmt.Errorf("failed to start audio player: %w", err)
	}

	p.seq++
	proc := &process{id: p.seq, path: path, cancel: cancel, exited: make(chan struct{})}
	p.cur = proc
	done := make(chan error, 1)
	p.logger.WithFields(logrus.Fields{"playback": proc.id, "path": path}).Debug("audio started")

	go func() {
		err := cmd.Wait()
		stopped := runCtx.Err() != nil
		cancel()
		close(proc.exited)

		p.mu.Lock()
		if p.cur == proc {
			p.cur = nil
		}
		p.mu.Unlock()

		if stopped {
			err = nil
		} else if err != nil {
			err = fmt.Errorf("audio player failed: %w", err)
		}
		p.logger.WithFields(logrus.Fields{"playback": proc.id, "stopped": stopped}).Debug("audio finished")
		done <- err
		close(done)
	}()

	return Playback{ID: proc.id, Path: path, Done: done}, nil
}

// Stop terminates the running playback, if any, and waits for it to exit.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.cur == nil {
		return
	}
	proc := p.cur
	p.cur = nil
	proc.cancel()
	<-proc.exited
}

// Playing reports the ID of the running playback.
func (p *Player) Playing() (uint64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return 0, false
	}
	return p.cur.id, true
}
