package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Player turns an audio buffer into sound. Play blocks until playback ends.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// CmdPlayer pipes audio into an external player process per utterance. The
// default command reads MP3 from stdin.
type CmdPlayer struct {
	command string
	args    []string
}

// NewCmdPlayer creates a player backed by ffplay.
func NewCmdPlayer() *CmdPlayer {
	return &CmdPlayer{
		command: "ffplay",
		args:    []string{"-autoexit", "-nodisp", "-loglevel", "quiet", "-"},
	}
}

// NewCmdPlayerWith creates a player running the given command. The command
// must consume audio from stdin and exit when the stream ends.
func NewCmdPlayerWith(command string, args ...string) *CmdPlayer {
	return &CmdPlayer{command: command, args: args}
}

// Play runs the player process and waits for it to finish.
func (p *CmdPlayer) Play(ctx context.Context, audio []byte) error {
	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Stdin = bytes.NewReader(audio)
	if err := cmd.Run(); err != nil {
		return WrapError("player", fmt.Errorf("%s: %w", p.command, err))
	}
	return nil
}

// PlayerFunc adapts a function to the Player interface.
type PlayerFunc func(ctx context.Context, audio []byte) error

// Play calls f.
func (f PlayerFunc) Play(ctx context.Context, audio []byte) error {
	return f(ctx, audio)
}
