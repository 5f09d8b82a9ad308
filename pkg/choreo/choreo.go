// Package choreo maps emotions to physical movement sequences.
//
// Each registered emotion has a Move that drives the robot through a short
// sequence of gestures. Dispatch is best effort: a missing handler, a robot
// that cannot be reached, or a panicking sequence all report false and the
// conversation continues without body language.
package choreo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ucroboticslab/go-pepper/pkg/emotion"
	"github.com/ucroboticslab/go-pepper/pkg/motion"
)

// Move is a movement sequence executed on a connected robot.
type Move func(ctx context.Context, robot motion.Mover)

// Dispatcher routes emotion tags to their movement sequences on a robot it
// owns. The registry is explicit; emotions without an entry simply produce
// no movement.
type Dispatcher struct {
	robot    motion.Mover
	handlers map[emotion.Tag]Move
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithMove registers or replaces the sequence for a tag.
func WithMove(tag emotion.Tag, move Move) DispatcherOption {
	return func(d *Dispatcher) { d.handlers[tag] = move }
}

// WithDispatcherLogger sets the structured logger.
func WithDispatcherLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l.With("component", "choreo") }
}

// NewDispatcher creates a dispatcher with the built-in happy and sad
// sequences registered.
func NewDispatcher(robot motion.Mover, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		robot: robot,
		handlers: map[emotion.Tag]Move{
			emotion.Happy: HappyMove,
			emotion.Sad:   SadMove,
		},
		logger: slog.Default().With("component", "choreo"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handles reports whether a sequence is registered for tag.
func (d *Dispatcher) Handles(tag emotion.Tag) bool {
	_, ok := d.handlers[emotion.Tag(strings.ToLower(string(tag)))]
	return ok
}

// Execute runs the sequence for tag, connecting to the robot first and
// always disconnecting afterwards. It reports whether the sequence ran to
// completion.
func (d *Dispatcher) Execute(ctx context.Context, tag emotion.Tag) (ok bool) {
	tag = emotion.Tag(strings.ToLower(string(tag)))

	move, found := d.handlers[tag]
	if !found {
		d.logger.Debug("no movement for emotion", "emotion", string(tag))
		return false
	}

	if !d.robot.Connect(ctx) {
		d.logger.Warn("robot unreachable, skipping movement", "emotion", string(tag))
		return false
	}
	defer d.robot.Disconnect(ctx)

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("movement panicked", "emotion", string(tag), "panic", r)
			ok = false
		}
	}()

	move(ctx, d.robot)
	d.logger.Debug("movement complete", "emotion", string(tag))
	return true
}
