// Package motion is the motion-control boundary for the Pepper robot.
//
// The robot exposes a REST bridge; Conn wraps it with the semantics
// choreography needs: commands on a disconnected robot are silent no-ops
// and transport failures are logged, never propagated, so a dropped
// movement can never interrupt speech.
package motion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ucroboticslab/go-pepper/internal/httpc"
)

// Default movement parameters.
const (
	DefaultSpeed       = 0.5
	DefaultWaitTimeout = 2 * time.Second

	statusPollInterval = 100 * time.Millisecond
)

// Mover is the subset of robot control the choreography layer needs.
type Mover interface {
	Connect(ctx context.Context) bool
	Disconnect(ctx context.Context)
	Connected() bool
	MoveJoint(ctx context.Context, joint string, angle, speed float64)
	MoveJoints(ctx context.Context, joints []string, angles []float64, speed float64)
	GoToPosture(ctx context.Context, posture string, speed float64)
	WaitForMovement(ctx context.Context, timeout time.Duration)
}

// Conn is a connection to the robot's REST bridge.
type Conn struct {
	baseURL   string
	client    *http.Client
	logger    *slog.Logger
	connected bool
}

// Option configures a Conn.
type Option func(*Conn)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(conn *Conn) { conn.client = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(conn *Conn) { conn.logger = l.With("component", "motion") }
}

// NewConn creates a connection to the bridge at baseURL, e.g.
// "http://10.0.0.244:5000". The connection starts disconnected; call
// Connect before issuing movements.
func NewConn(baseURL string, opts ...Option) *Conn {
	c := &Conn{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpc.Client,
		logger:  slog.Default().With("component", "motion"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect probes the robot state endpoint and marks the connection live on
// success.
func (c *Conn) Connect(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/robot/state", nil)
	if err != nil {
		c.logger.Error("connect failed", "error", err)
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("connect failed", "url", c.baseURL, "error", err)
		return false
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("connect refused", "status", resp.StatusCode)
		return false
	}
	c.connected = true
	c.logger.Info("connected to robot", "url", c.baseURL)
	return true
}

// Disconnect sends the robot to its rest position and marks the connection
// closed.
func (c *Conn) Disconnect(ctx context.Context) {
	if !c.connected {
		return
	}
	c.post(ctx, "/robot/rest", nil)
	c.connected = false
	c.logger.Info("disconnected from robot")
}

// Connected reports whether Connect has succeeded.
func (c *Conn) Connected() bool {
	return c.connected
}

// MoveJoint moves one joint to an angle in radians.
func (c *Conn) MoveJoint(ctx context.Context, joint string, angle, speed float64) {
	if !c.connected {
		return
	}
	c.post(ctx, "/motion/joint", map[string]any{
		"joint": joint,
		"angle": angle,
		"speed": speed,
	})
}

// MoveJoints moves several joints simultaneously. Mismatched slice lengths
// drop the command.
func (c *Conn) MoveJoints(ctx context.Context, joints []string, angles []float64, speed float64) {
	if !c.connected {
		return
	}
	if len(joints) != len(angles) {
		c.logger.Warn("joint/angle length mismatch", "joints", len(joints), "angles", len(angles))
		return
	}
	c.post(ctx, "/motion/joints", map[string]any{
		"joints": joints,
		"angles": angles,
		"speed":  speed,
	})
}

// GoToPosture moves to a named posture such as "Stand".
func (c *Conn) GoToPosture(ctx context.Context, posture string, speed float64) {
	if !c.connected {
		return
	}
	c.post(ctx, "/motion/posture", map[string]any{
		"posture": posture,
		"speed":   speed,
	})
}

// WaitForMovement polls the motion status until the robot reports idle or
// the timeout elapses.
func (c *Conn) WaitForMovement(ctx context.Context, timeout time.Duration) {
	if !c.connected {
		return
	}
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		moving, err := c.isMoving(ctx)
		if err != nil {
			c.logger.Warn("movement status check failed", "error", err)
			return
		}
		if !moving {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(statusPollInterval):
		}
	}
}

func (c *Conn) isMoving(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/motion/status", nil)
	if err != nil {
		return false, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("motion: status HTTP %d", resp.StatusCode)
	}
	var status struct {
		IsMoving bool `json:"is_moving"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return false, err
	}
	return status.IsMoving, nil
}

// post sends a JSON command, logging failures instead of returning them.
func (c *Conn) post(ctx context.Context, path string, payload map[string]any) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			c.logger.Error("command marshal failed", "path", path, "error", err)
			return
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("command request failed", "path", path, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("command failed", "path", path, "error", err)
		return
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("command rejected", "path", path, "status", resp.StatusCode)
	}
}

// Verify Conn implements Mover at compile time.
var _ Mover = (*Conn)(nil)
