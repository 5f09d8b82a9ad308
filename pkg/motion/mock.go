package motion

import (
	"context"
	"sync"
	"time"
)

// Mock implements Mover for testing choreography without a robot.
type Mock struct {
	// ConnectOK controls what Connect returns. Defaults to true.
	ConnectOK bool

	// MoveJointFunc, when set, is invoked from MoveJoint after recording.
	MoveJointFunc func(joint string, angle, speed float64)

	mu        sync.Mutex
	connected bool
	calls     []MockCall
}

// MockCall records one issued command.
type MockCall struct {
	Method  string
	Joint   string
	Joints  []string
	Angles  []float64
	Angle   float64
	Speed   float64
	Posture string
}

// NewMock creates a mock whose Connect succeeds.
func NewMock() *Mock {
	return &Mock{ConnectOK: true}
}

func (m *Mock) Connect(ctx context.Context) bool {
	m.record(MockCall{Method: "Connect"})
	m.mu.Lock()
	m.connected = m.ConnectOK
	m.mu.Unlock()
	return m.ConnectOK
}

func (m *Mock) Disconnect(ctx context.Context) {
	m.record(MockCall{Method: "Disconnect"})
	m.mu.Lock()
	m.connected = false
	m.mu.Unlock()
}

func (m *Mock) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *Mock) MoveJoint(ctx context.Context, joint string, angle, speed float64) {
	m.record(MockCall{Method: "MoveJoint", Joint: joint, Angle: angle, Speed: speed})
	if m.MoveJointFunc != nil {
		m.MoveJointFunc(joint, angle, speed)
	}
}

func (m *Mock) MoveJoints(ctx context.Context, joints []string, angles []float64, speed float64) {
	m.record(MockCall{
		Method: "MoveJoints",
		Joints: append([]string(nil), joints...),
		Angles: append([]float64(nil), angles...),
		Speed:  speed,
	})
}

func (m *Mock) GoToPosture(ctx context.Context, posture string, speed float64) {
	m.record(MockCall{Method: "GoToPosture", Posture: posture, Speed: speed})
}

func (m *Mock) WaitForMovement(ctx context.Context, timeout time.Duration) {
	m.record(MockCall{Method: "WaitForMovement"})
}

// Calls returns all recorded commands in order.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// CallCount returns how many times method was invoked.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Reset clears recorded commands.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *Mock) record(c MockCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

// Verify Mock implements Mover at compile time.
var _ Mover = (*Mock)(nil)
