package choreo

import (
	"context"
	"testing"

	"github.com/ucroboticslab/go-pepper/pkg/emotion"
	"github.com/ucroboticslab/go-pepper/pkg/motion"
)

func TestExecuteHappy(t *testing.T) {
	robot := motion.NewMock()
	d := NewDispatcher(robot)

	if !d.Execute(context.Background(), emotion.Happy) {
		t.Fatal("Execute(happy) = false")
	}

	calls := robot.Calls()
	if calls[0].Method != "Connect" {
		t.Errorf("first call = %s, want Connect", calls[0].Method)
	}
	if calls[len(calls)-1].Method != "Disconnect" {
		t.Errorf("last call = %s, want Disconnect", calls[len(calls)-1].Method)
	}
	if robot.CallCount("Disconnect") != 1 {
		t.Errorf("Disconnect calls = %d, want exactly 1", robot.CallCount("Disconnect"))
	}

	// The celebratory arm raise is the sequence's first joint command.
	if robot.CallCount("MoveJoints") == 0 {
		t.Error("happy sequence issued no multi-joint command")
	}
}

func TestExecuteCaseInsensitive(t *testing.T) {
	robot := motion.NewMock()
	d := NewDispatcher(robot)

	if !d.Execute(context.Background(), emotion.Tag("HAPPY")) {
		t.Error("Execute(HAPPY) = false")
	}
}

func TestExecuteUnknownEmotion(t *testing.T) {
	robot := motion.NewMock()
	d := NewDispatcher(robot)

	if d.Execute(context.Background(), emotion.Neutral) {
		t.Error("Execute(neutral) = true, want false for unregistered tag")
	}
	if len(robot.Calls()) != 0 {
		t.Errorf("unregistered tag touched the robot: %v", robot.Calls())
	}
}

func TestExecuteRobotUnreachable(t *testing.T) {
	robot := motion.NewMock()
	robot.ConnectOK = false
	d := NewDispatcher(robot)

	if d.Execute(context.Background(), emotion.Sad) {
		t.Error("Execute(sad) = true with an unreachable robot")
	}
	if robot.CallCount("MoveJoint") != 0 {
		t.Error("movement commands issued without a connection")
	}
	if robot.CallCount("Disconnect") != 0 {
		t.Error("Disconnect called after a failed Connect")
	}
}

func TestExecutePanicRecovers(t *testing.T) {
	robot := motion.NewMock()
	d := NewDispatcher(robot, WithMove(emotion.Angry, func(ctx context.Context, robot motion.Mover) {
		panic("bad joint math")
	}))

	if d.Execute(context.Background(), emotion.Angry) {
		t.Error("Execute = true for a panicking sequence")
	}
	if robot.CallCount("Disconnect") != 1 {
		t.Errorf("Disconnect calls = %d, want 1 even after panic", robot.CallCount("Disconnect"))
	}
}

func TestHandles(t *testing.T) {
	d := NewDispatcher(motion.NewMock())

	if !d.Handles(emotion.Happy) || !d.Handles(emotion.Sad) {
		t.Error("built-in sequences not registered")
	}
	if d.Handles(emotion.Neutral) || d.Handles(emotion.Angry) {
		t.Error("Handles() = true for tags without sequences")
	}
}

func TestSadSequenceShape(t *testing.T) {
	robot := motion.NewMock()
	SadMove(context.Background(), robot)

	headDown := false
	for _, c := range robot.Calls() {
		if c.Method == "MoveJoint" && c.Joint == "HeadPitch" && c.Angle > 0 {
			headDown = true
		}
	}
	if !headDown {
		t.Error("sad sequence never lowered the head")
	}

	calls := robot.Calls()
	last := calls[len(calls)-2] // final command before the closing wait
	if last.Method != "GoToPosture" || last.Posture != "Stand" {
		t.Errorf("sequence did not end standing: %+v", last)
	}
}
