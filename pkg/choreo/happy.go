package choreo

import (
	"context"

	"github.com/ucroboticslab/go-pepper/pkg/motion"
)

// HappyMove is a celebratory, upbeat sequence: arms raised, a little
// bounce, a sway, back to standing.
func HappyMove(ctx context.Context, robot motion.Mover) {
	robot.GoToPosture(ctx, "Stand", 0.5)
	robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)

	// Raise arms up and slightly out.
	robot.MoveJoints(ctx,
		[]string{"RShoulderPitch", "LShoulderPitch", "RShoulderRoll", "LShoulderRoll"},
		[]float64{-1.0, -1.0, -0.5, 0.5},
		0.6)
	robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)

	// Bounce twice by bending and straightening the knees.
	for i := 0; i < 2; i++ {
		robot.MoveJoint(ctx, "RKneePitch", 0.3, 0.4)
		robot.MoveJoint(ctx, "LKneePitch", 0.3, 0.4)
		robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)

		robot.MoveJoint(ctx, "RKneePitch", 0.0, 0.4)
		robot.MoveJoint(ctx, "LKneePitch", 0.0, 0.4)
		robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)
	}

	// Gentle sway from side to side.
	for i := 0; i < 2; i++ {
		robot.MoveJoint(ctx, "HipRoll", -0.1, 0.3)
		robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)

		robot.MoveJoint(ctx, "HipRoll", 0.1, 0.3)
		robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)
	}

	robot.GoToPosture(ctx, "Stand", 0.5)
	robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)
}
