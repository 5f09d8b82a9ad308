package choreo

import (
	"context"

	"github.com/ucroboticslab/go-pepper/pkg/motion"
)

// SadMove is a subdued, melancholic sequence: head down, drooping
// shoulders, a slow lean and sway, back to standing.
func SadMove(ctx context.Context, robot motion.Mover) {
	robot.GoToPosture(ctx, "Stand", 0.5)
	robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)

	// Tilt head down.
	robot.MoveJoint(ctx, "HeadPitch", 0.3, 0.3)
	robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)

	// Lower shoulders and bring arms in.
	robot.MoveJoints(ctx,
		[]string{"RShoulderPitch", "LShoulderPitch", "RShoulderRoll", "LShoulderRoll"},
		[]float64{0.5, 0.5, -0.2, 0.2},
		0.4)
	robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)

	// Slight forward lean.
	robot.MoveJoint(ctx, "HipPitch", 0.2, 0.2)
	robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)

	// Slow, gentle sway.
	for i := 0; i < 2; i++ {
		robot.MoveJoint(ctx, "HipRoll", -0.05, 0.2)
		robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)

		robot.MoveJoint(ctx, "HipRoll", 0.05, 0.2)
		robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)
	}

	robot.GoToPosture(ctx, "Stand", 0.3)
	robot.WaitForMovement(ctx, motion.DefaultWaitTimeout)
}
