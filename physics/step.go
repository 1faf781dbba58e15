package physics

// DefaultMaxDelta bounds a single frame delta.
const DefaultMaxDelta = 0.1

// FixedStep is the integration step used by Stepper.
const FixedStep = 1.0 / 60.0

// ClampDelta caps dt to max and maps negative deltas to zero.
func ClampDelta(dt, max float32) float32 {
	if dt < 0 {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}

// Stepper turns variable frame deltas into a whole number of fixed steps.
// Leftover time carries over to the next frame.
type Stepper struct {
	Step        float32
	MaxSubsteps int

	accumulator float32
}

func NewStepper() *Stepper {
	return &Stepper{Step: FixedStep, MaxSubsteps: 8}
}

// Advance adds dt to the accumulator and returns how many fixed steps to run
// now. When more than MaxSubsteps are due the excess time is dropped.
func (s *Stepper) Advance(dt float32) int {
	if s.Step <= 0 {
		return 0
	}
	s.accumulator += dt
	n := 0
	for s.accumulator >= s.Step {
		s.accumulator -= s.Step
		n++
		if s.MaxSubsteps > 0 && n >= s.MaxSubsteps {
			s.accumulator = 0
			break
		}
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator.
func (s *Stepper) Alpha() float32 {
	if s.Step <= 0 {
		return 0
	}
	return s.accumulator / s.Step
}
