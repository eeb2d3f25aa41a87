// internal/intake/steps.go
package intake

const (
	StepPracticeInfo = 1
	StepProvider     = 2
	StepPayers       = 3
	StepDocuments    = 4
	StepPractice     = 5
	StepReview       = 6

	FirstStep = StepPracticeInfo
	LastStep  = StepReview
)

var stepNames = map[int]string{
	StepPracticeInfo: "Basic Info",
	StepProvider:     "Provider",
	StepPayers:       "Payers",
	StepDocuments:    "Documents",
	StepPractice:     "Practice",
	StepReview:       "Review",
}

// Navigator tracks the wizard position. Transitions clamp at the bounds and
// never reject based on field completeness; required-field enforcement lives
// in the rendering layer.
type Navigator struct {
	current int
}

func NewNavigator() *Navigator {
	return &Navigator{current: FirstStep}
}

func (n *Navigator) Current() int {
	return n.current
}

func (n *Navigator) Name() string {
	return stepNames[n.current]
}

// Next advances one step, clamped at the review step.
func (n *Navigator) Next() int {
	if n.current < LastStep {
		n.current++
	}
	return n.current
}

// Prev goes back one step, clamped at the first step.
func (n *Navigator) Prev() int {
	if n.current > FirstStep {
		n.current--
	}
	return n.current
}

// CanSubmit reports whether the terminal action is available: submission is
// only offered on the review step.
func (n *Navigator) CanSubmit() bool {
	return n.current == LastStep
}

// Goto restores a saved position, clamping out-of-range values. Deep-linking
// to an arbitrary step is not part of the wizard; this exists so a resumed
// session lands on a valid step.
func (n *Navigator) Goto(step int) int {
	if step < FirstStep {
		step = FirstStep
	}
	if step > LastStep {
		step = LastStep
	}
	n.current = step
	return n.current
}
