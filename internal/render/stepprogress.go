package render

// StepState is the display state of one step in a stepper.
type StepState string

const (
	StepComplete StepState = "complete"
	StepCurrent  StepState = "current"
	StepUpcoming StepState = "upcoming"
)

// Step is one labeled entry in a step progress indicator.
type Step struct {
	Label string    `json:"label"`
	State StepState `json:"state"`
}

// StepProgress builds the stepper model for a linear sequence: everything
// before the current index is complete, the current index is current, the
// rest upcoming. A current index at or past len(labels) marks all steps
// complete, and Percent reflects completed steps only.
func StepProgress(labels []string, current int) ([]Step, int) {
	steps := make([]Step, len(labels))
	completed := 0
	for i, label := range labels {
		switch {
		case i < current:
			steps[i] = Step{Label: label, State: StepComplete}
			completed++
		case i == current:
			steps[i] = Step{Label: label, State: StepCurrent}
		default:
			steps[i] = Step{Label: label, State: StepUpcoming}
		}
	}
	if len(labels) == 0 {
		return steps, 0
	}
	return steps, 100 * completed / len(labels)
}
