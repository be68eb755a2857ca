package types

// StepID identifies one of the nine framework steps (1-9).
type StepID int

// StepCount is the fixed number of framework steps.
const StepCount = 9

// Step is the display catalog entry for a framework step.
type Step struct {
	ID    StepID `json:"id"`
	Title string `json:"title"`
}

// Steps is the display catalog of framework steps.
var Steps = [StepCount]Step{
	{ID: 1, Title: "Define Your Ideal Client"},
	{ID: 2, Title: "Clarify Your Core Problem"},
	{ID: 3, Title: "Craft Your Signature Message"},
	{ID: 4, Title: "Map the Customer Journey"},
	{ID: 5, Title: "Audit Existing Content"},
	{ID: 6, Title: "Build Your Content Library"},
	{ID: 7, Title: "Assign Content to Funnel Stages"},
	{ID: 8, Title: "Close the Content Gaps"},
	{ID: 9, Title: "Launch and Review"},
}

// Valid reports whether id is within 1-9.
func (id StepID) Valid() bool {
	return id >= 1 && id <= StepCount
}

// StepIDs returns 1..9.
func StepIDs() []StepID {
	ids := make([]StepID, StepCount)
	for i := range ids {
		ids[i] = StepID(i + 1)
	}
	return ids
}

// StepStatus pairs a catalog step with its completion flag.
type StepStatus struct {
	Step
	Completed bool `json:"completed"`
}

// Metrics is the dashboard summary derived from step progress.
type Metrics struct {
	CompletedStepCount int `json:"completed_step_count"`
	ProgressPercentage int `json:"progress_percentage"`
	RemainingSteps     int `json:"remaining_steps"`
	TotalSteps         int `json:"total_steps"`
}

// ComputeMetrics derives the dashboard metrics from a completed-step count.
// The percentage is completed/9*100 rounded half up.
func ComputeMetrics(completed int) Metrics {
	completed = max(0, min(completed, StepCount))
	return Metrics{
		CompletedStepCount: completed,
		ProgressPercentage: (completed*200 + StepCount) / (2 * StepCount),
		RemainingSteps:     StepCount - completed,
		TotalSteps:         StepCount,
	}
}
