package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/content-toolkit/internal/funnel"
	"github.com/jonathan/content-toolkit/internal/types"
)

func sampleItems() []types.ContentItem {
	return []types.ContentItem{
		{ID: "1", Title: "Ten Mistakes", Type: "Blog Post", Stage: types.StageDiscover},
		{ID: "2", Title: "Studio Tour", Type: "Video", Stage: types.StageDiscover},
		{ID: "3", Title: "Client Win", Type: "Case Study"},
	}
}

func TestPrintDashboard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	steps := make([]types.StepStatus, len(types.Steps))
	for i, s := range types.Steps {
		steps[i] = types.StepStatus{Step: s, Completed: i < 3}
	}
	p.PrintDashboard(types.UserProfile{Name: "Ada", Company: "Engines"}, types.ComputeMetrics(3), steps)
	output := buf.String()

	assert.Contains(t, output, "TOOLKIT PROGRESS")
	assert.Contains(t, output, "Ada")
	assert.Contains(t, output, "33%")
	assert.Contains(t, output, "3 of 9 steps complete, 6 remaining")
	assert.Contains(t, output, "[x] 1. Define Your Ideal Client")
	assert.Contains(t, output, "[ ] 9. Launch and Review")
}

func TestPrintFunnel(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFunnel(funnel.StageViews(sampleItems()))
	output := buf.String()

	assert.Contains(t, output, "DISCOVER")
	assert.Contains(t, output, "Ten Mistakes (Blog Post)")
	assert.Contains(t, output, "2/2 pieces, covered")
	assert.Contains(t, output, "AUTHORITY")
	assert.Contains(t, output, "0/2 pieces, 2 missing")
	assert.NotContains(t, output, "Client Win", "unassigned items are not on stage cards")
}

func TestPrintGaps(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGaps(funnel.Analyze(sampleItems()))
	output := buf.String()

	assert.Contains(t, output, "CONTENT GAPS")
	assert.Contains(t, output, "discover")
	assert.Contains(t, output, "Total missing: 8")
}

func TestPrintLibrary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLibrary("LIBRARY", sampleItems())
	output := buf.String()
	assert.Contains(t, output, "Client Win")
	assert.Contains(t, output, "Case Study · unassigned")

	buf.Reset()
	p.PrintLibrary("UNASSIGNED", nil)
	assert.Contains(t, buf.String(), "No content items")
}

func TestPrintWarning(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintWarning("changes were not saved")
	assert.Contains(t, buf.String(), "warning: changes were not saved")
}
