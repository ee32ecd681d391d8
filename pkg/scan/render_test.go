package scan

import (
	"testing"

	"github.com/lifescan-ai/go-lifescan/pkg/hud"
)

func floatPtr(f float64) *float64 { return &f }

func TestRenderConfidence(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   int
	}{
		{"reported fraction", Result{Confidence: floatPtr(0.42)}, 42},
		{"rounds half up", Result{Confidence: floatPtr(0.875)}, 88},
		{"score implies high confidence", Result{HealthScore: floatPtr(80)}, 90},
		{"confidence wins over score", Result{Confidence: floatPtr(0.5), HealthScore: floatPtr(80)}, 50},
		{"nothing reported", Result{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Render(&tt.result)
			if report.ConfidencePct != tt.want {
				t.Errorf("expected %d, got %d", tt.want, report.ConfidencePct)
			}
		})
	}
}

func TestRenderSummaryDefault(t *testing.T) {
	report := Render(&Result{})
	if report.Summary != DefaultSummary {
		t.Errorf("expected %q, got %q", DefaultSummary, report.Summary)
	}

	report = Render(&Result{Summary: "All clear."})
	if report.Summary != "All clear." {
		t.Errorf("expected reported summary, got %q", report.Summary)
	}
}

func TestRenderScores(t *testing.T) {
	report := Render(&Result{
		HealthScore:    floatPtr(81.6),
		CognitiveScore: floatPtr(73.2),
	})
	if report.HealthScore == nil || *report.HealthScore != 82 {
		t.Errorf("unexpected health score: %v", report.HealthScore)
	}
	if report.CognitiveScore == nil || *report.CognitiveScore != 73 {
		t.Errorf("unexpected cognitive score: %v", report.CognitiveScore)
	}

	report = Render(&Result{})
	if report.HealthScore != nil || report.CognitiveScore != nil {
		t.Error("expected absent scores to stay nil")
	}
}

func TestRenderRegionNote(t *testing.T) {
	report := Render(&Result{Regions: []hud.Region{
		{X: 0.1, Y: 0.1, W: 0.2, H: 0.2},
		{X: 0.5, Y: 0.5, W: 0.1, H: 0.1},
	}})
	want := "2 region(s) detected — highlights drawn on preview."
	if report.RegionNote != want {
		t.Errorf("expected %q, got %q", want, report.RegionNote)
	}

	report = Render(&Result{})
	if report.RegionNote != "" {
		t.Errorf("expected no note without regions, got %q", report.RegionNote)
	}
}

func TestRenderListsNeverNil(t *testing.T) {
	report := Render(&Result{})
	if report.Highlights == nil || report.Recommendations == nil || report.Regions == nil {
		t.Error("expected empty lists, not nil")
	}
}
