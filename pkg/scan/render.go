package scan

import (
	"fmt"
	"math"

	"github.com/lifescan-ai/go-lifescan/pkg/hud"
)

// DefaultSummary is shown when the service reports no summary text.
const DefaultSummary = "No summary available."

// Render maps a Result onto display fields. It is a pure function: all
// defaulting lives here so presenters never see missing values.
//
// Confidence resolves as round(confidence*100) when reported, 90 when only
// a health score exists, and 0 otherwise.
func Render(r *Result) hud.Report {
	report := hud.Report{
		Summary:         r.Summary,
		Highlights:      append([]string{}, r.Highlights...),
		Recommendations: append([]string{}, r.Recommendations...),
		Regions:         append([]hud.Region{}, r.Regions...),
	}

	if report.Summary == "" {
		report.Summary = DefaultSummary
	}

	switch {
	case r.Confidence != nil:
		report.ConfidencePct = int(math.Round(*r.Confidence * 100))
	case r.HealthScore != nil:
		report.ConfidencePct = 90
	default:
		report.ConfidencePct = 0
	}

	if r.HealthScore != nil {
		score := int(math.Round(*r.HealthScore))
		report.HealthScore = &score
	}
	if r.CognitiveScore != nil {
		score := int(math.Round(*r.CognitiveScore))
		report.CognitiveScore = &score
	}

	if len(report.Regions) > 0 {
		report.RegionNote = fmt.Sprintf(
			"%d region(s) detected — highlights drawn on preview.", len(report.Regions))
	}

	return report
}
