package scan

import (
	"encoding/json"
	"fmt"

	"github.com/lifescan-ai/go-lifescan/pkg/hud"
)

// Result is a parsed scan service response. Every field is optional on the
// wire; absent or malformed fields stay at their zero value and the render
// step applies display defaults.
type Result struct {
	// Summary is the service's summary text ("summary", falling back to
	// the "message" alias).
	Summary string

	// HealthScore ("healthScore", falling back to "score") and
	// CognitiveScore are nil when not reported.
	HealthScore    *float64
	CognitiveScore *float64

	// Confidence is a fraction in 0-1, nil when not reported.
	Confidence *float64

	// Highlights and Recommendations keep the service's ordering.
	Highlights      []string
	Recommendations []string

	// Regions are detected-region descriptors; their shape is up to the
	// service, unknown fields are ignored.
	Regions []hud.Region

	// Mode and Engine come from the response "meta" block.
	Mode   string
	Engine string
}

// wireRegion tolerates both flat descriptors and the object/rectangle
// shape some vision backends produce.
type wireRegion struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Note      string  `json:"note"`
	Object    string  `json:"object"`
	Rectangle *struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		W float64 `json:"w"`
		H float64 `json:"h"`
	} `json:"rectangle"`
}

// ParseResult decodes a scan service response body.
// Only an unparseable document is an error; individual fields of the wrong
// shape are dropped so a partial response still renders.
func ParseResult(data []byte) (*Result, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("scan: parse response: %w", err)
	}

	r := &Result{}

	if s, ok := decodeString(fields["summary"]); ok {
		r.Summary = s
	} else if s, ok := decodeString(fields["message"]); ok {
		r.Summary = s
	}

	if n, ok := decodeNumber(fields["healthScore"]); ok {
		r.HealthScore = &n
	} else if n, ok := decodeNumber(fields["score"]); ok {
		r.HealthScore = &n
	}
	if n, ok := decodeNumber(fields["cognitiveScore"]); ok {
		r.CognitiveScore = &n
	}
	if n, ok := decodeNumber(fields["confidence"]); ok {
		r.Confidence = &n
	}

	r.Highlights = decodeStrings(fields["highlights"])
	r.Recommendations = decodeStrings(fields["recommendations"])
	r.Regions = decodeRegions(fields["regions"])

	var meta struct {
		Mode   string `json:"mode"`
		Engine string `json:"engine"`
	}
	if raw, ok := fields["meta"]; ok {
		if err := json.Unmarshal(raw, &meta); err == nil {
			r.Mode = meta.Mode
			r.Engine = meta.Engine
		}
	}

	return r, nil
}

func decodeString(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func decodeNumber(raw json.RawMessage) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

func decodeStrings(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	// Element-wise decode keeps the valid entries of a mixed list.
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		var s string
		if err := json.Unmarshal(e, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func decodeRegions(raw json.RawMessage) []hud.Region {
	if raw == nil {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	out := make([]hud.Region, 0, len(elems))
	for _, e := range elems {
		var wr wireRegion
		// Descriptors we cannot decode still occupy their position so
		// the region count matches the service's sequence.
		json.Unmarshal(e, &wr)
		region := hud.Region{
			X: wr.X, Y: wr.Y, W: wr.W, H: wr.H,
			Note:   wr.Note,
			Object: wr.Object,
		}
		if wr.Rectangle != nil {
			region.X = wr.Rectangle.X
			region.Y = wr.Rectangle.Y
			region.W = wr.Rectangle.W
			region.H = wr.Rectangle.H
		}
		out = append(out, region)
	}
	return out
}
