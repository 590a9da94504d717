package combat

import "github.com/samdwyer/monsterarena/internal/decision"

// Result is the kind of outcome an effect or action produced.
type Result int

const (
	// Success - the effect happened; Lines narrate it.
	Success Result = iota
	// Failed - the effect missed or could not apply.
	Failed
	// NeedsInput - a debug source is waiting for an answer; Lines hold the
	// narration produced before the pending draw.
	NeedsInput
)

// String returns a human-readable result name.
func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Failed:
		return "failed"
	case NeedsInput:
		return "needs_input"
	default:
		return "unknown"
	}
}

// Outcome is what executing an effect or action produced.
type Outcome struct {
	Result Result
	Lines  []string
	// Need and Label describe the pending draw of a NeedsInput outcome.
	Need  decision.Kind
	Label string
}

func succeeded(lines ...string) Outcome {
	kept := lines[:0:0]
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return Outcome{Result: Success, Lines: kept}
}

func failed() Outcome {
	return Outcome{Result: Failed}
}

func needs(src *decision.Source, label string, lines []string) Outcome {
	req, _ := src.Pending()
	return Outcome{Result: NeedsInput, Lines: lines, Need: req.Kind, Label: label}
}
