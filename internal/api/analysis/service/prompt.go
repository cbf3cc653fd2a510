package analysisService

import (
	"PostureRefine/internal/api/analysis"
	"PostureRefine/pkg/gemini"
	"fmt"
)

const systemInstruction = `You are a world-class physical therapist.
Compare and analyze the user's two photos (Before/After) for each requested view.
Treat the spine line (spinePath) as the most important signal.

Analysis guidelines:
1. spinePath: extract exactly 7 points tracing the spinal ridge from the lower cervical region down to the sacrum, in order.
2. Landmarks: every coordinate must be in the 0-1000 range, normalized to the un-transformed source image.
3. Comparison: use the same reference points for Before and After, and describe concretely where improvement is visible.
4. Scoring: beforeScore/afterScore for each item are relative to an ideal posture worth 100 points.

Reply with strict JSON matching the declared output schema. No prose, no markdown.`

// buildParts assembles the multimodal request: per view, a text part naming
// the view and declaring payload order, then the before image, then the
// after image.
func buildParts(views []analysis.ViewRequest) []gemini.Part {
	parts := make([]gemini.Part, 0, len(views)*3)

	for i, view := range views {
		label := "viewA"
		if i == 1 {
			label = "viewB"
		}
		parts = append(parts, gemini.Part{
			Text: fmt.Sprintf(
				"%s analysis angle: %s. The first image that follows is the BEFORE photo, the second is the AFTER photo. Score in detail with attention to changes in the back line.",
				label, view.Type,
			),
		})
		parts = append(parts, gemini.Part{Image: view.BeforeImage})
		parts = append(parts, gemini.Part{Image: view.AfterImage})
	}

	return parts
}
