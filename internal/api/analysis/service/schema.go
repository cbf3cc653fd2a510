package analysisService

import (
	"github.com/google/generative-ai-go/genai"
)

// responseSchema is the authoritative output shape the model must produce.
// It mirrors the data model exactly: schema-constrained generation is the
// first line of enforcement, the runtime validation in parse.go the second.
func responseSchema(dualView bool) *genai.Schema {
	pointSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"x": {Type: genai.TypeNumber},
			"y": {Type: genai.TypeNumber},
		},
		Required: []string{"x", "y"},
	}

	landmarkSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"head":     pointSchema,
			"ear":      pointSchema,
			"shoulder": pointSchema,
			"spinePath": {
				Type:        genai.TypeArray,
				Items:       pointSchema,
				Description: "Exactly 7 points tracing the spine curve from cervical to sacral, in order",
			},
			"hip":   pointSchema,
			"knee":  pointSchema,
			"ankle": pointSchema,
			"heel":  pointSchema,
		},
		Required: []string{"head", "ear", "shoulder", "spinePath", "hip", "knee", "ankle", "heel"},
	}

	viewSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"beforeLandmarks": landmarkSchema,
			"afterLandmarks":  landmarkSchema,
		},
		Required: []string{"beforeLandmarks", "afterLandmarks"},
	}

	scoreItemSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"label":       {Type: genai.TypeString},
			"beforeScore": {Type: genai.TypeNumber},
			"afterScore":  {Type: genai.TypeNumber},
			"description": {Type: genai.TypeString},
			"status": {
				Type: genai.TypeString,
				Enum: []string{"improved", "same", "needs-attention"},
			},
		},
		Required: []string{"label", "beforeScore", "afterScore", "description", "status"},
	}

	properties := map[string]*genai.Schema{
		"viewA":              viewSchema,
		"overallBeforeScore": {Type: genai.TypeNumber},
		"overallAfterScore":  {Type: genai.TypeNumber},
		"detailedScores": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"straightNeck":   scoreItemSchema,
				"rolledShoulder": scoreItemSchema,
				"kyphosis":       scoreItemSchema,
				"swayback":       scoreItemSchema,
				"oLegs":          scoreItemSchema,
			},
			Required: []string{"straightNeck", "rolledShoulder", "kyphosis", "swayback", "oLegs"},
		},
		"summary": {Type: genai.TypeString},
	}

	required := []string{"viewA", "overallBeforeScore", "overallAfterScore", "detailedScores", "summary"}

	if dualView {
		properties["viewB"] = viewSchema
		required = append(required, "viewB")
	}

	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   required,
	}
}
