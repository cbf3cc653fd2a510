package session

import "PostureRefine/internal/entity"

type CreateSessionRequest struct {
	Views []string `json:"views" validate:"required,min=1,max=2,dive,oneof=front back side extension flexion"`
}

type AdvanceStepRequest struct {
	Step string `json:"step" validate:"required,oneof=type-select upload align analyze"`
}

type TransformRequest struct {
	Op    string  `json:"op" validate:"required,oneof=zoom flip reset"`
	Delta float64 `json:"delta"`
}

type SessionResponse struct {
	Data *entity.AnalysisSession `json:"data"`
}

type PhotoResponse struct {
	Data entity.PhotoData `json:"data"`
}

type UploadResponse struct {
	Slot   string `json:"slot"`
	URL    string `json:"url"`
	Photos int    `json:"photos_uploaded"`
}

// DragMessage is one pointer sample on the alignment websocket. Coordinates
// are client pixels; the editor only ever consumes deltas between samples.
type DragMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

const (
	DragStart = "start"
	DragMove  = "move"
	DragEnd   = "end"
)
