package comparison

import "PostureRefine/internal/entity"

// Layer is one entry of the composed comparison frame, bottom to top. Source
// is either an opaque photo URL or an inline SVG overlay document. ClipInset
// is a CSS clip-path value, empty for unclipped layers.
type Layer struct {
	Kind      string  `json:"kind"`
	Source    string  `json:"source"`
	ClipInset string  `json:"clipInset,omitempty"`
	Opacity   float64 `json:"opacity"`
	Ghost     bool    `json:"ghost,omitempty"`
}

const (
	LayerPhoto   = "photo"
	LayerOverlay = "overlay"
)

type Frame struct {
	ActiveView     entity.ActiveView `json:"activeView"`
	RevealPosition float64           `json:"revealPosition"`
	CanToggle      bool              `json:"canToggle"`
	Layers         []Layer           `json:"layers"`
}

type UpdateStateRequest struct {
	RevealPosition *float64 `json:"revealPosition" validate:"omitempty,min=0,max=100"`
	ActiveView     *string  `json:"activeView" validate:"omitempty,oneof=A B"`
}

type StateResponse struct {
	Data entity.ComparisonState `json:"data"`
}

type FrameResponse struct {
	Data Frame `json:"data"`
}
