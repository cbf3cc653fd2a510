package entity

import "fmt"

// MinScale is the floor for the photo zoom multiplier. Scale never reaches
// zero or goes negative.
const MinScale = 0.1

type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PhotoData is the mutable per-slot photo state. URL is an opaque encoded
// image reference; empty string means "not yet uploaded". The transform is
// mutated only by the alignment editor and replayed verbatim by the overlay
// renderer: scale, then translate, then horizontal flip, origin at the image
// center.
type PhotoData struct {
	ID        string  `json:"id"`
	URL       string  `json:"url"`
	Scale     float64 `json:"scale"`
	Offset    Offset  `json:"offset"`
	IsFlipped bool    `json:"isFlipped"`
}

func NewPhotoData(id string) PhotoData {
	return PhotoData{
		ID:    id,
		Scale: 1,
	}
}

func (p *PhotoData) Reset() {
	p.Scale = 1
	p.Offset = Offset{}
	p.IsFlipped = false
}

func (p *PhotoData) Zoom(delta float64) {
	p.Scale += delta
	if p.Scale < MinScale {
		p.Scale = MinScale
	}
}

func (p *PhotoData) Flip() {
	p.IsFlipped = !p.IsFlipped
}

func (p *PhotoData) Pan(dx, dy float64) {
	p.Offset.X += dx
	p.Offset.Y += dy
}

func (p *PhotoData) Uploaded() bool {
	return p.URL != ""
}

type PhotoPhase string

const (
	PhaseBefore PhotoPhase = "before"
	PhaseAfter  PhotoPhase = "after"
)

// SlotKey builds the upload-slot name for a view index (0-based) and phase,
// e.g. "v1-before".
func SlotKey(viewIndex int, phase PhotoPhase) string {
	return fmt.Sprintf("v%d-%s", viewIndex+1, phase)
}

var validSlots = map[string]bool{
	SlotKey(0, PhaseBefore): true,
	SlotKey(0, PhaseAfter):  true,
	SlotKey(1, PhaseBefore): true,
	SlotKey(1, PhaseAfter):  true,
}

func ValidSlot(slot string) bool {
	return validSlots[slot]
}
