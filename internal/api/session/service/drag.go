package sessionService

// DragEditor is the per-gesture state machine (idle -> dragging -> idle).
// It keeps the last sampled pointer position outside the persisted photo
// state and hands out per-sample deltas; only those deltas ever reach the
// owned PhotoData.
type DragEditor struct {
	dragging bool
	lastX    float64
	lastY    float64
}

func NewDragEditor() *DragEditor {
	return &DragEditor{}
}

func (d *DragEditor) Begin(x, y float64) {
	d.dragging = true
	d.lastX = x
	d.lastY = y
}

// Sample returns the pointer delta since the previous sample and advances the
// reference point. Samples outside an active drag are ignored.
func (d *DragEditor) Sample(x, y float64) (dx, dy float64, ok bool) {
	if !d.dragging {
		return 0, 0, false
	}

	dx = x - d.lastX
	dy = y - d.lastY
	d.lastX = x
	d.lastY = y
	return dx, dy, true
}

func (d *DragEditor) End() {
	d.dragging = false
}

func (d *DragEditor) Dragging() bool {
	return d.dragging
}
