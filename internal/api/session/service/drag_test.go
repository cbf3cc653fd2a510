package sessionService

import "testing"

func TestDragEditorLifecycle(t *testing.T) {
	editor := NewDragEditor()

	if editor.Dragging() {
		t.Error("Expected a fresh editor to be idle")
	}

	if _, _, ok := editor.Sample(10, 10); ok {
		t.Error("Expected samples outside a drag to be ignored")
	}

	editor.Begin(100, 100)
	if !editor.Dragging() {
		t.Error("Expected editor to be dragging after Begin")
	}

	dx, dy, ok := editor.Sample(110, 95)
	if !ok || dx != 10 || dy != -5 {
		t.Errorf("Expected delta (10,-5), got (%v,%v) ok=%v", dx, dy, ok)
	}

	// Each sample is measured against the previous one, not against the
	// drag origin.
	dx, dy, ok = editor.Sample(110, 95)
	if !ok || dx != 0 || dy != 0 {
		t.Errorf("Expected zero delta for a repeated position, got (%v,%v)", dx, dy)
	}

	editor.End()
	if editor.Dragging() {
		t.Error("Expected editor to be idle after End")
	}
	if _, _, ok := editor.Sample(120, 120); ok {
		t.Error("Expected samples after End to be ignored")
	}
}

func TestDragEditorAccumulationIsPathIndependent(t *testing.T) {
	straight := NewDragEditor()
	straight.Begin(0, 0)
	sx, sy, _ := straight.Sample(30, 40)

	zigzag := NewDragEditor()
	zigzag.Begin(0, 0)
	var zx, zy float64
	for _, pos := range [][2]float64{{50, -20}, {-10, 70}, {30, 40}} {
		dx, dy, _ := zigzag.Sample(pos[0], pos[1])
		zx += dx
		zy += dy
	}

	if sx != zx || sy != zy {
		t.Errorf("Expected identical totals, straight (%v,%v) vs zigzag (%v,%v)", sx, sy, zx, zy)
	}
}

func TestDragEditorRestartDoesNotJump(t *testing.T) {
	editor := NewDragEditor()

	editor.Begin(0, 0)
	editor.Sample(100, 100)
	editor.End()

	// A new gesture far away must not produce a delta from the old one.
	editor.Begin(500, 500)
	dx, dy, ok := editor.Sample(505, 500)
	if !ok || dx != 5 || dy != 0 {
		t.Errorf("Expected delta (5,0) after restart, got (%v,%v)", dx, dy)
	}
}
