package entity

import "testing"

func fullLandmarks() *PostureLandmarks {
	point := func(x, y float64) *Point2D { return &Point2D{X: x, Y: y} }

	spine := make([]Point2D, SpinePathCount)
	for i := range spine {
		spine[i] = Point2D{X: 500, Y: float64(220 + i*60)}
	}

	return &PostureLandmarks{
		Head:      point(500, 100),
		Ear:       point(510, 140),
		Shoulder:  point(505, 220),
		SpinePath: spine,
		Hip:       point(500, 550),
		Knee:      point(498, 750),
		Ankle:     point(495, 920),
		Heel:      point(480, 950),
	}
}

func TestLandmarksComplete(t *testing.T) {
	if !fullLandmarks().Complete() {
		t.Error("Expected a full landmark set to be complete")
	}

	var nilSet *PostureLandmarks
	if nilSet.Complete() {
		t.Error("Expected nil landmarks to be incomplete")
	}

	missingHip := fullLandmarks()
	missingHip.Hip = nil
	if missingHip.Complete() {
		t.Error("Expected a set with a missing point to be incomplete")
	}

	shortSpine := fullLandmarks()
	shortSpine.SpinePath = shortSpine.SpinePath[:5]
	if shortSpine.Complete() {
		t.Error("Expected a short spine path to make the set incomplete")
	}
}

func TestViewTypeValid(t *testing.T) {
	for _, v := range []ViewType{ViewFront, ViewBack, ViewSide, ViewExtension, ViewFlexion} {
		if !v.Valid() {
			t.Errorf("Expected view type %q to be valid", v)
		}
	}
	if ViewType("diagonal").Valid() {
		t.Error("Expected unknown view type to be invalid")
	}
}

func TestPostureStatusValid(t *testing.T) {
	for _, s := range []PostureStatus{StatusImproved, StatusSame, StatusNeedsAttention} {
		if !s.Valid() {
			t.Errorf("Expected status %q to be valid", s)
		}
	}
	if PostureStatus("worse").Valid() {
		t.Error("Expected unknown status to be invalid")
	}
}

func TestUploadsComplete(t *testing.T) {
	sess := NewAnalysisSession("s1", []ViewType{ViewSide, ViewFront})

	if sess.UploadsComplete() {
		t.Error("Expected fresh session to be incomplete")
	}

	for _, slot := range []string{"v1-before", "v1-after"} {
		p := sess.Photos[slot]
		p.URL = "data:image/jpeg;base64,AAAA"
		sess.Photos[slot] = p
	}

	if sess.UploadsComplete() {
		t.Error("Expected dual-view session with only one pair to be incomplete")
	}

	for _, slot := range []string{"v2-before", "v2-after"} {
		p := sess.Photos[slot]
		p.URL = "data:image/jpeg;base64,AAAA"
		sess.Photos[slot] = p
	}

	if !sess.UploadsComplete() {
		t.Error("Expected session with all four photos to be complete")
	}
}

func TestSlotForView(t *testing.T) {
	sess := NewAnalysisSession("s1", []ViewType{ViewSide, ViewFront})

	before, after := sess.SlotForView(ActiveViewA)
	if before != "v1-before" || after != "v1-after" {
		t.Errorf("View A resolved to %q/%q", before, after)
	}

	before, after = sess.SlotForView(ActiveViewB)
	if before != "v2-before" || after != "v2-after" {
		t.Errorf("View B resolved to %q/%q", before, after)
	}
}
