package entity

// Landmark coordinates are normalized to a 1000x1000 virtual canvas and are
// always relative to the un-transformed source image, never to screen pixels.
const (
	CoordinateMax  = 1000.0
	SpinePathCount = 7
)

type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point2D) InRange() bool {
	return p.X >= 0 && p.X <= CoordinateMax && p.Y >= 0 && p.Y <= CoordinateMax
}

type PostureLandmarks struct {
	Head      *Point2D  `json:"head"`
	Ear       *Point2D  `json:"ear"`
	Shoulder  *Point2D  `json:"shoulder"`
	SpinePath []Point2D `json:"spinePath"`
	Hip       *Point2D  `json:"hip"`
	Knee      *Point2D  `json:"knee"`
	Ankle     *Point2D  `json:"ankle"`
	Heel      *Point2D  `json:"heel"`
}

// Complete reports whether all eight fields are present. Partial sets are
// treated as "no overlay" by the renderer.
func (l *PostureLandmarks) Complete() bool {
	if l == nil {
		return false
	}
	if l.Head == nil || l.Ear == nil || l.Shoulder == nil || l.Hip == nil ||
		l.Knee == nil || l.Ankle == nil || l.Heel == nil {
		return false
	}
	return len(l.SpinePath) == SpinePathCount
}

type ViewType string

const (
	ViewFront     ViewType = "front"
	ViewBack      ViewType = "back"
	ViewSide      ViewType = "side"
	ViewExtension ViewType = "extension"
	ViewFlexion   ViewType = "flexion"
)

var ViewTypeMap = map[ViewType]bool{
	ViewFront:     true,
	ViewBack:      true,
	ViewSide:      true,
	ViewExtension: true,
	ViewFlexion:   true,
}

func (v ViewType) Valid() bool {
	return ViewTypeMap[v]
}

type PostureStatus string

const (
	StatusImproved       PostureStatus = "improved"
	StatusSame           PostureStatus = "same"
	StatusNeedsAttention PostureStatus = "needs-attention"
)

func (s PostureStatus) Valid() bool {
	return s == StatusImproved || s == StatusSame || s == StatusNeedsAttention
}

// PosturePoint is one scored postural dimension. Status is trusted as
// returned by the model and never recomputed locally.
type PosturePoint struct {
	Label       string        `json:"label"`
	BeforeScore float64       `json:"beforeScore"`
	AfterScore  float64       `json:"afterScore"`
	Description string        `json:"description"`
	Status      PostureStatus `json:"status"`
}

type AnalysisViewResult struct {
	Type            ViewType          `json:"type"`
	BeforeLandmarks *PostureLandmarks `json:"beforeLandmarks"`
	AfterLandmarks  *PostureLandmarks `json:"afterLandmarks"`
}

type DetailedScores struct {
	StraightNeck   PosturePoint `json:"straightNeck"`
	RolledShoulder PosturePoint `json:"rolledShoulder"`
	Kyphosis       PosturePoint `json:"kyphosis"`
	Swayback       PosturePoint `json:"swayback"`
	OLegs          PosturePoint `json:"oLegs"`
}

// AnalysisResults is constructed once per successful analysis call, immutable
// afterwards, and discarded when the session resets.
type AnalysisResults struct {
	ViewA              AnalysisViewResult  `json:"viewA"`
	ViewB              *AnalysisViewResult `json:"viewB,omitempty"`
	OverallBeforeScore float64             `json:"overallBeforeScore"`
	OverallAfterScore  float64             `json:"overallAfterScore"`
	DetailedScores     DetailedScores      `json:"detailedScores"`
	Summary            string              `json:"summary"`
}
