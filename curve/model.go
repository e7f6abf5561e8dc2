package curve

import "context"

// CurveType selects the basis matrix a curve blends with.
type CurveType int

const (
	CurveTypeCatmullRom CurveType = iota
	CurveTypeBSpline
	curveTypeMax
)

const (
	curveTypeCatmullRomName = "catmull_rom"
	curveTypeBSplineName    = "b_spline"
)

func (ct CurveType) String() string {
	switch ct {
	case CurveTypeCatmullRom:
		return curveTypeCatmullRomName
	case CurveTypeBSpline:
		return curveTypeBSplineName
	default:
		return "unknown"
	}
}

// Order selects which derivative of the segment polynomial is blended.
type Order int

const (
	OrderPosition Order = iota
	OrderTangent
	OrderNormal
	orderMax
)

// Anchor is a control point. Tangent is derived from the curve and only used for display.
type Anchor struct {
	Pos     []float64
	Tangent []float64
}

// AnchorConfig is one anchor of a stored configuration record.
type AnchorConfig struct {
	Pos []float64 `json:"Pos" yaml:"Pos"`
}

// Config is the stored form of a curve.
type Config struct {
	Type            string         `json:"Type,omitempty" yaml:"Type,omitempty"`
	SegmentDuration float64        `json:"SegmentDuration,omitempty" yaml:"SegmentDuration,omitempty"`
	Anchors         []AnchorConfig `json:"Anchors" yaml:"Anchors"`
}

// Storage keeps configuration records by key.
type Storage interface {
	Load(ctx context.Context, key string) (*Config, error)
	Save(ctx context.Context, key string, cfg *Config) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
