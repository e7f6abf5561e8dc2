package curve

import (
	"fmt"
	"math"

	"github.com/sgostarter/i/l"
)

// Curve is a piecewise cubic through (Catmull-Rom) or near (B-spline) an
// ordered list of anchors, parameterized by time with a uniform segment
// duration.
//
// Curve has no internal locking. Eval, EvalTangent and EvalNormal may run
// concurrently once loading is done, as long as no Load, LoadFile, Add or
// Clear runs at the same time.
type Curve struct {
	logger l.Wrapper

	curveType       CurveType
	segmentDuration float64 // assume constant duration for each segment
	anchors         []Anchor
}

func NewCurve(logger l.Wrapper) *Curve {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	return &Curve{
		logger:          logger.WithFields(l.StringField(l.ClsKey, "Curve")),
		curveType:       CurveTypeCatmullRom,
		segmentDuration: defaultSegmentDuration,
	}
}

// Load replaces the whole curve with cfg. On error the curve is left empty.
func (impl *Curve) Load(cfg *Config) error {
	impl.Clear()

	ct, segmentDuration, dim, err := cfg.resolve()
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err)).Error("load curve failed")

		return err
	}

	anchors := make([]Anchor, len(cfg.Anchors))
	for idx, anchor := range cfg.Anchors {
		anchors[idx] = Anchor{
			Pos:     append([]float64(nil), anchor.Pos...),
			Tangent: make([]float64, dim),
		}
	}

	impl.curveType = ct
	impl.segmentDuration = segmentDuration
	impl.anchors = anchors

	impl.computeAnchorTangents()
	impl.printAnchors()

	return nil
}

func (impl *Curve) LoadFile(file string) error {
	cfg, err := LoadConfigFile(file)
	if err != nil {
		impl.Clear()

		impl.logger.WithFields(l.ErrorField(err), l.StringField("file", file)).Error("read curve file failed")

		return err
	}

	return impl.Load(cfg)
}

func (impl *Curve) Clear() {
	impl.anchors = nil
	impl.curveType = CurveTypeCatmullRom
	impl.segmentDuration = defaultSegmentDuration
}

// Add appends an anchor and refreshes the anchor tangents.
func (impl *Curve) Add(pos []float64) error {
	if len(pos) == 0 {
		return fmt.Errorf("%w: anchor has no position", ErrConfig)
	}

	if dim := impl.Dim(); dim > 0 && len(pos) != dim {
		return fmt.Errorf("%w: anchor dimension mismatch, expecting %d got %d", ErrConfig, dim, len(pos))
	}

	impl.anchors = append(impl.anchors, Anchor{
		Pos:     append([]float64(nil), pos...),
		Tangent: make([]float64, len(pos)),
	})

	impl.computeAnchorTangents()

	return nil
}

func (impl *Curve) Type() CurveType {
	return impl.curveType
}

func (impl *Curve) SegmentDuration() float64 {
	return impl.segmentDuration
}

func (impl *Curve) NumAnchors() int {
	return len(impl.anchors)
}

func (impl *Curve) NumSegments() int {
	numAnchors := impl.NumAnchors()
	if numAnchors == 0 {
		return 0
	}

	switch impl.curveType {
	case CurveTypeCatmullRom:
		return numAnchors - 1
	case CurveTypeBSpline:
		return numAnchors + 1
	default:
		panic(fmt.Errorf("%w: unsupported curve type %d", ErrPrecondition, impl.curveType))
	}
}

func (impl *Curve) Dim() int {
	if len(impl.anchors) == 0 {
		return 0
	}

	return len(impl.anchors[0].Pos)
}

// MaxTime is the time needed to travel from the start to the end of the curve.
func (impl *Curve) MaxTime() float64 {
	return impl.segmentDuration * float64(impl.NumSegments())
}

func (impl *Curve) AnchorPos(i int) []float64 {
	return append([]float64(nil), impl.anchors[i].Pos...)
}

func (impl *Curve) AnchorTangent(i int) []float64 {
	return append([]float64(nil), impl.anchors[i].Tangent...)
}

// AnchorTime estimates when the curve passes anchor i. Anchors are assumed
// evenly spaced in time by index, which is only a rough guess.
func (impl *Curve) AnchorTime(i int) float64 {
	numAnchors := impl.NumAnchors()
	if numAnchors < 2 {
		return 0
	}

	return float64(i) / float64(numAnchors-1) * impl.MaxTime()
}

func (impl *Curve) Eval(t float64) []float64 {
	return impl.evalNew(t, OrderPosition)
}

// EvalTangent returns the first derivative with respect to time.
func (impl *Curve) EvalTangent(t float64) []float64 {
	return impl.evalNew(t, OrderTangent)
}

// EvalNormal returns the second derivative with respect to time.
func (impl *Curve) EvalNormal(t float64) []float64 {
	return impl.evalNew(t, OrderNormal)
}

func (impl *Curve) evalNew(t float64, order Order) []float64 {
	out := make([]float64, impl.Dim())

	impl.EvalTo(out, t, order)

	return out
}

// EvalTo evaluates the given derivative order at time t into dst, which must
// hold Dim() values. Times outside [0, MaxTime()] evaluate the nearest end.
func (impl *Curve) EvalTo(dst []float64, t float64, order Order) {
	numSegments := impl.NumSegments()
	if numSegments <= 0 {
		panic(fmt.Errorf("%w: curve has no segment (%d anchors)", ErrPrecondition, impl.NumAnchors()))
	}

	if math.IsNaN(t) {
		panic(fmt.Errorf("%w: time is NaN", ErrPrecondition))
	}

	if len(dst) != impl.Dim() {
		panic(fmt.Errorf("%w: output has %d values, curve dimension is %d", ErrPrecondition, len(dst), impl.Dim()))
	}

	seg, u := impl.segmentAt(t, numSegments)
	ps := impl.controlPoints(seg)

	Blend(impl.curveType, order, u, ps[0], ps[1], ps[2], ps[3], dst)

	if order == OrderPosition {
		return
	}

	// d/dt = d/du / segmentDuration, applied once per order
	scale := math.Pow(1/impl.segmentDuration, float64(order))
	for d := range dst {
		dst[d] *= scale
	}
}

func (impl *Curve) segmentAt(t float64, numSegments int) (seg int, u float64) {
	s := t / impl.segmentDuration
	f := math.Floor(s)

	switch {
	case f < 0:
		seg = 0
	case f > float64(numSegments-1):
		seg = numSegments - 1
	default:
		seg = int(f)
	}

	u = s - float64(seg)

	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}

	return
}

// controlPoints picks the four anchors blended by segment seg. Indices past
// either end repeat the end anchor.
func (impl *Curve) controlPoints(seg int) (ps [4][]float64) {
	if seg < 0 || seg >= impl.NumSegments() {
		panic(fmt.Errorf("%w: segment %d out of range [0, %d)", ErrPrecondition, seg, impl.NumSegments()))
	}

	first := seg - leadingControlPoints[impl.curveType]
	last := impl.NumAnchors() - 1

	for i := range ps {
		idx := first + i
		if idx < 0 {
			idx = 0
		} else if idx > last {
			idx = last
		}

		ps[i] = impl.anchors[idx].Pos
	}

	return
}

// Sample evaluates count positions evenly spaced over [0, MaxTime()].
func (impl *Curve) Sample(count int) [][]float64 {
	if impl.NumSegments() <= 0 || count <= 0 {
		return nil
	}

	if count == 1 {
		return [][]float64{impl.Eval(0)}
	}

	maxTime := impl.MaxTime()
	samples := make([][]float64, count)

	for i := range samples {
		samples[i] = impl.Eval(float64(i) / float64(count-1) * maxTime)
	}

	return samples
}

func (impl *Curve) Clone() *Curve {
	c := &Curve{
		logger:          impl.logger,
		curveType:       impl.curveType,
		segmentDuration: impl.segmentDuration,
	}

	if impl.anchors != nil {
		c.anchors = make([]Anchor, len(impl.anchors))
		for idx, anchor := range impl.anchors {
			c.anchors[idx] = Anchor{
				Pos:     append([]float64(nil), anchor.Pos...),
				Tangent: append([]float64(nil), anchor.Tangent...),
			}
		}
	}

	return c
}

// Config describes the current curve as a configuration record.
func (impl *Curve) Config() *Config {
	cfg := &Config{
		Type:            impl.curveType.String(),
		SegmentDuration: impl.segmentDuration,
		Anchors:         make([]AnchorConfig, len(impl.anchors)),
	}

	for idx, anchor := range impl.anchors {
		cfg.Anchors[idx].Pos = append([]float64(nil), anchor.Pos...)
	}

	return cfg
}

// computeAnchorTangents stores the tangent at each anchor's estimated time.
// These tangents are only used for visualization.
func (impl *Curve) computeAnchorTangents() {
	if impl.NumSegments() <= 0 {
		for idx := range impl.anchors {
			impl.anchors[idx].Tangent = make([]float64, len(impl.anchors[idx].Pos))
		}

		return
	}

	for idx := range impl.anchors {
		impl.anchors[idx].Tangent = impl.EvalTangent(impl.AnchorTime(idx))
	}
}

func (impl *Curve) printAnchors() {
	impl.logger.WithFields(l.StringField("type", impl.curveType.String()),
		l.IntField("anchors", impl.NumAnchors()), l.IntField("dim", impl.Dim())).Debug("curve loaded")

	for idx, anchor := range impl.anchors {
		impl.logger.WithFields(l.IntField("anchor", idx),
			l.StringField("pos", fmt.Sprintf("%.3f", anchor.Pos))).Debug("curve anchor")
	}
}
