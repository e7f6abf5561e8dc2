package curve

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	typeKey            = "Type"
	segmentDurationKey = "SegmentDuration"
	anchorsKey         = "Anchors"
	anchorPosKey       = "Pos"
)

const (
	// MinAnchors is the number of control points a single segment blends.
	MinAnchors = 4

	defaultSegmentDuration = 1.0
)

// ParseCurveType maps a type tag to a CurveType. An empty tag selects Catmull-Rom.
func ParseCurveType(s string) (CurveType, error) {
	switch s {
	case "", curveTypeCatmullRomName:
		return CurveTypeCatmullRom, nil
	case curveTypeBSplineName:
		return CurveTypeBSpline, nil
	default:
		return CurveTypeCatmullRom, fmt.Errorf("%w: unsupported curve type %q", ErrConfig, s)
	}
}

func (cfg *Config) Validate() error {
	_, _, _, err := cfg.resolve()

	return err
}

func (cfg *Config) resolve() (ct CurveType, segmentDuration float64, dim int, err error) {
	if cfg == nil {
		err = fmt.Errorf("%w: no config", ErrConfig)

		return
	}

	ct, err = ParseCurveType(cfg.Type)
	if err != nil {
		return
	}

	segmentDuration = cfg.SegmentDuration
	if segmentDuration == 0 {
		segmentDuration = defaultSegmentDuration
	}

	if segmentDuration < 0 || math.IsNaN(segmentDuration) || math.IsInf(segmentDuration, 0) {
		err = fmt.Errorf("%w: invalid segment duration %v", ErrConfig, cfg.SegmentDuration)

		return
	}

	if len(cfg.Anchors) < MinAnchors {
		err = fmt.Errorf("%w: need at least %d anchors, got %d", ErrConfig, MinAnchors, len(cfg.Anchors))

		return
	}

	dim = len(cfg.Anchors[0].Pos)
	if dim == 0 {
		err = fmt.Errorf("%w: anchor 0 has no position", ErrConfig)

		return
	}

	for idx, anchor := range cfg.Anchors {
		if len(anchor.Pos) != dim {
			err = fmt.Errorf("%w: anchor dimension mismatch, expecting %d got %d at anchor %d",
				ErrConfig, dim, len(anchor.Pos), idx)

			return
		}

		for _, v := range anchor.Pos {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				err = fmt.Errorf("%w: anchor %d has a non-finite coordinate", ErrConfig, idx)

				return
			}
		}
	}

	return
}

func (cfg *Config) Clone() *Config {
	if cfg == nil {
		return nil
	}

	c := &Config{
		Type:            cfg.Type,
		SegmentDuration: cfg.SegmentDuration,
		Anchors:         make([]AnchorConfig, len(cfg.Anchors)),
	}

	for idx, anchor := range cfg.Anchors {
		c.Anchors[idx].Pos = append([]float64(nil), anchor.Pos...)
	}

	return c
}

// ParseRecord turns a loosely typed record, as produced by a JSON or YAML
// decoder, into a validated Config.
func ParseRecord(record map[string]interface{}) (cfg *Config, err error) {
	if record == nil {
		err = fmt.Errorf("%w: empty record", ErrConfig)

		return
	}

	c := &Config{}

	if v, ok := record[typeKey]; ok {
		c.Type, err = toStringE(v)
		if err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrConfig, typeKey, err)

			return
		}
	}

	if v, ok := record[segmentDurationKey]; ok {
		c.SegmentDuration, err = toFloat64E(v)
		if err != nil {
			err = fmt.Errorf("%w: %s: %v", ErrConfig, segmentDurationKey, err)

			return
		}

		if c.SegmentDuration <= 0 {
			err = fmt.Errorf("%w: %s must be positive, got %v", ErrConfig, segmentDurationKey, c.SegmentDuration)

			return
		}
	}

	if v, ok := record[anchorsKey]; ok && v != nil {
		c.Anchors, err = parseAnchorRecords(v)
		if err != nil {
			return
		}
	}

	err = c.Validate()
	if err != nil {
		return
	}

	cfg = c

	return
}

func parseAnchorRecords(v interface{}) (anchors []AnchorConfig, err error) {
	items, err := cast.ToSliceE(v)
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrConfig, anchorsKey, err)

		return
	}

	anchors = make([]AnchorConfig, len(items))

	for idx, item := range items {
		m, e := cast.ToStringMapE(item)
		if e != nil {
			err = fmt.Errorf("%w: anchor %d: %v", ErrConfig, idx, e)

			return
		}

		posV, ok := m[anchorPosKey]
		if !ok || posV == nil {
			err = fmt.Errorf("%w: anchor %d has no %s", ErrConfig, idx, anchorPosKey)

			return
		}

		if fs, ok := posV.([]float64); ok {
			anchors[idx].Pos = append([]float64(nil), fs...)

			continue
		}

		vs, e := cast.ToSliceE(posV)
		if e != nil {
			err = fmt.Errorf("%w: anchor %d: %v", ErrConfig, idx, e)

			return
		}

		pos := make([]float64, len(vs))

		for i, x := range vs {
			pos[i], e = toFloat64E(x)
			if e != nil {
				err = fmt.Errorf("%w: anchor %d coordinate %d: %v", ErrConfig, idx, i, e)

				return
			}
		}

		anchors[idx].Pos = pos
	}

	return
}

// toFloat64E accepts numbers and numeric strings only.
func toFloat64E(v interface{}) (float64, error) {
	switch v.(type) {
	case nil, bool:
		return 0, fmt.Errorf("unable to cast %#v of type %T to float64", v, v)
	}

	return cast.ToFloat64E(v)
}

func toStringE(v interface{}) (string, error) {
	switch v.(type) {
	case nil, bool:
		return "", fmt.Errorf("unable to cast %#v of type %T to string", v, v)
	}

	return cast.ToStringE(v)
}

// DecodeConfig parses a JSON or YAML document.
func DecodeConfig(d []byte) (*Config, error) {
	var record map[string]interface{}

	var err error

	if trimmed := bytes.TrimSpace(d); len(trimmed) > 0 && trimmed[0] == '{' {
		err = json.Unmarshal(trimmed, &record)
	} else {
		err = yaml.Unmarshal(d, &record)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return ParseRecord(record)
}

func LoadConfigFile(file string) (*Config, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return DecodeConfig(d)
}
