package curve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func utRecordAnchors() []interface{} {
	return []interface{}{
		map[string]interface{}{"Pos": []interface{}{0, 0.0, "0"}},
		map[string]interface{}{"Pos": []interface{}{1, 0, 0}},
		map[string]interface{}{"Pos": []interface{}{2, 1, 0}},
		map[string]interface{}{"Pos": []float64{3, 1, 0}},
	}
}

func TestParseCurveType(t *testing.T) {
	ct, err := ParseCurveType("")
	assert.Nil(t, err)
	assert.EqualValues(t, CurveTypeCatmullRom, ct)

	ct, err = ParseCurveType("catmull_rom")
	assert.Nil(t, err)
	assert.EqualValues(t, CurveTypeCatmullRom, ct)

	ct, err = ParseCurveType("b_spline")
	assert.Nil(t, err)
	assert.EqualValues(t, CurveTypeBSpline, ct)

	_, err = ParseCurveType("B_SPLINE")
	assert.True(t, errors.Is(err, ErrConfig))

	assert.EqualValues(t, "b_spline", CurveTypeBSpline.String())
	assert.EqualValues(t, "catmull_rom", CurveTypeCatmullRom.String())
}

func TestParseRecord(t *testing.T) {
	cfg, err := ParseRecord(map[string]interface{}{
		"Type":            "b_spline",
		"SegmentDuration": "0.5",
		"Anchors":         utRecordAnchors(),
	})
	assert.Nil(t, err)
	assert.EqualValues(t, "b_spline", cfg.Type)
	assert.InDelta(t, 0.5, cfg.SegmentDuration, utDelta)
	assert.EqualValues(t, 4, len(cfg.Anchors))
	assert.EqualValues(t, []float64{0, 0, 0}, cfg.Anchors[0].Pos)
	assert.EqualValues(t, []float64{3, 1, 0}, cfg.Anchors[3].Pos)

	cfg, err = ParseRecord(map[string]interface{}{
		"Anchors": utRecordAnchors(),
	})
	assert.Nil(t, err)
	assert.EqualValues(t, "", cfg.Type)
	assert.InDelta(t, 0.0, cfg.SegmentDuration, utDelta)
}

func TestParseRecordFailures(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"nil":           nil,
		"no anchors":    {"Type": "catmull_rom"},
		"unknown type":  {"Type": "hermite", "Anchors": utRecordAnchors()},
		"bad type":      {"Type": []int{1}, "Anchors": utRecordAnchors()},
		"bad duration":  {"SegmentDuration": "fast", "Anchors": utRecordAnchors()},
		"zero duration": {"SegmentDuration": 0, "Anchors": utRecordAnchors()},
		"anchors shape": {"Anchors": "0,0,0"},
		"anchor shape":  {"Anchors": []interface{}{1, 2, 3, 4}},
		"no pos": {"Anchors": append(utRecordAnchors(),
			map[string]interface{}{"Position": []interface{}{0, 0, 0}})},
		"pos shape": {"Anchors": append(utRecordAnchors(),
			map[string]interface{}{"Pos": 4})},
		"bad coordinate": {"Anchors": append(utRecordAnchors(),
			map[string]interface{}{"Pos": []interface{}{0, "x", 0}})},
		"dim mismatch": {"Anchors": append(utRecordAnchors(),
			map[string]interface{}{"Pos": []interface{}{0, 0}})},
		"too few": {"Anchors": utRecordAnchors()[:3]},
		"null type":      {"Type": nil, "Anchors": utRecordAnchors()},
		"bool type":      {"Type": true, "Anchors": utRecordAnchors()},
		"null duration":  {"SegmentDuration": nil, "Anchors": utRecordAnchors()},
		"bool duration":  {"SegmentDuration": true, "Anchors": utRecordAnchors()},
		"null coordinate": {"Anchors": append(utRecordAnchors(),
			map[string]interface{}{"Pos": []interface{}{0, nil, 0}})},
		"bool coordinate": {"Anchors": append(utRecordAnchors(),
			map[string]interface{}{"Pos": []interface{}{0, true, 0}})},
	}

	for name, record := range cases {
		cfg, err := ParseRecord(record)
		assert.Nil(t, cfg, name)
		assert.True(t, errors.Is(err, ErrConfig), name)
	}
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig([]byte(`{"Type": "b_spline", "SegmentDuration": 2,
  "Anchors": [{"Pos": [0, 0]}, {"Pos": [1, 0]}, {"Pos": [1, 1]}, {"Pos": [0, 1]}]}`))
	assert.Nil(t, err)
	assert.EqualValues(t, "b_spline", cfg.Type)
	assert.InDelta(t, 2.0, cfg.SegmentDuration, utDelta)
	assert.EqualValues(t, []float64{1, 1}, cfg.Anchors[2].Pos)

	cfg, err = DecodeConfig([]byte(`
Type: catmull_rom
Anchors:
  - Pos: [0, 0]
  - Pos: [1, 0]
  - Pos: [1, 1]
  - Pos: [0, 1]
  - Pos: [-1, 1.5]
`))
	assert.Nil(t, err)
	assert.EqualValues(t, 5, len(cfg.Anchors))
	assert.EqualValues(t, []float64{-1, 1.5}, cfg.Anchors[4].Pos)

	_, err = DecodeConfig([]byte(`{"Type": `))
	assert.True(t, errors.Is(err, ErrConfig))

	_, err = DecodeConfig(nil)
	assert.True(t, errors.Is(err, ErrConfig))

	for _, doc := range []string{
		`{"Anchors": [{"Pos": [0, null, 0]}, {"Pos": [1, 0, 0]}, {"Pos": [2, 0, 0]}, {"Pos": [3, 0, 0]}]}`,
		`{"Anchors": [{"Pos": [0, true, 0]}, {"Pos": [1, 0, 0]}, {"Pos": [2, 0, 0]}, {"Pos": [3, 0, 0]}]}`,
		`{"SegmentDuration": true, "Anchors": [{"Pos": [0]}, {"Pos": [1]}, {"Pos": [2]}, {"Pos": [3]}]}`,
		`{"Type": null, "Anchors": [{"Pos": [0]}, {"Pos": [1]}, {"Pos": [2]}, {"Pos": [3]}]}`,
	} {
		cfg, err = DecodeConfig([]byte(doc))
		assert.Nil(t, cfg, doc)
		assert.True(t, errors.Is(err, ErrConfig), doc)
	}

	_, err = DecodeConfig([]byte(`{"Anchors": [{"Pos": [0, 0, 0]}, {"Pos": [1, 0, 0]}, {"Pos": [2, 0]}, {"Pos": [3, 0, 0]}]}`))
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestConfigClone(t *testing.T) {
	cfg := utConfig("b_spline", 3)
	cc := cfg.Clone()

	cc.Anchors[0].Pos[0] = 9
	cc.Type = "catmull_rom"

	assert.EqualValues(t, 0, cfg.Anchors[0].Pos[0])
	assert.EqualValues(t, "b_spline", cfg.Type)
	assert.Nil(t, (*Config)(nil).Clone())
}
