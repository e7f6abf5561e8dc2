// nolint
package redisstorage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libconfig/ut"
	"github.com/sgostarter/libspline/curve"
	"github.com/stretchr/testify/assert"
)

func initRedis(dsn string) (cli *redis.Client, err error) {
	options, err := redis.ParseURL(dsn)
	if err != nil {
		return
	}

	cli = redis.NewClient(options)

	ctx, cf := context.WithTimeout(context.Background(), 3*time.Second)
	defer cf()

	err = cli.Ping(ctx).Err()

	return
}

func TestRedisStorage(t *testing.T) {
	cfg := ut.SetupUTConfig4Redis(t)

	redisCli, err := initRedis(cfg.RedisDSN)
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	ctx := context.Background()

	redisCli.Del(ctx, "ut:curves")

	stg := NewRedisStorage(redisCli, "ut", nil)

	_, err = stg.Load(ctx, "bird")
	assert.True(t, errors.Is(err, commerr.ErrNotFound))

	bird := &curve.Config{
		Type:            "b_spline",
		SegmentDuration: 2,
		Anchors: []curve.AnchorConfig{
			{Pos: []float64{0, 0}},
			{Pos: []float64{1, 0}},
			{Pos: []float64{1, 1}},
			{Pos: []float64{0, 1}},
		},
	}

	assert.Nil(t, stg.Save(ctx, "bird", bird))

	loaded, err := stg.Load(ctx, "bird")
	assert.Nil(t, err)
	assert.EqualValues(t, bird, loaded)

	bad := bird.Clone()
	bad.Anchors[1].Pos = []float64{1}
	assert.True(t, errors.Is(stg.Save(ctx, "bad", bad), curve.ErrConfig))

	redisCli.HSet(ctx, "ut:curves", "broken", `{"Anchors": [{"Pos": [0, null]}, {"Pos": [1, 0]}, {"Pos": [1, 1]}, {"Pos": [0, 1]}]}`)

	_, err = stg.Load(ctx, "broken")
	assert.True(t, errors.Is(err, curve.ErrConfig))

	redisCli.HDel(ctx, "ut:curves", "broken")

	keys, err := stg.Keys(ctx)
	assert.Nil(t, err)
	assert.EqualValues(t, []string{"bird"}, keys)

	assert.Nil(t, stg.Remove(ctx, "bird"))
	assert.True(t, errors.Is(stg.Remove(ctx, "bird"), commerr.ErrNotFound))

	redisCli.Del(ctx, "ut:curves")
}
