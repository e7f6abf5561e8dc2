package redisstorage

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libspline/curve"
)

// NewRedisStorage keeps every curve config as a JSON field of one redis hash.
func NewRedisStorage(redisCli *redis.Client, redisKeyPre string, logger l.Wrapper) curve.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "redisCurveStorage"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &redisStorageImpl{
		logger:      logger,
		redisCli:    redisCli,
		redisKeyPre: redisKeyPre,
	}
}

type redisStorageImpl struct {
	logger      l.Wrapper
	redisCli    *redis.Client
	redisKeyPre string
}

func (impl *redisStorageImpl) curvesRedisKey() string {
	if impl.redisKeyPre == "" {
		return "curves"
	}

	return impl.redisKeyPre + ":" + "curves"
}

func (impl *redisStorageImpl) Load(ctx context.Context, key string) (cfg *curve.Config, err error) {
	d, err := impl.redisCli.HGet(ctx, impl.curvesRedisKey(), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = commerr.ErrNotFound
		}

		return
	}

	cfg, err = curve.DecodeConfig(d)
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("bad curve config in redis")
	}

	return
}

func (impl *redisStorageImpl) Save(ctx context.Context, key string, cfg *curve.Config) error {
	if key == "" {
		return commerr.ErrInvalidArgument
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	d, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return impl.redisCli.HSet(ctx, impl.curvesRedisKey(), key, d).Err()
}

func (impl *redisStorageImpl) Remove(ctx context.Context, key string) error {
	n, err := impl.redisCli.HDel(ctx, impl.curvesRedisKey(), key).Result()
	if err != nil {
		return err
	}

	if n == 0 {
		return commerr.ErrNotFound
	}

	return nil
}

func (impl *redisStorageImpl) Keys(ctx context.Context) (keys []string, err error) {
	keys, err = impl.redisCli.HKeys(ctx, impl.curvesRedisKey()).Result()
	if err != nil {
		return
	}

	sort.Strings(keys)

	return
}
