package library

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libspline/curve"
)

// Library resolves curve keys through a Storage and keeps the built curves
// cached. Curves returned by Get are shared and must be treated as read-only.
type Library struct {
	logger  l.Wrapper
	storage curve.Storage
	curves  *cache.Cache
}

func NewLibrary(storage curve.Storage, expiration time.Duration, logger l.Wrapper) *Library {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "curveLibrary"))

	if storage == nil {
		logger.Fatal("no storage")
	}

	if expiration <= 0 {
		expiration = time.Minute * 10
	}

	return &Library{
		logger:  logger,
		storage: storage,
		curves:  cache.New(expiration, expiration*2),
	}
}

func (lib *Library) Get(ctx context.Context, key string) (*curve.Curve, error) {
	if i, ok := lib.curves.Get(key); ok {
		if c, ok := i.(*curve.Curve); ok {
			return c, nil
		}
	}

	cfg, err := lib.storage.Load(ctx, key)
	if err != nil {
		lib.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Warn("load curve config failed")

		return nil, err
	}

	c := curve.NewCurve(lib.logger)

	if err = c.Load(cfg); err != nil {
		return nil, err
	}

	lib.curves.SetDefault(key, c)

	return c, nil
}

func (lib *Library) GetConfig(ctx context.Context, key string) (*curve.Config, error) {
	return lib.storage.Load(ctx, key)
}

func (lib *Library) Put(ctx context.Context, key string, cfg *curve.Config) error {
	if err := lib.storage.Save(ctx, key, cfg); err != nil {
		return err
	}

	lib.curves.Delete(key)

	return nil
}

func (lib *Library) Remove(ctx context.Context, key string) error {
	lib.curves.Delete(key)

	return lib.storage.Remove(ctx, key)
}

func (lib *Library) Keys(ctx context.Context) ([]string, error) {
	return lib.storage.Keys(ctx)
}

// Flush drops every cached curve.
func (lib *Library) Flush() {
	lib.curves.Flush()
}
