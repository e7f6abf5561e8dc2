package fmstorage

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
	"github.com/sgostarter/libspline/curve"
)

func NewFMStorage(root string, storage stg.FileStorage) curve.Storage {
	return NewFMStorageEx(root, storage, "curves.json")
}

func NewFMStorageEx(root string, storage stg.FileStorage, fileName string) curve.Storage {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &fmStorageImpl{
		curveStorage: mwf.NewMemWithFile[map[string]*curve.Config, mwf.Serial, mwf.Lock](
			make(map[string]*curve.Config), &mwf.JSONSerial{}, &sync.RWMutex{}, filepath.Join(root, fileName), storage),
	}
}

type fmStorageImpl struct {
	curveStorage *mwf.MemWithFile[map[string]*curve.Config, mwf.Serial, mwf.Lock]
}

func (impl *fmStorageImpl) Load(_ context.Context, key string) (cfg *curve.Config, err error) {
	impl.curveStorage.Read(func(m map[string]*curve.Config) {
		c, ok := m[key]
		if !ok || c == nil {
			err = commerr.ErrNotFound

			return
		}

		cfg = c.Clone()
	})

	if err != nil {
		return
	}

	if err = cfg.Validate(); err != nil {
		cfg = nil
	}

	return
}

func (impl *fmStorageImpl) Save(_ context.Context, key string, cfg *curve.Config) error {
	if key == "" {
		return commerr.ErrInvalidArgument
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	return impl.curveStorage.Change(func(oldM map[string]*curve.Config) (map[string]*curve.Config, error) {
		if len(oldM) == 0 {
			oldM = make(map[string]*curve.Config)
		}

		oldM[key] = cfg.Clone()

		return oldM, nil
	})
}

func (impl *fmStorageImpl) Remove(_ context.Context, key string) error {
	return impl.curveStorage.Change(func(oldM map[string]*curve.Config) (map[string]*curve.Config, error) {
		if _, ok := oldM[key]; !ok {
			return nil, commerr.ErrNotFound
		}

		delete(oldM, key)

		return oldM, nil
	})
}

func (impl *fmStorageImpl) Keys(_ context.Context) (keys []string, err error) {
	impl.curveStorage.Read(func(m map[string]*curve.Config) {
		for key := range m {
			keys = append(keys, key)
		}
	})

	sort.Strings(keys)

	return
}
