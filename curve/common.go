package curve

import (
	"context"
	"errors"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libeasygo/pathutils"
	"gopkg.in/yaml.v3"
)

const commStorageExt = ".yaml"

// NewCommonStorage keeps one YAML document per key under root.
func NewCommonStorage(root string) *CommStorage {
	return &CommStorage{
		root: root,
	}
}

type CommStorage struct {
	root string
}

func (stg *CommStorage) fileNameByKey(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", commerr.ErrInvalidArgument
	}

	return path.Join(stg.root, key+commStorageExt), nil
}

func (stg *CommStorage) Load(_ context.Context, key string) (cfg *Config, err error) {
	fileName, err := stg.fileNameByKey(key)
	if err != nil {
		return
	}

	d, err := os.ReadFile(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = commerr.ErrNotFound
		}

		return
	}

	cfg, err = DecodeConfig(d)

	return
}

func (stg *CommStorage) Save(_ context.Context, key string, cfg *Config) (err error) {
	fileName, err := stg.fileNameByKey(key)
	if err != nil {
		return
	}

	if err = cfg.Validate(); err != nil {
		return
	}

	if err = pathutils.MustDirExists(stg.root); err != nil {
		return
	}

	d, err := yaml.Marshal(cfg)
	if err != nil {
		return
	}

	err = os.WriteFile(fileName, d, 0600)

	return
}

func (stg *CommStorage) Remove(_ context.Context, key string) (err error) {
	fileName, err := stg.fileNameByKey(key)
	if err != nil {
		return
	}

	err = os.Remove(fileName)
	if errors.Is(err, os.ErrNotExist) {
		err = commerr.ErrNotFound
	}

	return
}

func (stg *CommStorage) Keys(_ context.Context) (keys []string, err error) {
	entries, err := os.ReadDir(stg.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}

		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), commStorageExt) {
			continue
		}

		keys = append(keys, strings.TrimSuffix(entry.Name(), commStorageExt))
	}

	sort.Strings(keys)

	return
}
