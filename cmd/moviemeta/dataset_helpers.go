package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moviemeta/internal/config"
	"moviemeta/internal/dataset"
)

// openedDataset is a locked, loaded dataset.
type openedDataset struct {
	store dataset.Store
	table *dataset.Table
	lock  *dataset.Lock
}

// openDataset locks the dataset file under the state directory, then loads
// it. The lock is held until close.
func openDataset(ctx context.Context, cfg *config.Config, path, output string) (*openedDataset, error) {
	expanded, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return nil, err
	}
	if output = strings.TrimSpace(output); output != "" {
		if output, err = config.ExpandPath(output); err != nil {
			return nil, err
		}
	}

	lock, err := dataset.AcquireLock(cfg.Paths.StateDir, expanded)
	if err != nil {
		return nil, err
	}
	store, err := dataset.Open(expanded, cfg.Dataset, dataset.OpenOptions{Output: output})
	if err != nil {
		_ = lock.Release()
		return nil, err
	}
	table, err := store.Load(ctx)
	if err != nil {
		_ = store.Close()
		_ = lock.Release()
		return nil, fmt.Errorf("load dataset %s: %w", expanded, err)
	}
	return &openedDataset{store: store, table: table, lock: lock}, nil
}

// save persists the table even when ctx was cancelled mid-batch, so partial
// progress is kept.
func (d *openedDataset) save(ctx context.Context) error {
	if err := d.store.Save(context.WithoutCancel(ctx), d.table); err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}

func (d *openedDataset) close() error {
	return errors.Join(d.store.Close(), d.lock.Release())
}
