// Package migration copies the legacy local entry blob into the remote store
// once per installation.
package migration

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/wodcal/internal/model"
)

// Source is the local side of the migration. Implemented by *localstate.State.
type Source interface {
	Entries() ([]model.Entry, error)
	Migrated() (bool, error)
	MarkMigrated() error
}

// Saver is the destination. Implemented by *store.Store.
type Saver interface {
	Save(ctx context.Context, e model.Entry) (model.Entry, error)
}

// Run migrates every legacy entry into dst and returns how many were saved.
//
// The marker is set only after all saves succeed; on the first failure Run
// returns the error and the whole migration is retried next time. Entries are
// saved sequentially in blob order. Entries without an id get a new one on
// every attempt, so a retried run can duplicate them.
func Run(ctx context.Context, src Source, dst Saver, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	done, err := src.Migrated()
	if err != nil {
		return 0, fmt.Errorf("read migration marker: %w", err)
	}
	if done {
		return 0, nil
	}

	legacy, err := src.Entries()
	if err != nil {
		return 0, fmt.Errorf("read legacy entries: %w", err)
	}
	if len(legacy) == 0 {
		if err := src.MarkMigrated(); err != nil {
			return 0, fmt.Errorf("set migration marker: %w", err)
		}
		return 0, nil
	}

	log.Info("migrating legacy entries", zap.Int("count", len(legacy)))
	for i, e := range legacy {
		if e.NeedsSectionUpgrade() {
			id, err := uuid.NewV4()
			if err != nil {
				return i, err
			}
			e = e.UpgradeLegacy(id.String())
		}
		if _, err := dst.Save(ctx, e); err != nil {
			log.Warn("migration aborted", zap.Int("saved", i), zap.String("id", e.ID), zap.Error(err))
			return i, fmt.Errorf("migrate entry %d (%s): %w", i, e.ID, err)
		}
	}

	if err := src.MarkMigrated(); err != nil {
		return len(legacy), fmt.Errorf("set migration marker: %w", err)
	}
	log.Info("migration complete", zap.Int("count", len(legacy)))
	return len(legacy), nil
}
