package storage

import (
	"sort"
	"time"

	"github.com/appdiet/appdiet/internal/model"
)

// UsageRepo persists the computed aggregates: the published snapshot list
// and the rolling per-day usage history. UI consumers read from here; only
// a completed evaluation pass writes.
type UsageRepo struct {
	db *DB
}

// NewUsageRepo creates a new usage repository.
func NewUsageRepo(db *DB) *UsageRepo {
	return &UsageRepo{db: db}
}

// SaveSnapshot replaces the published snapshot list.
func (r *UsageRepo) SaveSnapshot(list *model.SnapshotList) error {
	list.Key = model.KeySnapshot
	return r.db.Set(list)
}

// Snapshot retrieves the last published snapshot list, or nil when no pass
// has completed yet.
func (r *UsageRepo) Snapshot() (*model.SnapshotList, error) {
	list := &model.SnapshotList{}
	err := r.db.Get(model.KeySnapshot, list)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// SaveHistory replaces the stored daily records with the given history.
func (r *UsageRepo) SaveHistory(history []*model.DailyUsage) error {
	for _, day := range history {
		day.Key = model.GenerateUsageDayKey(day.Date)
		if err := r.db.Set(day); err != nil {
			return err
		}
	}
	return nil
}

// History retrieves all stored daily records sorted ascending by date.
// Records whose date fails to parse are skipped.
func (r *UsageRepo) History() ([]*model.DailyUsage, error) {
	days, err := GetAllByPrefix(r.db, model.PrefixUsageDay+":", func() *model.DailyUsage {
		return &model.DailyUsage{}
	})
	if err != nil {
		return nil, err
	}

	valid := days[:0]
	for _, day := range days {
		if _, err := time.Parse(model.DateLayout, day.Date); err != nil {
			continue
		}
		valid = append(valid, day)
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Date < valid[j].Date
	})
	return valid, nil
}

// Day retrieves the record for one date, or nil when absent.
func (r *UsageRepo) Day(date string) (*model.DailyUsage, error) {
	day := &model.DailyUsage{}
	err := r.db.Get(model.GenerateUsageDayKey(date), day)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return day, nil
}

// PruneBefore removes daily records older than the given date.
func (r *UsageRepo) PruneBefore(date string) error {
	keys, err := r.db.ListByPrefix(model.PrefixUsageDay + ":")
	if err != nil {
		return err
	}

	cutoff := model.GenerateUsageDayKey(date)
	for _, key := range keys {
		if key < cutoff {
			if err := r.db.Delete(key); err != nil {
				return err
			}
		}
	}
	return nil
}
