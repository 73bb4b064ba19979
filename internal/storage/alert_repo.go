package storage

import (
	"encoding/json"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/appdiet/appdiet/internal/model"
)

// AlertStateRepo provides operations for alert suppression records.
//
// MarkDaily and MarkRepeat perform the check-then-set for a key inside a
// single Badger transaction, so two overlapping evaluations can never both
// observe "not sent" and fire twice for the same key.
type AlertStateRepo struct {
	db *DB
}

// NewAlertStateRepo creates a new alert state repository.
func NewAlertStateRepo(db *DB) *AlertStateRepo {
	return &AlertStateRepo{db: db}
}

// Get retrieves the suppression record for a (scope, tier) key. When no
// record exists it returns a record of kind AlertNever.
func (r *AlertStateRepo) Get(scope string, tier int) (*model.AlertState, error) {
	key := model.GenerateAlertStateKey(scope, tier)
	state := &model.AlertState{}
	err := r.db.Get(key, state)
	if err == nil {
		return state, nil
	}

	if !IsErrKeyNotFound(err) {
		return nil, err
	}

	return &model.AlertState{Key: key, Kind: model.AlertNever}, nil
}

// MarkDaily attempts to record a once-per-day tier as fired on the given
// date. It returns true when the record was written, false when the tier
// already fired on that date. The read, the comparison, and the write are
// one transaction.
func (r *AlertStateRepo) MarkDaily(scope string, tier int, date string) (bool, error) {
	key := model.GenerateAlertStateKey(scope, tier)
	fired := false

	err := r.db.Badger().Update(func(txn *badger.Txn) error {
		state, err := readAlertState(txn, key)
		if err != nil {
			return err
		}
		if state.SentToday(date) {
			return nil
		}

		state.Kind = model.AlertSentOnDate
		state.Date = date
		state.SentAtMillis = 0

		if err := writeAlertState(txn, key, state); err != nil {
			return err
		}
		fired = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return fired, nil
}

// MarkRepeat attempts to record the interval-throttled tier as fired at
// now. It returns true when the record was written, false when the last
// fire is still within the interval. The check-and-set is one transaction.
func (r *AlertStateRepo) MarkRepeat(scope string, tier int, now time.Time, interval time.Duration) (bool, error) {
	key := model.GenerateAlertStateKey(scope, tier)
	fired := false

	err := r.db.Badger().Update(func(txn *badger.Txn) error {
		state, err := readAlertState(txn, key)
		if err != nil {
			return err
		}
		if state.SentWithin(now, interval) {
			return nil
		}

		state.Kind = model.AlertSentAt
		state.SentAtMillis = now.UnixMilli()
		state.Date = ""

		if err := writeAlertState(txn, key, state); err != nil {
			return err
		}
		fired = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return fired, nil
}

// Clear removes the suppression record for a (scope, tier) key.
func (r *AlertStateRepo) Clear(scope string, tier int) error {
	return r.db.Delete(model.GenerateAlertStateKey(scope, tier))
}

// readAlertState reads a suppression record inside a transaction, returning
// an AlertNever record when the key is absent.
func readAlertState(txn *badger.Txn, key string) (*model.AlertState, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &model.AlertState{Key: key, Kind: model.AlertNever}, nil
		}
		return nil, err
	}

	state := &model.AlertState{}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, state)
	})
	if err != nil {
		return nil, err
	}
	state.Key = key
	return state, nil
}

// writeAlertState writes a suppression record inside a transaction.
func writeAlertState(txn *badger.Txn, key string, state *model.AlertState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return txn.Set([]byte(key), data)
}
