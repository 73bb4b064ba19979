package storage

import (
	"github.com/appdiet/appdiet/internal/model"
)

// GoalRepo provides operations for per-app goals.
type GoalRepo struct {
	db *DB
}

// NewGoalRepo creates a new goal repository.
func NewGoalRepo(db *DB) *GoalRepo {
	return &GoalRepo{db: db}
}

// Get retrieves the goal for an app.
func (r *GoalRepo) Get(appID string) (*model.Goal, error) {
	goal := &model.Goal{}
	key := model.GenerateGoalKey(appID)
	if err := r.db.Get(key, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Minutes returns the goal minutes for an app, zero when no goal is set.
func (r *GoalRepo) Minutes(appID string) (int, error) {
	goal, err := r.Get(appID)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return goal.Minutes, nil
}

// Upsert creates or updates a goal. Zero minutes is stored as-is and reads
// back as "no goal".
func (r *GoalRepo) Upsert(goal *model.Goal) error {
	goal.Key = model.GenerateGoalKey(goal.AppID)
	return r.db.Set(goal)
}

// Delete removes the goal for an app.
func (r *GoalRepo) Delete(appID string) error {
	return r.db.Delete(model.GenerateGoalKey(appID))
}

// List retrieves all goals.
func (r *GoalRepo) List() ([]*model.Goal, error) {
	return GetAllByPrefix(r.db, model.PrefixGoal+":", func() *model.Goal {
		return &model.Goal{}
	})
}

// Map builds a GoalSet for the given app IDs. Apps without a stored goal
// map to zero.
func (r *GoalRepo) Map(appIDs []string) (model.GoalSet, error) {
	goals := make(model.GoalSet, len(appIDs))
	for _, id := range appIDs {
		minutes, err := r.Minutes(id)
		if err != nil {
			return nil, err
		}
		goals[id] = minutes
	}
	return goals, nil
}
