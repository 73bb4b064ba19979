package storage

import (
	"github.com/google/uuid"

	"github.com/appdiet/appdiet/internal/model"
)

// ConfigRepo provides operations for the Config singleton.
type ConfigRepo struct {
	db *DB
}

// NewConfigRepo creates a new config repository.
func NewConfigRepo(db *DB) *ConfigRepo {
	return &ConfigRepo{db: db}
}

// Get retrieves the config, creating it with the default app selection if
// it doesn't exist.
func (r *ConfigRepo) Get() (*model.Config, error) {
	config := &model.Config{}
	err := r.db.Get(model.KeyConfig, config)
	if err == nil {
		return config, nil
	}

	if !IsErrKeyNotFound(err) {
		return nil, err
	}

	installKey, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	config = model.NewConfig(installKey.String())
	if err := r.db.Set(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Update updates the config.
func (r *ConfigRepo) Update(config *model.Config) error {
	return r.db.Set(config)
}

// SelectedApps returns the current tracked-app selection.
func (r *ConfigRepo) SelectedApps() ([]string, error) {
	config, err := r.Get()
	if err != nil {
		return nil, err
	}
	return config.SelectedApps, nil
}

// AlertSettingsRepo provides operations for the AlertSettings singleton.
type AlertSettingsRepo struct {
	db *DB
}

// NewAlertSettingsRepo creates a new alert settings repository.
func NewAlertSettingsRepo(db *DB) *AlertSettingsRepo {
	return &AlertSettingsRepo{db: db}
}

// settingsRecord wraps AlertSettings with a database key.
type settingsRecord struct {
	Key string `json:"key"`
	model.AlertSettings
}

func (s *settingsRecord) SetKey(key string) { s.Key = key }
func (s *settingsRecord) GetKey() string    { return s.Key }

// Get retrieves the alert settings, returning defaults when not set.
// Defaults are not persisted until explicitly set.
func (r *AlertSettingsRepo) Get() (*model.AlertSettings, error) {
	rec := &settingsRecord{}
	err := r.db.Get(model.KeyAlertSettings, rec)
	if err == nil {
		return &rec.AlertSettings, nil
	}

	if !IsErrKeyNotFound(err) {
		return nil, err
	}

	return model.DefaultAlertSettings(), nil
}

// Set stores the alert settings after validation.
func (r *AlertSettingsRepo) Set(settings *model.AlertSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	rec := &settingsRecord{Key: model.KeyAlertSettings, AlertSettings: *settings}
	return r.db.Set(rec)
}
