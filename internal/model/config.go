package model

// Config is the application configuration singleton: the install key and
// the user's current app selection.
type Config struct {
	Key          string   `json:"key"`
	InstallKey   string   `json:"install_key"`
	SelectedApps []string `json:"selected_apps"`
}

// SetKey sets the database key for this config.
func (c *Config) SetKey(key string) {
	c.Key = key
}

// GetKey returns the database key for this config.
func (c *Config) GetKey() string {
	return c.Key
}

// NewConfig creates a config with the default app selection.
func NewConfig(installKey string) *Config {
	return &Config{
		Key:          KeyConfig,
		InstallKey:   installKey,
		SelectedApps: DefaultSelection(),
	}
}

// SelectApps replaces the tracked-app selection. The caller validates the
// IDs and the selection size.
func (c *Config) SelectApps(ids []string) {
	c.SelectedApps = append([]string(nil), ids...)
}
