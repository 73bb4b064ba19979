// Package runtime provides application runtime context for Appdiet.
package runtime

import (
	"os"

	"github.com/appdiet/appdiet/internal/config"
	"github.com/appdiet/appdiet/internal/engine"
	"github.com/appdiet/appdiet/internal/notify"
	"github.com/appdiet/appdiet/internal/output"
	"github.com/appdiet/appdiet/internal/storage"
	"github.com/appdiet/appdiet/internal/usage"
)

// Context holds the application runtime context.
type Context struct {
	DB        *storage.DB
	Formatter *output.Formatter

	// Repositories
	GoalRepo     *storage.GoalRepo
	ConfigRepo   *storage.ConfigRepo
	SettingsRepo *storage.AlertSettingsRepo
	UsageRepo    *storage.UsageRepo
	WebhookRepo  *storage.WebhookRepo

	// Evaluation pipeline
	Dispatcher *notify.Dispatcher
	Service    *engine.Service

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		InMemory:  false,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	// Check for environment variable override
	if envPath := os.Getenv("APPDIET_DATABASE"); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	}

	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	webhookRepo := storage.NewWebhookRepo(db)
	dispatcher := notify.NewDispatcher(webhookRepo)
	dispatcher.SetDebug(opts.Debug)

	// Samples come from the platform export file when configured. An
	// unset path leaves the service without a source; commands that
	// only read persisted state still work.
	var source usage.SampleSource
	if path := config.Global.Engine.SamplePath; path != "" {
		source = usage.NewFileSource(path)
	}

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		DB:           db,
		Formatter:    formatter,
		GoalRepo:     storage.NewGoalRepo(db),
		ConfigRepo:   storage.NewConfigRepo(db),
		SettingsRepo: storage.NewAlertSettingsRepo(db),
		UsageRepo:    storage.NewUsageRepo(db),
		WebhookRepo:  webhookRepo,
		Dispatcher:   dispatcher,
		Service:      engine.NewService(db, source, dispatcher),
		Debug:        opts.Debug,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
