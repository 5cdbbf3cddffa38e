package driving

import "github.com/custodia-labs/juris/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single key after validating the resulting settings.
	Set(key, value string) error

	// Unset restores the default for a key.
	Unset(key string) error

	// Keys lists the settable keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// MaxDocumentSize returns the current upload ceiling in bytes.
	MaxDocumentSize() int64
}
