package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir       = "storage.data_dir"
	keyBlobBackend   = "blob.backend"
	keyBlobDir       = "blob.dir"
	keyBlobBucket    = "blob.bucket"
	keyBlobRegion    = "blob.region"
	keyBlobEndpoint  = "blob.endpoint"
	keyBlobPrefix    = "blob.prefix"
	keyMaxSize       = "documents.max_size_bytes"
	keyAuditNATSURL  = "audit.nats_url"
	keyAuditSubject  = "audit.subject_prefix"
	keyHTTPAddr      = "http.addr"
	keyHTTPRateLimit = "http.rate_limit"
	keyHTTPBurst     = "http.burst"
)

// settingKind drives parsing in Set.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
)

var settingKinds = map[string]settingKind{
	keyDataDir:       kindString,
	keyBlobBackend:   kindString,
	keyBlobDir:       kindString,
	keyBlobBucket:    kindString,
	keyBlobRegion:    kindString,
	keyBlobEndpoint:  kindString,
	keyBlobPrefix:    kindString,
	keyMaxSize:       kindInt,
	keyAuditNATSURL:  kindString,
	keyAuditSubject:  kindString,
	keyHTTPAddr:      kindString,
	keyHTTPRateLimit: kindFloat,
	keyHTTPBurst:     kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, falling back to defaults for
// anything unset or unrecognised.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(keyDataDir), // Empty means ~/.juris/data
		},
		Blob: domain.BlobSettings{
			Backend:  s.getBlobBackend(defaults.Blob.Backend),
			Dir:      s.configStore.GetString(keyBlobDir),
			Bucket:   s.configStore.GetString(keyBlobBucket),
			Region:   s.configStore.GetString(keyBlobRegion),
			Endpoint: s.configStore.GetString(keyBlobEndpoint),
			Prefix:   s.getString(keyBlobPrefix, defaults.Blob.Prefix),
		},
		Documents: domain.DocumentSettings{
			MaxSizeBytes: int64(s.getInt(keyMaxSize, int(defaults.Documents.MaxSizeBytes))),
		},
		Audit: domain.AuditSettings{
			NATSURL:       s.configStore.GetString(keyAuditNATSURL),
			SubjectPrefix: s.getString(keyAuditSubject, defaults.Audit.SubjectPrefix),
		},
		HTTP: domain.HTTPSettings{
			Addr:      s.getString(keyHTTPAddr, defaults.HTTP.Addr),
			RateLimit: s.getFloat(keyHTTPRateLimit, defaults.HTTP.RateLimit),
			Burst:     s.getInt(keyHTTPBurst, defaults.HTTP.Burst),
		},
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyDataDir, settings.Storage.DataDir},
		{keyBlobBackend, settings.Blob.Backend.String()},
		{keyBlobDir, settings.Blob.Dir},
		{keyBlobBucket, settings.Blob.Bucket},
		{keyBlobRegion, settings.Blob.Region},
		{keyBlobEndpoint, settings.Blob.Endpoint},
		{keyBlobPrefix, settings.Blob.Prefix},
		{keyMaxSize, settings.Documents.MaxSizeBytes},
		{keyAuditNATSURL, settings.Audit.NATSURL},
		{keyAuditSubject, settings.Audit.SubjectPrefix},
		{keyHTTPAddr, settings.HTTP.Addr},
		{keyHTTPRateLimit, settings.HTTP.RateLimit},
		{keyHTTPBurst, settings.HTTP.Burst},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key, checks the resulting settings and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	kind, ok := settingKinds[key]
	if !ok {
		return domain.Errorf(domain.ErrValidation, "unknown setting %q (known: %s)", key, strings.Join(s.Keys(), ", "))
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return domain.Errorf(domain.ErrValidation, "%s must be an integer, got %q", key, value)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return domain.Errorf(domain.ErrValidation, "%s must be a number, got %q", key, value)
		}
		parsed = f
	default:
		parsed = strings.TrimSpace(value)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	apply(settings, key, parsed)
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Unset restores the default for a key.
func (s *SettingsService) Unset(key string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if _, ok := settingKinds[key]; !ok {
		return domain.Errorf(domain.ErrValidation, "unknown setting %q", key)
	}
	return s.configStore.Unset(key)
}

// Keys lists the settable keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// MaxDocumentSize returns the current upload ceiling in bytes. It reads the
// config store on every call so a reloaded file takes effect immediately.
func (s *SettingsService) MaxDocumentSize() int64 {
	settings, err := s.Get()
	if err != nil || settings.Documents.MaxSizeBytes <= 0 {
		return domain.DefaultMaxDocumentSize
	}
	return settings.Documents.MaxSizeBytes
}

// apply writes a parsed value into the matching settings field.
func apply(settings *domain.AppSettings, key string, value any) {
	switch key {
	case keyDataDir:
		settings.Storage.DataDir = value.(string)
	case keyBlobBackend:
		settings.Blob.Backend = domain.BlobBackend(value.(string))
	case keyBlobDir:
		settings.Blob.Dir = value.(string)
	case keyBlobBucket:
		settings.Blob.Bucket = value.(string)
	case keyBlobRegion:
		settings.Blob.Region = value.(string)
	case keyBlobEndpoint:
		settings.Blob.Endpoint = value.(string)
	case keyBlobPrefix:
		settings.Blob.Prefix = value.(string)
	case keyMaxSize:
		settings.Documents.MaxSizeBytes = value.(int64)
	case keyAuditNATSURL:
		settings.Audit.NATSURL = value.(string)
	case keyAuditSubject:
		settings.Audit.SubjectPrefix = value.(string)
	case keyHTTPAddr:
		settings.HTTP.Addr = value.(string)
	case keyHTTPRateLimit:
		settings.HTTP.RateLimit = value.(float64)
	case keyHTTPBurst:
		settings.HTTP.Burst = int(value.(int64))
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBlobBackend(defaultVal domain.BlobBackend) domain.BlobBackend {
	val := s.configStore.GetString(keyBlobBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.BlobBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
