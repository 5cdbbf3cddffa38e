package domain

const unknownDescription = "Unknown"

// BlobBackend selects where document payloads are stored.
type BlobBackend string

// Available blob backends.
const (
	// BlobBackendFilesystem stores payloads under a local directory.
	BlobBackendFilesystem BlobBackend = "filesystem"

	// BlobBackendS3 stores payloads in an S3 bucket.
	BlobBackendS3 BlobBackend = "s3"
)

// IsValid returns true if the blob backend is recognised.
func (b BlobBackend) IsValid() bool {
	return b == BlobBackendFilesystem || b == BlobBackendS3
}

// String returns the string representation.
func (b BlobBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b BlobBackend) Description() string {
	switch b {
	case BlobBackendFilesystem:
		return "Local filesystem"
	case BlobBackendS3:
		return "Amazon S3 (or compatible)"
	default:
		return unknownDescription
	}
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage   StorageSettings
	Blob      BlobSettings
	Documents DocumentSettings
	Audit     AuditSettings
	HTTP      HTTPSettings
}

// StorageSettings configures the metadata database.
type StorageSettings struct {
	// DataDir holds metadata.db. Empty means ~/.juris/data.
	DataDir string
}

// BlobSettings configures the payload store.
type BlobSettings struct {
	Backend BlobBackend
	Dir     string
	Bucket  string
	Region  string
	// Endpoint overrides the S3 endpoint, e.g. for LocalStack or MinIO.
	Endpoint string
	Prefix   string
}

// DocumentSettings configures upload validation.
type DocumentSettings struct {
	MaxSizeBytes int64
}

// AuditSettings configures audit publishing. An empty NATSURL disables it.
type AuditSettings struct {
	NATSURL       string
	SubjectPrefix string
}

// HTTPSettings configures the REST server.
type HTTPSettings struct {
	Addr string
	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64
	Burst     int
}

// DefaultAppSettings returns sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Blob: BlobSettings{
			Backend: BlobBackendFilesystem,
			Prefix:  "documents/",
		},
		Documents: DocumentSettings{
			MaxSizeBytes: DefaultMaxDocumentSize,
		},
		Audit: AuditSettings{
			SubjectPrefix: "juris.audit",
		},
		HTTP: HTTPSettings{
			Addr:      "127.0.0.1:8080",
			RateLimit: 20,
			Burst:     40,
		},
	}
}

// Validate checks the settings are internally consistent.
func (s AppSettings) Validate() error {
	if !s.Blob.Backend.IsValid() {
		return Errorf(ErrValidation, "unknown blob backend %q", s.Blob.Backend)
	}
	if s.Blob.Backend == BlobBackendS3 && s.Blob.Bucket == "" {
		return Errorf(ErrValidation, "blob.bucket is required for the s3 backend")
	}
	if s.Documents.MaxSizeBytes <= 0 {
		return Errorf(ErrValidation, "documents.max_size_bytes must be positive")
	}
	if s.HTTP.RateLimit < 0 || s.HTTP.Burst < 0 {
		return Errorf(ErrValidation, "http rate limit and burst must not be negative")
	}
	return nil
}
