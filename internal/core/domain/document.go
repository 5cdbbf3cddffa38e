package domain

import (
	"bytes"
	"mime"
	"strings"
	"time"
)

// DefaultMaxDocumentSize is the upload ceiling when none is configured (10 MiB).
const DefaultMaxDocumentSize int64 = 10 << 20

// PDFContentType is the only accepted payload type.
const PDFContentType = "application/pdf"

// pdfMagic prefixes every PDF file.
var pdfMagic = []byte("%PDF-")

// DocumentType tags what a document is.
type DocumentType string

// Available document types.
const (
	DocumentTypeAta      DocumentType = "Ata"
	DocumentTypeDecisao  DocumentType = "Decisão"
	DocumentTypePeticao  DocumentType = "Petição"
	DocumentTypeContrato DocumentType = "Contrato"
	DocumentTypeParecer  DocumentType = "Parecer"
	DocumentTypeOutro    DocumentType = "Outro"
)

// DocumentTypes lists every recognised document type.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeAta,
		DocumentTypeDecisao,
		DocumentTypePeticao,
		DocumentTypeContrato,
		DocumentTypeParecer,
		DocumentTypeOutro,
	}
}

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	for _, known := range DocumentTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// foldAccents maps the accented letters used by document type names.
var foldAccents = strings.NewReplacer("ã", "a", "Ã", "A", "ç", "c", "Ç", "C", "é", "e", "É", "E")

// ParseDocumentType matches s case-insensitively, accepting unaccented spellings
// such as "Decisao" or "peticao".
func ParseDocumentType(s string) (DocumentType, error) {
	want := foldAccents.Replace(strings.TrimSpace(s))
	for _, known := range DocumentTypes() {
		if strings.EqualFold(want, foldAccents.Replace(string(known))) {
			return known, nil
		}
	}
	return "", Errorf(ErrValidation, "unknown document type %q", s)
}

// Upload is a file received from a caller, before validation.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the payload length in bytes.
func (u Upload) Size() int64 {
	return int64(len(u.Data))
}

// Validate checks the payload is a non-empty PDF within maxSize bytes.
func (u Upload) Validate(maxSize int64) error {
	if len(u.Data) == 0 {
		return Errorf(ErrValidation, "file is empty")
	}
	if maxSize > 0 && u.Size() > maxSize {
		return Errorf(ErrValidation, "file is %d bytes, limit is %d", u.Size(), maxSize)
	}
	mediaType, _, err := mime.ParseMediaType(u.ContentType)
	if err != nil || mediaType != PDFContentType {
		return Errorf(ErrValidation, "file must be %s, got %q", PDFContentType, u.ContentType)
	}
	if !bytes.HasPrefix(u.Data, pdfMagic) {
		return Errorf(ErrValidation, "file content is not a PDF")
	}
	return nil
}

// Document is an uploaded artifact. Documents are immutable once created.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// ProcessID is the owning process.
	ProcessID string

	// MeetingID is set for minutes attached to a meeting.
	MeetingID *string

	// Title is the human-readable title.
	Title string

	// Description is free text.
	Description string

	// Type tags what the document is.
	Type DocumentType

	// Filename is the name the file was uploaded with.
	Filename string

	// ContentType is always application/pdf.
	ContentType string

	// Size is the payload length in bytes.
	Size int64

	// Checksum is the hex blake3 digest of the payload.
	Checksum string

	// BlobKey locates the payload in the blob store.
	BlobKey string

	// UploadedBy is the actor who attached the document.
	UploadedBy string

	// CreatedAt is when the document was attached.
	CreatedAt time.Time
}

// AttachRequest carries a document to attach to a process.
type AttachRequest struct {
	ProcessID   string
	Title       string
	Description string
	Type        DocumentType
	File        Upload
}

// AtaUpload carries minutes to attach to a meeting.
type AtaUpload struct {
	Title       string
	Description string
	Type        DocumentType
	File        Upload
}
