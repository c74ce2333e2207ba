package intake

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Slot is the fixed logical name a document is uploaded under.
type Slot string

const (
	SlotLetterhead          Slot = "letterhead"
	SlotProcurementApproval Slot = "procurementApproval"
	SlotCESTForm            Slot = "cestForm"
	SlotPassportPhoto       Slot = "passportPhoto"
	SlotLicenceFront        Slot = "licenceFront"
	SlotLicenceBack         Slot = "licenceBack"
	SlotOPWContract         Slot = "opwContract"
	SlotContract            Slot = "contract"
)

// MaxDocumentBytes caps the decoded size of a single upload.
const MaxDocumentBytes = 10 * 1024 * 1024

var slotLabels = map[Slot]string{
	SlotLetterhead:          "Letterhead document",
	SlotProcurementApproval: "Procurement approval document",
	SlotCESTForm:            "CEST form",
	SlotPassportPhoto:       "Passport photo page",
	SlotLicenceFront:        "Driving licence (front)",
	SlotLicenceBack:         "Driving licence (back)",
	SlotOPWContract:         "OPW contract",
	SlotContract:            "Contract",
}

var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

func (s Slot) Valid() bool {
	_, ok := slotLabels[s]
	return ok
}

func (s Slot) Label() string {
	if label, ok := slotLabels[s]; ok {
		return label
	}
	return string(s)
}

// Document is one uploaded file. Content is base64 encoded.
type Document struct {
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"sizeBytes"`
	MimeType   string    `json:"mimeType"`
	Content    string    `json:"content"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// NewDocument checks an upload and computes its size from the decoded content.
func NewDocument(name, mimeType, content string, uploadedAt time.Time) (Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidDocument)
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if !allowedMimeTypes[mimeType] {
		return Document{}, fmt.Errorf("%w: unsupported type %q", ErrInvalidDocument, mimeType)
	}
	// Data URLs from browsers carry a "data:<mime>;base64," prefix.
	if i := strings.Index(content, ";base64,"); i >= 0 && strings.HasPrefix(content, "data:") {
		content = content[i+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return Document{}, fmt.Errorf("%w: content is not base64", ErrInvalidDocument)
	}
	if len(raw) == 0 {
		return Document{}, fmt.Errorf("%w: file is empty", ErrInvalidDocument)
	}
	if len(raw) > MaxDocumentBytes {
		return Document{}, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidDocument, MaxDocumentBytes)
	}
	return Document{
		Name:       name,
		SizeBytes:  int64(len(raw)),
		MimeType:   mimeType,
		Content:    content,
		UploadedAt: uploadedAt.UTC(),
	}, nil
}

// Bytes decodes the document content.
func (d Document) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(d.Content)
}

// Uploads maps each slot to its single document.
type Uploads map[Slot]Document

// Has reports whether slot holds a document with content.
func (u Uploads) Has(slot Slot) bool {
	if u == nil {
		return false
	}
	doc, ok := u[slot]
	return ok && doc.Content != ""
}

func (u Uploads) Clone() Uploads {
	out := make(Uploads, len(u))
	for slot, doc := range u {
		out[slot] = doc
	}
	return out
}
