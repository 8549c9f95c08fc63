package storage

import (
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ProofPolicy restricts what customers may upload as transfer proof.
type ProofPolicy struct {
	MaxBytes     int64
	AllowedTypes []string
}

func NewProofPolicy(maxSizeMB int64, allowedTypes []string) ProofPolicy {
	return ProofPolicy{MaxBytes: maxSizeMB * 1024 * 1024, AllowedTypes: allowedTypes}
}

// Allows reports whether contentType (parameters ignored) is accepted.
func (p ProofPolicy) Allows(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, t := range p.AllowedTypes {
		if strings.EqualFold(t, mediaType) {
			return true
		}
	}
	return false
}

// ProofKey builds payment-proofs/<bookingID>/<uuid><ext>. The original file
// name only contributes its extension.
func ProofKey(bookingID, filename, contentType string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" || len(ext) > 5 {
		ext = extensionFor(contentType)
	}
	return fmt.Sprintf("payment-proofs/%s/%s%s", bookingID, uuid.NewString(), ext)
}

func extensionFor(contentType string) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "application/pdf":
		return ".pdf"
	}
	return ""
}
