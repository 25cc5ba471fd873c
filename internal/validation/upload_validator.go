// Package validation checks raw report uploads before extraction: size caps
// and coarse format sniffing, so obviously broken uploads fail fast with a
// clear message instead of a parser error.
package validation

import (
	"bytes"
	"fmt"
	"log/slog"
)

var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// UploadValidator provides common validation for raw report uploads
type UploadValidator struct {
	logger   *slog.Logger
	maxBytes int64
}

// NewUploadValidator creates a new upload validator
func NewUploadValidator(logger *slog.Logger, maxBytes int64) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}
	return &UploadValidator{
		logger:   logger,
		maxBytes: maxBytes,
	}
}

// ValidateUpload checks that the raw bytes are non-empty, within the size
// cap, and look like either an XLSX workbook or delimited text.
func (v *UploadValidator) ValidateUpload(raw []byte) error {
	if len(raw) == 0 {
		v.logger.Error("Upload rejected: empty payload")
		return fmt.Errorf("upload is empty")
	}

	if int64(len(raw)) > v.maxBytes {
		v.logger.Error("Upload rejected: payload too large",
			slog.Int("size", len(raw)),
			slog.Int64("max", v.maxBytes))
		return fmt.Errorf("upload of %d bytes exceeds the %d byte limit", len(raw), v.maxBytes)
	}

	if bytes.HasPrefix(raw, zipMagic) {
		return nil
	}

	if looksBinary(raw) {
		v.logger.Error("Upload rejected: unrecognized binary format")
		return fmt.Errorf("upload is neither an XLSX workbook nor delimited text")
	}

	return nil
}

// looksBinary reports whether the leading bytes contain control characters
// that rule out delimited text.
func looksBinary(raw []byte) bool {
	probe := raw
	if len(probe) > 512 {
		probe = probe[:512]
	}
	for _, b := range probe {
		if b == 0x00 {
			return true
		}
	}
	return false
}
