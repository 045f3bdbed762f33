package entities

import (
	"net/http"
	"strings"

	domainerrors "photocontest/contexts/photo-contest/submission-service/domain/errors"
)

const DefaultMaxUploadBytes int64 = 10 << 20

var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func ExtensionFor(mimeType string) string {
	return allowedMimeTypes[mimeType]
}

// ValidateFile checks size and type and returns the effective mime type. The
// declared type must agree with the sniffed content.
func ValidateFile(file FileUpload, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	size := int64(len(file.Data))
	if size == 0 {
		return "", domainerrors.ErrEmptyFile
	}
	if size > maxBytes {
		return "", domainerrors.FileTooLargeError{MaxBytes: maxBytes}
	}
	sniffed := http.DetectContentType(file.Data)
	if _, ok := allowedMimeTypes[sniffed]; !ok {
		return "", domainerrors.ErrUnsupportedType
	}
	declared := strings.TrimSpace(strings.ToLower(file.ContentType))
	if idx := strings.Index(declared, ";"); idx >= 0 {
		declared = strings.TrimSpace(declared[:idx])
	}
	if declared == "image/jpg" || declared == "image/pjpeg" {
		declared = "image/jpeg"
	}
	if declared != "" && declared != "application/octet-stream" {
		if _, ok := allowedMimeTypes[declared]; !ok {
			return "", domainerrors.ErrUnsupportedType
		}
		if declared != sniffed {
			return "", domainerrors.ErrContentMismatch
		}
	}
	return sniffed, nil
}
