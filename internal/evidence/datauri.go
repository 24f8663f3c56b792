package evidence

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const base64Marker = ";base64,"

// EncodeDataURI упаковывает байты в data:<mime>;base64,<data>
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + base64Marker + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI splits a base64 data URI into its MIME type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mimeType, payload, ok := strings.Cut(rest, base64Marker)
	if !ok || mimeType == "" {
		return "", nil, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return strings.ToLower(mimeType), data, nil
}

// DetectMIME sniffs the payload and falls back to declared when the
// content is not recognised as an image or video.
func DetectMIME(data []byte, declared string) string {
	detected := mimetype.Detect(data)
	if k := KindOf(detected.String()); k.Valid() {
		return detected.String()
	}
	return declared
}

// KindOf maps a MIME type onto an evidence kind; the zero Kind means
// neither image nor video.
func KindOf(mimeType string) Kind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return KindPhoto
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	}
	return ""
}

// ValidateAttachments checks references submitted with a report: at most
// MaxItems, each a stored-object https URL or an image/video data URI no
// larger than MaxEncodedBytes.
func ValidateAttachments(refs []string) error {
	if len(refs) > MaxItems {
		return ErrLimitReached
	}
	for i, ref := range refs {
		if strings.HasPrefix(ref, "https://") {
			u, err := url.ParseRequestURI(ref)
			if err != nil || u.Host == "" {
				return fmt.Errorf("evidence %d: %w", i, ErrInvalidDataURI)
			}
			continue
		}
		mimeType, _, err := ParseDataURI(ref)
		if err != nil {
			return fmt.Errorf("evidence %d: %w", i, err)
		}
		switch KindOf(mimeType) {
		case KindPhoto:
			if len(ref) > MaxEncodedBytes {
				return fmt.Errorf("evidence %d: %w", i, ErrPhotoTooLarge)
			}
		case KindVideo:
			if len(ref) > MaxEncodedBytes {
				return fmt.Errorf("evidence %d: %w", i, ErrVideoTooLarge)
			}
		default:
			return fmt.Errorf("evidence %d: %w", i, ErrInvalidDataURI)
		}
	}
	return nil
}
