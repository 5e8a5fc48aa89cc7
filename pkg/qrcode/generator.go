package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when the content is empty or whitespace only.
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrNoCertificate is returned by Share when the certificate id is missing.
	ErrNoCertificate = errors.New("certificate id cannot be empty")
	// ErrGenerationFailed is returned when the underlying encoder fails.
	ErrGenerationFailed = errors.New("failed to generate QR code")
)

// defaultSize is the edge length in pixels used when no size is specified.
const defaultSize = 256

// ShareURL builds the public verification link for an earned badge
// certificate. An empty certificate id yields the site root.
func ShareURL(baseURL, certificateID string) string {
	base := strings.TrimRight(baseURL, "/")
	id := strings.TrimSpace(certificateID)
	if id == "" {
		return base
	}
	return base + "/verify/" + id
}

// Share renders the verification link for a certificate as a PNG QR code.
// Unlike ShareURL it refuses an empty certificate id, since a code pointing
// at the site root is never what the earner meant to share.
func Share(baseURL, certificateID string, size int) ([]byte, error) {
	if strings.TrimSpace(certificateID) == "" {
		return nil, ErrNoCertificate
	}
	return Generate(ShareURL(baseURL, certificateID), size)
}

// Generate encodes content as a PNG QR code of the given edge size.
// Non-positive sizes fall back to 256px. Badge codes are typically scanned
// off another phone's screen or a printed certificate, so the highest
// recovery level is used to tolerate glare and creases.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	code, err := skipqrcode.New(content, skipqrcode.High)
	if err != nil {
		return nil, errors.Join(ErrGenerationFailed, err)
	}
	png, err := code.PNG(size)
	if err != nil {
		return nil, errors.Join(ErrGenerationFailed, err)
	}
	return png, nil
}

// GenerateDataURI encodes content as a QR code and returns it as a
// data:image/png;base64 URI suitable for an <img> src attribute.
func GenerateDataURI(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}
