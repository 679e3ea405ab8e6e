package qr

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"seatbook/internal/shared/config"

	qrcode "github.com/skip2/go-qrcode"
)

var ErrInvalidPath = errors.New("invalid path")

type Service interface {
	// TargetURL is the link encoded for path, or the configured endpoint when path is empty
	TargetURL(path string) (string, error)
	PNG(path string) ([]byte, error)
}

type service struct {
	baseURL  string
	endpoint string
	size     int
}

func NewService(cfg *config.Config) Service {
	return &service{
		baseURL:  strings.TrimRight(cfg.AppBaseURL, "/"),
		endpoint: cfg.QR.Endpoint,
		size:     cfg.QR.Size,
	}
}

func (s *service) TargetURL(path string) (string, error) {
	if path == "" {
		path = s.endpoint
	}
	// only paths on our own host, never a foreign URL
	parsed, err := url.Parse(path)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" || strings.HasPrefix(path, "//") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return s.baseURL + "/" + strings.TrimLeft(path, "/"), nil
}

func (s *service) PNG(path string) ([]byte, error) {
	target, err := s.TargetURL(path)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(target, qrcode.Medium, s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// WriteFile renders the QR code for target into a PNG file
func WriteFile(target string, size int, filename string) error {
	if err := qrcode.WriteFile(target, qrcode.Medium, size, filename); err != nil {
		return fmt.Errorf("failed to write QR code: %w", err)
	}
	return nil
}
