// Package qr renders backend-issued scan codes as images for display
// at venue entry. The code is opaque to the client; nothing here
// verifies or interprets it.
package qr

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yeqown/go-qrcode"
)

// Render writes a scannable image of code into dir and returns the
// file path. Purely local; no network involved.
func Render(dir, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("empty scan code")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create qr dir: %w", err)
	}

	qrc, err := qrcode.New(code)
	if err != nil {
		return "", fmt.Errorf("build qr for code %s: %w", code, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.jpeg", code))
	if err := qrc.Save(path); err != nil {
		return "", fmt.Errorf("save qr image: %w", err)
	}

	return path, nil
}
