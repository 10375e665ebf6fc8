// MODUL: formats_test
// ZWECK: Tests fuer Format-Erkennung und Validierung
// INPUT: Test-Bytes mit verschiedenen Signaturen
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing
// HINWEISE: Testet Magic-Byte-Erkennung fuer JPEG/PNG/GIF/WebP

package vision

import (
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected ImageFormat
	}{
		{
			name:     "JPEG Magic Bytes",
			data:     []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
			expected: FormatJPEG,
		},
		{
			name:     "PNG Magic Bytes",
			data:     []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A},
			expected: FormatPNG,
		},
		{
			name:     "GIF Magic Bytes",
			data:     []byte("GIF89a\x01\x00"),
			expected: FormatGIF,
		},
		{
			name:     "WebP Magic Bytes",
			data:     []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x00, 0x00, 0x00, 'W', 'E', 'B', 'P'},
			expected: FormatWebP,
		},
		{
			name:     "RIFF ohne WEBP",
			data:     []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x00, 0x00, 0x00, 'W', 'A', 'V', 'E'},
			expected: FormatUnknown,
		},
		{
			name:     "Zu kurze Daten",
			data:     []byte{0xFF, 0xD8},
			expected: FormatUnknown,
		},
		{
			name:     "Leere Daten",
			data:     []byte{},
			expected: FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectFormat(tt.data)
			if result != tt.expected {
				t.Errorf("DetectFormat() = %v, erwartet %v", result, tt.expected)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []ImageFormat{FormatJPEG, FormatPNG, FormatGIF, FormatWebP} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%s) = %v", f, err)
		}
	}

	if err := ValidateFormat(FormatUnknown); err != ErrUnknownFormat {
		t.Errorf("ValidateFormat(unknown) = %v, erwartet ErrUnknownFormat", err)
	}
	if err := ValidateFormat(ImageFormat("tiff")); err != ErrUnsupportedFormat {
		t.Errorf("ValidateFormat(tiff) = %v, erwartet ErrUnsupportedFormat", err)
	}
}

func TestMimeType(t *testing.T) {
	if FormatPNG.MimeType() != "image/png" || FormatUnknown.MimeType() != "application/octet-stream" {
		t.Error("MimeType liefert falsche Werte")
	}
}
