package imagepipe

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"
)

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 120, 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, p IPipeline, dataURL string) (int, int) {
	t.Helper()

	raw, _, err := p.DecodePayload(dataURL)
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Failed to decode normalized image: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := New()
	payload := []byte("hello posture")

	dataURL := p.EncodeDataURL(payload, "image/png")
	if !strings.HasPrefix(dataURL, "data:image/png;base64,") {
		t.Errorf("Unexpected data URL prefix: %q", dataURL)
	}

	raw, mimeType, err := p.DecodePayload(dataURL)
	if err != nil {
		t.Fatalf("DecodePayload failed: %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("Expected mime image/png, got %q", mimeType)
	}
	if !bytes.Equal(raw, payload) {
		t.Error("Round-tripped payload differs from input")
	}
}

func TestEncodeDataURLDefaultsToJPEG(t *testing.T) {
	p := New()

	dataURL := p.EncodeDataURL([]byte{1, 2, 3}, "")
	if !strings.HasPrefix(dataURL, "data:image/jpeg;base64,") {
		t.Errorf("Expected jpeg default, got %q", dataURL)
	}
}

func TestDecodePayloadRejectsNonDataURL(t *testing.T) {
	p := New()

	if _, _, err := p.DecodePayload("https://example.com/photo.jpg"); err == nil {
		t.Error("Expected an error for a non data URL")
	}
	if _, _, err := p.DecodePayload("data:image/jpeg;base64"); err == nil {
		t.Error("Expected an error for a data URL without payload")
	}
}

func TestNormalizeKeepsSmallImage(t *testing.T) {
	p := New()

	dataURL := p.EncodeDataURL(encodeTestJPEG(t, 320, 240), "image/jpeg")
	normalized := p.Normalize(dataURL)

	w, h := decodeDims(t, p, normalized)
	if w != 320 || h != 240 {
		t.Errorf("Expected small image to keep its dimensions, got %dx%d", w, h)
	}
}

func TestNormalizeDownscalesLargeImage(t *testing.T) {
	p := New()

	dataURL := p.EncodeDataURL(encodeTestJPEG(t, 1600, 1200), "image/jpeg")
	normalized := p.Normalize(dataURL)

	w, h := decodeDims(t, p, normalized)
	if w > DefaultMaxWidth || h > DefaultMaxHeight {
		t.Errorf("Expected image to fit %dx%d, got %dx%d", DefaultMaxWidth, DefaultMaxHeight, w, h)
	}

	// Fit preserves the 4:3 aspect ratio.
	if w != 512 || h != 384 {
		t.Errorf("Expected 512x384 after fit, got %dx%d", w, h)
	}
}

func TestNormalizePassesThroughUndecodablePayload(t *testing.T) {
	p := New()

	garbage := p.EncodeDataURL([]byte("definitely not an image"), "image/jpeg")
	if got := p.Normalize(garbage); got != garbage {
		t.Error("Expected undecodable payload to pass through unchanged")
	}

	notDataURL := "just a string"
	if got := p.Normalize(notDataURL); got != notDataURL {
		t.Error("Expected non data URL input to pass through unchanged")
	}
}
