package imagepipe

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Defaults keep request payload size and model latency predictable: anything
// larger than 512x512 is downsampled before it ever reaches the vision model.
const (
	DefaultMaxWidth  = 512
	DefaultMaxHeight = 512
	DefaultQuality   = 40
)

type IPipeline interface {
	EncodeDataURL(data []byte, contentType string) string
	Normalize(dataURL string) string
	DecodePayload(dataURL string) (data []byte, mimeType string, err error)
}

type pipeline struct {
	maxWidth  int
	maxHeight int
	quality   int
}

func New() IPipeline {
	return &pipeline{
		maxWidth:  DefaultMaxWidth,
		maxHeight: DefaultMaxHeight,
		quality:   DefaultQuality,
	}
}

// EncodeDataURL wraps raw upload bytes into a data URL without touching them.
func (p *pipeline) EncodeDataURL(data []byte, contentType string) string {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}

// Normalize decodes a data URL, downsamples it to fit the pipeline bounds
// (never upsampling) and re-encodes it as JPEG at the fixed quality factor.
// If the payload cannot be decoded the input is returned unchanged so a bad
// upload degrades instead of failing the flow.
func (p *pipeline) Normalize(dataURL string) string {
	raw, _, err := p.DecodePayload(dataURL)
	if err != nil {
		return dataURL
	}

	img, err := decodeImage(raw)
	if err != nil {
		return dataURL
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.maxWidth || bounds.Dy() > p.maxHeight {
		img = imaging.Fit(img, p.maxWidth, p.maxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		return dataURL
	}

	return p.EncodeDataURL(buf.Bytes(), "image/jpeg")
}

// DecodePayload splits a data URL into its raw bytes and MIME type.
func (p *pipeline) DecodePayload(dataURL string) ([]byte, string, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, "", errors.New("not a data URL")
	}

	comma := strings.Index(dataURL, ",")
	if comma == -1 {
		return nil, "", errors.New("malformed data URL")
	}

	header := dataURL[len("data:"):comma]
	mimeType := strings.TrimSuffix(header, ";base64")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	raw, err := base64.StdEncoding.DecodeString(dataURL[comma+1:])
	if err != nil {
		return nil, "", err
	}

	return raw, mimeType, nil
}

func decodeImage(raw []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(raw)); err == nil {
		return img, nil
	}

	// Some webp encoders produce files the registered decoder rejects.
	if img, err := webp.Decode(bytes.NewReader(raw)); err == nil {
		return img, nil
	}

	return nil, errors.New("image: unknown format")
}
