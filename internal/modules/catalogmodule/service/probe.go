package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
)

// ImageInfo is what ProbeImage learns from an image's header.
type ImageInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

// ProbeImage reads the dimensions of a JPEG, PNG, GIF or WebP image without
// decoding its pixels.
func ProbeImage(data []byte) (ImageInfo, error) {
	if isWebP(data) {
		cfg, err := webp.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return ImageInfo{}, fmt.Errorf("failed to read webp header: %w", err)
		}
		return ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: "webp"}, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("failed to read image header: %w", err)
	}
	return ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
