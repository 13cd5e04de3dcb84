package quill

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// Image describes a static image after it went through processImage.
type Image struct {
	Filename string
	Width    int
	Height   int
	Size     int
	Resized  bool
}

// isImage reports whether name is a format processImage can re-encode.
func isImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// processImage scales src down to maxWidth when it is wider, keeping the
// aspect ratio and the original format. Images that already fit are returned
// byte for byte.
func processImage(src []byte, filename string, maxWidth, quality int) (Image, []byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image config %s: %w", filename, err)
	}

	img := Image{
		Filename: filename,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Size:     len(src),
	}
	if maxWidth <= 0 || cfg.Width <= maxWidth {
		return img, src, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image %s: %w", filename, err)
	}

	bounds := decoded.Bounds()
	newH := bounds.Dy() * maxWidth / bounds.Dx()
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), decoded, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality})
	case "png":
		err = png.Encode(&buf, dst)
	default:
		return img, src, nil
	}
	if err != nil {
		return Image{}, nil, fmt.Errorf("encode %s %s: %w", format, filename, err)
	}

	img.Width = maxWidth
	img.Height = newH
	img.Size = buf.Len()
	img.Resized = true
	return img, buf.Bytes(), nil
}
