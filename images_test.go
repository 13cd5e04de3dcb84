package quill

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestProcessImageResizesJPEG(t *testing.T) {
	img, data, err := processImage(encodeJPEG(t, 1000, 500), "photo.jpg", 800, 80)
	if err != nil {
		t.Fatalf("processImage error: %v", err)
	}
	if !img.Resized {
		t.Errorf("image wider than max should be resized")
	}
	if img.Width != 800 || img.Height != 400 {
		t.Errorf("size = %dx%d, want 800x400", img.Width, img.Height)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	if cfg.Width != 800 {
		t.Errorf("encoded width = %d, want 800", cfg.Width)
	}
	if img.Size != len(data) {
		t.Errorf("Size = %d, want %d", img.Size, len(data))
	}
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	src := encodeJPEG(t, 400, 300)
	img, data, err := processImage(src, "small.jpg", 800, 80)
	if err != nil {
		t.Fatalf("processImage error: %v", err)
	}
	if img.Resized {
		t.Errorf("small image should not be resized")
	}
	if !bytes.Equal(data, src) {
		t.Errorf("small image bytes should be returned unchanged")
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	if _, _, err := processImage([]byte("not an image"), "fake.png", 800, 80); err == nil {
		t.Errorf("processImage should fail on undecodable data")
	}
}

func TestIsImage(t *testing.T) {
	tests := map[string]bool{
		"a.jpg":  true,
		"a.JPEG": true,
		"a.png":  true,
		"a.gif":  false,
		"a.css":  false,
	}
	for in, want := range tests {
		if got := isImage(in); got != want {
			t.Errorf("isImage(%q) = %v, want %v", in, got, want)
		}
	}
}
