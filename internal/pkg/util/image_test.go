package util

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeAvatar(t *testing.T) {
	out, err := NormalizeAvatar(pngBytes(t, 800, 600))
	if err != nil {
		t.Fatalf("NormalizeAvatar returned error: %v", err)
	}

	decoded, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a decodable image: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() > AvatarMaxDimension || bounds.Dy() > AvatarMaxDimension {
		t.Fatalf("output %dx%d exceeds max dimension %d", bounds.Dx(), bounds.Dy(), AvatarMaxDimension)
	}
}

func TestNormalizeAvatarKeepsSmallImages(t *testing.T) {
	out, err := NormalizeAvatar(pngBytes(t, 64, 64))
	if err != nil {
		t.Fatalf("NormalizeAvatar returned error: %v", err)
	}

	decoded, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a decodable image: %v", err)
	}
	if decoded.Bounds().Dx() != 64 {
		t.Fatalf("small image should not be upscaled, got width %d", decoded.Bounds().Dx())
	}
}

func TestNormalizeAvatarRejectsGarbage(t *testing.T) {
	if _, err := NormalizeAvatar([]byte("definitely not an image")); err == nil {
		t.Fatal("undecodable bytes must be rejected")
	}
}

func TestGetSafeContentType(t *testing.T) {
	reader := bytes.NewReader(pngBytes(t, 8, 8))
	mime, err := GetSafeContentType(reader)
	if err != nil {
		t.Fatalf("GetSafeContentType returned error: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("mime = %q, want image/png", mime)
	}

	// 嗅探后读取位置要复位
	if pos, _ := reader.Seek(0, 1); pos != 0 {
		t.Fatalf("reader position = %d, want 0", pos)
	}
}
