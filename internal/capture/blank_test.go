package capture

import (
	"image"
	"testing"
)

func solidImage(w, h int, r, g, b uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = 255
	}
	return img
}

func TestIsBlankAllBlack(t *testing.T) {
	if !IsBlank(solidImage(10, 10, 0, 0, 0)) {
		t.Error("All-black frame must be classified blank")
	}
}

func TestIsBlankSolidColor(t *testing.T) {
	// A uniform non-black frame still collapses every channel's range to a
	// constant and is classified blank. Known false positive for solid-color
	// loading screens; preserved behavior.
	if !IsBlank(solidImage(10, 10, 255, 255, 255)) {
		t.Error("Solid white frame must be classified blank")
	}
}

func TestIsBlankRealContent(t *testing.T) {
	img := solidImage(10, 10, 30, 30, 30)
	img.Pix[0] = 200 // one differing pixel is enough
	if IsBlank(img) {
		t.Error("Frame with varying pixel values must not be classified blank")
	}
}

func TestIsBlankDegenerateFrames(t *testing.T) {
	if !IsBlank(nil) {
		t.Error("Nil frame must be classified blank")
	}
	if !IsBlank(image.NewRGBA(image.Rect(0, 0, 0, 0))) {
		t.Error("Zero-dimension frame must be classified blank")
	}
}

func TestValidFrame(t *testing.T) {
	if validFrame(nil) {
		t.Error("Nil frame must be invalid")
	}
	if validFrame(image.NewRGBA(image.Rect(0, 0, 0, 0))) {
		t.Error("Zero-dimension frame must be invalid")
	}
	if !validFrame(solidImage(2, 2, 1, 2, 3)) {
		t.Error("Non-empty frame must be valid")
	}
}
