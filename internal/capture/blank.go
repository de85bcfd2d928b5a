package capture

import "image"

// IsBlank reports whether every channel's value range collapses to a single
// constant across the whole frame (an all-black or otherwise uniform image).
// Capture APIs return such frames for occluded or sleeping windows, and they
// must be treated as failures rather than recorded as evidence.
//
// A legitimately solid-color window (e.g. a plain white loading screen) also
// trips this check and is discarded; known false positive.
func IsBlank(img *image.RGBA) bool {
	if img == nil {
		return true
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return true
	}

	var minC, maxC [3]uint8
	first := true
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[(y-bounds.Min.Y)*img.Stride : (y-bounds.Min.Y)*img.Stride+bounds.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			for c := 0; c < 3; c++ {
				v := row[x+c]
				if first {
					minC[c], maxC[c] = v, v
					continue
				}
				if v < minC[c] {
					minC[c] = v
				}
				if v > maxC[c] {
					maxC[c] = v
				}
			}
			first = false
		}
	}

	for c := 0; c < 3; c++ {
		if minC[c] != maxC[c] {
			return false
		}
	}
	return true
}

// validFrame rejects zero-byte and zero-dimension frames.
func validFrame(img *image.RGBA) bool {
	return img != nil && img.Bounds().Dx() > 0 && img.Bounds().Dy() > 0 && len(img.Pix) > 0
}
