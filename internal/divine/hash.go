package divine

// seedStride samples roughly one byte per 100 RGBA pixels. Keeps hashing
// proportional to len/stride so large images stay cheap.
const seedStride = 400

// SeedFromPixels folds a sparse sample of an RGBA buffer into a 32-bit
// seed using the classic h = h*31 + b recurrence. Not a content hash:
// the only requirements are determinism and sensitivity to the image.
func SeedFromPixels(pix []byte) uint32 {
	var h int32
	for i := 0; i < len(pix); i += seedStride {
		h = h*31 + int32(pix[i])
	}
	if h < 0 {
		h = -h
	}
	return uint32(h)
}
