package divine

// neutralBrightness is returned for an empty row range so that callers
// treating >128 as bright see an empty region as neither.
const neutralBrightness = 128.0

// RegionBrightness computes the mean Rec. 601 luminance
// (0.299R + 0.587G + 0.114B) over rows [startY, endY) of a tightly
// packed RGBA buffer, across the full width.
func RegionBrightness(pix []byte, width, startY, endY int) float64 {
	if startY >= endY || width <= 0 {
		return neutralBrightness
	}
	var sum float64
	var count int
	for y := startY; y < endY; y++ {
		row := y * width * 4
		for x := 0; x < width; x++ {
			i := row + x*4
			if i+2 >= len(pix) {
				break
			}
			sum += 0.299*float64(pix[i]) + 0.587*float64(pix[i+1]) + 0.114*float64(pix[i+2])
			count++
		}
	}
	if count == 0 {
		return neutralBrightness
	}
	return sum / float64(count)
}
