// internal/app/helper.go
package app

// clamp clamps v into [min, max].
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// compute widths for the data table columns from the available total width
func tableColWidths(total int) (wTime, wValue int) {
	minTime, minValue := 10, 12

	remain := total - (minTime + minValue)
	if remain < 0 {
		remain = 0
	}

	// the value column takes the spare room, time labels are fixed width
	wTime = minTime + remain/4
	wValue = minValue + remain - remain/4

	wTime = clamp(wTime, minTime, 24)
	wValue = clamp(wValue, minValue, 40)
	return
}
