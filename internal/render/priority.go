package render

// mapPriority compresses a 1-based position within an ordered priority scale
// of size levels (1 = lowest urgency) into the calendar format's fixed scale,
// where 1 is most urgent and 9 least urgent (0 would mean undefined and is
// never produced).
//
// Position 1 maps to 9, position 2 to 5 and everything from position 3 up to
// the top of the scale to 1. Out-of-range positions, including any position
// on a scale too short to have a third level, map to 9.
func mapPriority(position, levels int) int {
	switch {
	case position == 1:
		return 9
	case position == 2:
		return 5
	case position >= 3 && position <= levels:
		return 1
	default:
		return 9
	}
}
