package pipeline

// Natural sort: filenames are split into alternating runs of non-digit and
// digit characters; digit runs compare by numeric magnitude, text runs
// lexically. "media2.m4a" therefore sorts before "media10.m4a".

// naturalLess reports whether a orders before b under natural sort.
// Runs are compared positionally; when every shared run compares equal the
// name with fewer runs orders first. Equal keys are left to the caller's
// stable sort, which preserves discovery order.
func naturalLess(a, b string) bool {
	ar, br := splitRuns(a), splitRuns(b)
	for i := 0; i < len(ar) && i < len(br); i++ {
		x, y := ar[i], br[i]
		if x == y {
			continue
		}
		xd, yd := isDigits(x), isDigits(y)
		switch {
		case xd && yd:
			if c := compareNumeric(x, y); c != 0 {
				return c < 0
			}
			// Same magnitude, different text ("01" vs "1"): keep going so
			// later runs can decide.
		case xd != yd:
			// A digit run orders before a text run at the same position,
			// matching byte order ('0'-'9' < letters).
			return xd
		default:
			return x < y
		}
	}
	return len(ar) < len(br)
}

// splitRuns splits s into maximal runs of digit and non-digit characters:
// "media10.m4a" → ["media", "10", ".m", "4", "a"].
func splitRuns(s string) []string {
	if s == "" {
		return nil
	}
	var runs []string
	start := 0
	prev := isDigitByte(s[0])
	for i := 1; i < len(s); i++ {
		cur := isDigitByte(s[i])
		if cur != prev {
			runs = append(runs, s[start:i])
			start = i
			prev = cur
		}
	}
	return append(runs, s[start:])
}

// compareNumeric compares two digit runs by numeric magnitude without
// parsing, so arbitrarily long runs cannot overflow: strip leading zeros,
// then the longer run is larger, then byte order decides.
func compareNumeric(a, b string) int {
	a = trimLeadingZeros(a)
	b = trimLeadingZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigitByte(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }
