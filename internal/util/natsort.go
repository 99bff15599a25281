package util

import "sort"

// NaturalLess reports whether a sorts before b when embedded digit runs are
// compared numerically instead of byte-wise, so "host2" comes before
// "host10". Text runs compare lexically.
func NaturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			an, arest := splitDigits(a)
			bn, brest := splitDigits(b)
			if an != bn {
				// Compare as numbers: strip leading zeros, then by
				// length, then lexically.
				at, bt := trimZeros(an), trimZeros(bn)
				if len(at) != len(bt) {
					return len(at) < len(bt)
				}
				if at != bt {
					return at < bt
				}
				// Same numeric value ("01" vs "1"): fewer zeros first.
				return len(an) < len(bn)
			}
			a, b = arest, brest
			continue
		}
		at, arest := splitText(a)
		bt, brest := splitText(b)
		if at != bt {
			return at < bt
		}
		a, b = arest, brest
	}
	return len(a) < len(b)
}

// NaturalSort sorts names in place using NaturalLess.
func NaturalSort(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return NaturalLess(names[i], names[j])
	})
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func splitDigits(s string) (run, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func splitText(s string) (run, rest string) {
	i := 0
	for i < len(s) && !isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func trimZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}
