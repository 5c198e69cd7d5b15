// Package sequence generates human-readable record codes such as EMP007 or
// PR0042 from the codes already in use.
package sequence

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// maxSuffix keeps Next from overflowing when it adds one.
const maxSuffix = math.MaxInt32

// Next returns prefix followed by (highest numeric suffix + 1), zero-padded to width.
// Codes whose suffix is not numeric count as 0.
func Next(prefix string, width int, codes []string) string {
	max := 0
	for _, code := range codes {
		if n := Suffix(prefix, code); n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, max+1)
}

// Suffix removes the first occurrence of prefix from code and reads the leading
// integer of what remains, ignoring leading whitespace. Anything unreadable is 0,
// and a suffix larger than maxSuffix is also treated as unreadable.
func Suffix(prefix, code string) int {
	rest := strings.TrimLeftFunc(strings.Replace(code, prefix, "", 1), unicode.IsSpace)

	sign := 1
	if rest != "" && (rest[0] == '-' || rest[0] == '+') {
		if rest[0] == '-' {
			sign = -1
		}
		rest = rest[1:]
	}

	n, digits := 0, 0
	for _, r := range rest {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		if n > maxSuffix {
			return 0
		}
		digits++
	}
	if digits == 0 {
		return 0
	}
	return sign * n
}
