package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// NextCode generates the next sequential document code for a prefix by
// scanning existing codes, taking max(numeric suffixes)+1 and zero-padding
// to the widest suffix seen (minimum two digits). Codes with the wrong
// prefix or a non-numeric suffix are ignored.
func NextCode(prefix string, existing []string) string {
	var highest int64
	width := 2
	for _, code := range existing {
		suffix, ok := strings.CutPrefix(code, prefix)
		if !ok || suffix == "" {
			continue
		}
		n, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
		if len(suffix) > width {
			width = len(suffix)
		}
	}
	next := highest + 1
	if digits := len(strconv.FormatInt(next, 10)); digits > width {
		width = digits
	}
	return fmt.Sprintf("%s%0*d", prefix, width, next)
}
