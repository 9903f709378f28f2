package card

import (
	"strconv"
	"strings"
)

// Arrow is a link arrow index. Cards store arrows as these indices.
type Arrow int

const (
	ArrowTop Arrow = iota
	ArrowTopRight
	ArrowRight
	ArrowBottomRight
	ArrowBottom
	ArrowBottomLeft
	ArrowLeft
	ArrowTopLeft
)

// ArrowCodes are the URL codes for each arrow, indexed by Arrow
var ArrowCodes = []string{"T", "TR", "R", "BR", "B", "BL", "L", "TL"}

// Code returns the URL code of the arrow
func (a Arrow) Code() string {
	if a < 0 || int(a) >= len(ArrowCodes) {
		return strconv.Itoa(int(a))
	}
	return ArrowCodes[a]
}

// ParseArrow accepts either an arrow code (case-insensitive) or its decimal index
func ParseArrow(s string) (Arrow, bool) {
	s = strings.TrimSpace(s)
	for i, code := range ArrowCodes {
		if strings.EqualFold(s, code) {
			return Arrow(i), true
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= len(ArrowCodes) {
		return 0, false
	}
	return Arrow(n), true
}
