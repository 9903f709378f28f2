package card

import "strings"

// BanStatus is the tournament legality of a card
type BanStatus string

const (
	Unrestricted BanStatus = ""
	Forbidden    BanStatus = "Forbidden"
	Limited      BanStatus = "Limited"
	SemiLimited  BanStatus = "Semi-Limited"
)

// BanStatuses lists the restricted statuses in precedence order
var BanStatuses = []BanStatus{Forbidden, Limited, SemiLimited}

// ParseBanStatus maps a filter value and its synonyms onto a status.
// Unknown values return Unrestricted and false.
func ParseBanStatus(s string) (BanStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "banned", "forbidden":
		return Forbidden, true
	case "limited":
		return Limited, true
	case "semi", "semilimited", "semi-limited", "semi_limited":
		return SemiLimited, true
	}
	return Unrestricted, false
}

func (s BanStatus) String() string {
	if s == Unrestricted {
		return "Unlimited"
	}
	return string(s)
}
