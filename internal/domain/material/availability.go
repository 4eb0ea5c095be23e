package material

import "strings"

// UnavailableLabel is the one status text that flips a material to
// unavailable; anything else (including empty) means it can be sold.
const UnavailableLabel = "nav pieejams"

// AvailableFromStatus derives the availability boolean from a status label.
// The comparison is trimmed and case-insensitive.
func AvailableFromStatus(status string) bool {
	return !strings.EqualFold(strings.TrimSpace(status), UnavailableLabel)
}

// DeriveAvailable applies the write-path rule: an explicit boolean wins,
// otherwise the status text decides, defaulting to available.
func DeriveAvailable(explicit *bool, status string) bool {
	if explicit != nil {
		return *explicit
	}
	return AvailableFromStatus(status)
}
