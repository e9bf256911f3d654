package docvault

import (
	"fmt"
	"strconv"
	"strings"
)

// Document versions are single-decimal strings ("1.0", "1.1", ... "1.9",
// "2.0") that bump by exactly 0.1 on every re-upload. They are handled
// as integer tenths so "1.9" bumps to "2.0" without float drift.

func parseTenths(version string) (int, error) {
	whole, frac, found := strings.Cut(version, ".")
	if !found {
		frac = "0"
	}
	if len(frac) != 1 {
		return 0, fmt.Errorf("version %q: expected a single decimal place", version)
	}
	w, err := strconv.Atoi(whole)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("version %q: bad whole part", version)
	}
	f, err := strconv.Atoi(frac)
	if err != nil {
		return 0, fmt.Errorf("version %q: bad fractional part", version)
	}
	return w*10 + f, nil
}

func formatTenths(tenths int) string {
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}

// BumpVersion returns the version one tenth above the given one.
func BumpVersion(version string) (string, error) {
	t, err := parseTenths(version)
	if err != nil {
		return "", err
	}
	return formatTenths(t + 1), nil
}

// VersionLess reports whether a < b in version order.
func VersionLess(a, b string) bool {
	ta, errA := parseTenths(a)
	tb, errB := parseTenths(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ta < tb
}
