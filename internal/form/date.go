package form

import "strings"

// FormatDate turns an ISO date (YYYY-MM-DD) into DD/MM/YYYY. Input that is
// not three hyphen-separated digit groups comes back unchanged.
func FormatDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	for _, p := range parts {
		if p == "" || OnlyDigits(p) != p {
			return iso
		}
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
