package util

import "strings"

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Signature is the dedup key for a listing: normalized title, company
// and location joined with "|". Two listings with equal signatures are
// the same posting regardless of which board surfaced them.
func Signature(title, company, location string) string {
	return strings.ToLower(CleanText(title)) + "|" +
		strings.ToLower(CleanText(company)) + "|" +
		strings.ToLower(CleanText(location))
}

// StripSalaryNoise trims common decorations boards put around salary
// strings ("€ 3.500 - € 4.200 per month • bonus").
func StripSalaryNoise(s string) string {
	s = CleanText(s)
	for _, cut := range []string{"•", "|"} {
		if i := strings.Index(s, cut); i >= 0 {
			s = strings.TrimSpace(s[:i])
		}
	}
	return s
}
