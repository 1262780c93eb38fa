package grading

import (
	"regexp"

	"github.com/samber/lo"
)

// space also matches no-break and other Unicode space separators, which RE2's
// \s leaves out.
const space = `[\s\p{Zs}]`

var (
	coordPattern    = regexp.MustCompile(`\b\d{2}-\d{2}` + space + `[NS]` + space + `\d{3}-\d{2}` + space + `[EW]\b`)
	callSignPattern = regexp.MustCompile(`/([A-Z0-9]{3,6})\b`)
	utcPattern      = regexp.MustCompile(`\b\d{4}` + space + `UTC\b`)
	vhfPattern      = regexp.MustCompile(`(?i)\bVHF channel` + space + `\d+\b`)
)

// ExtractRequiredTokens returns the identifying substrings of reference that an
// answer must reproduce verbatim: coordinates, call signs (without the leading
// slash), UTC times and VHF channel mentions. Matches are grouped by kind in that
// order and deduplicated, keeping the first occurrence.
func ExtractRequiredTokens(reference string) []string {
	if reference == "" {
		return []string{}
	}
	var found []string
	found = append(found, coordPattern.FindAllString(reference, -1)...)
	for _, m := range callSignPattern.FindAllStringSubmatch(reference, -1) {
		found = append(found, m[1])
	}
	found = append(found, utcPattern.FindAllString(reference, -1)...)
	found = append(found, vhfPattern.FindAllString(reference, -1)...)
	return lo.Uniq(found)
}
