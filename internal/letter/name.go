package letter

import (
	"regexp"
	"strings"
)

var nameDelimiters = regexp.MustCompile(`[\s.,;]+`)

// SplitFullName decomposes a free-text display name into first and last
// components. Everything up to the final delimiter-separated token becomes
// the first name, joined by single spaces; the final token is the last
// name. A single token has no last name.
func SplitFullName(fullName string) (first, last string) {
	spl := nameDelimiters.Split(fullName, -1)

	if len(spl) > 1 {
		last = spl[len(spl)-1]
		first = strings.Join(spl[:len(spl)-1], " ")
		return first, last
	}
	return spl[0], ""
}
