package match

import (
	"regexp"
	"strings"
)

var (
	digitsOnlyRegex = regexp.MustCompile(`^[0-9]+$`)
	// runs of 3 or more digits in a show name, e.g. a year
	hintNumberRegex = regexp.MustCompile(`(?:^|[^a-z]|\b)([0-9]{3,})`)
)

// Normalize turns periods into spaces and strips parts of a show's name that rules would
// otherwise misread as season or episode numbers.
func Normalize(filename, showNameHint string) string {
	filename = strings.ReplaceAll(filename, ".", " ")

	if showNameHint == "" {
		return filename
	}

	// a numeric name always costs its length from the front, even when it isn't there
	if strings.HasPrefix(filename, showNameHint) || digitsOnlyRegex.MatchString(showNameHint) {
		return filename[min(len(showNameHint), len(filename)):]
	}

	for _, m := range hintNumberRegex.FindAllStringSubmatch(showNameHint, -1) {
		filename = removeNumber(filename, m[1])
	}

	return filename
}

// removeNumber deletes every standalone occurrence of number, along with the separator before it
func removeNumber(filename, number string) string {
	re := regexp.MustCompile(`(^|\W)` + regexp.QuoteMeta(number) + `\b`)
	return re.ReplaceAllString(filename, "")
}
