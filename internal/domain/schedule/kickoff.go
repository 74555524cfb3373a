package schedule

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	clockPattern  = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	numberPattern = regexp.MustCompile(`\d+`)
)

// SuggestKickoff infers a kickoff time from free-text availability such as "Di ab 19:30" or
// "Mittwochs 20 Uhr". The first valid clock time wins, then the first bare hour; otherwise "".
func SuggestKickoff(availability string) string {
	for _, m := range clockPattern.FindAllStringSubmatchIndex(availability, -1) {
		if touchesDigit(availability, m[0], m[1]) {
			continue
		}
		hour, _ := strconv.Atoi(availability[m[2]:m[3]])
		minute, _ := strconv.Atoi(availability[m[4]:m[5]])
		if hour <= 23 && minute <= 59 {
			return fmt.Sprintf("%02d:%02d", hour, minute)
		}
	}

	for _, m := range numberPattern.FindAllStringIndex(availability, -1) {
		if m[1]-m[0] > 2 {
			continue
		}
		hour, _ := strconv.Atoi(availability[m[0]:m[1]])
		if hour <= 23 {
			return fmt.Sprintf("%02d:00", hour)
		}
	}

	return ""
}

func touchesDigit(s string, start, end int) bool {
	if start > 0 && isDigit(s[start-1]) {
		return true
	}
	return end < len(s) && isDigit(s[end])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
