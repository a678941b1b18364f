package content

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts a YouTube-style ISO-8601 period ("PT1H2M3S")
// to seconds. Unparseable input yields 0.
func ParseISODuration(d string) int {
	m := isoDurationRe.FindStringSubmatch(strings.TrimSpace(d))
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	minutes, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	seconds, _ := strconv.Atoi(zeroIfEmpty(m[3]))
	return hours*3600 + minutes*60 + seconds
}

// ParseClock converts a display duration ("15:32" or "1:23:45") to seconds.
// Unparseable input yields 0.
func ParseClock(d string) int {
	parts := strings.Split(strings.TrimSpace(d), ":")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0
		}
		nums = append(nums, n)
	}
	switch len(nums) {
	case 2:
		return nums[0]*60 + nums[1]
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2]
	}
	return 0
}

// FormatDuration renders seconds as "H:MM:SS", or "M:SS" under an hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
