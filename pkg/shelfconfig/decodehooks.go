package shelfconfig

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// durationDecodeHook returns a mapstructure decode hook that converts
// strings to time.Duration, accepting both Go's human-readable form
// ("30s", "5m", "1h", "1d") and an ISO-8601 duration form ("PT30S").
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

var iso8601Duration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseDuration parses a duration string accepting Go's human-readable
// form ("10s", "500ms", "1m", "2h", "1d" and the long-form aliases
// "seconds", "ms", "minutes", …) as well as an ISO-8601 duration
// ("PT30S").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if strings.HasPrefix(s, "P") {
		return parseISO8601Duration(s)
	}

	normalized := normalizeDurationAliases(s)
	return time.ParseDuration(normalized)
}

// normalizeDurationAliases rewrites long-form unit aliases ("seconds",
// "minutes", "ms") to the short units time.ParseDuration understands.
func normalizeDurationAliases(s string) string {
	replacer := strings.NewReplacer(
		"nanoseconds", "ns",
		"microseconds", "us",
		"milliseconds", "ms",
		"seconds", "s",
		"minutes", "m",
		"hours", "h",
		"days", "d",
	)
	s = replacer.Replace(s)

	// time.ParseDuration has no native "d" (day) unit; expand any
	// trailing "Nd" into hours.
	if m := regexp.MustCompile(`^(\d+(?:\.\d+)?)d$`).FindStringSubmatch(s); m != nil {
		days, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return fmt.Sprintf("%gh", days*24)
		}
	}

	return s
}

func parseISO8601Duration(s string) (time.Duration, error) {
	m := iso8601Duration.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid ISO-8601 duration: %q", s)
	}

	var total time.Duration
	if m[1] != "" {
		days, _ := strconv.Atoi(m[1])
		total += time.Duration(days) * 24 * time.Hour
	}
	if m[2] != "" {
		hours, _ := strconv.Atoi(m[2])
		total += time.Duration(hours) * time.Hour
	}
	if m[3] != "" {
		minutes, _ := strconv.Atoi(m[3])
		total += time.Duration(minutes) * time.Minute
	}
	if m[4] != "" {
		seconds, _ := strconv.ParseFloat(m[4], 64)
		total += time.Duration(seconds * float64(time.Second))
	}

	return total, nil
}
