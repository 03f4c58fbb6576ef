package repository

import (
	"strconv"
	"time"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
)

// timeNow is swappable in tests.
var timeNow = time.Now

// tableOrDefault picks the configured table name, falling back to the
// convention default so constructors work with a zero config in tests.
func tableOrDefault(name, def string) string {
	if name != "" {
		return name
	}
	return def
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func paiseToString(p entities.Paise) string {
	return strconv.FormatInt(int64(p), 10)
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
