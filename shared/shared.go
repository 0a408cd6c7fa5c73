package shared

import (
	"math"
	"strings"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// BuildCacheKey joins key parts with the conventional ":" separator.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}
