package pictor

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryIntClamped reads an integer query parameter, clamping it into
// [min, max]. A missing or non-numeric value yields def unclamped.
func QueryIntClamped(gc *gin.Context, name string, def, min, max int) int {
	value, exists := gc.GetQuery(name)
	if !exists {
		return def
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return clampInt(v, min, max)
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
