package report

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

func round[T constraints.Float](v T, digits int) T {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return v
	}
	p := math.Pow(10, float64(digits))
	return T(math.Round(float64(v)*p) / p)
}

// num 保留 digits 位小数并去掉多余的 0
func num[T constraints.Float](v T, digits int) string {
	return strconv.FormatFloat(float64(round(v, digits)), 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
