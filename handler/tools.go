package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"pumpline/report"
	"pumpline/service"
)

var errBadArgs = errors.New("参数不合法")

// parseFloats 命令行参数转数值，支持逗号分隔
func parseFloats(args []string) ([]float64, error) {
	var out []float64
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			f, err := cast.ToFloat64E(part)
			if err != nil {
				return nil, fmt.Errorf("%w: %q 不是数值", errBadArgs, part)
			}
			out = append(out, f)
		}
	}
	return out, nil
}

func parseQuantity(s string) (service.Quantity, error) {
	q := service.Quantity(strings.ToLower(s))
	switch q {
	case service.QuantityHead, service.QuantityEfficiency, service.QuantityPower, service.QuantityNPSH:
		return q, nil
	}
	return "", fmt.Errorf("%w: 未知曲线 %q，可选 head/efficiency/power/npsh", errBadArgs, s)
}

func parseFormats(names []string) ([]report.Format, error) {
	var out []report.Format
	for _, name := range names {
		f, err := report.ParseFormat(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadArgs, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// diameterRange from..to 步长 step，含两端
func diameterRange(from, to, step float64) ([]float64, error) {
	if step <= 0 || from <= 0 || to < from {
		return nil, fmt.Errorf("%w: 管径范围 %g..%g 步长 %g", errBadArgs, from, to, step)
	}
	var out []float64
	for i := 0; ; i++ {
		d := from + float64(i)*step
		if d > to+step*1e-9 {
			break
		}
		out = append(out, d)
	}
	return out, nil
}

func errCodeOf(err error) errcode {
	switch {
	case errors.Is(err, service.ErrNoFeasibleArrangement):
		return errNoFeasible
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, errBadArgs):
		return errBadRequest
	default:
		return errInternalServer
	}
}
