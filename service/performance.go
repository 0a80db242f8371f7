package service

import (
	"fmt"

	"pumpline/pkg/curve"
)

// PerformanceTable 在 H、η、NPSH 曲线的公共流量范围上等距取点，
// 对比厂家效率与按 ρgQH/P 反算的效率
func PerformanceTable(cfg *DesignConfig, pc PumpCurves) ([]PerformancePoint, error) {
	models := []*curve.Model{pc.Head, pc.Efficiency}
	if pc.NPSH != nil {
		models = append(models, pc.NPSH)
	}
	lo, hi, ok := curve.CommonRange(models...)
	if !ok {
		return nil, fmt.Errorf("%w: pump curves have no common flow range", ErrInvalidInput)
	}

	n := cfg.Pump.TablePoints
	if n < 2 {
		n = 2
	}

	flows := curve.Linspace(lo, hi, n)
	out := make([]PerformancePoint, len(flows))
	for i, q := range flows {
		h := pc.Head.Estimate(q)
		p := pc.Power.Estimate(q)
		ph := HydraulicPowerKW(cfg.Fluid.Density, cfg.Fluid.Gravity, q/1000.0, h)

		pt := PerformancePoint{
			Flow:           q,
			Head:           h,
			Efficiency:     pc.Efficiency.Estimate(q),
			Power:          p,
			NPSH:           pc.npsh(q),
			HydraulicPower: ph,
		}
		if p > 0 {
			pt.ComputedEfficiency = 100.0 * ph / p
		}
		out[i] = pt
	}
	return out, nil
}
