package service

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"pumpline/pkg/curve"
	"pumpline/pkg/logger"
)

// PumpCurves 同一型号泵的厂家曲线，NPSH 可为 nil
type PumpCurves struct {
	Head       *curve.Model
	Efficiency *curve.Model
	Power      *curve.Model
	NPSH       *curve.Model
}

func NewPumpCurves(cfg PumpConfig) (PumpCurves, error) {
	var (
		pc  PumpCurves
		err error
	)
	if pc.Head, err = curve.New(cfg.Head); err != nil {
		return PumpCurves{}, fmt.Errorf("%w: head curve: %w", ErrInvalidInput, err)
	}
	if pc.Efficiency, err = curve.New(cfg.Efficiency); err != nil {
		return PumpCurves{}, fmt.Errorf("%w: efficiency curve: %w", ErrInvalidInput, err)
	}
	if pc.Power, err = curve.New(cfg.Power); err != nil {
		return PumpCurves{}, fmt.Errorf("%w: power curve: %w", ErrInvalidInput, err)
	}
	if len(cfg.NPSH) > 0 {
		if pc.NPSH, err = curve.New(cfg.NPSH); err != nil {
			return PumpCurves{}, fmt.Errorf("%w: npsh curve: %w", ErrInvalidInput, err)
		}
	}
	return pc, nil
}

// inRange 单泵流量是否在 H/η/P 三条曲线的数据范围内
func (pc PumpCurves) inRange(q float64) bool {
	return pc.Head.InRange(q) && pc.Efficiency.InRange(q) && pc.Power.InRange(q)
}

func (pc PumpCurves) npsh(q float64) float64 {
	if pc.NPSH == nil {
		return 0
	}
	return pc.NPSH.Estimate(q)
}

type SearchInput struct {
	TotalFlow   float64 // L/s
	TargetHead  float64 // m
	MinParallel int
	MaxParallel int
}

// SearchArrangements 枚举每站并联台数，串联站数取覆盖 TDH 的最小整数，
// 按总装机功率升序返回（功率相同时保持并联台数升序）。
// 超出厂家曲线的单泵流量照常外推计算，只做标记。
func SearchArrangements(pc PumpCurves, in SearchInput) ([]ArrangementCandidate, error) {
	lo := max(in.MinParallel, 1)
	if in.MaxParallel < lo {
		return nil, fmt.Errorf("%w: empty parallel range %d..%d", ErrNoFeasibleArrangement, in.MinParallel, in.MaxParallel)
	}

	candidates := make([]ArrangementCandidate, 0, in.MaxParallel-lo+1)
	for n := lo; n <= in.MaxParallel; n++ {
		q := in.TotalFlow / float64(n)
		if !(q > 0) {
			continue
		}

		h := pc.Head.Estimate(q)
		if !(h > 0) || math.IsInf(h, 0) {
			logger.Logger.Debugf("并联 %d 台: 单泵流量 %.1f L/s 扬程 %.1f m 无效，跳过", n, q, h)
			continue
		}

		stations := max(int(math.Ceil(in.TargetHead/h)), 1)
		p := pc.Power.Estimate(q)

		c := ArrangementCandidate{
			Parallel:       n,
			PumpFlow:       q,
			PumpHead:       h,
			PumpEfficiency: pc.Efficiency.Estimate(q),
			PumpPower:      p,
			NPSHRequired:   pc.npsh(q),
			Stations:       stations,
			AvailableHead:  float64(stations) * h,
			InstalledPower: float64(n*stations) * p,
			Extrapolated:   !pc.inRange(q),
		}
		if c.AvailableHead < in.TargetHead {
			// ceil 的浮点误差
			c.Stations++
			c.AvailableHead = float64(c.Stations) * h
			c.InstalledPower = float64(n*c.Stations) * p
		}
		candidates = append(candidates, c)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: flow %.1f L/s, head %.1f m", ErrNoFeasibleArrangement, in.TotalFlow, in.TargetHead)
	}

	slices.SortStableFunc(candidates, func(a, b ArrangementCandidate) int {
		return cmp.Compare(a.InstalledPower, b.InstalledPower)
	})

	return candidates, nil
}
