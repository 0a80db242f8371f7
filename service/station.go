package service

import (
	"fmt"

	"pumpline/pkg/logger"
)

// ComputeStations 按管段所属泵站汇总所需扬程，并按站内并联台数取泵的工况点
func ComputeStations(cfg *DesignConfig, profile Profile, pc PumpCurves) ([]StationResult, []string, error) {
	var warnings []string

	index := make(map[string]int, len(cfg.Stations))
	out := make([]StationResult, len(cfg.Stations))
	for i, st := range cfg.Stations {
		if st.Pumps <= 0 {
			return nil, nil, fmt.Errorf("%w: station %s has %d pumps", ErrInvalidInput, st.Name, st.Pumps)
		}
		index[st.Name] = i
		out[i] = StationResult{Name: st.Name, Pumps: st.Pumps}
	}

	for _, seg := range profile.Segments {
		if seg.Station == "" {
			continue
		}
		i, ok := index[seg.Station]
		if !ok {
			return nil, nil, fmt.Errorf("%w: segment %s references unknown station %q", ErrInvalidInput, seg.ID, seg.Station)
		}
		st := &out[i]
		st.Segments = append(st.Segments, seg.ID)
		st.Length += seg.Length
		st.ElevationChange += seg.ElevationChange
		st.FrictionLoss += seg.FrictionLoss + seg.MinorLoss
	}

	for i := range out {
		st := &out[i]
		if len(st.Segments) == 0 {
			return nil, nil, fmt.Errorf("%w: station %s has no segments", ErrInvalidInput, st.Name)
		}

		q := cfg.Flow / float64(st.Pumps)
		st.RequiredHead = st.ElevationChange + st.FrictionLoss
		st.PumpFlow = q
		st.PumpHead = pc.Head.Estimate(q)
		st.PumpEfficiency = pc.Efficiency.Estimate(q)
		st.PumpPower = pc.Power.Estimate(q)
		st.NPSHRequired = pc.npsh(q)
		st.InstalledPower = float64(st.Pumps) * st.PumpPower
		st.SurplusHead = st.PumpHead - st.RequiredHead
		st.Extrapolated = !pc.inRange(q)

		if st.SurplusHead < 0 {
			msg := fmt.Sprintf("%s: 泵扬程 %.1f m 不足以覆盖所需 %.1f m", st.Name, st.PumpHead, st.RequiredHead)
			logger.Logger.Warn(msg)
			warnings = append(warnings, msg)
		}
		if st.Extrapolated {
			msg := fmt.Sprintf("%s: 单泵流量 %.1f L/s 超出厂家曲线范围，结果为外推值", st.Name, q)
			logger.Logger.Warn(msg)
			warnings = append(warnings, msg)
		}
	}

	return out, warnings, nil
}

// designHeads 泵站名 -> 设计扬程，用于壁厚计算
func designHeads(stations []StationResult) map[string]float64 {
	m := make(map[string]float64, len(stations))
	for _, st := range stations {
		m[st.Name] = st.PumpHead
	}
	return m
}
