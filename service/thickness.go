package service

import (
	"fmt"
)

// InternalPressure 水柱 h 对应的内压 Pa
func InternalPressure(rho, g, h float64) float64 {
	return rho * g * h
}

// RequiredThickness ASME B31.4 环向应力公式 t = P·D / (2·S)，单位同 D
func RequiredThickness(p, d, allowable float64) float64 {
	return p * d / (2.0 * allowable)
}

// HoopStress 给定壁厚下的环向应力 Pa
func HoopStress(p, d, t float64) float64 {
	return p * d / (2.0 * t)
}

// ComputeThickness 每段的设计扬程取所属泵站的设计扬程，未分配泵站的段取 TDH
func ComputeThickness(cfg *DesignConfig, profile Profile, stations []StationResult) ([]ThicknessResult, error) {
	heads := designHeads(stations)
	d := cfg.Pipe.Diameter

	out := make([]ThicknessResult, 0, len(profile.Segments))
	for i, seg := range profile.Segments {
		mat, err := cfg.material(seg.Material)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", seg.ID, err)
		}
		allowable := mat.Allowable()
		if allowable <= 0 {
			return nil, fmt.Errorf("%w: material %s has no allowable stress", ErrInvalidInput, seg.Material)
		}

		h, ok := heads[seg.Station]
		if !ok {
			h = profile.TotalHead
		}

		p := InternalPressure(cfg.Fluid.Density, cfg.Fluid.Gravity, h)
		reqMM := RequiredThickness(p, d, allowable) * 1000.0
		adoptedMM := adoptedThickness(cfg, cfg.Profile.Segments[i], reqMM)
		hoop := HoopStress(p, d, adoptedMM/1000.0)

		out = append(out, ThicknessResult{
			Segment:           seg.ID,
			Station:           seg.Station,
			DesignHead:        h,
			Pressure:          p,
			PressureBar:       p / 1e5,
			Required:          reqMM,
			Adopted:           adoptedMM,
			Utilization:       reqMM / adoptedMM * 100.0,
			HoopStress:        hoop / 1e6,
			Allowable:         allowable / 1e6,
			StressUtilization: hoop / allowable * 100.0,
			OK:                adoptedMM >= reqMM,
		})
	}
	return out, nil
}

// adoptedThickness 管段 > 泵站 > 计算值
func adoptedThickness(cfg *DesignConfig, seg Segment, required float64) float64 {
	if seg.AdoptedThickness > 0 {
		return seg.AdoptedThickness
	}
	if st, ok := cfg.station(seg.Station); ok && st.AdoptedThickness > 0 {
		return st.AdoptedThickness
	}
	return required
}
