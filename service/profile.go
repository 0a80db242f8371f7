package service

import (
	"fmt"

	"pumpline/pkg/logger"
)

// ComputeProfile 逐段计算沿程、局部损失以及能量线
func ComputeProfile(cfg *DesignConfig) (Profile, []string, error) {
	var warnings []string

	d := cfg.Pipe.Diameter
	g := cfg.Fluid.Gravity
	v := Velocity(cfg.FlowM3s(), d)
	re := Reynolds(v, d, cfg.Fluid.Viscosity)

	if cfg.Pipe.MaxVelocity > 0 && v > cfg.Pipe.MaxVelocity {
		msg := fmt.Sprintf("流速 %.2f m/s 超过推荐最大值 %.2f m/s", v, cfg.Pipe.MaxVelocity)
		logger.Logger.Warn(msg)
		warnings = append(warnings, msg)
	}

	p := Profile{
		StartElevation: cfg.Profile.StartElevation,
		Velocity:       v,
		Segments:       make([]SegmentResult, 0, len(cfg.Profile.Segments)),
	}

	var distance, cumLoss float64
	elevation := cfg.Profile.StartElevation
	for _, seg := range cfg.Profile.Segments {
		mat, err := cfg.material(seg.Material)
		if err != nil {
			return Profile{}, nil, fmt.Errorf("segment %s: %w", seg.ID, err)
		}
		matName := seg.Material
		if matName == "" {
			matName = cfg.Pipe.Material
		}

		f := FrictionFactor(cfg.Pipe.Friction, re, mat.Roughness/d, cfg.Pipe.DarcyFactor)
		hf := DarcyWeisbachLoss(f, seg.Length, d, v, g)
		hm := MinorLoss(cfg.Pipe.MinorLossK, v, g)

		distance += seg.Length
		cumLoss += hf + hm
		elevation += seg.ElevationChange

		p.Segments = append(p.Segments, SegmentResult{
			ID:              seg.ID,
			Station:         seg.Station,
			Material:        matName,
			Length:          seg.Length,
			ElevationChange: seg.ElevationChange,
			Velocity:        v,
			Reynolds:        re,
			FrictionFactor:  f,
			FrictionLoss:    hf,
			MinorLoss:       hm,
			Distance:        distance,
			CumulativeLoss:  cumLoss,
			Elevation:       elevation,
			EnergyLine:      elevation + cumLoss,
		})

		p.StaticHead += seg.ElevationChange
		p.FrictionLoss += hf
		p.MinorLoss += hm
	}
	p.TotalHead = p.StaticHead + p.FrictionLoss + p.MinorLoss

	return p, warnings, nil
}
