package service

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"pumpline/pkg/curve"
	"pumpline/pkg/logger"
)

type Service struct {
	cfg    *DesignConfig
	curves PumpCurves
}

func NewService(cfg *DesignConfig) (*Service, error) {
	if cfg == nil {
		cfg = DefaultDesignConfig()
	}
	pc, err := NewPumpCurves(cfg.Pump)
	if err != nil {
		logger.Logger.Errorf("构建泵曲线失败: %v", err)
		return nil, err
	}
	return &Service{
		cfg:    cfg.Clone(),
		curves: pc,
	}, nil
}

// Config 返回配置副本
func (s *Service) Config() *DesignConfig {
	return s.cfg.Clone()
}

func (s *Service) curveOf(q Quantity) (*curve.Model, error) {
	var m *curve.Model
	switch q {
	case QuantityHead:
		m = s.curves.Head
	case QuantityEfficiency:
		m = s.curves.Efficiency
	case QuantityPower:
		m = s.curves.Power
	case QuantityNPSH:
		m = s.curves.NPSH
	}
	if m == nil {
		return nil, fmt.Errorf("%w: no %s curve", ErrInvalidInput, q)
	}
	return m, nil
}

type CurveValue struct {
	Flow         float64 `json:"flow" yaml:"flow"`
	Value        float64 `json:"value" yaml:"value"`
	Extrapolated bool    `json:"extrapolated" yaml:"extrapolated"`
}

// EstimateCurve 在给定流量上求某条厂家曲线的值
func (s *Service) EstimateCurve(q Quantity, flows []float64) ([]CurveValue, error) {
	m, err := s.curveOf(q)
	if err != nil {
		return nil, err
	}
	out := make([]CurveValue, len(flows))
	for i, f := range flows {
		out[i] = CurveValue{Flow: f, Value: m.Estimate(f), Extrapolated: !m.InRange(f)}
	}
	return out, nil
}

// Search 以给定目标扬程搜索泵组方案，targetHead 必须为正
func (s *Service) Search(totalFlow, targetHead float64) ([]ArrangementCandidate, error) {
	if !(targetHead > 0) || math.IsInf(targetHead, 0) {
		return nil, fmt.Errorf("%w: target head %g m", ErrInvalidInput, targetHead)
	}
	return SearchArrangements(s.curves, SearchInput{
		TotalFlow:   totalFlow,
		TargetHead:  targetHead,
		MinParallel: s.cfg.Pump.MinParallel,
		MaxParallel: s.cfg.Pump.MaxParallel,
	})
}

// SearchForLine 以管线 TDH 为目标扬程搜索泵组方案
func (s *Service) SearchForLine(totalFlow float64) ([]ArrangementCandidate, error) {
	profile, _, err := ComputeProfile(s.cfg)
	if err != nil {
		return nil, err
	}
	return s.Search(totalFlow, profile.TotalHead)
}

func (s *Service) Thickness() ([]ThicknessResult, error) {
	profile, _, err := ComputeProfile(s.cfg)
	if err != nil {
		return nil, err
	}
	stations, _, err := ComputeStations(s.cfg, profile, s.curves)
	if err != nil {
		return nil, err
	}
	return ComputeThickness(s.cfg, profile, stations)
}

// Design 完整设计：水力剖面 -> 泵组方案 -> 泵站 -> 壁厚 -> 水池 -> 性能表
func pumpData(cfg *DesignConfig, pc PumpCurves) PumpData {
	lo, hi := pc.Head.Range()
	d := PumpData{
		Head:       pc.Head.Points(),
		Efficiency: pc.Efficiency.Points(),
		Power:      pc.Power.Points(),
		HeadCurve:  pc.Head.Sample(lo, hi, max(cfg.Pump.TablePoints, 2)),
	}
	if pc.NPSH != nil {
		d.NPSH = pc.NPSH.Points()
	}
	return d
}

func (s *Service) Design() (*DesignResult, error) {
	cfg := s.cfg

	profile, profileWarn, err := ComputeProfile(cfg)
	if err != nil {
		logger.Logger.Errorf("水力剖面计算失败: %v", err)
		return nil, err
	}

	candidates, err := SearchArrangements(s.curves, SearchInput{
		TotalFlow:   cfg.Flow,
		TargetHead:  profile.TotalHead,
		MinParallel: cfg.Pump.MinParallel,
		MaxParallel: cfg.Pump.MaxParallel,
	})
	if err != nil {
		logger.Logger.Errorf("泵组方案搜索失败: %v", err)
		return nil, err
	}
	selected := candidates[0]

	stations, stationWarn, err := ComputeStations(cfg, profile, s.curves)
	if err != nil {
		logger.Logger.Errorf("泵站计算失败: %v", err)
		return nil, err
	}

	thickness, err := ComputeThickness(cfg, profile, stations)
	if err != nil {
		logger.Logger.Errorf("壁厚计算失败: %v", err)
		return nil, err
	}

	table, err := PerformanceTable(cfg, s.curves)
	if err != nil {
		logger.Logger.Errorf("泵性能表计算失败: %v", err)
		return nil, err
	}

	res := &DesignResult{
		Project:              cfg.Project,
		PumpModel:            cfg.Pump.Model,
		Flow:                 cfg.Flow,
		Diameter:             cfg.Pipe.Diameter,
		Friction:             cfg.Pipe.Friction,
		Profile:              profile,
		Candidates:           candidates,
		Selected:             selected,
		Stations:             stations,
		Thickness:            thickness,
		ThicknessUtilization: calThicknessStats(thickness),
		Tank:                 SizeTanks(cfg),
		Performance:          table,
		Pump:                 pumpData(cfg, s.curves),
		Warnings:             mergeWarnings(profileWarn, extrapolatedWarnings(selected), stationWarn),
	}

	for _, w := range extrapolatedWarnings(selected) {
		logger.Logger.Warn(w)
	}
	logger.Logger.Infof("设计完成: TDH %.1f m，选定每站 %d 台并联 x %d 站，总装机 %.0f kW",
		profile.TotalHead, selected.Parallel, selected.Stations, selected.InstalledPower)

	return res, nil
}

// Sweep 并发计算多个管径的方案，结果顺序与输入一致；单个管径失败只记录在该行
func (s *Service) Sweep(ctx context.Context, diameters []float64) ([]SweepRow, error) {
	rows := make([]SweepRow, len(diameters))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, d := range diameters {
		i, d := i, d
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = s.sweepOne(d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) sweepOne(d float64) SweepRow {
	row := SweepRow{Diameter: d}
	if d <= 0 {
		row.Error = fmt.Sprintf("invalid diameter %g", d)
		return row
	}

	cfg := s.cfg.WithDiameter(d)
	profile, _, err := ComputeProfile(cfg)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Velocity = profile.Velocity
	row.TotalHead = profile.TotalHead

	candidates, err := SearchArrangements(s.curves, SearchInput{
		TotalFlow:   cfg.Flow,
		TargetHead:  profile.TotalHead,
		MinParallel: cfg.Pump.MinParallel,
		MaxParallel: cfg.Pump.MaxParallel,
	})
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Best = &candidates[0]
	return row
}
