package service

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"pumpline/pkg/curve"
)

type FrictionModel string

const (
	FrictionDarcy      FrictionModel = "darcy"       // 固定达西系数
	FrictionSwameeJain FrictionModel = "swamee-jain" // Swamee-Jain 显式公式
)

type FluidConfig struct {
	Density   float64 // kg/m3
	Gravity   float64 // m/s2
	Viscosity float64 // 运动黏度 m2/s
}

// Material 管材：粗糙度用于沿程损失，许用应力用于壁厚
type Material struct {
	Roughness       float64 // 绝对粗糙度 m
	YieldStrength   float64 // 屈服强度 Pa
	DesignFactor    float64 // 环向设计系数 F1
	AllowableStress float64 // 直接给定的许用应力 Pa，优先于 F1*Sy
}

func (m Material) Allowable() float64 {
	if m.AllowableStress > 0 {
		return m.AllowableStress
	}
	return m.DesignFactor * m.YieldStrength
}

type PipeConfig struct {
	Diameter    float64 // 内径 m
	Material    string  // 默认管材
	Friction    FrictionModel
	DarcyFactor float64 // Friction 为 darcy 时使用
	MinorLossK  float64 // 每段局部损失系数
	MaxVelocity float64 // 推荐最大流速 m/s，0 不检查
}

// Segment 管段，Station 为所属泵站
type Segment struct {
	ID               string
	Length           float64 // m
	ElevationChange  float64 // m
	Material         string  // 为空时用 Pipe.Material
	Station          string
	AdoptedThickness float64 // mm，0 时取泵站的值
}

type ProfileConfig struct {
	StartElevation float64 // 起点高程 msnm
	Segments       []Segment
}

type PumpConfig struct {
	Model       string
	Head        []curve.Point // m
	Efficiency  []curve.Point // %
	Power       []curve.Point // kW
	NPSH        []curve.Point // m，可为空
	CurveDir    string        // 厂家曲线文件目录，覆盖上面的点
	MinParallel int
	MaxParallel int
	TablePoints int
}

type StationConfig struct {
	Name             string
	Pumps            int     // 站内并联泵数
	AdoptedThickness float64 // mm
}

type TankConfig struct {
	Autonomy time.Duration
	Height   float64 // m
}

// DesignConfig 一次设计计算的全部输入，构造后只读
type DesignConfig struct {
	Project   string
	Flow      float64 // 总设计流量 L/s
	Fluid     FluidConfig
	Pipe      PipeConfig
	Materials map[string]Material
	Profile   ProfileConfig
	Pump      PumpConfig
	Stations  []StationConfig
	Tank      TankConfig
}

// DefaultDesignConfig Ovejería 输水线：800 L/s，API 5L X65，Goulds 3600 曲线，三座泵站
func DefaultDesignConfig() *DesignConfig {
	return &DesignConfig{
		Project: "Tranque Ovejería",
		Flow:    800,
		Fluid: FluidConfig{
			Density:   1000,
			Gravity:   9.81,
			Viscosity: 1e-6,
		},
		Pipe: PipeConfig{
			Diameter:    0.80,
			Material:    "x65",
			Friction:    FrictionSwameeJain,
			DarcyFactor: 0.02,
			MaxVelocity: 2.0,
		},
		Materials: map[string]Material{
			"x65":      {Roughness: 0.045e-3, YieldStrength: 448e6, DesignFactor: 0.72},
			"steel":    {Roughness: 0.045e-3, AllowableStress: 150e6},
			"concrete": {Roughness: 0.3e-3, AllowableStress: 20e6},
		},
		Profile: ProfileConfig{
			StartElevation: 745,
			Segments: []Segment{
				{ID: "2-3", Length: 23000, ElevationChange: 845, Station: "Est.1"},
				{ID: "3-4", Length: 2870, ElevationChange: 40, Station: "Est.1"},
				{ID: "4-5", Length: 7840, ElevationChange: 617, Station: "Est.2"},
				{ID: "5-6", Length: 8670, ElevationChange: 125, Station: "Est.2"},
				{ID: "6-7", Length: 320, ElevationChange: -18, Station: "Est.3"},
				{ID: "7-8", Length: 9900, ElevationChange: 170, Station: "Est.3"},
				{ID: "8-9", Length: 5870, ElevationChange: 375, Station: "Est.3"},
			},
		},
		Pump: PumpConfig{
			Model:       "Goulds 3600",
			Head:        []curve.Point{{Flow: 40, Value: 970}, {Flow: 80, Value: 960}, {Flow: 160, Value: 890}, {Flow: 200, Value: 840}, {Flow: 280, Value: 620}},
			Efficiency:  []curve.Point{{Flow: 40, Value: 33}, {Flow: 80, Value: 56}, {Flow: 160, Value: 81}, {Flow: 220, Value: 85}, {Flow: 280, Value: 79}},
			Power:       []curve.Point{{Flow: 40, Value: 1200}, {Flow: 80, Value: 1400}, {Flow: 160, Value: 1750}, {Flow: 200, Value: 1950}, {Flow: 260, Value: 2150}, {Flow: 280, Value: 3400}},
			NPSH:        []curve.Point{{Flow: 80, Value: 4.5}, {Flow: 160, Value: 5.0}, {Flow: 200, Value: 7.2}, {Flow: 240, Value: 11.0}, {Flow: 280, Value: 17.0}},
			MinParallel: 1,
			MaxParallel: 9,
			TablePoints: 100,
		},
		Stations: []StationConfig{
			{Name: "Est.1", Pumps: 7, AdoptedThickness: 32},
			{Name: "Est.2", Pumps: 4, AdoptedThickness: 50},
			{Name: "Est.3", Pumps: 3, AdoptedThickness: 70},
		},
		Tank: TankConfig{
			Autonomy: 30 * time.Minute,
			Height:   5,
		},
	}
}

// Clone 深拷贝，供并发计算各自修改
func (c *DesignConfig) Clone() *DesignConfig {
	out := *c
	out.Materials = maps.Clone(c.Materials)
	out.Profile.Segments = slices.Clone(c.Profile.Segments)
	out.Pump.Head = slices.Clone(c.Pump.Head)
	out.Pump.Efficiency = slices.Clone(c.Pump.Efficiency)
	out.Pump.Power = slices.Clone(c.Pump.Power)
	out.Pump.NPSH = slices.Clone(c.Pump.NPSH)
	out.Stations = slices.Clone(c.Stations)
	return &out
}

func (c *DesignConfig) WithDiameter(d float64) *DesignConfig {
	out := c.Clone()
	out.Pipe.Diameter = d
	return out
}

// FlowM3s 总流量 m3/s
func (c *DesignConfig) FlowM3s() float64 {
	return c.Flow / 1000.0
}

func (c *DesignConfig) material(name string) (Material, error) {
	if name == "" {
		name = c.Pipe.Material
	}
	m, ok := c.Materials[name]
	if !ok {
		return Material{}, fmt.Errorf("%w: unknown material %q", ErrInvalidInput, name)
	}
	return m, nil
}

func (c *DesignConfig) station(name string) (StationConfig, bool) {
	for _, s := range c.Stations {
		if s.Name == name {
			return s, true
		}
	}
	return StationConfig{}, false
}

// DecodeDesignConfig 以默认配置为底，覆盖 v 中出现的键
func DecodeDesignConfig(v *viper.Viper) (*DesignConfig, error) {
	cfg := DefaultDesignConfig()
	if v == nil {
		return cfg, nil
	}

	setString(v, "project", &cfg.Project)
	setFloat(v, "flow", &cfg.Flow)

	setFloat(v, "fluid.density", &cfg.Fluid.Density)
	setFloat(v, "fluid.gravity", &cfg.Fluid.Gravity)
	setFloat(v, "fluid.viscosity", &cfg.Fluid.Viscosity)

	setFloat(v, "pipe.diameter", &cfg.Pipe.Diameter)
	setString(v, "pipe.material", &cfg.Pipe.Material)
	setFloat(v, "pipe.darcyFactor", &cfg.Pipe.DarcyFactor)
	setFloat(v, "pipe.minorLossK", &cfg.Pipe.MinorLossK)
	setFloat(v, "pipe.maxVelocity", &cfg.Pipe.MaxVelocity)
	if v.IsSet("pipe.friction") {
		fm := FrictionModel(strings.ToLower(v.GetString("pipe.friction")))
		if fm != FrictionDarcy && fm != FrictionSwameeJain {
			return nil, fmt.Errorf("%w: unknown friction model %q", ErrInvalidInput, fm)
		}
		cfg.Pipe.Friction = fm
	}

	if v.IsSet("materials") {
		for name, raw := range v.GetStringMap("materials") {
			m, err := parseMaterial(cfg.Materials[name], raw)
			if err != nil {
				return nil, fmt.Errorf("material %s: %w", name, err)
			}
			cfg.Materials[name] = m
		}
	}

	setFloat(v, "profile.startElevation", &cfg.Profile.StartElevation)
	if v.IsSet("profile.segments") {
		segs, err := parseSegments(v.Get("profile.segments"))
		if err != nil {
			return nil, err
		}
		cfg.Profile.Segments = segs
	}

	setString(v, "pump.model", &cfg.Pump.Model)
	setString(v, "pump.curveDir", &cfg.Pump.CurveDir)
	setInt(v, "pump.minParallel", &cfg.Pump.MinParallel)
	setInt(v, "pump.maxParallel", &cfg.Pump.MaxParallel)
	setInt(v, "pump.tablePoints", &cfg.Pump.TablePoints)
	for key, dst := range map[string]*[]curve.Point{
		"pump.head":       &cfg.Pump.Head,
		"pump.efficiency": &cfg.Pump.Efficiency,
		"pump.power":      &cfg.Pump.Power,
		"pump.npsh":       &cfg.Pump.NPSH,
	} {
		if !v.IsSet(key) {
			continue
		}
		pts, err := parsePoints(v.Get(key))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		*dst = pts
	}
	if cfg.Pump.CurveDir != "" {
		imported, err := ImportCurveDir(cfg.Pump.CurveDir)
		if err != nil {
			return nil, err
		}
		applyImportedCurves(&cfg.Pump, imported)
	}

	if v.IsSet("stations") {
		stations, err := parseStations(v.Get("stations"))
		if err != nil {
			return nil, err
		}
		cfg.Stations = stations
	}

	if v.IsSet("tank.autonomy") {
		d, err := cast.ToDurationE(v.Get("tank.autonomy"))
		if err != nil {
			return nil, fmt.Errorf("%w: tank.autonomy: %v", ErrInvalidInput, err)
		}
		cfg.Tank.Autonomy = d
	}
	setFloat(v, "tank.height", &cfg.Tank.Height)

	return cfg, nil
}

func setFloat(v *viper.Viper, key string, dst *float64) {
	if v.IsSet(key) {
		*dst = v.GetFloat64(key)
	}
}

func setInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

// field 不区分大小写取 map 中的值
func field(m map[string]any, names ...string) (any, bool) {
	for _, name := range names {
		for k, val := range m {
			if strings.EqualFold(k, name) {
				return val, true
			}
		}
	}
	return nil, false
}

func floatField(m map[string]any, dst *float64, names ...string) error {
	raw, ok := field(m, names...)
	if !ok {
		return nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidInput, names[0], err)
	}
	*dst = f
	return nil
}

func stringField(m map[string]any, names ...string) string {
	raw, ok := field(m, names...)
	if !ok {
		return ""
	}
	return cast.ToString(raw)
}

// parseMaterial 只覆盖 raw 中出现的字段，其余沿用 base
func parseMaterial(base Material, raw any) (Material, error) {
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return Material{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	out := base
	for _, f := range []struct {
		dst   *float64
		names []string
	}{
		{&out.Roughness, []string{"roughness", "eps"}},
		{&out.YieldStrength, []string{"yieldStrength", "sy"}},
		{&out.DesignFactor, []string{"designFactor", "f1"}},
		{&out.AllowableStress, []string{"allowableStress", "sigmaAllow"}},
	} {
		if err = floatField(m, f.dst, f.names...); err != nil {
			return Material{}, err
		}
	}
	return out, nil
}

func parseSegments(raw any) ([]Segment, error) {
	items, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: profile.segments: %v", ErrInvalidInput, err)
	}
	segs := make([]Segment, 0, len(items))
	for i, item := range items {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %d: %v", ErrInvalidInput, i, err)
		}
		seg := Segment{
			ID:       stringField(m, "id"),
			Material: stringField(m, "material"),
			Station:  stringField(m, "station", "group"),
		}
		if seg.ID == "" {
			return nil, fmt.Errorf("%w: segment %d has no id", ErrInvalidInput, i)
		}
		if err = floatField(m, &seg.Length, "length", "l"); err != nil {
			return nil, err
		}
		if err = floatField(m, &seg.ElevationChange, "elevationChange", "dz"); err != nil {
			return nil, err
		}
		if err = floatField(m, &seg.AdoptedThickness, "adoptedThickness"); err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

func parseStations(raw any) ([]StationConfig, error) {
	items, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: stations: %v", ErrInvalidInput, err)
	}
	out := make([]StationConfig, 0, len(items))
	for i, item := range items {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, fmt.Errorf("%w: station %d: %v", ErrInvalidInput, i, err)
		}
		st := StationConfig{Name: stringField(m, "name")}
		if st.Name == "" {
			return nil, fmt.Errorf("%w: station %d has no name", ErrInvalidInput, i)
		}
		if raw, ok := field(m, "pumps"); ok {
			if st.Pumps, err = cast.ToIntE(raw); err != nil {
				return nil, fmt.Errorf("%w: station %s pumps: %v", ErrInvalidInput, st.Name, err)
			}
		}
		if err = floatField(m, &st.AdoptedThickness, "adoptedThickness"); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// parsePoints 接受 [[q, v], ...] 或 [{flow: q, value: v}, ...]
func parsePoints(raw any) ([]curve.Point, error) {
	items, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	pts := make([]curve.Point, 0, len(items))
	for i, item := range items {
		var p curve.Point
		if pair, err := cast.ToSliceE(item); err == nil {
			if len(pair) != 2 {
				return nil, fmt.Errorf("%w: point %d: want [flow, value]", ErrInvalidInput, i)
			}
			if p.Flow, err = cast.ToFloat64E(pair[0]); err != nil {
				return nil, fmt.Errorf("%w: point %d: %v", ErrInvalidInput, i, err)
			}
			if p.Value, err = cast.ToFloat64E(pair[1]); err != nil {
				return nil, fmt.Errorf("%w: point %d: %v", ErrInvalidInput, i, err)
			}
			pts = append(pts, p)
			continue
		}
		m, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, fmt.Errorf("%w: point %d: %v", ErrInvalidInput, i, err)
		}
		if err = floatField(m, &p.Flow, "flow", "q"); err != nil {
			return nil, err
		}
		if err = floatField(m, &p.Value, "value", "v"); err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}
