package service

import "pumpline/pkg/curve"

type SegmentResult struct {
	ID              string  `json:"id" yaml:"id"`
	Station         string  `json:"station" yaml:"station"`
	Material        string  `json:"material" yaml:"material"`
	Length          float64 `json:"length" yaml:"length"`
	ElevationChange float64 `json:"elevationChange" yaml:"elevationChange"`
	Velocity        float64 `json:"velocity" yaml:"velocity"`
	Reynolds        float64 `json:"reynolds" yaml:"reynolds"`
	FrictionFactor  float64 `json:"frictionFactor" yaml:"frictionFactor"`
	FrictionLoss    float64 `json:"frictionLoss" yaml:"frictionLoss"`
	MinorLoss       float64 `json:"minorLoss" yaml:"minorLoss"`
	Distance        float64 `json:"distance" yaml:"distance"`             // 段末累计里程 m
	CumulativeLoss  float64 `json:"cumulativeLoss" yaml:"cumulativeLoss"` // 段末累计损失 m
	Elevation       float64 `json:"elevation" yaml:"elevation"`           // 段末节点高程 m
	EnergyLine      float64 `json:"energyLine" yaml:"energyLine"`
}

type Profile struct {
	StartElevation float64         `json:"startElevation" yaml:"startElevation"`
	Velocity       float64         `json:"velocity" yaml:"velocity"`
	Segments       []SegmentResult `json:"segments" yaml:"segments"`
	StaticHead     float64         `json:"staticHead" yaml:"staticHead"`
	FrictionLoss   float64         `json:"frictionLoss" yaml:"frictionLoss"`
	MinorLoss      float64         `json:"minorLoss" yaml:"minorLoss"`
	TotalHead      float64         `json:"totalHead" yaml:"totalHead"` // TDH
}

// ArrangementCandidate 每站 Parallel 台泵并联，Stations 座泵站串联
type ArrangementCandidate struct {
	Parallel       int     `json:"parallel" yaml:"parallel"`
	PumpFlow       float64 `json:"pumpFlow" yaml:"pumpFlow"`
	PumpHead       float64 `json:"pumpHead" yaml:"pumpHead"`
	PumpEfficiency float64 `json:"pumpEfficiency" yaml:"pumpEfficiency"`
	PumpPower      float64 `json:"pumpPower" yaml:"pumpPower"`
	NPSHRequired   float64 `json:"npshRequired,omitempty" yaml:"npshRequired,omitempty"`
	Stations       int     `json:"stations" yaml:"stations"`
	AvailableHead  float64 `json:"availableHead" yaml:"availableHead"`
	InstalledPower float64 `json:"installedPower" yaml:"installedPower"`
	Extrapolated   bool    `json:"extrapolated" yaml:"extrapolated"` // 单泵流量超出厂家曲线范围
}

type StationResult struct {
	Name            string   `json:"name" yaml:"name"`
	Segments        []string `json:"segments" yaml:"segments"`
	Length          float64  `json:"length" yaml:"length"`
	ElevationChange float64  `json:"elevationChange" yaml:"elevationChange"`
	FrictionLoss    float64  `json:"frictionLoss" yaml:"frictionLoss"`
	RequiredHead    float64  `json:"requiredHead" yaml:"requiredHead"`
	Pumps           int      `json:"pumps" yaml:"pumps"`
	PumpFlow        float64  `json:"pumpFlow" yaml:"pumpFlow"`
	PumpHead        float64  `json:"pumpHead" yaml:"pumpHead"` // 泵站设计扬程
	PumpEfficiency  float64  `json:"pumpEfficiency" yaml:"pumpEfficiency"`
	PumpPower       float64  `json:"pumpPower" yaml:"pumpPower"`
	NPSHRequired    float64  `json:"npshRequired,omitempty" yaml:"npshRequired,omitempty"`
	InstalledPower  float64  `json:"installedPower" yaml:"installedPower"`
	SurplusHead     float64  `json:"surplusHead" yaml:"surplusHead"`
	Extrapolated    bool     `json:"extrapolated" yaml:"extrapolated"`
}

type ThicknessResult struct {
	Segment           string  `json:"segment" yaml:"segment"`
	Station           string  `json:"station" yaml:"station"`
	DesignHead        float64 `json:"designHead" yaml:"designHead"`
	Pressure          float64 `json:"pressure" yaml:"pressure"` // Pa
	PressureBar       float64 `json:"pressureBar" yaml:"pressureBar"`
	Required          float64 `json:"required" yaml:"required"` // mm
	Adopted           float64 `json:"adopted" yaml:"adopted"`   // mm
	Utilization       float64 `json:"utilization" yaml:"utilization"`
	HoopStress        float64 `json:"hoopStress" yaml:"hoopStress"` // MPa
	Allowable         float64 `json:"allowable" yaml:"allowable"`   // MPa
	StressUtilization float64 `json:"stressUtilization" yaml:"stressUtilization"`
	OK                bool    `json:"ok" yaml:"ok"`
}

type TankResult struct {
	AutonomyMin float64 `json:"autonomyMin" yaml:"autonomyMin"`
	Volume      float64 `json:"volume" yaml:"volume"`
	Height      float64 `json:"height" yaml:"height"`
	Diameter    float64 `json:"diameter" yaml:"diameter"`
	Count       int     `json:"count" yaml:"count"`
}

type PerformancePoint struct {
	Flow               float64 `json:"flow" yaml:"flow"`
	Head               float64 `json:"head" yaml:"head"`
	Efficiency         float64 `json:"efficiency" yaml:"efficiency"`
	Power              float64 `json:"power" yaml:"power"`
	NPSH               float64 `json:"npsh" yaml:"npsh"`
	HydraulicPower     float64 `json:"hydraulicPower" yaml:"hydraulicPower"`
	ComputedEfficiency float64 `json:"computedEfficiency" yaml:"computedEfficiency"`
}

type Parameter struct {
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Average  float64 `json:"average" yaml:"average"`
	Variance float64 `json:"variance" yaml:"variance"`
}

// PumpData 厂家曲线样本；HeadCurve 为扬程曲线在其自身流量范围内的等距采样
type PumpData struct {
	Head       []curve.Point `json:"head" yaml:"head"`
	Efficiency []curve.Point `json:"efficiency" yaml:"efficiency"`
	Power      []curve.Point `json:"power" yaml:"power"`
	NPSH       []curve.Point `json:"npsh,omitempty" yaml:"npsh,omitempty"`
	HeadCurve  []curve.Point `json:"headCurve" yaml:"headCurve"`
}

type DesignResult struct {
	Project              string                 `json:"project" yaml:"project"`
	PumpModel            string                 `json:"pumpModel" yaml:"pumpModel"`
	Flow                 float64                `json:"flow" yaml:"flow"`
	Diameter             float64                `json:"diameter" yaml:"diameter"`
	Friction             FrictionModel          `json:"friction" yaml:"friction"`
	Profile              Profile                `json:"profile" yaml:"profile"`
	Candidates           []ArrangementCandidate `json:"candidates" yaml:"candidates"`
	Selected             ArrangementCandidate   `json:"selected" yaml:"selected"`
	Stations             []StationResult        `json:"stations" yaml:"stations"`
	Thickness            []ThicknessResult      `json:"thickness" yaml:"thickness"`
	ThicknessUtilization Parameter              `json:"thicknessUtilization" yaml:"thicknessUtilization"`
	Tank                 TankResult             `json:"tank" yaml:"tank"`
	Performance          []PerformancePoint     `json:"performance" yaml:"performance"`
	Pump                 PumpData               `json:"pump" yaml:"pump"`
	Warnings             []string               `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type SweepRow struct {
	Diameter  float64               `json:"diameter" yaml:"diameter"`
	Velocity  float64               `json:"velocity" yaml:"velocity"`
	TotalHead float64               `json:"totalHead" yaml:"totalHead"`
	Best      *ArrangementCandidate `json:"best,omitempty" yaml:"best,omitempty"`
	Error     string                `json:"error,omitempty" yaml:"error,omitempty"`
}
