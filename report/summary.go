package report

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	"pumpline/service"
)

func WriteYAML(path string, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func WriteJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Summary 精简的结果摘要，不含性能表和全部候选方案
type Summary struct {
	Project   string                       `json:"project" yaml:"project"`
	PumpModel string                       `json:"pumpModel" yaml:"pumpModel"`
	Flow      float64                      `json:"flow" yaml:"flow"`
	Diameter  float64                      `json:"diameter" yaml:"diameter"`
	TotalHead float64                      `json:"totalHead" yaml:"totalHead"`
	Selected  service.ArrangementCandidate `json:"selected" yaml:"selected"`
	Stations  []service.StationResult      `json:"stations" yaml:"stations"`
	Thickness service.Parameter            `json:"thicknessUtilization" yaml:"thicknessUtilization"`
	Tank      service.TankResult           `json:"tank" yaml:"tank"`
	Warnings  []string                     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func NewSummary(res *service.DesignResult) Summary {
	return Summary{
		Project:   res.Project,
		PumpModel: res.PumpModel,
		Flow:      res.Flow,
		Diameter:  res.Diameter,
		TotalHead: round(res.Profile.TotalHead, 3),
		Selected:  res.Selected,
		Stations:  res.Stations,
		Thickness: res.ThicknessUtilization,
		Tank:      res.Tank,
		Warnings:  res.Warnings,
	}
}
