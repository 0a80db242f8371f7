package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pumpline/service"
)

type sheet struct {
	name string
	rows [][]any
}

// WriteWorkbook 一个结果一个工作簿，每类结果一个工作表，首行为表头
func WriteWorkbook(path string, res *service.DesignResult) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return err
	}

	sheets := []sheet{
		{"Segments", segmentRows(res)},
		{"Candidates", candidateRows(res)},
		{"Stations", stationRows(res)},
		{"Thickness", thicknessRows(res)},
		{"Tanks", tankRows(res)},
		{"PumpCurve", performanceRows(res)},
	}
	for i, s := range sheets {
		if i == 0 {
			if err = f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return err
			}
		} else if _, err = f.NewSheet(s.name); err != nil {
			return err
		}

		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err = f.SetSheetRow(s.name, cell, &row); err != nil {
				return fmt.Errorf("写入 %s 第 %d 行失败: %w", s.name, r+1, err)
			}
		}

		last, err := excelize.CoordinatesToCellName(len(s.rows[0]), 1)
		if err != nil {
			return err
		}
		if err = f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
			return err
		}
		lastCol, _ := excelize.ColumnNumberToName(len(s.rows[0]))
		if err = f.SetColWidth(s.name, "A", lastCol, 14); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	return f.SaveAs(path)
}

func segmentRows(res *service.DesignResult) [][]any {
	rows := [][]any{{
		"Segment", "Station", "Material", "Length (m)", "ΔZ (m)", "V (m/s)", "Re", "f",
		"hf (m)", "hm (m)", "Distance (m)", "Cum. loss (m)", "Elevation (m)", "Energy line (m)",
	}}
	for _, s := range res.Profile.Segments {
		rows = append(rows, []any{
			s.ID, s.Station, s.Material, s.Length, s.ElevationChange, round(s.Velocity, 3),
			round(s.Reynolds, 0), round(s.FrictionFactor, 5), round(s.FrictionLoss, 2), round(s.MinorLoss, 2),
			s.Distance, round(s.CumulativeLoss, 2), s.Elevation, round(s.EnergyLine, 2),
		})
	}
	p := res.Profile
	rows = append(rows, []any{
		"TOTAL", "", "", "", p.StaticHead, "", "", "", round(p.FrictionLoss, 2), round(p.MinorLoss, 2),
		"", "", "TDH", round(p.TotalHead, 2),
	})
	return rows
}

func candidateRows(res *service.DesignResult) [][]any {
	rows := [][]any{{
		"N_par", "Q/pump (L/s)", "H/pump (m)", "η (%)", "P/pump (kW)", "NPSHr (m)",
		"Stations", "Available head (m)", "Installed power (kW)", "Extrapolated",
	}}
	for _, c := range res.Candidates {
		rows = append(rows, []any{
			c.Parallel, round(c.PumpFlow, 2), round(c.PumpHead, 2), round(c.PumpEfficiency, 2),
			round(c.PumpPower, 1), round(c.NPSHRequired, 2), c.Stations, round(c.AvailableHead, 1),
			round(c.InstalledPower, 1), yesNo(c.Extrapolated),
		})
	}
	return rows
}

func stationRows(res *service.DesignResult) [][]any {
	rows := [][]any{{
		"Station", "Segments", "Length (m)", "ΔZ (m)", "Losses (m)", "Required head (m)", "Pumps",
		"Q/pump (L/s)", "Design head (m)", "η (%)", "P/pump (kW)", "Installed (kW)", "Surplus (m)",
	}}
	for _, s := range res.Stations {
		rows = append(rows, []any{
			s.Name, fmt.Sprint(s.Segments), s.Length, s.ElevationChange, round(s.FrictionLoss, 2),
			round(s.RequiredHead, 2), s.Pumps, round(s.PumpFlow, 2), round(s.PumpHead, 2),
			round(s.PumpEfficiency, 2), round(s.PumpPower, 1), round(s.InstalledPower, 1), round(s.SurplusHead, 2),
		})
	}
	return rows
}

func thicknessRows(res *service.DesignResult) [][]any {
	rows := [][]any{{
		"Segment", "Station", "Design head (m)", "P (bar)", "t req (mm)", "t adopted (mm)",
		"Utilisation (%)", "Hoop (MPa)", "Allowable (MPa)", "Stress util. (%)", "OK",
	}}
	for _, t := range res.Thickness {
		rows = append(rows, []any{
			t.Segment, t.Station, round(t.DesignHead, 2), round(t.PressureBar, 2), round(t.Required, 2),
			round(t.Adopted, 2), round(t.Utilization, 1), round(t.HoopStress, 2), round(t.Allowable, 2),
			round(t.StressUtilization, 1), yesNo(t.OK),
		})
	}
	u := res.ThicknessUtilization
	rows = append(rows, []any{"Utilisation", "min", round(u.Min, 1), "max", round(u.Max, 1), "avg", round(u.Average, 1)})
	return rows
}

func tankRows(res *service.DesignResult) [][]any {
	t := res.Tank
	return [][]any{
		{"Autonomy (min)", "Volume (m3)", "Height (m)", "Diameter (m)", "Count"},
		{t.AutonomyMin, round(t.Volume, 1), t.Height, round(t.Diameter, 2), t.Count},
	}
}

func performanceRows(res *service.DesignResult) [][]any {
	rows := [][]any{{
		"Q (L/s)", "H (m)", "η (%)", "P (kW)", "NPSHr (m)", "P hydraulic (kW)", "η computed (%)",
	}}
	for _, p := range res.Performance {
		rows = append(rows, []any{
			round(p.Flow, 2), round(p.Head, 2), round(p.Efficiency, 2), round(p.Power, 1),
			round(p.NPSH, 2), round(p.HydraulicPower, 1), round(p.ComputedEfficiency, 2),
		})
	}
	return rows
}
