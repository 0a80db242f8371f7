package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"pumpline/service"
)

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(header); err != nil {
		return err
	}
	if err = w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func WriteCandidatesCSV(path string, candidates []service.ArrangementCandidate) error {
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{
			strconv.Itoa(c.Parallel), num(c.PumpFlow, 3), num(c.PumpHead, 3), num(c.PumpEfficiency, 3),
			num(c.PumpPower, 3), num(c.NPSHRequired, 3), strconv.Itoa(c.Stations), num(c.AvailableHead, 3),
			num(c.InstalledPower, 3), strconv.FormatBool(c.Extrapolated),
		})
	}
	return writeCSV(path, []string{
		"parallel", "pump_flow_lps", "pump_head_m", "efficiency_pct", "pump_power_kw", "npshr_m",
		"stations", "available_head_m", "installed_power_kw", "extrapolated",
	}, rows)
}

func WritePerformanceCSV(path string, table []service.PerformancePoint) error {
	rows := make([][]string, 0, len(table))
	for _, p := range table {
		rows = append(rows, []string{
			num(p.Flow, 4), num(p.Head, 4), num(p.Efficiency, 4), num(p.Power, 4),
			num(p.NPSH, 4), num(p.HydraulicPower, 4), num(p.ComputedEfficiency, 4),
		})
	}
	return writeCSV(path, []string{
		"flow_lps", "head_m", "efficiency_pct", "power_kw", "npshr_m", "hydraulic_power_kw", "computed_efficiency_pct",
	}, rows)
}

func WriteSweepCSV(path string, sweep []service.SweepRow) error {
	rows := make([][]string, 0, len(sweep))
	for _, r := range sweep {
		row := []string{num(r.Diameter, 4), num(r.Velocity, 4), num(r.TotalHead, 3), "", "", "", r.Error}
		if r.Best != nil {
			row[3] = strconv.Itoa(r.Best.Parallel)
			row[4] = strconv.Itoa(r.Best.Stations)
			row[5] = num(r.Best.InstalledPower, 3)
		}
		rows = append(rows, row)
	}
	return writeCSV(path, []string{
		"diameter_m", "velocity_ms", "tdh_m", "parallel", "stations", "installed_power_kw", "error",
	}, rows)
}
