package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"pumpline/service"
)

var (
	cyan  = lipgloss.Color("#06B6D4")
	gray  = lipgloss.Color("#9CA3AF")
	red   = lipgloss.Color("#F87171")
	slate = lipgloss.Color("#334155")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(cyan)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(cyan).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = cellStyle.Bold(true).Foreground(cyan)
	mutedStyle    = lipgloss.NewStyle().Foreground(gray)
	warnStyle     = lipgloss.NewStyle().Foreground(red)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(slate)).
		Headers(headers...)
}

// CandidatesTable 第一行为选中方案
func CandidatesTable(candidates []service.ArrangementCandidate) string {
	t := newTable("N_par", "Q/pump", "H/pump", "η %", "P/pump kW", "Stations", "Avail. H", "Installed kW", "Extrap.")
	for _, c := range candidates {
		t.Row(
			strconv.Itoa(c.Parallel), num(c.PumpFlow, 2), num(c.PumpHead, 1), num(c.PumpEfficiency, 1),
			num(c.PumpPower, 1), strconv.Itoa(c.Stations), num(c.AvailableHead, 1), num(c.InstalledPower, 0),
			yesNo(c.Extrapolated),
		)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row == 0:
			return selectedStyle
		default:
			return cellStyle
		}
	})
	return t.String()
}

func StationsTable(stations []service.StationResult) string {
	t := newTable("Station", "Pumps", "Q/pump", "Required H", "Design H", "Surplus", "Installed kW")
	for _, st := range stations {
		t.Row(
			st.Name, strconv.Itoa(st.Pumps), num(st.PumpFlow, 2), num(st.RequiredHead, 1),
			num(st.PumpHead, 1), num(st.SurplusHead, 1), num(st.InstalledPower, 0),
		)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 5 && row < len(stations) && stations[row].SurplusHead < 0 {
			return cellStyle.Foreground(red)
		}
		return cellStyle
	})
	return t.String()
}

func ThicknessTable(rows []service.ThicknessResult) string {
	t := newTable("Segment", "Station", "Head m", "P bar", "t req mm", "t adopt mm", "Util. %", "OK")
	for _, r := range rows {
		t.Row(
			r.Segment, r.Station, num(r.DesignHead, 1), num(r.PressureBar, 1), num(r.Required, 2),
			num(r.Adopted, 1), num(r.Utilization, 1), yesNo(r.OK),
		)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if row < len(rows) && !rows[row].OK {
			return cellStyle.Foreground(red)
		}
		return cellStyle
	})
	return t.String()
}

func SweepTable(sweep []service.SweepRow) string {
	t := newTable("D m", "V m/s", "TDH m", "N_par", "Stations", "Installed kW", "Error")
	for _, r := range sweep {
		par, st, power := "-", "-", "-"
		if r.Best != nil {
			par = strconv.Itoa(r.Best.Parallel)
			st = strconv.Itoa(r.Best.Stations)
			power = num(r.Best.InstalledPower, 0)
		}
		t.Row(num(r.Diameter, 3), num(r.Velocity, 3), num(r.TotalHead, 1), par, st, power, r.Error)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	return t.String()
}

func CurveTable(q service.Quantity, values []service.CurveValue) string {
	t := newTable("Q L/s", string(q), "Extrap.")
	for _, v := range values {
		t.Row(num(v.Flow, 3), num(v.Value, 4), yesNo(v.Extrapolated))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	})
	return t.String()
}

// Console 完整设计结果的终端输出
func Console(res *service.DesignResult) string {
	var b strings.Builder
	p := res.Profile

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s  Q=%s L/s  D=%s m", res.Project, res.PumpModel,
		num(res.Flow, 1), num(res.Diameter, 3))))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("V=%s m/s  static=%s m  hf=%s m  hm=%s m  TDH=%s m  (%s)",
		num(p.Velocity, 3), num(p.StaticHead, 1), num(p.FrictionLoss, 2), num(p.MinorLoss, 2),
		num(p.TotalHead, 2), res.Friction)))
	b.WriteString("\n\n")

	b.WriteString(CandidatesTable(res.Candidates))
	b.WriteString("\n\n")
	b.WriteString(StationsTable(res.Stations))
	b.WriteString("\n\n")
	b.WriteString(ThicknessTable(res.Thickness))
	b.WriteString("\n")

	t := res.Tank
	b.WriteString(mutedStyle.Render(fmt.Sprintf("tanks: %d x V=%s m3  h=%s m  D=%s m", t.Count,
		num(t.Volume, 1), num(t.Height, 2), num(t.Diameter, 2))))
	b.WriteString("\n")

	for _, w := range res.Warnings {
		b.WriteString(warnStyle.Render("! " + w))
		b.WriteString("\n")
	}
	return b.String()
}
