package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"pumpline/service"
)

// WritePDF A4 设计报告；imageDir 中已有的剖面图和 H-Q 图会嵌入报告
func WritePDF(path, imageDir string, res *service.DesignResult) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(res.Project), false)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(res.Project+" - pumping pipeline design"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Pump: %s   Q = %s L/s   D = %s m   friction: %s",
		res.PumpModel, num(res.Flow, 1), num(res.Diameter, 3), res.Friction)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.Ln(1)
	}
	table := func(widths []float64, header []string, rows [][]string) {
		pdf.SetFillColor(221, 235, 247)
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range header {
			pdf.CellFormat(widths[i], 6, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		for _, row := range rows {
			for i, c := range row {
				pdf.CellFormat(widths[i], 6, tr(c), "1", 0, "R", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}

	p := res.Profile
	section("Hydraulics")
	pdf.MultiCell(0, 5, tr(fmt.Sprintf(
		"Velocity %s m/s. Static head %s m, friction loss %s m, minor loss %s m, TDH %s m.",
		num(p.Velocity, 3), num(p.StaticHead, 1), num(p.FrictionLoss, 2), num(p.MinorLoss, 2), num(p.TotalHead, 2))),
		"", "L", false)
	pdf.Ln(2)

	s := res.Selected
	section("Selected arrangement")
	table(
		[]float64{18, 24, 24, 18, 26, 18, 30, 30},
		[]string{"N_par", "Q/pump L/s", "H/pump m", "eff %", "P/pump kW", "Stations", "Avail. head m", "Installed kW"},
		[][]string{{
			fmt.Sprint(s.Parallel), num(s.PumpFlow, 2), num(s.PumpHead, 1), num(s.PumpEfficiency, 1),
			num(s.PumpPower, 1), fmt.Sprint(s.Stations), num(s.AvailableHead, 1), num(s.InstalledPower, 0),
		}},
	)

	section("Head per station")
	stRows := make([][]string, 0, len(res.Stations))
	for _, st := range res.Stations {
		stRows = append(stRows, []string{
			st.Name, fmt.Sprint(st.Pumps), num(st.PumpFlow, 2), num(st.RequiredHead, 1),
			num(st.PumpHead, 1), num(st.SurplusHead, 1), num(st.InstalledPower, 0),
		})
	}
	table([]float64{26, 18, 26, 30, 30, 26, 30},
		[]string{"Station", "Pumps", "Q/pump L/s", "Required m", "Design m", "Surplus m", "Installed kW"},
		stRows)

	section("Wall thickness (ASME B31.4)")
	thickRows := make([][]string, 0, len(res.Thickness))
	for _, t := range res.Thickness {
		ok := "OK"
		if !t.OK {
			ok = "FAIL"
		}
		thickRows = append(thickRows, []string{
			t.Segment, t.Station, num(t.DesignHead, 1), num(t.PressureBar, 1), num(t.Required, 2),
			num(t.Adopted, 1), num(t.Utilization, 1), ok,
		})
	}
	table([]float64{20, 22, 24, 20, 24, 24, 24, 18},
		[]string{"Segment", "Station", "Head m", "P bar", "t req mm", "t adopt mm", "Util. %", ""},
		thickRows)

	t := res.Tank
	section("Buffer tanks")
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("%d tank(s), autonomy %s min: V = %s m3, h = %s m, D = %s m.",
		t.Count, num(t.AutonomyMin, 1), num(t.Volume, 1), num(t.Height, 2), num(t.Diameter, 2))), "", "L", false)
	if n := len(res.Warnings); n > 0 {
		pdf.Ln(2)
		pdf.SetTextColor(200, 40, 40)
		pdf.MultiCell(0, 5, fmt.Sprintf("%d warning(s), see summary.yaml.", n), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	for _, name := range []string{PlotProfile, PlotHeadCurve} {
		img := filepath.Join(imageDir, name)
		if _, err := os.Stat(img); err != nil {
			continue
		}
		pdf.AddPage()
		pdf.ImageOptions(img, 15, 20, 180, 0, false, fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}
