package report

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"pumpline/pkg/curve"
	"pumpline/service"
)

const (
	PlotHeadCurve    = "hq.png"
	PlotEfficiency   = "efficiency.png"
	PlotPower        = "power.png"
	PlotNPSH         = "npsh.png"
	PlotProfile      = "profile.png"
	PlotStationHeads = "station_heads.png"
)

var (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// WritePlots 生成全部图表，返回文件路径
func WritePlots(dir string, res *service.DesignResult) ([]string, error) {
	jobs := []struct {
		name string
		fn   func(*service.DesignResult) (*plot.Plot, error)
	}{
		{PlotHeadCurve, headCurvePlot},
		{PlotEfficiency, efficiencyPlot},
		{PlotPower, powerPlot},
		{PlotNPSH, npshPlot},
		{PlotProfile, profilePlot},
		{PlotStationHeads, stationHeadsPlot},
	}

	var out []string
	for _, job := range jobs {
		p, err := job.fn(res)
		if err != nil {
			return out, fmt.Errorf("绘制 %s 失败: %w", job.name, err)
		}
		path := filepath.Join(dir, job.name)
		if err = p.Save(plotWidth, plotHeight, path); err != nil {
			return out, err
		}
		out = append(out, path)
	}
	return out, nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

func performanceXYs(res *service.DesignResult, value func(service.PerformancePoint) float64) plotter.XYs {
	pts := make(plotter.XYs, len(res.Performance))
	for i, pt := range res.Performance {
		pts[i].X = pt.Flow
		pts[i].Y = value(pt)
	}
	return pts
}

func pointXYs(pts []curve.Point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X = pt.Flow
		xys[i].Y = pt.Value
	}
	return xys
}

// addSamples 厂家样本点，没有样本时不画
func addSamples(p *plot.Plot, pts []curve.Point) error {
	if len(pts) == 0 {
		return nil
	}
	sc, err := plotter.NewScatter(pointXYs(pts))
	if err != nil {
		return err
	}
	sc.GlyphStyle.Shape = draw.BoxGlyph{}
	sc.GlyphStyle.Radius = vg.Points(3)
	sc.GlyphStyle.Color = plotutil.Color(2)
	p.Add(sc)
	p.Legend.Add("samples", sc)
	return nil
}

// headCurvePlot H-Q 曲线覆盖扬程曲线全部流量范围，不受性能表公共范围限制
func headCurvePlot(res *service.DesignResult) (*plot.Plot, error) {
	p := newPlot(res.PumpModel+" H-Q", "Q (L/s)", "H (m)")

	head := pointXYs(res.Pump.HeadCurve)
	if len(head) == 0 {
		head = performanceXYs(res, func(pt service.PerformancePoint) float64 { return pt.Head })
	}
	if err := plotutil.AddLines(p, "H", head); err != nil {
		return nil, err
	}
	if err := addSamples(p, res.Pump.Head); err != nil {
		return nil, err
	}

	// 各泵站工况点
	ops := make(plotter.XYs, len(res.Stations))
	for i, st := range res.Stations {
		ops[i].X = st.PumpFlow
		ops[i].Y = st.PumpHead
	}
	sc, err := plotter.NewScatter(ops)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(4)
	sc.GlyphStyle.Color = plotutil.Color(1)
	p.Add(sc)
	p.Legend.Add("stations", sc)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: ops, Labels: stationNames(res)})
	if err != nil {
		return nil, err
	}
	p.Add(labels)
	return p, nil
}

func efficiencyPlot(res *service.DesignResult) (*plot.Plot, error) {
	p := newPlot(res.PumpModel+" efficiency", "Q (L/s)", "η (%)")
	err := plotutil.AddLinePoints(p,
		"manufacturer", performanceXYs(res, func(pt service.PerformancePoint) float64 { return pt.Efficiency }),
		"ρgQH/P", performanceXYs(res, func(pt service.PerformancePoint) float64 { return pt.ComputedEfficiency }),
	)
	if err != nil {
		return nil, err
	}
	if err = addSamples(p, res.Pump.Efficiency); err != nil {
		return nil, err
	}
	return p, nil
}

func powerPlot(res *service.DesignResult) (*plot.Plot, error) {
	p := newPlot(res.PumpModel+" power", "Q (L/s)", "P (kW)")
	err := plotutil.AddLinePoints(p,
		"shaft", performanceXYs(res, func(pt service.PerformancePoint) float64 { return pt.Power }),
		"hydraulic", performanceXYs(res, func(pt service.PerformancePoint) float64 { return pt.HydraulicPower }),
	)
	if err != nil {
		return nil, err
	}
	if err = addSamples(p, res.Pump.Power); err != nil {
		return nil, err
	}
	return p, nil
}

func npshPlot(res *service.DesignResult) (*plot.Plot, error) {
	p := newPlot(res.PumpModel+" NPSHr", "Q (L/s)", "NPSHr (m)")
	if err := plotutil.AddLinePoints(p, "NPSHr",
		performanceXYs(res, func(pt service.PerformancePoint) float64 { return pt.NPSH })); err != nil {
		return nil, err
	}
	if err := addSamples(p, res.Pump.NPSH); err != nil {
		return nil, err
	}
	return p, nil
}

// profilePlot 纵断面与能量线，横轴 km
func profilePlot(res *service.DesignResult) (*plot.Plot, error) {
	p := newPlot(res.Project+" profile", "Distance (km)", "Elevation (m)")

	segs := res.Profile.Segments
	ground := make(plotter.XYs, len(segs)+1)
	energy := make(plotter.XYs, len(segs)+1)
	ground[0].Y = res.Profile.StartElevation
	energy[0].Y = res.Profile.StartElevation
	for i, s := range segs {
		ground[i+1].X = s.Distance / 1000.0
		ground[i+1].Y = s.Elevation
		energy[i+1].X = s.Distance / 1000.0
		energy[i+1].Y = s.EnergyLine
	}

	gl, err := plotter.NewLine(ground)
	if err != nil {
		return nil, err
	}
	gl.Color = plotutil.Color(0)
	gl.Width = vg.Points(1.5)

	el, err := plotter.NewLine(energy)
	if err != nil {
		return nil, err
	}
	el.Color = plotutil.Color(1)
	el.Dashes = plotutil.Dashes(1)

	p.Add(gl, el)
	p.Legend.Add("pipeline", gl)
	p.Legend.Add("energy line", el)
	return p, nil
}

func stationHeadsPlot(res *service.DesignResult) (*plot.Plot, error) {
	p := newPlot("Head per station", "", "H (m)")

	required := make(plotter.Values, len(res.Stations))
	design := make(plotter.Values, len(res.Stations))
	for i, st := range res.Stations {
		required[i] = st.RequiredHead
		design[i] = st.PumpHead
	}

	w := vg.Points(18)
	reqBars, err := plotter.NewBarChart(required, w)
	if err != nil {
		return nil, err
	}
	reqBars.Color = plotutil.Color(0)
	reqBars.Offset = -w / 2

	designBars, err := plotter.NewBarChart(design, w)
	if err != nil {
		return nil, err
	}
	designBars.Color = plotutil.Color(1)
	designBars.Offset = w / 2

	p.Add(reqBars, designBars)
	p.Legend.Add("required", reqBars)
	p.Legend.Add("pump", designBars)
	p.NominalX(stationNames(res)...)
	return p, nil
}

func stationNames(res *service.DesignResult) []string {
	names := make([]string, len(res.Stations))
	for i, st := range res.Stations {
		names[i] = st.Name
	}
	return names
}
