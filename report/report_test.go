package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"pumpline/service"
)

func design(t *testing.T) *service.DesignResult {
	t.Helper()
	svc, err := service.NewService(nil)
	require.NoError(t, err)
	res, err := svc.Design()
	require.NoError(t, err)
	return res
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, round(1.2345, 2))
	assert.Equal(t, float32(2.5), round(float32(2.46), 1))
	assert.Equal(t, 1000.0, round(999.7, 0))
	assert.Equal(t, "83.667", num(83.66666, 3))
	assert.Equal(t, "840", num(840.0, 2))
}

func TestWriteWorkbook(t *testing.T) {
	res := design(t)
	path := filepath.Join(t.TempDir(), FileWorkbook)
	require.NoError(t, WriteWorkbook(path, res))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Segments", "Candidates", "Stations", "Thickness", "Tanks", "PumpCurve"}, f.GetSheetList())

	rows, err := f.GetRows("Segments")
	require.NoError(t, err)
	assert.Len(t, rows, len(res.Profile.Segments)+2)
	assert.Equal(t, "2-3", rows[1][0])

	v, err := f.GetCellValue("Candidates", "A2")
	require.NoError(t, err)
	assert.Equal(t, "4", v)

	v, err = f.GetCellValue("Stations", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Est.3", v)

	rows, err = f.GetRows("PumpCurve")
	require.NoError(t, err)
	assert.Len(t, rows, len(res.Performance)+1)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV(t *testing.T) {
	res := design(t)
	dir := t.TempDir()

	path := filepath.Join(dir, FileCandidates)
	require.NoError(t, WriteCandidatesCSV(path, res.Candidates))
	rows := readCSV(t, path)
	require.Len(t, rows, len(res.Candidates)+1)
	assert.Equal(t, "parallel", rows[0][0])
	assert.Equal(t, []string{"4", "200", "840", "83.667", "1950", "7.2", "3", "2520", "23400", "false"}, rows[1])

	path = filepath.Join(dir, FilePerformance)
	require.NoError(t, WritePerformanceCSV(path, res.Performance))
	rows = readCSV(t, path)
	require.Len(t, rows, 101)
	assert.Equal(t, []string{"80", "960", "56", "1400", "4.5", "753.408", "53.8149"}, rows[1])

	path = filepath.Join(dir, FileSweep)
	require.NoError(t, WriteSweepCSV(path, []service.SweepRow{
		{Diameter: 0.8, Velocity: 1.5915, TotalHead: 2271.86, Best: &res.Selected},
		{Diameter: -1, Error: "invalid diameter -1"},
	}))
	rows = readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"0.8", "1.5915", "2271.86", "4", "3", "23400", ""}, rows[1])
	assert.Equal(t, "invalid diameter -1", rows[2][6])
}

func TestWritePlotsAndPDF(t *testing.T) {
	res := design(t)
	dir := t.TempDir()

	files, err := WritePlots(dir, res)
	require.NoError(t, err)
	require.Len(t, files, 6)
	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), f)
	}

	path := filepath.Join(dir, FileReport)
	require.NoError(t, WritePDF(path, dir, res))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "%PDF"))
}

func TestHeadCurvePlot_CoversHeadRange(t *testing.T) {
	res := design(t)

	p, err := headCurvePlot(res)
	require.NoError(t, err)
	// 性能表从 80 L/s 开始（NPSH 曲线下限），H-Q 仍画到扬程样本的 40 L/s
	assert.Equal(t, 40.0, p.X.Min)
	assert.Equal(t, 280.0, p.X.Max)
	assert.Equal(t, 970.0, p.Y.Max)

	res.Pump = service.PumpData{}
	p, err = headCurvePlot(res)
	require.NoError(t, err)
	assert.Equal(t, 80.0, p.X.Min)
}

func TestWriteSummary(t *testing.T) {
	res := design(t)
	dir := t.TempDir()

	path := filepath.Join(dir, FileSummaryYAML)
	require.NoError(t, WriteYAML(path, NewSummary(res)))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var sum Summary
	require.NoError(t, yaml.Unmarshal(b, &sum))
	assert.Equal(t, res.Project, sum.Project)
	assert.Equal(t, res.Selected, sum.Selected)
	assert.Len(t, sum.Stations, 3)

	path = filepath.Join(dir, FileResultJSON)
	require.NoError(t, WriteJSON(path, res))
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	var back service.DesignResult
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, res.Selected, back.Selected)
	assert.Equal(t, res.Profile, back.Profile)
}

func TestConsole(t *testing.T) {
	res := design(t)
	out := Console(res)
	for _, s := range []string{"Goulds 3600", "Est.1", "Est.3", "23400", "2-3", "TDH"} {
		assert.Contains(t, out, s)
	}

	out = SweepTable([]service.SweepRow{{Diameter: 0.7, Error: "boom"}})
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "-")

	out = CurveTable(service.QuantityHead, []service.CurveValue{{Flow: 10, Value: 977.5, Extrapolated: true}})
	assert.Contains(t, out, "977.5")
	assert.Contains(t, out, "yes")
}

func TestExporter(t *testing.T) {
	res := design(t)
	dir := filepath.Join(t.TempDir(), "out")

	files, err := NewExporter(dir, FormatCSV, FormatYAML).Export(res)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, FileCandidates),
		filepath.Join(dir, FilePerformance),
		filepath.Join(dir, FileSummaryYAML),
	}, files)

	files, err = NewExporter(dir).Export(res)
	require.NoError(t, err)
	assert.Len(t, files, 12)
	assert.Contains(t, files, filepath.Join(dir, FileReport))

	files, err = NewExporter(dir, FormatCSV).ExportSweep([]service.SweepRow{{Diameter: 0.8}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, FileSweep)}, files)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("docx")
	assert.Error(t, err)
}
