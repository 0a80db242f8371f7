package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pumpline/pkg/curve"
)

func writeCSV(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func writeXlsx(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseCurveFileName(t *testing.T) {
	pump, q, err := parseCurveFileName("goulds-3600_head.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "goulds-3600", pump)
	assert.Equal(t, QuantityHead, q)

	pump, q, err = parseCurveFileName("NPSH.CSV")
	require.NoError(t, err)
	assert.Empty(t, pump)
	assert.Equal(t, QuantityNPSH, q)

	for _, name := range []string{"head.txt", "goulds_pressure.csv", "readme.md"} {
		_, _, err = parseCurveFileName(name)
		assert.Error(t, err, name)
	}
}

func TestLoadCurveFile_CSVSkipsBadRows(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "head.csv", "flow,head\n40, 970\n80,960\nbad,1\n160\n200,840\n")

	pts, err := LoadCurveFile(path)
	require.NoError(t, err)
	assert.Equal(t, []curve.Point{{Flow: 40, Value: 970}, {Flow: 80, Value: 960}, {Flow: 200, Value: 840}}, pts)
}

func TestLoadCurveFile_Xlsx(t *testing.T) {
	dir := t.TempDir()
	path := writeXlsx(t, dir, "power.xlsx", [][]any{
		{"flow", "power"},
		{40, 1200},
		{80, 1400.5},
		{"x", 1},
	})

	pts, err := LoadCurveFile(path)
	require.NoError(t, err)
	assert.Equal(t, []curve.Point{{Flow: 40, Value: 1200}, {Flow: 80, Value: 1400.5}}, pts)
}

func TestLoadCurveFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCurveFile(writeCSV(t, dir, "head.csv", "flow,head\n"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = LoadCurveFile(writeCSV(t, dir, "head.txt", "1,2\n3,4\n"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = LoadCurveFile(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportCurveDir(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "g3600_head.csv", "q,h\n40,970\n280,620\n")
	writeXlsx(t, dir, "g3600_efficiency.xlsx", [][]any{{"q", "eta"}, {40, 33}, {280, 79}})
	writeCSV(t, dir, "notes.csv", "not,a,curve\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "power.csv"), 0o755))

	got, err := ImportCurveDir(dir)
	require.NoError(t, err)
	assert.Equal(t, map[Quantity][]curve.Point{
		QuantityHead:       {{Flow: 40, Value: 970}, {Flow: 280, Value: 620}},
		QuantityEfficiency: {{Flow: 40, Value: 33}, {Flow: 280, Value: 79}},
	}, got)

	pc := DefaultDesignConfig().Pump
	applyImportedCurves(&pc, got)
	assert.Equal(t, got[QuantityHead], pc.Head)
	assert.Equal(t, got[QuantityEfficiency], pc.Efficiency)
	assert.Equal(t, DefaultDesignConfig().Pump.Power, pc.Power)
}

func TestImportCurveDir_Duplicate(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "a_head.csv", "q,h\n40,970\n280,620\n")
	writeCSV(t, dir, "b_head.csv", "q,h\n40,970\n280,620\n")

	_, err := ImportCurveDir(dir)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ImportCurveDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestDecodeDesignConfig_CurveDir(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "head.csv", "q,h\n0,300\n100,250\n200,150\n")

	v := readYaml(t, "pump:\n  curveDir: "+dir+"\n")
	cfg, err := DecodeDesignConfig(v)
	require.NoError(t, err)
	assert.Equal(t, []curve.Point{{Flow: 0, Value: 300}, {Flow: 100, Value: 250}, {Flow: 200, Value: 150}}, cfg.Pump.Head)
	assert.Equal(t, DefaultDesignConfig().Pump.Efficiency, cfg.Pump.Efficiency)
}
