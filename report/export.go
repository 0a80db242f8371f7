package report

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"pumpline/pkg/logger"
	"pumpline/service"
)

type Format string

const (
	FormatXlsx Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatPlot Format = "png"
	FormatPDF  Format = "pdf"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var AllFormats = []Format{FormatXlsx, FormatCSV, FormatPlot, FormatPDF, FormatYAML, FormatJSON}

const (
	FileWorkbook    = "design.xlsx"
	FileCandidates  = "candidates.csv"
	FilePerformance = "pump_curve.csv"
	FileSweep       = "sweep.csv"
	FileReport      = "report.pdf"
	FileSummaryYAML = "summary.yaml"
	FileResultJSON  = "result.json"
)

type Exporter struct {
	Dir     string
	Formats []Format
}

// NewExporter formats 为空时导出全部格式
func NewExporter(dir string, formats ...Format) *Exporter {
	if len(formats) == 0 {
		formats = AllFormats
	}
	return &Exporter{Dir: dir, Formats: formats}
}

func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !slices.Contains(AllFormats, f) {
		return "", fmt.Errorf("unknown export format %q", s)
	}
	return f, nil
}

func (e *Exporter) has(f Format) bool {
	return slices.Contains(e.Formats, f)
}

// Export 写出设计结果，返回生成的文件
func (e *Exporter) Export(res *service.DesignResult) ([]string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	var files []string
	write := func(name string, fn func(path string) error) error {
		path := filepath.Join(e.Dir, name)
		if err := fn(path); err != nil {
			logger.Logger.Errorf("导出 %s 失败: %v", path, err)
			return err
		}
		files = append(files, path)
		return nil
	}

	if e.has(FormatXlsx) {
		if err := write(FileWorkbook, func(p string) error { return WriteWorkbook(p, res) }); err != nil {
			return files, err
		}
	}
	if e.has(FormatCSV) {
		if err := write(FileCandidates, func(p string) error { return WriteCandidatesCSV(p, res.Candidates) }); err != nil {
			return files, err
		}
		if err := write(FilePerformance, func(p string) error { return WritePerformanceCSV(p, res.Performance) }); err != nil {
			return files, err
		}
	}
	// PDF 需要嵌入图表
	if e.has(FormatPlot) || e.has(FormatPDF) {
		plots, err := WritePlots(e.Dir, res)
		files = append(files, plots...)
		if err != nil {
			logger.Logger.Errorf("生成图表失败: %v", err)
			return files, err
		}
	}
	if e.has(FormatPDF) {
		if err := write(FileReport, func(p string) error { return WritePDF(p, e.Dir, res) }); err != nil {
			return files, err
		}
	}
	if e.has(FormatYAML) {
		if err := write(FileSummaryYAML, func(p string) error { return WriteYAML(p, NewSummary(res)) }); err != nil {
			return files, err
		}
	}
	if e.has(FormatJSON) {
		if err := write(FileResultJSON, func(p string) error { return WriteJSON(p, res) }); err != nil {
			return files, err
		}
	}

	logger.Logger.Infof("导出完成，共 %d 个文件，目录 %s", len(files), e.Dir)
	return files, nil
}

// ExportSweep 管径比选结果只导出 csv 和 json
func (e *Exporter) ExportSweep(rows []service.SweepRow) ([]string, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	var files []string
	if e.has(FormatCSV) {
		path := filepath.Join(e.Dir, FileSweep)
		if err := WriteSweepCSV(path, rows); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	if e.has(FormatJSON) {
		path := filepath.Join(e.Dir, "sweep.json")
		if err := WriteJSON(path, rows); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}
