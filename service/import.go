package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pumpline/pkg/curve"
	"pumpline/pkg/logger"
)

type Quantity string

const (
	QuantityHead       Quantity = "head"
	QuantityEfficiency Quantity = "efficiency"
	QuantityPower      Quantity = "power"
	QuantityNPSH       Quantity = "npsh"
)

var curveFileRe = regexp.MustCompile(`(?i)^(?:(.+)_)?(head|efficiency|power|npsh)\.(xlsx|csv)$`)

// parseCurveFileName goulds-3600_head.xlsx -> (goulds-3600, head)
func parseCurveFileName(name string) (pump string, q Quantity, err error) {
	m := curveFileRe.FindStringSubmatch(name)
	if len(m) != 4 {
		return "", "", errors.New("曲线文件名不合法")
	}
	return m[1], Quantity(strings.ToLower(m[2])), nil
}

// LoadCurveFile 读取两列（流量, 数值）的 xlsx 第一个工作表或 csv，首行为表头
func LoadCurveFile(path string) ([]curve.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXlsxRows(f)
	case ".csv":
		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		rows, err = r.ReadAll()
	default:
		return nil, fmt.Errorf("%w: unsupported curve file %s", ErrInvalidInput, path)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s 文件内容为空", ErrInvalidInput, path)
	}

	var pts []curve.Point
	for rowNum, row := range rows[1:] {
		if len(row) < 2 {
			logger.Logger.Warnf("%s 第 %d 行列数不足（%d/2），跳过", path, rowNum+2, len(row))
			continue
		}
		q, errQ := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		v, errV := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if errQ != nil || errV != nil {
			logger.Logger.Warnf("%s 第 %d 行数据格式错误，已跳过", path, rowNum+2)
			continue
		}
		pts = append(pts, curve.Point{Flow: q, Value: v})
	}
	return pts, nil
}

func readXlsxRows(r io.Reader) ([][]string, error) {
	xlsx, err := excelize.OpenReader(r)
	if err != nil {
		logger.Logger.Errorf("open excel file error: %v", err)
		return nil, err
	}
	defer xlsx.Close()
	return xlsx.GetRows(xlsx.GetSheetName(0))
}

// ImportCurveDir 扫描目录中的厂家曲线文件，同一物理量只允许出现一次
func ImportCurveDir(dir string) (map[Quantity][]curve.Point, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败: %w", err)
	}

	out := make(map[Quantity][]curve.Point)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		pump, q, err := parseCurveFileName(file.Name())
		if err != nil {
			logger.Logger.Debugf("文件 %s 不是曲线文件，跳过", file.Name())
			continue
		}
		if _, dup := out[q]; dup {
			return nil, fmt.Errorf("%w: duplicate %s curve in %s", ErrInvalidInput, q, dir)
		}

		pts, err := LoadCurveFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("导入文件 %s 失败: %w", file.Name(), err)
		}
		out[q] = pts
		logger.Logger.Infof("导入 %s 曲线 %s（%s）成功，%d 个点", q, file.Name(), pump, len(pts))
	}
	return out, nil
}

func applyImportedCurves(cfg *PumpConfig, imported map[Quantity][]curve.Point) {
	for q, pts := range imported {
		switch q {
		case QuantityHead:
			cfg.Head = pts
		case QuantityEfficiency:
			cfg.Efficiency = pts
		case QuantityPower:
			cfg.Power = pts
		case QuantityNPSH:
			cfg.NPSH = pts
		}
	}
}
