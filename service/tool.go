package service

import "slices"

// 壁厚利用率统计
func calThicknessStats(rows []ThicknessResult) Parameter {
	if len(rows) == 0 {
		return Parameter{}
	}
	utils := make([]float64, len(rows))
	for i, r := range rows {
		utils[i] = r.Utilization
	}
	return calculateStats(utils)
}

// 统计计算通用函数
func calculateStats(data []float64) Parameter {
	var sum, sumSquares float64
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		sum += v
		sumSquares += v * v
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	n := float64(len(data))
	mean := sum / n
	variance := (sumSquares / n) - (mean * mean)

	return Parameter{
		Min:      minVal,
		Max:      maxVal,
		Average:  mean,
		Variance: variance,
	}
}

// extrapolatedWarnings 选中方案外推时的提示
func extrapolatedWarnings(c ArrangementCandidate) []string {
	if !c.Extrapolated {
		return nil
	}
	return []string{
		"选定方案的单泵流量超出厂家曲线范围，扬程、效率、功率均为外推值",
	}
}

func mergeWarnings(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		for _, w := range g {
			if !slices.Contains(out, w) {
				out = append(out, w)
			}
		}
	}
	return out
}
