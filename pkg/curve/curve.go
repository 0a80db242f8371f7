package curve

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrInvalidInput 曲线样本不合法：少于两个点，或存在相同流量的点
var ErrInvalidInput = errors.New("curve: invalid input")

// Point 厂家曲线上的一个数字化样本
type Point struct {
	Flow  float64 `json:"flow" yaml:"flow"`
	Value float64 `json:"value" yaml:"value"`
}

// Model 分段线性插值，区间外按端部斜率线性外推（不截断）。
// 构造后不可变，可被多个 goroutine 同时读取。
type Model struct {
	points []Point
}

func New(points []Point) (*Model, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidInput, len(points))
	}

	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b Point) int {
		switch {
		case a.Flow < b.Flow:
			return -1
		case a.Flow > b.Flow:
			return 1
		}
		return 0
	})

	for i, p := range sorted {
		if math.IsNaN(p.Flow) || math.IsInf(p.Flow, 0) {
			return nil, fmt.Errorf("%w: non-finite flow at point %d", ErrInvalidInput, i)
		}
		if i > 0 && p.Flow == sorted[i-1].Flow {
			return nil, fmt.Errorf("%w: duplicate flow %g", ErrInvalidInput, p.Flow)
		}
	}

	return &Model{points: sorted}, nil
}

// Estimate 流量为 NaN 时返回 NaN
func (m *Model) Estimate(flow float64) float64 {
	if math.IsNaN(flow) {
		return math.NaN()
	}
	n := len(m.points)
	first, last := m.points[0], m.points[n-1]

	switch {
	case flow <= first.Flow:
		return first.Value + slope(first, m.points[1])*(flow-first.Flow)
	case flow >= last.Flow:
		return last.Value + slope(m.points[n-2], last)*(flow-last.Flow)
	}

	// 第一个流量 >= flow 的样本
	i, found := slices.BinarySearchFunc(m.points, flow, func(p Point, q float64) int {
		switch {
		case p.Flow < q:
			return -1
		case p.Flow > q:
			return 1
		}
		return 0
	})
	if found {
		return m.points[i].Value
	}

	lo, hi := m.points[i-1], m.points[i]
	return lo.Value + (hi.Value-lo.Value)*(flow-lo.Flow)/(hi.Flow-lo.Flow)
}

// Range 返回样本的最小、最大流量
func (m *Model) Range() (lo, hi float64) {
	return m.points[0].Flow, m.points[len(m.points)-1].Flow
}

// InRange 判断是否落在厂家数据范围内；范围外的值为外推结果
func (m *Model) InRange(flow float64) bool {
	lo, hi := m.Range()
	return flow >= lo && flow <= hi
}

// Points 排序后的样本副本
func (m *Model) Points() []Point {
	return slices.Clone(m.points)
}

// Sample 在 [lo, hi] 上等距取 n 个点（含两端）
func (m *Model) Sample(lo, hi float64, n int) []Point {
	flows := Linspace(lo, hi, n)
	out := make([]Point, len(flows))
	for i, q := range flows {
		out[i] = Point{Flow: q, Value: m.Estimate(q)}
	}
	return out
}

// CommonRange 多条曲线数据范围的交集
func CommonRange(models ...*Model) (lo, hi float64, ok bool) {
	if len(models) == 0 {
		return 0, 0, false
	}
	lo, hi = models[0].Range()
	for _, m := range models[1:] {
		l, h := m.Range()
		lo = math.Max(lo, l)
		hi = math.Min(hi, h)
	}
	return lo, hi, lo <= hi
}

func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

func slope(a, b Point) float64 {
	return (b.Value - a.Value) / (b.Flow - a.Flow)
}
