package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var headPoints = []Point{
	{40, 970},
	{80, 960},
	{160, 890},
	{200, 840},
	{280, 620},
}

func mustNew(t *testing.T, pts []Point) *Model {
	t.Helper()
	m, err := New(pts)
	require.NoError(t, err)
	return m
}

func TestNew_Invalid(t *testing.T) {
	cases := map[string][]Point{
		"nil":       nil,
		"one point": {{10, 1}},
		"duplicate": {{10, 1}, {20, 2}, {10, 3}},
		"nan flow":  {{math.NaN(), 1}, {20, 2}},
	}
	for name, pts := range cases {
		t.Run(name, func(t *testing.T) {
			m, err := New(pts)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestEstimate_SamplesRoundTrip(t *testing.T) {
	// 输入顺序打乱
	shuffled := []Point{headPoints[3], headPoints[0], headPoints[4], headPoints[2], headPoints[1]}
	m, err := New(shuffled)
	require.NoError(t, err)

	for _, p := range headPoints {
		assert.Equal(t, p.Value, m.Estimate(p.Flow), "flow %g", p.Flow)
	}
}

func TestEstimate_Interpolation(t *testing.T) {
	m := mustNew(t, headPoints)

	assert.Equal(t, 925.0, m.Estimate(120))
	assert.InDelta(t, 656.6667, m.Estimate(800.0/3), 1e-4)

	// 相邻样本之间单调，不越界
	for q := 161.0; q < 200; q += 3 {
		v := m.Estimate(q)
		assert.LessOrEqual(t, v, 890.0)
		assert.GreaterOrEqual(t, v, 840.0)
	}
}

func TestEstimate_Extrapolation(t *testing.T) {
	m := mustNew(t, headPoints)

	assert.Equal(t, 977.5, m.Estimate(10))

	firstSlope := (960.0 - 970.0) / (80.0 - 40.0)
	lastSlope := (620.0 - 840.0) / (280.0 - 200.0)
	for _, q := range []float64{-40, 0, 39.9} {
		assert.Equal(t, 970+firstSlope*(q-40), m.Estimate(q), "flow %g", q)
	}
	for _, q := range []float64{280.1, 400, 800} {
		assert.Equal(t, 620+lastSlope*(q-280), m.Estimate(q), "flow %g", q)
	}
	assert.Equal(t, 290.0, m.Estimate(400))
}

func TestEstimate_NaN(t *testing.T) {
	m := mustNew(t, headPoints)

	assert.True(t, math.IsNaN(m.Estimate(math.NaN())))
	assert.False(t, m.InRange(math.NaN()))
	assert.True(t, math.IsInf(m.Estimate(math.Inf(1)), -1))
}

func TestModel_IsImmutable(t *testing.T) {
	pts := []Point{{0, 0}, {10, 10}}
	m := mustNew(t, pts)
	pts[1].Value = 1000

	assert.Equal(t, 5.0, m.Estimate(5))

	got := m.Points()
	got[0].Value = -1
	assert.Equal(t, 0.0, m.Estimate(0))
}

func TestRangeAndCommonRange(t *testing.T) {
	head := mustNew(t, headPoints)
	npsh := mustNew(t, []Point{{80, 4.5}, {160, 5.0}, {200, 7.2}, {240, 11.0}, {280, 17.0}})

	lo, hi := head.Range()
	assert.Equal(t, 40.0, lo)
	assert.Equal(t, 280.0, hi)
	assert.True(t, head.InRange(40))
	assert.False(t, head.InRange(300))

	lo, hi, ok := CommonRange(head, npsh)
	require.True(t, ok)
	assert.Equal(t, 80.0, lo)
	assert.Equal(t, 280.0, hi)

	_, _, ok = CommonRange(mustNew(t, []Point{{0, 1}, {1, 1}}), mustNew(t, []Point{{2, 1}, {3, 1}}))
	assert.False(t, ok)

	_, _, ok = CommonRange()
	assert.False(t, ok)
}

func TestSampleAndLinspace(t *testing.T) {
	assert.Nil(t, Linspace(0, 1, 0))
	assert.Equal(t, []float64{3}, Linspace(3, 9, 1))
	assert.Equal(t, []float64{0, 0.5, 1}, Linspace(0, 1, 3))

	m := mustNew(t, headPoints)
	pts := m.Sample(40, 280, 7)
	require.Len(t, pts, 7)
	assert.Equal(t, Point{40, 970}, pts[0])
	assert.Equal(t, Point{280, 620}, pts[6])
	assert.Equal(t, Point{120, 925}, pts[2])
}
