package service

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVelocityAndReynolds(t *testing.T) {
	v := Velocity(0.8, 0.8)
	assert.InDelta(t, 1.591549, v, 1e-6)
	assert.InDelta(t, 1.2732395e6, Reynolds(v, 0.8, 1e-6), 1)

	assert.Equal(t, 0.0, Velocity(0, 0.8))
	assert.Equal(t, 0.0, Velocity(0.8, 0))
	assert.True(t, math.IsInf(Reynolds(1, 1, 0), 1))
}

func TestSwameeJain(t *testing.T) {
	// 层流
	assert.Equal(t, 64.0/1500, SwameeJain(1500, 1e-4))
	assert.True(t, math.IsNaN(SwameeJain(0, 1e-4)))

	f := SwameeJain(1.2732395e6, 0.045e-3/0.8)
	assert.InDelta(t, 0.01249, f, 1e-4)

	// 粗糙度越大摩阻系数越大
	assert.Greater(t, SwameeJain(1e6, 0.3e-3/0.8), SwameeJain(1e6, 0.045e-3/0.8))
}

func TestFrictionFactor(t *testing.T) {
	assert.Equal(t, 0.02, FrictionFactor(FrictionDarcy, 1e6, 1e-4, 0.02))
	assert.Equal(t, SwameeJain(1e6, 1e-4), FrictionFactor(FrictionSwameeJain, 1e6, 1e-4, 0.02))
}

func TestHeadLosses(t *testing.T) {
	v := Velocity(0.8, 0.8)
	hf := DarcyWeisbachLoss(0.02, 23000, 0.8, v, 9.81)
	assert.InDelta(t, 74.23, hf, 0.01)

	assert.InDelta(t, 0.5*v*v/(2*9.81), MinorLoss(0.5, v, 9.81), 1e-12)
	assert.Equal(t, 0.0, MinorLoss(0, v, 9.81))
}

func TestThicknessFormulas(t *testing.T) {
	x65 := DefaultDesignConfig().Materials["x65"]
	assert.InDelta(t, 322.56e6, x65.Allowable(), 1)
	assert.Equal(t, 150e6, DefaultDesignConfig().Materials["steel"].Allowable())

	p := InternalPressure(1000, 9.81, 930)
	assert.InDelta(t, 9123300, p, 1e-6)

	tReq := RequiredThickness(p, 0.8, x65.Allowable())
	assert.InDelta(t, 0.0113137, tReq, 1e-7)
	assert.InDelta(t, x65.Allowable(), HoopStress(p, 0.8, tReq), 1e-3)
	assert.InDelta(t, 114.04e6, HoopStress(p, 0.8, 0.032), 0.01e6)
}

func TestTankSizing(t *testing.T) {
	v := TankVolume(0.8, 30*time.Minute)
	assert.InDelta(t, 1440, v, 1e-9)
	assert.InDelta(t, 19.149, TankDiameter(v, 5), 1e-3)
	assert.True(t, math.IsNaN(TankDiameter(v, 0)))

	tank := SizeTanks(DefaultDesignConfig())
	assert.Equal(t, 30.0, tank.AutonomyMin)
	assert.Equal(t, 3, tank.Count)
	assert.InDelta(t, 1440, tank.Volume, 1e-9)
}

func TestHydraulicPower(t *testing.T) {
	assert.InDelta(t, 753.408, HydraulicPowerKW(1000, 9.81, 0.08, 960), 1e-9)
}
