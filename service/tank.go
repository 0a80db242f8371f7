package service

import (
	"math"
	"time"
)

// TankVolume 缓冲水池容积 m3，q 为 m3/s
func TankVolume(q float64, autonomy time.Duration) float64 {
	return q * autonomy.Seconds()
}

// TankDiameter 给定水深的圆柱形水池直径
func TankDiameter(volume, height float64) float64 {
	if height <= 0 {
		return math.NaN()
	}
	return math.Sqrt(4.0 * volume / (math.Pi * height))
}

// SizeTanks 每座泵站吸水侧一个缓冲水池，没有泵站时按一个计
func SizeTanks(cfg *DesignConfig) TankResult {
	v := TankVolume(cfg.FlowM3s(), cfg.Tank.Autonomy)
	return TankResult{
		AutonomyMin: cfg.Tank.Autonomy.Minutes(),
		Volume:      v,
		Height:      cfg.Tank.Height,
		Diameter:    TankDiameter(v, cfg.Tank.Height),
		Count:       max(len(cfg.Stations), 1),
	}
}
