package service

import "math"

// 层流上限
const laminarReynolds = 2000.0

func PipeArea(d float64) float64 {
	return math.Pi * d * d / 4.0
}

// Velocity 平均流速 m/s，q 为 m3/s
func Velocity(q, d float64) float64 {
	a := PipeArea(d)
	if q <= 0 || a <= 0 {
		return 0
	}
	return q / a
}

func Reynolds(v, d, nu float64) float64 {
	if nu <= 0 {
		return math.Inf(1)
	}
	return v * d / nu
}

// SwameeJain 达西摩阻系数，Re < 2000 时按层流 64/Re
func SwameeJain(re, relRoughness float64) float64 {
	if re <= 0 {
		return math.NaN()
	}
	if re < laminarReynolds {
		return 64 / re
	}
	l := math.Log10(relRoughness/3.7 + 5.74/math.Pow(re, 0.9))
	return 0.25 / (l * l)
}

func FrictionFactor(model FrictionModel, re, relRoughness, fixed float64) float64 {
	if model == FrictionSwameeJain {
		return SwameeJain(re, relRoughness)
	}
	return fixed
}

// VelocityHead v²/2g
func VelocityHead(v, g float64) float64 {
	return v * v / (2.0 * g)
}

// DarcyWeisbachLoss 沿程损失 m
func DarcyWeisbachLoss(f, length, d, v, g float64) float64 {
	return f * (length / d) * VelocityHead(v, g)
}

// MinorLoss 局部损失 m
func MinorLoss(k, v, g float64) float64 {
	return k * VelocityHead(v, g)
}

// HydraulicPowerKW ρgQH，q 为 m3/s
func HydraulicPowerKW(rho, g, q, h float64) float64 {
	return rho * g * q * h / 1000.0
}
