package physics

import (
	"math"

	"github.com/lixenwraith/mars-lander/parameter"
	"github.com/lixenwraith/mars-lander/vmath"
)

// Lander is the integrable state of one ship
// Angle is degrees from vertical, positive tilts left (thrust pushes toward -X)
type Lander struct {
	Pos    vmath.Point
	Angle  float64
	Power  float64
	HSpeed float64
	VSpeed float64
	Fuel   float64
}

// Speed returns combined velocity magnitude
func (l *Lander) Speed() float64 {
	return math.Hypot(l.HSpeed, l.VSpeed)
}

// Step advances the lander by one turn
// Update order is fixed: rotate, throttle and burn, then integrate Y before X
func Step(l *Lander, angle, power, gravity float64) {
	l.Angle += vmath.Clamp(angle, -parameter.MaxAngleStep, parameter.MaxAngleStep)
	l.Angle = vmath.Clamp(l.Angle, -parameter.MaxAngle, parameter.MaxAngle)

	if l.Fuel > 0 {
		l.Power += vmath.Clamp(power, -parameter.MaxPowerStep, parameter.MaxPowerStep)
		l.Power = vmath.Clamp(l.Power, 0, parameter.MaxPower)
		l.Fuel = max(l.Fuel-l.Power, 0)
	} else {
		l.Power = 0
	}

	rad := vmath.Radians(l.Angle)

	vAcc := l.Power*math.Cos(rad) - gravity
	l.Pos.Y = l.Pos.Y + l.VSpeed + 0.5*vAcc
	l.VSpeed += vAcc

	hAcc := l.Power * -math.Sin(rad)
	l.Pos.X = l.Pos.X + l.HSpeed + 0.5*hAcc
	l.HSpeed += hAcc
}
