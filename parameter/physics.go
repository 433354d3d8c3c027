package parameter

// Map dimensions in meters
const (
	MapWidth  = 7000.0
	MapHeight = 3000.0
)

// MarsGravity in m/s²
const MarsGravity = 3.711

// Lander actuation limits
const (
	// MaxAngleStep is the largest rotation per turn in degrees
	MaxAngleStep = 15

	// MaxAngle is the accumulated tilt limit in degrees, both directions
	MaxAngle = 90

	// MaxPowerStep is the largest thrust change per turn
	MaxPowerStep = 1

	// MaxPower is the thrust ceiling; thrust floor is zero
	MaxPower = 4
)

// Landing limits
const (
	// LandingMaxVSpeed is the slowest allowed descent (vertical speed floor)
	LandingMaxVSpeed = -40.0

	// LandingMaxHSpeed is the allowed horizontal speed magnitude
	LandingMaxHSpeed = 20.0
)
