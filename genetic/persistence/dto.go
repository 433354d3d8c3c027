package persistence

// ReplayDTO is the serializable best-solution record
// Seed is stored as int64 since TOML integers are signed; the bits round-trip
type ReplayDTO struct {
	Level      string    `toml:"level"`
	Seed       int64     `toml:"seed"`
	Generation int       `toml:"generation"`
	Fitness    float64   `toml:"fitness"`
	Solution   bool      `toml:"solution"`
	Initial    StateDTO  `toml:"initial"`
	Crash      *PointDTO `toml:"crash,omitempty"`
	Turns      []TurnDTO `toml:"turns"`
}

// StateDTO is a serializable lander state
type StateDTO struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Angle  float64 `toml:"angle"`
	Power  float64 `toml:"power"`
	HSpeed float64 `toml:"hspeed"`
	VSpeed float64 `toml:"vspeed"`
	Fuel   float64 `toml:"fuel"`
}

// TurnDTO is one applied control and the state it produced
type TurnDTO struct {
	Turn       int      `toml:"turn"`
	AngleDelta int      `toml:"angle_delta"`
	PowerDelta int      `toml:"power_delta"`
	State      StateDTO `toml:"state"`
}

// PointDTO is a serializable map coordinate
type PointDTO struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// SeedFromUint packs a generator seed for storage
func SeedFromUint(seed uint64) int64 {
	return int64(seed)
}

// Uint unpacks the stored seed
func (dto ReplayDTO) Uint() uint64 {
	return uint64(dto.Seed)
}
