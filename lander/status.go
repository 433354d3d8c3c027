package lander

import "strings"

// Status is a set of trajectory flags
type Status uint16

const (
	// Alive is set until the trajectory terminates
	Alive Status = 1 << iota
	// Crashed means the path crossed a terrain segment
	Crashed
	// OutOfBounds means the lander left the map
	OutOfBounds
	// FuelExhausted is informational, the lander keeps falling with zero thrust
	FuelExhausted
	// Expired means the genome ran out while still flying
	Expired
	// Solution marks a crash that satisfies the landing conditions
	Solution
	// Elite marks a genome carried verbatim from the previous generation
	Elite
	// Best marks the current best candidate of its generation
	Best
)

var statusNames = []struct {
	flag Status
	name string
}{
	{Alive, "alive"},
	{Crashed, "crashed"},
	{OutOfBounds, "out"},
	{FuelExhausted, "nofuel"},
	{Expired, "expired"},
	{Solution, "solution"},
	{Elite, "elite"},
	{Best, "best"},
}

// Has reports whether every flag in f is set
func (s Status) Has(f Status) bool {
	return s&f == f
}

// Terminal reports whether simulation has ended
func (s Status) Terminal() bool {
	return s&Alive == 0
}

func (s Status) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, n := range statusNames {
		if s&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
