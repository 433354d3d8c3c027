package fitness

// tierEpsilon keeps tier scores strictly above the floor so tiers never touch
const tierEpsilon = 1e-6

// Tier is a half-open score band (Floor, Ceil]
// Bands are stacked so that any score in a higher tier beats every lower one
type Tier struct {
	Floor float64
	Ceil  float64
}

// Score places floor+offset inside the band
func (t Tier) Score(offset float64) float64 {
	v := t.Floor + offset
	if v <= t.Floor+tierEpsilon {
		return t.Floor + tierEpsilon
	}
	if v > t.Ceil {
		return t.Ceil
	}
	return v
}

// Lerp maps a 0-1 quality onto the band width
func (t Tier) Lerp(quality float64) float64 {
	return t.Score(clamp01(quality) * (t.Ceil - t.Floor))
}

// Contains reports whether score lies in (Floor, Ceil]
func (t Tier) Contains(score float64) bool {
	return score > t.Floor && score <= t.Ceil
}
