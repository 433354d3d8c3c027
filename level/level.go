// Package level reads the three-line level format
//
//	X Y
//	angle power hSpeed vSpeed fuel
//	x y,x y,...
package level

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lixenwraith/mars-lander/physics"
	"github.com/lixenwraith/mars-lander/terrain"
	"github.com/lixenwraith/mars-lander/vmath"
)

// ErrMalformed reports a level file that does not follow the format
var ErrMalformed = errors.New("malformed level")

// Level is a parsed level: starting state and terrain polyline
type Level struct {
	Name    string
	Initial physics.Lander
	Surface []vmath.Point
}

// Load parses the level file at path, naming it after the file
func Load(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, f)
}

// Parse reads a level from r
func Parse(name string, r io.Reader) (*Level, error) {
	lines, err := readLines(r, 3)
	if err != nil {
		return nil, err
	}

	pos, err := parseFloats(lines[0], 2)
	if err != nil {
		return nil, fmt.Errorf("%w: line 1: %w", ErrMalformed, err)
	}

	state, err := parseFloats(lines[1], 5)
	if err != nil {
		return nil, fmt.Errorf("%w: line 2: %w", ErrMalformed, err)
	}
	if state[4] < 0 {
		return nil, fmt.Errorf("%w: line 2: negative fuel %v", ErrMalformed, state[4])
	}

	var surface []vmath.Point
	for i, pair := range strings.Split(lines[2], ",") {
		xy, err := parseFloats(pair, 2)
		if err != nil {
			return nil, fmt.Errorf("%w: line 3 point %d: %w", ErrMalformed, i+1, err)
		}
		surface = append(surface, vmath.Pt(xy[0], xy[1]))
	}

	return &Level{
		Name: name,
		Initial: physics.Lander{
			Pos:    vmath.Pt(pos[0], pos[1]),
			Angle:  state[0],
			Power:  state[1],
			HSpeed: state[2],
			VSpeed: state[3],
			Fuel:   state[4],
		},
		Surface: surface,
	}, nil
}

// Terrain builds the validated terrain model
func (l *Level) Terrain() (*terrain.Terrain, error) {
	t, err := terrain.New(l.Surface)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.Name, err)
	}
	return t, nil
}

// WriteTo encodes the level in the file format
func (l *Level) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	s := l.Initial
	fmt.Fprintf(&b, "%s %s\n", num(s.Pos.X), num(s.Pos.Y))
	fmt.Fprintf(&b, "%s %s %s %s %s\n", num(s.Angle), num(s.Power), num(s.HSpeed), num(s.VSpeed), num(s.Fuel))
	for i, p := range l.Surface {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s %s", num(p.X), num(p.Y))
	}
	b.WriteByte('\n')

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func readLines(r io.Reader, want int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make([]string, 0, want)
	for scanner.Scan() && len(lines) < want {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	if len(lines) < want {
		return nil, fmt.Errorf("%w: expected %d lines, got %d", ErrMalformed, want, len(lines))
	}
	return lines, nil
}

func parseFloats(s string, want int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != want {
		return nil, fmt.Errorf("expected %d values, got %d in %q", want, len(fields), s)
	}

	out := make([]float64, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}
