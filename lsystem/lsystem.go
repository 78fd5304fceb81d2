// Package lsystem implements a bounded Lindenmayer string rewriting engine
// with a turtle interpreter that turns expansions into 3-D branch skeletons.
package lsystem

import (
	"errors"
	"math"
	"strings"

	"github.com/Flokey82/go_gens/vectors"
)

// ErrLengthCap reports that expansion stopped early because the next
// iteration would have exceeded the symbol cap. The expansion returned
// alongside it is the last one that fit and is safe to use.
var ErrLengthCap = errors.New("lsystem: expansion exceeds symbol cap")

// DefaultMaxSymbols caps the expanded string length.
const DefaultMaxSymbols = 8192

// DefaultBranchAngle is the turtle turn angle in degrees.
const DefaultBranchAngle = 25.0

// System is a single rewriting grammar.
type System struct {
	Axiom      string
	Rules      map[rune]string
	Iterations int
	MaxSymbols int
}

// NewTreeSystem returns the branching tree grammar used for vegetation
// skeletons.
func NewTreeSystem(iterations int) *System {
	return &System{
		Axiom:      "F",
		Rules:      map[rune]string{'F': "FF+[+F-F-F]-[-F+F+F]"},
		Iterations: iterations,
		MaxSymbols: DefaultMaxSymbols,
	}
}

// Expand applies the production rules Iterations times. If an iteration
// would exceed MaxSymbols, the last valid expansion is returned together
// with ErrLengthCap.
func (s *System) Expand() (string, error) {
	cur := s.Axiom
	for i := 0; i < s.Iterations; i++ {
		next := s.rewrite(cur)
		if len(next) > s.MaxSymbols {
			return cur, ErrLengthCap
		}
		cur = next
	}
	return cur, nil
}

func (s *System) rewrite(in string) string {
	var sb strings.Builder
	sb.Grow(len(in) * 4)
	for _, c := range in {
		if repl, ok := s.Rules[c]; ok {
			sb.WriteString(repl)
		} else {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// Segment is one branch of an interpreted skeleton.
type Segment struct {
	Start vectors.Vec3 `json:"start"`
	End   vectors.Vec3 `json:"end"`
	Depth int          `json:"depth"` // bracket nesting depth at draw time
}

// turtle is the interpreter state.
type turtle struct {
	pos   vectors.Vec3
	yaw   float64 // radians, rotation around the vertical axis
	pitch float64 // radians, elevation above the horizontal plane
	depth int
}

// Interpret walks the symbol string as turtle directives and returns the
// resulting branch segments. 'F' draws one step forward, '+' and '-' turn
// by angleDeg, '[' pushes the state and ']' restores it. Turns tilt the
// pitch by half the turn angle so skeletons leave the vertical plane.
// The turtle starts at the origin pointing straight up.
func Interpret(symbols string, step, angleDeg float64) []Segment {
	angle := angleDeg * math.Pi / 180
	cur := turtle{pitch: math.Pi / 2}
	var stack []turtle
	var segments []Segment

	for _, c := range symbols {
		switch c {
		case 'F':
			end := vectors.Vec3{
				X: cur.pos.X + step*math.Cos(cur.pitch)*math.Cos(cur.yaw),
				Y: cur.pos.Y + step*math.Cos(cur.pitch)*math.Sin(cur.yaw),
				Z: cur.pos.Z + step*math.Sin(cur.pitch),
			}
			segments = append(segments, Segment{Start: cur.pos, End: end, Depth: cur.depth})
			cur.pos = end
		case '+':
			cur.yaw += angle
			cur.pitch = clampPitch(cur.pitch - angle/2)
		case '-':
			cur.yaw -= angle
			cur.pitch = clampPitch(cur.pitch + angle/2)
		case '[':
			stack = append(stack, cur)
			cur.depth++
		case ']':
			if len(stack) > 0 {
				cur = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
		}
	}
	return segments
}

// clampPitch keeps branches growing upward at a drawable angle.
func clampPitch(p float64) float64 {
	const min = 10 * math.Pi / 180
	const max = math.Pi / 2
	if p < min {
		return min
	}
	if p > max {
		return max
	}
	return p
}
