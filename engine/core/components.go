package core

import (
	"image"
	"math"
)

// ---- Position & Geometry ----

// Vec2 is a continuous position or displacement in playfield pixels
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Len returns the euclidean length
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// DistanceTo returns euclidean distance to another point
func (v Vec2) DistanceTo(o Vec2) float64 {
	return o.Sub(v).Len()
}

// AngleTo returns the angle from this point to another (0 = east, π/2 = south)
func (v Vec2) AngleTo(o Vec2) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// FromAngle returns a vector of the given length pointing along angle
func FromAngle(angle, length float64) Vec2 {
	return Vec2{math.Cos(angle) * length, math.Sin(angle) * length}
}

// Size is a sprite footprint in whole pixels
type Size struct {
	W, H int
}

// Scaled multiplies both sides by f, truncating toward zero
func (s Size) Scaled(f float64) Size {
	return Size{int(float64(s.W) * f), int(float64(s.H) * f)}
}

// BoxAt returns the integer bounding box of a sprite whose top-left corner is
// at pos. Coordinates truncate toward zero, the same way the renderer
// rasterizes them, so overlap tests agree with what is on screen.
func BoxAt(pos Vec2, s Size) image.Rectangle {
	x, y := int(pos.X), int(pos.Y)
	return image.Rectangle{Min: image.Point{x, y}, Max: image.Point{x + s.W, y + s.H}}
}

// Center returns the center of a sprite whose top-left corner is at pos
func Center(pos Vec2, s Size) Vec2 {
	return Vec2{pos.X + float64(s.W)/2, pos.Y + float64(s.H)/2}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
