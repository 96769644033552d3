package utils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// RotateCCW rotates v by 90 degrees counter-clockwise
func RotateCCW(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// Project removes the component of v along the unit vector n
func Project(v, n r2.Vec) r2.Vec {
	return r2.Sub(v, r2.Scale(r2.Dot(v, n), n))
}

// Midpoint of a and b, symmetric in its arguments
func Midpoint(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}

// RoundTo rounds x to the nearest multiple of 1/scale
func RoundTo(x, scale float64) float64 {
	return math.Round(x*scale) / scale
}

func FillVec(v []r2.Vec, val r2.Vec) {
	for i := range v {
		v[i] = val
	}
}

func FillFloat(v []float64, val float64) {
	for i := range v {
		v[i] = val
	}
}
