package vector_math

import "math"

// ToRad turns degrees into radians
func ToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
