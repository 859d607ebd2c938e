package core

// Geometry describes a point on a surface as seen along a path
type Geometry struct {
	Point     Vec3 // Surface point
	Normal    Vec3 // Outward unit normal
	Direction Vec3 // Arriving ray direction, or the sampled emission direction for endpoints
}

// Pixel is an integer raster coordinate
type Pixel struct {
	X, Y int
}

// GeometryTerm returns |n1·d · n2·d| / |d|^4 for the unnormalized vector d
// connecting two surface points
func GeometryTerm(d, n1, n2 Vec3) float64 {
	lengthSquared := d.LengthSquared()
	if lengthSquared == 0 {
		return 0
	}
	return d.AbsDot(n1) * d.AbsDot(n2) / (lengthSquared * lengthSquared)
}

// DirectionToArea returns |n·d| / |d|^3, the factor converting a solid angle
// density at the origin of d into an area density at its end
func DirectionToArea(d, n Vec3) float64 {
	lengthSquared := d.LengthSquared()
	if lengthSquared == 0 {
		return 0
	}
	length := d.Length()
	return d.AbsDot(n) / (lengthSquared * length)
}
