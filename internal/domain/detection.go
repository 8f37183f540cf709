package domain

// BoundingBox is a detection rectangle in image pixels.
type BoundingBox struct {
	X, Y, Width, Height float64
}

// Detection is one object reported by the detection provider.
type Detection struct {
	Label      string
	Confidence float64
	Box        BoundingBox
}
