package mathutil

// Numerical guards shared by the analysis packages.
const (
	// Epsilon is the slope/range magnitude below which a value is treated as zero.
	Epsilon = 1e-9

	// minSpanPoints is the smallest point count gonum's floats.Span accepts.
	minSpanPoints = 2
)
