package crossing

const (
	// slopeEpsilon is the minimum |y[i+1]-y[i]| for linear interpolation.
	slopeEpsilon = 1e-9

	// minAmplitudeTolerance floors the amplitude tolerance used to snap
	// flat segments onto a sample time.
	minAmplitudeTolerance = 1e-9

	// mergeFactor scales the grouping tolerance into the display-merge tolerance.
	mergeFactor = 0.5

	// fallbackSamplePeriod is used for the merge tolerance when the axis has
	// fewer than two points.
	fallbackSamplePeriod = 1e-4

	// minParticipants is the number of distinct waves an alignment needs.
	minParticipants = 2

	half = 0.5
)
