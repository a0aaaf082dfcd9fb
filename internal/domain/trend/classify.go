// internal/domain/trend/classify.go

package trend

// Classify maps a timeline to a status by comparing the mean of the last
// three points against the mean of the first three (or all available
// points when the timeline is shorter). Fewer than two points is
// insufficient signal and reads as Stable.
//
// The divisor is floored at 1 so an all-zero start cannot divide by zero.
func Classify(tl Timeline) Status {
	if len(tl) < 2 {
		return StatusStable
	}

	window := 3
	if len(tl) < window {
		window = len(tl)
	}

	recentAvg := mean(tl[len(tl)-window:])
	earlierAvg := mean(tl[:window])

	denom := earlierAvg
	if denom < 1 {
		denom = 1
	}
	percentChange := (recentAvg - earlierAvg) / denom * 100

	switch {
	case percentChange > 50:
		return StatusExploding
	case percentChange > 15:
		return StatusRising
	case percentChange < -15:
		return StatusDeclining
	default:
		return StatusStable
	}
}

func mean(points []InterestPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += float64(p.Value)
	}
	return sum / float64(len(points))
}
