package allocator

import (
	"math"

	"github.com/alexanderramin/wordplan/internal/domain"
)

// baseAmplitude is the deviation from the mean weight at average intensity.
const baseAmplitude = 0.5

// oscillationPeriod is the length in days of one oscillating cycle.
const oscillationPeriod = 7

var intensityMultipliers = map[domain.Intensity]float64{
	domain.IntensityGentle:  0.5,
	domain.IntensityAverage: 1.0,
	domain.IntensityIntense: 1.5,
	domain.IntensityExtreme: 2.0,
}

// amplitude returns how far weights may swing from 1 for the intensity.
func amplitude(i domain.Intensity) float64 {
	m, ok := intensityMultipliers[i]
	if !ok {
		m = 1.0
	}
	return baseAmplitude * m
}

// curve returns the raw, non-negative weight for each of n days under the
// strategy. The mean weight is about 1 for every strategy.
func curve(s domain.Strategy, n int, amp float64, randFloat func() float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		t := position(i, n)
		var dev float64
		switch s {
		case domain.StrategySteady:
			dev = 0
		case domain.StrategyRising:
			dev = 2*t - 1
		case domain.StrategyBiting:
			dev = 1 - 2*t
		case domain.StrategyMountain:
			dev = 2*triangle(t) - 1
		case domain.StrategyValley:
			dev = 1 - 2*triangle(t)
		case domain.StrategyOscillating:
			dev = math.Sin(2 * math.Pi * float64(i) / oscillationPeriod)
		case domain.StrategyRandom:
			dev = 2*randFloat() - 1
		}
		w[i] = math.Max(0, 1+amp*dev)
	}
	return w
}

// position maps day index i of n onto [0, 1]. A single day sits at the middle.
func position(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}

// triangle peaks at 1 when t is 0.5 and falls to 0 at both ends.
func triangle(t float64) float64 {
	return 1 - math.Abs(2*t-1)
}
