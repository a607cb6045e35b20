package domain

import "strings"

// Strategy names the shape of the daily-target curve.
type Strategy string

const (
	StrategySteady      Strategy = "steady"
	StrategyRising      Strategy = "rising"
	StrategyBiting      Strategy = "biting"
	StrategyMountain    Strategy = "mountain"
	StrategyValley      Strategy = "valley"
	StrategyOscillating Strategy = "oscillating"
	StrategyRandom      Strategy = "random"
)

// Strategies lists every supported strategy in display order.
var Strategies = []Strategy{
	StrategySteady, StrategyRising, StrategyBiting, StrategyMountain,
	StrategyValley, StrategyOscillating, StrategyRandom,
}

var strategyAliases = map[string]Strategy{
	"bite-the-bullet":   StrategyBiting,
	"biting-the-bullet": StrategyBiting,
	"bite_the_bullet":   StrategyBiting,
}

// ParseStrategy trims and lowercases s and resolves known aliases. It does
// not validate; unknown names come back unchanged so callers can report them.
func ParseStrategy(s string) Strategy {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := strategyAliases[key]; ok {
		return alias
	}
	return Strategy(key)
}

func (s Strategy) Valid() bool {
	for _, v := range Strategies {
		if s == v {
			return true
		}
	}
	return false
}

// Intensity scales how far a strategy's curve deviates from flat.
type Intensity string

const (
	IntensityGentle  Intensity = "gentle"
	IntensityAverage Intensity = "average"
	IntensityIntense Intensity = "intense"
	IntensityExtreme Intensity = "extreme"
)

var Intensities = []Intensity{IntensityGentle, IntensityAverage, IntensityIntense, IntensityExtreme}

// ParseIntensity normalizes s. An empty value means average.
func ParseIntensity(s string) Intensity {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return IntensityAverage
	}
	return Intensity(key)
}

func (i Intensity) Valid() bool {
	for _, v := range Intensities {
		if i == v {
			return true
		}
	}
	return false
}

// WeekendRule adjusts Saturday and Sunday targets after the curve is built.
type WeekendRule string

const (
	WeekendNone WeekendRule = "none"
	WeekendOff  WeekendRule = "weekends-off"
	WeekendHalf WeekendRule = "weekends-half"
)

var WeekendRules = []WeekendRule{WeekendNone, WeekendOff, WeekendHalf}

// ParseWeekendRule normalizes s. An empty value means none.
func ParseWeekendRule(s string) WeekendRule {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	if key == "" {
		return WeekendNone
	}
	return WeekendRule(key)
}

func (w WeekendRule) Valid() bool {
	for _, v := range WeekendRules {
		if w == v {
			return true
		}
	}
	return false
}

type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanArchived PlanStatus = "archived"
)
