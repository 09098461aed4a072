package domain

import (
	"fmt"
	"math"
)

// Factor weights for the aggregate confidence. Daylight is a hard gate
// applied after the weighted mean, not a weighted term.
const (
	weightTemperature   = 0.35
	weightPrecipitation = 0.30
	weightWind          = 0.20
	weightHumidity      = 0.15
)

// tempDecayRange is the deviation from the nearest optimal bound, in Celsius,
// at which the temperature score reaches zero. A calibration constant, not an
// invariant.
const tempDecayRange = 15.0

// Humidity partial credit when the observed band misses the preferred one.
const (
	humidityOneBandOff  = 60.0
	humidityTwoBandsOff = 20.0
)

// Recommendation tier boundaries; inclusive, so exact boundary values round
// up to the higher tier.
const (
	tierExcellentMin = 85
	tierGoodMin      = 70
	tierModerateMin  = 50
)

// Factor names, in the fixed order they appear in every result.
const (
	FactorTemperature   = "temperature"
	FactorWind          = "wind"
	FactorPrecipitation = "precipitation"
	FactorHumidity      = "humidity"
)

// Score rates a weather snapshot against an activity profile and aggregates
// the per-factor scores into a confidence and recommendation tier. Factors
// are returned in the fixed order {temperature, wind, precipitation,
// humidity} so downstream rendering is deterministic.
func Score(profile ActivityProfile, snapshot WeatherSnapshot, bucket TimeBucket) SuitabilityResult {
	tempScore := scoreTemperature(profile, snapshot.Temperature)
	windScore := scoreWind(profile, snapshot.WindSpeed)
	precipScore := scorePrecipitation(profile, snapshot.PrecipitationProbability)
	humidityScore := scoreHumidity(profile, snapshot.Humidity)

	weighted := weightTemperature*tempScore +
		weightWind*windScore +
		weightPrecipitation*precipScore +
		weightHumidity*humidityScore

	gated := profile.RequiresDaylight && !snapshot.IsDaylight
	if gated {
		weighted = 0
	}

	confidence := int(math.Round(weighted))

	return SuitabilityResult{
		Activity:       profile.Name,
		City:           snapshot.City,
		Recommendation: recommendationFor(confidence),
		Confidence:     confidence,
		Factors: []FactorScore{
			newFactor(FactorTemperature, fmt.Sprintf("%.1f°C", snapshot.Temperature), tempScore),
			newFactor(FactorWind, fmt.Sprintf("%.1f m/s", snapshot.WindSpeed), windScore),
			newFactor(FactorPrecipitation, fmt.Sprintf("%.0f%%", snapshot.PrecipitationProbability*100), precipScore),
			newFactor(FactorHumidity, fmt.Sprintf("%.0f%%", snapshot.Humidity), humidityScore),
		},
		DaylightGated: gated,
		Snapshot:      snapshot,
		GeneratedAt:   clock.Now(),
	}
}

// scoreTemperature returns 100 inside the optimal range and decays linearly
// to 0 at tempDecayRange degrees beyond the nearest bound.
func scoreTemperature(p ActivityProfile, tempC float64) float64 {
	var deviation float64
	switch {
	case tempC < p.TempMin:
		deviation = p.TempMin - tempC
	case tempC > p.TempMax:
		deviation = tempC - p.TempMax
	default:
		return 100
	}
	return clampScore(100 * (1 - deviation/tempDecayRange))
}

// scoreWind returns 100 at or below the activity's wind ceiling and decays
// linearly to 0 at twice the ceiling.
func scoreWind(p ActivityProfile, windSpeed float64) float64 {
	if windSpeed <= p.MaxWindSpeed {
		return 100
	}
	excess := windSpeed - p.MaxWindSpeed
	return clampScore(100 * (1 - excess/p.MaxWindSpeed))
}

// scorePrecipitation penalizes the probability mass above the activity's
// tolerance.
func scorePrecipitation(p ActivityProfile, probability float64) float64 {
	overshoot := probability - p.PrecipitationTolerance
	if overshoot < 0 {
		overshoot = 0
	}
	return clampScore(100 * (1 - overshoot))
}

// humidityBand classifies relative humidity: 0 low (<40%), 1 moderate
// (40-70%), 2 high (>70%).
func humidityBand(humidityPct float64) int {
	switch {
	case humidityPct < 40:
		return 0
	case humidityPct <= 70:
		return 1
	default:
		return 2
	}
}

func preferredBand(pref HumidityPreference) int {
	switch pref {
	case HumidityLow:
		return 0
	case HumidityHigh:
		return 2
	default:
		return 1
	}
}

// scoreHumidity gives full credit for the preferred band and partial credit
// per band of distance from it.
func scoreHumidity(p ActivityProfile, humidityPct float64) float64 {
	distance := humidityBand(humidityPct) - preferredBand(p.HumidityPreference)
	if distance < 0 {
		distance = -distance
	}
	switch distance {
	case 0:
		return 100
	case 1:
		return humidityOneBandOff
	default:
		return humidityTwoBandsOff
	}
}

func recommendationFor(confidence int) Recommendation {
	switch {
	case confidence >= tierExcellentMin:
		return RecommendationExcellent
	case confidence >= tierGoodMin:
		return RecommendationGood
	case confidence >= tierModerateMin:
		return RecommendationModerate
	default:
		return RecommendationPoor
	}
}

func newFactor(name, observed string, score float64) FactorScore {
	return FactorScore{
		Name:     name,
		Observed: observed,
		Impact:   impactFor(score),
		Score:    int(math.Round(score)),
	}
}

// impactFor labels how a factor affects the verdict.
func impactFor(score float64) string {
	switch {
	case score >= tierExcellentMin:
		return "favorable"
	case score >= tierModerateMin:
		return "acceptable"
	default:
		return "limiting"
	}
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
