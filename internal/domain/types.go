package domain

import "time"

// QueryIntent is the classified purpose of a user message.
type QueryIntent string

const (
	IntentBasicWeather      QueryIntent = "basic_weather"
	IntentActivityPlanning  QueryIntent = "activity_planning"
	IntentClothingAdvice    QueryIntent = "clothing_advice"
	IntentTravelPlanning    QueryIntent = "travel_planning"
	IntentComfortAssessment QueryIntent = "comfort_assessment"
	IntentConversational    QueryIntent = "conversational"
)

// WeatherRelated reports whether answering this intent requires weather data.
// Conversational messages must never trigger a weather lookup, including the
// location carry-over fallback.
func (i QueryIntent) WeatherRelated() bool {
	return i != IntentConversational
}

// TimeBucket is a coarse part-of-day/date classification used to select the
// relevant forecast slice.
type TimeBucket string

const (
	BucketNow       TimeBucket = "now"
	BucketMorning   TimeBucket = "morning"
	BucketAfternoon TimeBucket = "afternoon"
	BucketEvening   TimeBucket = "evening"
	BucketTomorrow  TimeBucket = "tomorrow"
)

// ReferenceTime resolves a bucket to a concrete point in time relative to now.
// Part-of-day buckets anchor to a representative hour of the current local day;
// tomorrow is a flat 24-hour offset. The caller supplies now in the city's
// local time so the hours line up with the forecast slices.
func (b TimeBucket) ReferenceTime(now time.Time) time.Time {
	switch b {
	case BucketMorning:
		return time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
	case BucketAfternoon:
		return time.Date(now.Year(), now.Month(), now.Day(), 15, 0, 0, 0, now.Location())
	case BucketEvening:
		return time.Date(now.Year(), now.Month(), now.Day(), 19, 0, 0, 0, now.Location())
	case BucketTomorrow:
		return now.Add(24 * time.Hour)
	default:
		return now
	}
}

// WeatherSnapshot holds normalized conditions for one city at one point in
// time. The provider adapter converts to Celsius, m/s, and 0-1 probabilities;
// the scorer consumes it read-only and never caches it across requests.
type WeatherSnapshot struct {
	City                     string    `json:"city"`
	Temperature              float64   `json:"temperature"`
	FeelsLike                float64   `json:"feels_like"`
	Humidity                 float64   `json:"humidity"`
	WindSpeed                float64   `json:"wind_speed"`
	PrecipitationProbability float64   `json:"precipitation_probability"`
	Description              string    `json:"description"`
	IsDaylight               bool      `json:"is_daylight"`
	Timestamp                time.Time `json:"timestamp"`
}

// ExtractedEntities is the city/activity/time context pulled out of a message.
// City and Activity are empty when nothing resolved.
type ExtractedEntities struct {
	City       string     `json:"city,omitempty"`
	Activity   string     `json:"activity,omitempty"`
	TimeBucket TimeBucket `json:"time_bucket"`
}

// ConversationState is the minimal prior-turn context supplied by the caller
// per request. It is never held in process-wide state.
type ConversationState struct {
	LastCity            string
	PriorWeatherRelated bool
}

// Recommendation is the graded advisability tier derived from the aggregate
// confidence.
type Recommendation string

const (
	RecommendationExcellent Recommendation = "excellent"
	RecommendationGood      Recommendation = "good"
	RecommendationModerate  Recommendation = "moderate"
	RecommendationPoor      Recommendation = "poor"
)

// FactorScore is one weather factor's contribution to a suitability verdict.
type FactorScore struct {
	Name     string `json:"factor_name"`
	Observed string `json:"observed_value"`
	Impact   string `json:"impact_tier"`
	Score    int    `json:"factor_score"`
}

// SuitabilityResult is the scored verdict for one (activity, city, time)
// query. Created once per request, immutable, never persisted.
type SuitabilityResult struct {
	Activity       string          `json:"activity"`
	City           string          `json:"city"`
	Recommendation Recommendation  `json:"recommendation"`
	Confidence     int             `json:"confidence"`
	Factors        []FactorScore   `json:"factors"`
	DaylightGated  bool            `json:"daylight_gated,omitempty"`
	Snapshot       WeatherSnapshot `json:"weather_snapshot"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// AdviceEvent is the analytics record published after a completed
// activity-planning answer.
type AdviceEvent struct {
	City           string         `json:"city"`
	Activity       string         `json:"activity"`
	TimeBucket     TimeBucket     `json:"time_bucket"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     int            `json:"confidence"`
	Language       string         `json:"language"`
	Sentence       string         `json:"sentence"`
	CreatedAt      time.Time      `json:"created_at"`
}
