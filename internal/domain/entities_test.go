package domain_test

import (
	"testing"
	"time"

	"github.com/couchcryptid/weather-advisor-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor(t *testing.T) *domain.Extractor {
	t.Helper()
	profiles, err := domain.LoadProfiles("")
	require.NoError(t, err)
	return domain.NewExtractor(profiles)
}

func TestExtractor_Extract(t *testing.T) {
	e := newExtractor(t)

	tests := []struct {
		name    string
		message string
		intent  domain.QueryIntent
		conv    domain.ConversationState
		want    domain.ExtractedEntities
	}{
		{
			name:    "city activity and bucket",
			message: "Can I play cricket in Mumbai this evening?",
			intent:  domain.IntentActivityPlanning,
			want:    domain.ExtractedEntities{City: "Mumbai", Activity: "cricket", TimeBucket: domain.BucketEvening},
		},
		{
			name:    "multi-word city beats its substring",
			message: "weather in new delhi please",
			intent:  domain.IntentBasicWeather,
			want:    domain.ExtractedEntities{City: "New Delhi", TimeBucket: domain.BucketNow},
		},
		{
			name:    "tomorrow outranks part-of-day markers",
			message: "tennis in London tomorrow evening",
			intent:  domain.IntentActivityPlanning,
			want:    domain.ExtractedEntities{City: "London", Activity: "tennis", TimeBucket: domain.BucketTomorrow},
		},
		{
			name:    "synonym resolves to canonical activity",
			message: "go for a jog in london this morning",
			intent:  domain.IntentActivityPlanning,
			want:    domain.ExtractedEntities{City: "London", Activity: "running", TimeBucket: domain.BucketMorning},
		},
		{
			name:    "no explicit marker defaults to now",
			message: "weather in paris",
			intent:  domain.IntentBasicWeather,
			want:    domain.ExtractedEntities{City: "Paris", TimeBucket: domain.BucketNow},
		},
		{
			name:    "city carries over for weather intents",
			message: "what about tomorrow?",
			intent:  domain.IntentBasicWeather,
			conv:    domain.ConversationState{LastCity: "Tokyo", PriorWeatherRelated: true},
			want:    domain.ExtractedEntities{City: "Tokyo", TimeBucket: domain.BucketTomorrow},
		},
		{
			name:    "conversational never inherits the city",
			message: "thank you",
			intent:  domain.IntentConversational,
			conv:    domain.ConversationState{LastCity: "Tokyo", PriorWeatherRelated: true},
			want:    domain.ExtractedEntities{TimeBucket: domain.BucketNow},
		},
		{
			name:    "explicit city wins over carry-over",
			message: "weather in osaka",
			intent:  domain.IntentBasicWeather,
			conv:    domain.ConversationState{LastCity: "Tokyo"},
			want:    domain.ExtractedEntities{City: "Osaka", TimeBucket: domain.BucketNow},
		},
		{
			name:    "japanese city alias and bucket",
			message: "明日東京でテニスできますか",
			intent:  domain.IntentActivityPlanning,
			want:    domain.ExtractedEntities{City: "Tokyo", Activity: "tennis", TimeBucket: domain.BucketTomorrow},
		},
		{
			name:    "snow does not read as now",
			message: "will it snow in moscow",
			intent:  domain.IntentBasicWeather,
			want:    domain.ExtractedEntities{City: "Moscow", TimeBucket: domain.BucketNow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract(tt.message, tt.intent, tt.conv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractor_UnresolvedActivity(t *testing.T) {
	e := newExtractor(t)

	got, err := e.Extract("can i play in mumbai", domain.IntentActivityPlanning, domain.ConversationState{})
	require.ErrorIs(t, err, domain.ErrUnresolvedActivity)
	assert.Equal(t, "Mumbai", got.City)
	assert.Empty(t, got.Activity)
}

func TestExtractor_UnresolvedCity(t *testing.T) {
	e := newExtractor(t)

	_, err := e.Extract("what's the weather like", domain.IntentBasicWeather, domain.ConversationState{})
	require.ErrorIs(t, err, domain.ErrUnresolvedCity)

	// A conversational message with no city is not an error.
	_, err = e.Extract("thank you", domain.IntentConversational, domain.ConversationState{})
	require.NoError(t, err)
}

func TestTimeBucket_ReferenceTime(t *testing.T) {
	loc := time.FixedZone("jst", 9*60*60)
	now := time.Date(2026, 3, 10, 12, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, loc), domain.BucketMorning.ReferenceTime(now))
	assert.Equal(t, time.Date(2026, 3, 10, 15, 0, 0, 0, loc), domain.BucketAfternoon.ReferenceTime(now))
	assert.Equal(t, time.Date(2026, 3, 10, 19, 0, 0, 0, loc), domain.BucketEvening.ReferenceTime(now))
	assert.Equal(t, now.Add(24*time.Hour), domain.BucketTomorrow.ReferenceTime(now))
	assert.Equal(t, now, domain.BucketNow.ReferenceTime(now))
}
