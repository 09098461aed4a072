package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/weather-advisor-service/internal/domain"
	"github.com/couchcryptid/weather-advisor-service/internal/observability"
)

// SnapshotProvider supplies normalized current/forecast weather for a city
// and time bucket. The city name is used verbatim as the provider query key.
type SnapshotProvider interface {
	FetchSnapshot(ctx context.Context, city string, bucket domain.TimeBucket) (domain.WeatherSnapshot, error)
}

// AdvicePublisher records completed activity recommendations for analytics.
type AdvicePublisher interface {
	PublishAdvice(ctx context.Context, event domain.AdviceEvent) error
}

// Request is one conversation turn submitted by the UI layer. Prior-turn
// context travels with the request; the advisor holds no state between calls.
type Request struct {
	Message             string `json:"message"`
	Language            string `json:"language,omitempty"`
	PriorCity           string `json:"prior_city,omitempty"`
	PriorWeatherRelated bool   `json:"prior_weather_related,omitempty"`
}

// Response is the structured answer returned to the UI layer. Clarification
// names the entity the user still has to supply ("city" or "activity"); when
// set, Sentence carries the clarifying question rather than advice.
type Response struct {
	Intent        domain.QueryIntent        `json:"intent"`
	Entities      domain.ExtractedEntities  `json:"entities"`
	Suitability   *domain.SuitabilityResult `json:"suitability,omitempty"`
	Sentence      string                    `json:"sentence"`
	Language      string                    `json:"language"`
	Clarification string                    `json:"clarification,omitempty"`
}

// Advisor orchestrates one request through classify → extract → fetch →
// score → compose. It is safe for concurrent use: the profile table is
// read-only and everything else is per-request.
type Advisor struct {
	profiles        *domain.ProfileTable
	classifier      *domain.Classifier
	extractor       *domain.Extractor
	provider        SnapshotProvider
	publisher       AdvicePublisher
	defaultLanguage string
	logger          *slog.Logger
	metrics         *observability.Metrics
}

// New creates an Advisor. Pass a nil publisher to disable advice events.
func New(profiles *domain.ProfileTable, provider SnapshotProvider, publisher AdvicePublisher, defaultLanguage string, logger *slog.Logger, metrics *observability.Metrics) *Advisor {
	return &Advisor{
		profiles:        profiles,
		classifier:      domain.NewClassifier(profiles),
		extractor:       domain.NewExtractor(profiles),
		provider:        provider,
		publisher:       publisher,
		defaultLanguage: defaultLanguage,
		logger:          logger,
		metrics:         metrics,
	}
}

// CheckReadiness returns nil when the advisor can serve traffic.
func (a *Advisor) CheckReadiness(_ context.Context) error {
	if a.profiles == nil || a.profiles.Len() == 0 {
		return errors.New("activity profile table not loaded")
	}
	if a.provider == nil {
		return errors.New("weather provider not configured")
	}
	return nil
}

// Answer processes one conversation turn. Unresolved entities come back as a
// clarification response, not an error; only snapshot failures return an
// error, and those always satisfy errors.Is(err, domain.ErrSnapshotUnavailable).
func (a *Advisor) Answer(ctx context.Context, req Request) (Response, error) {
	lang, langErr := domain.SupportedLanguage(a.languageOr(req.Language))
	if langErr != nil {
		a.logger.Warn("unsupported language, falling back", "requested", req.Language, "fallback", lang)
	}

	intent := a.classifier.Classify(req.Message, req.PriorWeatherRelated)
	a.metrics.QueriesTotal.WithLabelValues(string(intent)).Inc()

	conv := domain.ConversationState{
		LastCity:            req.PriorCity,
		PriorWeatherRelated: req.PriorWeatherRelated,
	}
	entities, extractErr := a.extractor.Extract(req.Message, intent, conv)

	resp := Response{Intent: intent, Entities: entities, Language: lang}

	if intent == domain.IntentConversational {
		resp.Sentence = domain.ConversationalReply(lang)
		return resp, nil
	}
	if errors.Is(extractErr, domain.ErrUnresolvedActivity) {
		return a.clarify(resp, "activity", domain.AskForActivity(lang)), nil
	}
	if errors.Is(extractErr, domain.ErrUnresolvedCity) {
		return a.clarify(resp, "city", domain.AskForCity(lang)), nil
	}

	// Trip questions read the forecast, not current conditions.
	if intent == domain.IntentTravelPlanning && entities.TimeBucket == domain.BucketNow {
		entities.TimeBucket = domain.BucketTomorrow
		resp.Entities = entities
	}

	snapshot, err := a.provider.FetchSnapshot(ctx, entities.City, entities.TimeBucket)
	if err != nil {
		a.logger.Warn("snapshot fetch failed",
			"city", entities.City,
			"bucket", entities.TimeBucket,
			"error", err,
		)
		if !errors.Is(err, domain.ErrSnapshotUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrSnapshotUnavailable, err)
		}
		resp.Sentence = domain.SnapshotFailureMessage(entities.City, lang)
		return resp, err
	}

	switch intent {
	case domain.IntentActivityPlanning:
		profile, err := a.profiles.Lookup(entities.Activity)
		if err != nil {
			return a.clarify(resp, "activity", domain.AskForActivity(lang)), nil
		}
		result := domain.Score(profile, snapshot, entities.TimeBucket)
		advice := domain.Compose(result, lang)

		resp.Suitability = &result
		resp.Sentence = advice.Sentence
		a.metrics.RecommendationsTotal.WithLabelValues(string(result.Recommendation)).Inc()
		a.publish(ctx, entities.TimeBucket, advice)

	case domain.IntentClothingAdvice:
		resp.Sentence = domain.ClothingAdvice(snapshot, lang)
	case domain.IntentTravelPlanning:
		resp.Sentence = domain.TravelSummary(snapshot, lang)
	case domain.IntentComfortAssessment:
		resp.Sentence = domain.ComfortAssessment(snapshot, lang)
	default:
		resp.Sentence = domain.WeatherSummary(snapshot, lang)
	}

	return resp, nil
}

// CurrentWeather serves the direct city lookup endpoint: the current snapshot
// plus a rendered summary sentence.
func (a *Advisor) CurrentWeather(ctx context.Context, city, language string) (string, domain.WeatherSnapshot, error) {
	lang, _ := domain.SupportedLanguage(a.languageOr(language))

	snapshot, err := a.provider.FetchSnapshot(ctx, city, domain.BucketNow)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrSnapshotUnavailable, err)
		}
		return domain.SnapshotFailureMessage(city, lang), domain.WeatherSnapshot{}, err
	}
	return domain.WeatherSummary(snapshot, lang), snapshot, nil
}

func (a *Advisor) languageOr(lang string) string {
	if lang == "" {
		return a.defaultLanguage
	}
	return lang
}

func (a *Advisor) clarify(resp Response, missing, question string) Response {
	a.metrics.ClarificationsTotal.WithLabelValues(missing).Inc()
	resp.Clarification = missing
	resp.Sentence = question
	return resp
}

// publish sends the advice event if a publisher is configured. Failures are
// logged and counted but never fail the user-facing answer.
func (a *Advisor) publish(ctx context.Context, bucket domain.TimeBucket, advice domain.Advice) {
	if a.publisher == nil {
		return
	}

	event := domain.AdviceEvent{
		City:           advice.Result.City,
		Activity:       advice.Result.Activity,
		TimeBucket:     bucket,
		Recommendation: advice.Result.Recommendation,
		Confidence:     advice.Result.Confidence,
		Language:       advice.Language,
		Sentence:       advice.Sentence,
		CreatedAt:      advice.Result.GeneratedAt,
	}
	if err := a.publisher.PublishAdvice(ctx, event); err != nil {
		a.logger.Warn("advice event publish failed",
			"city", event.City,
			"activity", event.Activity,
			"error", err,
		)
		a.metrics.AdvicePublishErrors.Inc()
		return
	}
	a.metrics.AdviceEventsPublished.Inc()
}
