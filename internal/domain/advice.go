package domain

import "fmt"

// DefaultLanguage is the fallback when a caller requests an unsupported
// language code.
const DefaultLanguage = "en"

// Advice is the structured payload handed back to the UI layer: the rendered
// sentence plus the untouched scoring result.
type Advice struct {
	Sentence string            `json:"sentence"`
	Language string            `json:"language"`
	Result   SuitabilityResult `json:"result"`
}

// phraseSet holds one language's templates. Recommendation templates take
// city, activity, and a factor label in that positional order.
type phraseSet struct {
	recommendation map[Recommendation]string
	factorLabels   map[string]string
	daylightLabel  string

	weatherSummary   string // city, description, temp, feels-like, humidity, wind
	clothingAdvice   string // temp, city, garment, umbrella suffix
	umbrellaSuffix   string
	comfortSummary   string // feeling, city, temp, feels-like, humidity
	travelSummary    string // description, temp, city
	askCity          string
	askActivity      string
	conversational   string
	garments         [4]string // cold, cool, mild, warm
	comfortFeelings  map[string]string
	snapshotFailure  string // city
}

var phraseTable = map[string]phraseSet{
	"en": {
		recommendation: map[Recommendation]string{
			RecommendationExcellent: "Conditions in %[1]s look excellent for %[2]s, and %[3]s is working in your favor.",
			RecommendationGood:      "Conditions in %[1]s are good for %[2]s; %[3]s looks especially favorable.",
			RecommendationModerate:  "Conditions in %[1]s are only moderate for %[2]s; the main concern is %[3]s.",
			RecommendationPoor:      "Conditions in %[1]s are poor for %[2]s right now; %[3]s is the biggest problem.",
		},
		factorLabels: map[string]string{
			FactorTemperature:   "the temperature",
			FactorWind:          "the wind",
			FactorPrecipitation: "the rain risk",
			FactorHumidity:      "the humidity",
		},
		daylightLabel:  "the lack of daylight",
		weatherSummary: "Current weather in %s: %s, %.1f°C (feels like %.1f°C), humidity %.0f%%, wind %.1f m/s.",
		clothingAdvice: "At %.1f°C in %s you'll want %s%s.",
		umbrellaSuffix: ", and take an umbrella",
		comfortSummary: "It feels %s in %s right now: %.1f°C (feels like %.1f°C) with %.0f%% humidity.",
		travelSummary:  "Expect %s and around %.0f°C in %s tomorrow; worth knowing before your trip.",
		askCity:        "Which city should I check the weather for?",
		askActivity:    "Which activity are you planning? I know sports like cricket, running, cycling, and more.",
		conversational: "Happy to help! Ask me about the weather or an outdoor activity anytime.",
		garments:       [4]string{"a heavy coat and warm layers", "a jacket or warm layer", "light layers", "light, breathable clothing"},
		comfortFeelings: map[string]string{
			"chilly": "chilly", "cool": "cool", "comfortable": "comfortable",
			"warm": "warm", "hot": "hot", "muggy": "muggy",
		},
		snapshotFailure: "Sorry, I couldn't retrieve weather for %s right now. Please try again.",
	},
	"ja": {
		recommendation: map[Recommendation]string{
			RecommendationExcellent: "%[1]sの天気は%[2]sに最適です。特に%[3]sが好条件です。",
			RecommendationGood:      "%[1]sの天気は%[2]sに適しています。%[3]sは良好です。",
			RecommendationModerate:  "%[1]sの天気は%[2]sにはやや不向きです。主な懸念は%[3]sです。",
			RecommendationPoor:      "%[1]sの天気は現在%[2]sには不向きです。%[3]sが最大の問題です。",
		},
		factorLabels: map[string]string{
			FactorTemperature:   "気温",
			FactorWind:          "風",
			FactorPrecipitation: "降水の可能性",
			FactorHumidity:      "湿度",
		},
		daylightLabel:  "日照不足",
		weatherSummary: "%sの現在の天気: %s、%.1f°C（体感 %.1f°C）、湿度 %.0f%%、風速 %.1f m/s。",
		clothingAdvice: "%.1f°Cの%sでは%sがおすすめです%s。",
		umbrellaSuffix: "。傘もお忘れなく",
		comfortSummary: "%[2]sは現在%[3].1f°C（体感 %[4].1f°C）、湿度%[5].0f%%で、%[1]sです。",
		travelSummary:  "明日の%[3]sは%[1]s、およそ%[2].0f°Cの見込みです。ご旅行の参考にどうぞ。",
		askCity:        "どの都市の天気をお調べしますか？",
		askActivity:    "どのアクティビティを予定していますか？クリケット、ランニング、サイクリングなどに対応しています。",
		conversational: "どういたしまして！天気やアクティビティについていつでも聞いてください。",
		garments:       [4]string{"厚手のコートと防寒着", "ジャケットなどの上着", "薄手の重ね着", "涼しい服装"},
		comfortFeelings: map[string]string{
			"chilly": "肌寒い", "cool": "涼しい", "comfortable": "快適", "warm": "暖かい", "hot": "暑い", "muggy": "蒸し暑い",
		},
		snapshotFailure: "申し訳ありません。%sの天気情報を取得できませんでした。もう一度お試しください。",
	},
}

// phrasesFor resolves a language code, falling back to the default language
// for unsupported codes instead of failing.
func phrasesFor(lang string) (phraseSet, string) {
	if ps, ok := phraseTable[lang]; ok {
		return ps, lang
	}
	return phraseTable[DefaultLanguage], DefaultLanguage
}

// SupportedLanguage resolves a requested language code to a supported one.
// Unsupported codes fall back to the default language with
// ErrUnsupportedLanguage, which callers may log but must not fail on.
func SupportedLanguage(lang string) (string, error) {
	if _, ok := phraseTable[lang]; ok {
		return lang, nil
	}
	return DefaultLanguage, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
}

// Compose renders a natural-language sentence for a scored result. It is a
// pure presentation step: the result's confidence and recommendation pass
// through untouched.
func Compose(result SuitabilityResult, language string) Advice {
	ps, lang := phrasesFor(language)

	var factorLabel string
	switch {
	case result.DaylightGated:
		factorLabel = ps.daylightLabel
	case result.Recommendation == RecommendationExcellent || result.Recommendation == RecommendationGood:
		factorLabel = ps.factorLabels[bestFactor(result.Factors).Name]
	default:
		factorLabel = ps.factorLabels[worstFactor(result.Factors).Name]
	}

	sentence := fmt.Sprintf(ps.recommendation[result.Recommendation], result.City, result.Activity, factorLabel)

	return Advice{
		Sentence: sentence,
		Language: lang,
		Result:   result,
	}
}

// bestFactor returns the highest-scoring factor; ties keep the fixed order.
func bestFactor(factors []FactorScore) FactorScore {
	best := factors[0]
	for _, f := range factors[1:] {
		if f.Score > best.Score {
			best = f
		}
	}
	return best
}

// worstFactor returns the lowest-scoring factor; ties keep the fixed order.
func worstFactor(factors []FactorScore) FactorScore {
	worst := factors[0]
	for _, f := range factors[1:] {
		if f.Score < worst.Score {
			worst = f
		}
	}
	return worst
}

// WeatherSummary renders a plain conditions sentence for basic weather
// queries.
func WeatherSummary(snap WeatherSnapshot, language string) string {
	ps, _ := phrasesFor(language)
	return fmt.Sprintf(ps.weatherSummary, snap.City, snap.Description,
		snap.Temperature, snap.FeelsLike, snap.Humidity, snap.WindSpeed)
}

// ClothingAdvice derives a garment suggestion from temperature and rain risk.
func ClothingAdvice(snap WeatherSnapshot, language string) string {
	ps, _ := phrasesFor(language)

	var garment string
	switch {
	case snap.Temperature < 5:
		garment = ps.garments[0]
	case snap.Temperature < 15:
		garment = ps.garments[1]
	case snap.Temperature < 25:
		garment = ps.garments[2]
	default:
		garment = ps.garments[3]
	}

	umbrella := ""
	if snap.PrecipitationProbability >= 0.3 {
		umbrella = ps.umbrellaSuffix
	}
	return fmt.Sprintf(ps.clothingAdvice, snap.Temperature, snap.City, garment, umbrella)
}

// ComfortAssessment renders a well-being summary from feels-like temperature
// and humidity.
func ComfortAssessment(snap WeatherSnapshot, language string) string {
	ps, _ := phrasesFor(language)

	feeling := "comfortable"
	switch {
	case snap.FeelsLike >= 24 && humidityBand(snap.Humidity) == 2:
		feeling = "muggy"
	case snap.FeelsLike < 10:
		feeling = "chilly"
	case snap.FeelsLike < 18:
		feeling = "cool"
	case snap.FeelsLike > 32:
		feeling = "hot"
	case snap.FeelsLike > 26:
		feeling = "warm"
	}

	return fmt.Sprintf(ps.comfortSummary, ps.comfortFeelings[feeling], snap.City,
		snap.Temperature, snap.FeelsLike, snap.Humidity)
}

// TravelSummary renders a short outlook from the tomorrow forecast slice.
func TravelSummary(snap WeatherSnapshot, language string) string {
	ps, _ := phrasesFor(language)
	return fmt.Sprintf(ps.travelSummary, snap.Description, snap.Temperature, snap.City)
}

// AskForCity is the clarification question when no city resolves.
func AskForCity(language string) string {
	ps, _ := phrasesFor(language)
	return ps.askCity
}

// AskForActivity is the clarification question when no activity resolves.
func AskForActivity(language string) string {
	ps, _ := phrasesFor(language)
	return ps.askActivity
}

// ConversationalReply answers greetings, thanks, and off-topic messages
// without any weather lookup.
func ConversationalReply(language string) string {
	ps, _ := phrasesFor(language)
	return ps.conversational
}

// SnapshotFailureMessage is the user-visible text for a failed provider call.
// It reports the failure; it never substitutes fabricated weather.
func SnapshotFailureMessage(city, language string) string {
	ps, _ := phrasesFor(language)
	return fmt.Sprintf(ps.snapshotFailure, city)
}
