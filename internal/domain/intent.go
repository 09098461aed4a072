package domain

import "strings"

// Keyword sets for intent classification. English and Japanese are matched
// independently and unioned; ASCII keywords match on word boundaries, Japanese
// keywords on plain substrings since the script has no word separators.
var (
	conversationalKeywords = []string{
		"thank you", "thanks", "thx", "hello", "hi", "hey", "goodbye", "bye",
		"good night", "see you",
		"ありがとう", "どうも", "こんにちは", "こんばんは", "おはよう", "さようなら", "またね",
	}

	planningCues = []string{
		"can i", "could i", "should i", "is it good for", "is it ok to",
		"good day for", "good time for", "play", "go for",
		"できますか", "できる", "行けますか", "しても大丈夫", "に適して", "日和",
	}

	clothingKeywords = []string{
		"wear", "dress", "jacket", "coat", "clothes", "clothing", "umbrella",
		"着る", "服装", "上着", "ジャケット", "傘",
	}

	travelKeywords = []string{
		"trip", "travel", "vacation", "holiday", "visit", "visiting", "sightseeing",
		"旅行", "観光", "休暇",
	}

	comfortKeywords = []string{
		"comfortable", "comfort", "nice day", "nice out", "pleasant", "muggy",
		"feel outside", "feels like outside",
		"快適", "過ごしやすい", "心地",
	}

	weatherKeywords = []string{
		"weather", "temperature", "forecast", "rain", "raining", "snow",
		"sunny", "cloudy", "wind", "windy", "humidity", "hot", "cold", "warm", "chilly",
		"天気", "気温", "予報", "雨", "雪", "晴れ", "曇り", "風", "湿度", "暑い", "寒い",
	}
)

// intentRule pairs a predicate with the intent it yields. Rules are evaluated
// in priority order; adding a language or intent means adding entries, not
// branching.
type intentRule struct {
	intent  QueryIntent
	matches func(m *scannedMessage) bool
}

// scannedMessage caches the per-message lookups the rules share.
type scannedMessage struct {
	lower               string
	priorWeatherRelated bool
	activity            string
	city                string
}

// Classifier maps a free-text message to exactly one QueryIntent.
type Classifier struct {
	profiles *ProfileTable
	rules    []intentRule
}

// NewClassifier builds the rule list over the given activity table.
func NewClassifier(profiles *ProfileTable) *Classifier {
	c := &Classifier{profiles: profiles}
	c.rules = []intentRule{
		// Conversational closings first, so "thanks for the weather info"
		// never re-triggers a weather lookup.
		{IntentConversational, func(m *scannedMessage) bool {
			return matchAny(m.lower, conversationalKeywords)
		}},
		{IntentActivityPlanning, func(m *scannedMessage) bool {
			if m.activity == "" {
				return false
			}
			// A planning cue, or the bare activity+city pairing.
			return matchAny(m.lower, planningCues) || m.city != ""
		}},
		{IntentClothingAdvice, func(m *scannedMessage) bool {
			return matchAny(m.lower, clothingKeywords)
		}},
		{IntentTravelPlanning, func(m *scannedMessage) bool {
			return matchAny(m.lower, travelKeywords)
		}},
		{IntentComfortAssessment, func(m *scannedMessage) bool {
			return m.activity == "" && matchAny(m.lower, comfortKeywords)
		}},
		{IntentBasicWeather, func(m *scannedMessage) bool {
			return matchAny(m.lower, weatherKeywords)
		}},
		// Follow-ups like "tomorrow?" or a bare city name continue a weather
		// conversation; anything else stays conversational.
		{IntentBasicWeather, func(m *scannedMessage) bool {
			if !m.priorWeatherRelated {
				return false
			}
			_, hasMarker := matchTimeBucket(m.lower)
			return m.city != "" || hasMarker
		}},
	}
	return c
}

// Classify is a total function: every message yields exactly one intent and
// never an error. It has no side effects.
func (c *Classifier) Classify(message string, priorWeatherRelated bool) QueryIntent {
	m := &scannedMessage{
		lower:               normalizeMessage(message),
		priorWeatherRelated: priorWeatherRelated,
	}
	m.activity = matchActivity(m.lower, c.profiles)
	m.city, _ = matchCity(m.lower)

	for _, r := range c.rules {
		if r.matches(m) {
			return r.intent
		}
	}
	return IntentConversational
}

func normalizeMessage(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

func matchAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if containsToken(lower, kw) {
			return true
		}
	}
	return false
}

// containsToken reports whether lower contains token. ASCII tokens must sit on
// word boundaries ("now" must not match "snow"); non-ASCII tokens use plain
// substring matching.
func containsToken(lower, token string) bool {
	if !isASCII(token) {
		return strings.Contains(lower, token)
	}

	for idx := 0; ; {
		i := strings.Index(lower[idx:], token)
		if i < 0 {
			return false
		}
		i += idx
		end := i + len(token)
		if (i == 0 || !isWordByte(lower[i-1])) && (end == len(lower) || !isWordByte(lower[end])) {
			return true
		}
		idx = i + 1
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '\''
}
