package domain

// cityEntry maps a matchable token to the canonical city name used as the
// weather-provider query key. No geocoding: the canonical name is used
// verbatim. First match in list order wins, so longer names ("new delhi")
// precede their substrings ("delhi").
type cityEntry struct {
	token     string
	canonical string
}

// gazetteer covers major world cities plus the Indian regional set the
// activity-planning traffic skews toward, with Japanese aliases for the
// Japanese keyword path.
var gazetteer = []cityEntry{
	{"new york", "New York"},
	{"new delhi", "New Delhi"},
	{"los angeles", "Los Angeles"},
	{"san francisco", "San Francisco"},
	{"hong kong", "Hong Kong"},
	{"tokyo", "Tokyo"},
	{"osaka", "Osaka"},
	{"kyoto", "Kyoto"},
	{"london", "London"},
	{"paris", "Paris"},
	{"berlin", "Berlin"},
	{"madrid", "Madrid"},
	{"rome", "Rome"},
	{"moscow", "Moscow"},
	{"beijing", "Beijing"},
	{"shanghai", "Shanghai"},
	{"singapore", "Singapore"},
	{"dubai", "Dubai"},
	{"cairo", "Cairo"},
	{"sydney", "Sydney"},
	{"melbourne", "Melbourne"},
	{"toronto", "Toronto"},
	{"vancouver", "Vancouver"},
	{"montreal", "Montreal"},
	{"chicago", "Chicago"},
	{"miami", "Miami"},
	{"boston", "Boston"},
	{"seattle", "Seattle"},
	{"delhi", "Delhi"},
	{"mumbai", "Mumbai"},
	{"bangalore", "Bangalore"},
	{"hyderabad", "Hyderabad"},
	{"chennai", "Chennai"},
	{"kolkata", "Kolkata"},
	{"pune", "Pune"},
	{"jaipur", "Jaipur"},
	{"jodhpur", "Jodhpur"},
	{"ahmedabad", "Ahmedabad"},
	{"東京", "Tokyo"},
	{"大阪", "Osaka"},
	{"京都", "Kyoto"},
	{"ロンドン", "London"},
	{"パリ", "Paris"},
	{"ニューヨーク", "New York"},
	{"ムンバイ", "Mumbai"},
	{"デリー", "Delhi"},
	{"シンガポール", "Singapore"},
}

// timeMarker maps an explicit phrase to a time bucket. Date-shifting markers
// come first so "tomorrow evening" resolves to tomorrow.
type timeMarker struct {
	phrase string
	bucket TimeBucket
}

var timeMarkers = []timeMarker{
	{"tomorrow", BucketTomorrow},
	{"明日", BucketTomorrow},
	{"this evening", BucketEvening},
	{"tonight", BucketEvening},
	{"evening", BucketEvening},
	{"今夜", BucketEvening},
	{"夕方", BucketEvening},
	{"this morning", BucketMorning},
	{"morning", BucketMorning},
	{"今朝", BucketMorning},
	{"朝", BucketMorning},
	{"this afternoon", BucketAfternoon},
	{"afternoon", BucketAfternoon},
	{"午後", BucketAfternoon},
	{"right now", BucketNow},
	{"now", BucketNow},
	{"currently", BucketNow},
	{"今", BucketNow},
}

// Extractor pulls city, activity, and time context out of a classified message.
type Extractor struct {
	profiles *ProfileTable
}

// NewExtractor creates an Extractor over the given activity table.
func NewExtractor(profiles *ProfileTable) *Extractor {
	return &Extractor{profiles: profiles}
}

// Extract resolves entities from the message. City falls back to the last
// city in the conversation only for weather-related intents; a conversational
// message never inherits a city, which keeps "thank you" from re-triggering
// weather output. Unresolvable required entities come back as
// ErrUnresolvedActivity or ErrUnresolvedCity so the caller can ask instead
// of guessing.
func (e *Extractor) Extract(message string, intent QueryIntent, conv ConversationState) (ExtractedEntities, error) {
	lower := normalizeMessage(message)

	entities := ExtractedEntities{TimeBucket: BucketNow}
	if bucket, ok := matchTimeBucket(lower); ok {
		entities.TimeBucket = bucket
	}
	entities.City, _ = matchCity(lower)
	entities.Activity = matchActivity(lower, e.profiles)

	if entities.City == "" && intent.WeatherRelated() {
		entities.City = conv.LastCity
	}

	if intent == IntentActivityPlanning && entities.Activity == "" {
		return entities, ErrUnresolvedActivity
	}
	if entities.City == "" && intent.WeatherRelated() {
		return entities, ErrUnresolvedCity
	}
	return entities, nil
}

// matchCity scans the gazetteer in order and returns the first canonical hit.
func matchCity(lower string) (string, bool) {
	for _, c := range gazetteer {
		if containsToken(lower, c.token) {
			return c.canonical, true
		}
	}
	return "", false
}

// matchTimeBucket returns the bucket for the first explicit marker found.
func matchTimeBucket(lower string) (TimeBucket, bool) {
	for _, m := range timeMarkers {
		if containsToken(lower, m.phrase) {
			return m.bucket, true
		}
	}
	return BucketNow, false
}

// matchActivity scans activity names and their synonyms in deterministic
// order and returns the canonical profile key, or "" when nothing matches.
func matchActivity(lower string, profiles *ProfileTable) string {
	for _, name := range profiles.Names() {
		if containsToken(lower, name) {
			return name
		}
		for _, syn := range profiles.profiles[name].Synonyms {
			if containsToken(lower, syn) {
				return name
			}
		}
	}
	return ""
}
