// Package domain implements the query-understanding and suitability-scoring
// engine behind the activity weather advisor.
//
// # Query understanding
//
// Classification is keyword-based, never model-based. A message runs through
// an ordered list of (predicate, intent) rules; the first hit wins and the
// fallback is conversational, so unrecognized text never triggers a weather
// lookup. English and Japanese keyword sets are matched independently and
// unioned. Conversational closings are checked before any weather keyword so
// "thanks for the weather info" stays conversational.
//
// Entity extraction scans a fixed city gazetteer, the activity profile table
// (names plus synonyms), and a set of explicit time markers. The last city of
// the conversation carries over only when the current message is itself
// weather-related; a "thank you" after a Tokyo query must not resolve Tokyo.
//
// # Scoring model
//
// Each weather factor is scored 0-100 by an independent pure function:
//
//	Temperature: 100 inside the optimal range, linear decay to 0 at 15°C
//	  beyond the nearest bound.
//	Wind: 100 at or below the activity ceiling, linear decay to 0 at twice
//	  the ceiling.
//	Precipitation: 100 × (1 − max(0, probability − tolerance)).
//	Humidity: full credit in the preferred band (<40% low, 40-70% moderate,
//	  >70% high), partial credit per band of distance.
//
// Aggregate confidence is the weighted mean (temperature 35%, precipitation
// 30%, wind 20%, humidity 15%). Daylight is a hard gate applied afterwards:
// an activity that requires daylight scored against a dark snapshot gets
// confidence 0 regardless of the other factors. Tiers are inclusive at the
// boundaries: excellent ≥85, good ≥70, moderate ≥50, else poor.
//
// # Lifecycle
//
// The activity profile table is loaded once at startup and never mutated, so
// concurrent requests share it without locking. Every other value here is
// created and consumed within a single request; conversation context arrives
// as an explicit parameter rather than package state.
package domain
