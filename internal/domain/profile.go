package domain

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfilesYAML []byte

// HumidityPreference is the humidity band an activity works best in.
type HumidityPreference string

const (
	HumidityLow      HumidityPreference = "low"
	HumidityModerate HumidityPreference = "moderate"
	HumidityHigh     HumidityPreference = "high"
)

// ActivityCategory groups activities for reporting.
type ActivityCategory string

const (
	CategorySport      ActivityCategory = "sport"
	CategoryFitness    ActivityCategory = "fitness"
	CategoryRecreation ActivityCategory = "recreation"
	CategoryIndoorAlt  ActivityCategory = "indoor_alt"
)

// ActivityProfile is the immutable tolerance record for one activity.
type ActivityProfile struct {
	Name                   string             `yaml:"-" json:"name"`
	TempMin                float64            `yaml:"temp_min" json:"temp_min"`
	TempMax                float64            `yaml:"temp_max" json:"temp_max"`
	MaxWindSpeed           float64            `yaml:"max_wind_speed" json:"max_wind_speed"`
	PrecipitationTolerance float64            `yaml:"precipitation_tolerance" json:"precipitation_tolerance"`
	HumidityPreference     HumidityPreference `yaml:"humidity_preference" json:"humidity_preference"`
	RequiresDaylight       bool               `yaml:"requires_daylight" json:"requires_daylight"`
	Category               ActivityCategory   `yaml:"category" json:"category"`
	Synonyms               []string           `yaml:"synonyms" json:"-"`
}

// ProfileTable is the process-wide, read-only activity table. Loaded once at
// startup; safe for concurrent lookups without locking.
type ProfileTable struct {
	profiles map[string]ActivityProfile
	names    []string // sorted, for deterministic scans
}

type profileFile struct {
	Activities map[string]ActivityProfile `yaml:"activities"`
}

// LoadProfiles parses the activity table from path, or from the embedded
// default document when path is empty.
func LoadProfiles(path string) (*ProfileTable, error) {
	data := defaultProfilesYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read profile table: %w", err)
		}
		data = b
	}

	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse profile table: %w", err)
	}
	if len(file.Activities) == 0 {
		return nil, fmt.Errorf("profile table is empty")
	}

	table := &ProfileTable{profiles: make(map[string]ActivityProfile, len(file.Activities))}
	for name, p := range file.Activities {
		name = strings.ToLower(strings.TrimSpace(name))
		p.Name = name
		if err := validateProfile(p); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		table.profiles[name] = p
		table.names = append(table.names, name)
	}
	sort.Strings(table.names)

	return table, nil
}

func validateProfile(p ActivityProfile) error {
	if p.Name == "" {
		return fmt.Errorf("missing name")
	}
	if p.TempMin > p.TempMax {
		return fmt.Errorf("temp_min %.1f exceeds temp_max %.1f", p.TempMin, p.TempMax)
	}
	if p.MaxWindSpeed <= 0 {
		return fmt.Errorf("max_wind_speed must be positive")
	}
	if p.PrecipitationTolerance < 0 || p.PrecipitationTolerance > 1 {
		return fmt.Errorf("precipitation_tolerance %.2f outside [0,1]", p.PrecipitationTolerance)
	}
	switch p.HumidityPreference {
	case HumidityLow, HumidityModerate, HumidityHigh:
	default:
		return fmt.Errorf("invalid humidity_preference %q", p.HumidityPreference)
	}
	switch p.Category {
	case CategorySport, CategoryFitness, CategoryRecreation, CategoryIndoorAlt:
	default:
		return fmt.Errorf("invalid category %q", p.Category)
	}
	return nil
}

// Lookup returns the profile for an exact lowercase activity name.
// No fuzzy matching: unknown names return ErrUnknownActivity.
func (t *ProfileTable) Lookup(name string) (ActivityProfile, error) {
	p, ok := t.profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ActivityProfile{}, fmt.Errorf("%w: %q", ErrUnknownActivity, name)
	}
	return p, nil
}

// Names returns all activity names in sorted order.
func (t *ProfileTable) Names() []string {
	return t.names
}

// Len reports the number of activities in the table.
func (t *ProfileTable) Len() int {
	return len(t.profiles)
}
