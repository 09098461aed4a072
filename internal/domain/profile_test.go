package domain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/weather-advisor-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfiles_Embedded(t *testing.T) {
	profiles, err := domain.LoadProfiles("")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, profiles.Len(), 14)

	cricket, err := profiles.Lookup("cricket")
	require.NoError(t, err)
	assert.Equal(t, 20.0, cricket.TempMin)
	assert.Equal(t, 35.0, cricket.TempMax)
	assert.Equal(t, 15.0, cricket.MaxWindSpeed)
	assert.Equal(t, 0.0, cricket.PrecipitationTolerance)
	assert.Equal(t, domain.HumidityModerate, cricket.HumidityPreference)
	assert.True(t, cricket.RequiresDaylight)
	assert.Equal(t, domain.CategorySport, cricket.Category)
}

func TestLoadProfiles_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	doc := `activities:
  bouldering:
    temp_min: 10
    temp_max: 25
    max_wind_speed: 10
    precipitation_tolerance: 0.0
    humidity_preference: low
    requires_daylight: true
    category: sport
    synonyms: ["climbing"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	profiles, err := domain.LoadProfiles(path)
	require.NoError(t, err)
	assert.Equal(t, 1, profiles.Len())

	p, err := profiles.Lookup("bouldering")
	require.NoError(t, err)
	assert.Equal(t, []string{"climbing"}, p.Synonyms)
}

func TestLoadProfiles_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "{{{"},
		{"empty table", "activities: {}"},
		{
			"inverted temperature range",
			`activities:
  broken:
    temp_min: 30
    temp_max: 10
    max_wind_speed: 10
    precipitation_tolerance: 0.0
    humidity_preference: low
    category: sport
`,
		},
		{
			"bad humidity preference",
			`activities:
  broken:
    temp_min: 10
    temp_max: 30
    max_wind_speed: 10
    precipitation_tolerance: 0.0
    humidity_preference: damp
    category: sport
`,
		},
		{
			"tolerance outside unit range",
			`activities:
  broken:
    temp_min: 10
    temp_max: 30
    max_wind_speed: 10
    precipitation_tolerance: 1.5
    humidity_preference: low
    category: sport
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profiles.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o600))
			_, err := domain.LoadProfiles(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadProfiles_MissingFile(t *testing.T) {
	_, err := domain.LoadProfiles(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestProfileTable_Lookup(t *testing.T) {
	profiles, err := domain.LoadProfiles("")
	require.NoError(t, err)

	p, err := profiles.Lookup("  Cricket ")
	require.NoError(t, err)
	assert.Equal(t, "cricket", p.Name)

	_, err = profiles.Lookup("curling")
	assert.ErrorIs(t, err, domain.ErrUnknownActivity)
}

func TestProfileTable_NamesSorted(t *testing.T) {
	profiles, err := domain.LoadProfiles("")
	require.NoError(t, err)

	names := profiles.Names()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}
