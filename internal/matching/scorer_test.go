package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scheme-finder/internal/models"
)

func openScheme(id string, targets ...string) models.Scheme {
	return models.Scheme{
		ID:                id,
		Name:              id,
		MinAge:            0,
		MaxAge:            100,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationAny,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      targets,
	}
}

func TestScore(t *testing.T) {
	base := models.UserProfile{
		Age:        30,
		Gender:     models.GenderMale,
		Education:  models.EducationGraduate,
		Area:       models.AreaRural,
		State:      "Punjab",
		Categories: []string{"Farmer"},
	}

	tests := []struct {
		name    string
		scheme  func(s *models.Scheme)
		profile func(p *models.UserProfile)
		want    int
	}{
		{
			name: "perfect match",
			want: 100,
		},
		{
			name:   "gender veto",
			scheme: func(s *models.Scheme) { s.GenderEligibility = models.GenderFemale },
			want:   0,
		},
		{
			name:   "gender compared case sensitively",
			scheme: func(s *models.Scheme) { s.GenderEligibility = "male" },
			want:   0,
		},
		{
			name:   "age out of range loses 20 points",
			scheme: func(s *models.Scheme) { s.MaxAge = 29 },
			want:   80,
		},
		{
			name:   "age bounds inclusive",
			scheme: func(s *models.Scheme) { s.MinAge, s.MaxAge = 30, 30 },
			want:   100,
		},
		{
			name:   "area mismatch",
			scheme: func(s *models.Scheme) { s.Area = models.AreaUrban },
			want:   85,
		},
		{
			name:   "state mismatch",
			scheme: func(s *models.Scheme) { s.State = "Kerala" },
			want:   90,
		},
		{
			name:   "education below requirement",
			scheme: func(s *models.Scheme) { s.MinEducation = models.EducationPostgraduate },
			want:   85,
		},
		{
			name:    "unknown user education is eligible",
			scheme:  func(s *models.Scheme) { s.MinEducation = models.EducationPostgraduate },
			profile: func(p *models.UserProfile) { p.Education = "PhD" },
			want:    100,
		},
		{
			name:    "half of categories match",
			profile: func(p *models.UserProfile) { p.Categories = []string{"Farmer", "X"} },
			want:    93, // 92.5 rounds half away from zero
		},
		{
			name:    "no categories",
			profile: func(p *models.UserProfile) { p.Categories = nil },
			want:    85,
		},
		{
			name: "everything but gender misses",
			scheme: func(s *models.Scheme) {
				s.MinAge, s.MaxAge = 60, 100
				s.Area = models.AreaUrban
				s.State = "Kerala"
				s.MinEducation = models.EducationProfessionalDegree
				s.TargetGroups = []string{"Senior Citizen"}
			},
			want: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheme := openScheme("s", "Farmer")
			profile := base
			profile.Categories = append([]string(nil), base.Categories...)
			if tt.scheme != nil {
				tt.scheme(&scheme)
			}
			if tt.profile != nil {
				tt.profile(&profile)
			}
			assert.Equal(t, tt.want, Score(scheme, profile))
		})
	}
}

func TestBreakdown_CategoryShare(t *testing.T) {
	scheme := openScheme("s", "Farmer")
	profile := models.UserProfile{Age: 40, Gender: models.GenderMale, Education: models.EducationAny, Area: models.AreaRural, State: "Bihar"}

	profile.Categories = []string{"Farmer"}
	full := DefaultWeights.Breakdown(scheme, profile)
	assert.Equal(t, 15.0, full.CategoryFit)
	assert.Equal(t, 1, full.CategoryMatches)

	profile.Categories = []string{"Farmer", "X"}
	half := DefaultWeights.Breakdown(scheme, profile)
	assert.Equal(t, 7.5, half.CategoryFit)
	assert.Equal(t, 100.0, half.MaxPoints)
	assert.Equal(t, 92.5, half.Points)
}

func TestBreakdown_VetoStopsEvaluation(t *testing.T) {
	scheme := openScheme("s", "Women")
	scheme.GenderEligibility = models.GenderFemale

	b := DefaultWeights.Breakdown(scheme, models.UserProfile{Gender: models.GenderMale, Categories: []string{"Women"}})
	assert.True(t, b.GenderVetoed)
	assert.Zero(t, b.MatchScore)
	assert.Zero(t, b.CategoryMatches)
	assert.Equal(t, 25.0, b.MaxPoints)
}

func TestCategoryMatches(t *testing.T) {
	tests := []struct {
		name       string
		targets    []string
		categories []string
		want       int
	}{
		{"exact", []string{"Farmer"}, []string{"Farmer"}, 1},
		{"case insensitive", []string{"farmer"}, []string{"FARMER"}, 1},
		{"category inside target", []string{"Rural Worker"}, []string{"worker"}, 1},
		{"target inside category", []string{"Women"}, []string{"Pregnant Women"}, 1},
		{"one match per category", []string{"Student", "Students"}, []string{"Student"}, 1},
		{"duplicates counted", []string{"Youth"}, []string{"Youth", "youth"}, 2},
		{"no overlap", []string{"Farmer"}, []string{"Student"}, 0},
		{"empty categories", []string{"Farmer"}, nil, 0},
		{"empty targets", nil, []string{"Farmer"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryMatches(tt.targets, tt.categories))
		})
	}
}

func TestEducationEligible(t *testing.T) {
	assert.True(t, EducationEligible(models.EducationGraduate, models.EducationClass12))
	assert.True(t, EducationEligible(models.EducationClass10, models.EducationClass10))
	assert.False(t, EducationEligible(models.EducationClass8, models.EducationClass10))
	assert.True(t, EducationEligible("Unknown", models.EducationGraduate))
	assert.True(t, EducationEligible(models.EducationDropout, "Unknown"))
}

func TestCustomWeights(t *testing.T) {
	w := DefaultWeights
	w.State = 0
	scheme := openScheme("s", "Farmer")
	scheme.State = "Kerala"
	profile := models.UserProfile{Age: 40, Gender: models.GenderMale, Area: models.AreaRural, State: "Bihar", Categories: []string{"Farmer"}}

	assert.Equal(t, 100, w.Breakdown(scheme, profile).MatchScore)
	assert.Equal(t, 90, Score(scheme, profile))
}
