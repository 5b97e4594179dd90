package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-finder/internal/models"
)

func sampleScheme(id string) models.Scheme {
	return models.Scheme{
		ID:                id,
		Name:              "Sample " + id,
		MinAge:            18,
		MaxAge:            60,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationAny,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Farmer"},
	}
}

func TestSaveAndLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemes.json")
	require.NoError(t, SaveRegistry(path, New("2024.1", []models.Scheme{sampleScheme("a"), sampleScheme("b")})))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2024.1", reg.Version)
	require.Len(t, reg.Schemes, 2)
	assert.Equal(t, "b", reg.Schemes[1].ID)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "missing schemes",
			doc:  `{"version":"1"}`,
			want: "schemes",
		},
		{
			name: "bad gender",
			doc:  `{"version":"1","schemes":[{"id":"x","name":"X","minAge":0,"maxAge":5,"genderEligibility":"female","minEducation":"Any","area":"Any","state":"Any","targetGroups":[]}]}`,
			want: "genderEligibility",
		},
		{
			name: "bad id",
			doc:  `{"version":"1","schemes":[{"id":"Not Valid","name":"X","minAge":0,"maxAge":5,"genderEligibility":"Any","minEducation":"Any","area":"Any","state":"Any","targetGroups":[]}]}`,
			want: "id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Error(), tt.want)
		})
	}
}

func TestParse_CrossFieldRules(t *testing.T) {
	doc := `{"version":"1","schemes":[
	  {"id":"x","name":"X","minAge":30,"maxAge":5,"genderEligibility":"Any","minEducation":"Any","area":"Any","state":"Any","targetGroups":[]},
	  {"id":"x","name":"Y","minAge":0,"maxAge":5,"genderEligibility":"Any","minEducation":"Any","area":"Any","state":"Any","targetGroups":[]}
	]}`

	_, err := Parse([]byte(doc))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Problems, 2)
}

func TestParse_UnknownEducationAllowed(t *testing.T) {
	doc := `{"version":"1","schemes":[{"id":"x","name":"X","minAge":0,"maxAge":5,"genderEligibility":"Any","minEducation":"ITI Certificate","area":"Any","state":"Any","targetGroups":["Youth"]}]}`

	reg, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, models.Education("ITI Certificate"), reg.Schemes[0].MinEducation)
}
