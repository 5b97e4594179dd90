// Package matching scores citizen profiles against scheme eligibility rules
// and ranks the results.
package matching

import (
	"math"
	"strings"

	"scheme-finder/internal/models"
)

// Weights are the points each criterion contributes. The final score is
// normalized by the points evaluated, so retuning keeps results in [0,100].
type Weights struct {
	Gender    float64
	Age       float64
	Area      float64
	State     float64
	Education float64
	Category  float64
}

var DefaultWeights = Weights{
	Gender:    25,
	Age:       20,
	Area:      15,
	State:     10,
	Education: 15,
	Category:  15,
}

// Breakdown records the points awarded per criterion.
type Breakdown struct {
	GenderFit    float64 `json:"genderFit"`
	AgeFit       float64 `json:"ageFit"`
	AreaFit      float64 `json:"areaFit"`
	StateFit     float64 `json:"stateFit"`
	EducationFit float64 `json:"educationFit"`
	CategoryFit  float64 `json:"categoryFit"`

	CategoryMatches int     `json:"categoryMatches"`
	Points          float64 `json:"points"`
	MaxPoints       float64 `json:"maxPoints"`
	GenderVetoed    bool    `json:"genderVetoed"`
	MatchScore      int     `json:"matchScore"`
}

// Score returns the match score of profile against scheme using DefaultWeights.
func Score(scheme models.Scheme, profile models.UserProfile) int {
	return DefaultWeights.Breakdown(scheme, profile).MatchScore
}

// Breakdown evaluates every criterion. A gender mismatch stops evaluation
// and yields a zero score.
func (w Weights) Breakdown(scheme models.Scheme, profile models.UserProfile) Breakdown {
	var b Breakdown

	b.MaxPoints += w.Gender
	if !GenderEligible(scheme, profile) {
		b.GenderVetoed = true
		return b
	}
	b.GenderFit = w.Gender

	b.MaxPoints += w.Age
	if profile.Age >= scheme.MinAge && profile.Age <= scheme.MaxAge {
		b.AgeFit = w.Age
	}

	b.MaxPoints += w.Area
	if scheme.Area == models.AreaAny || scheme.Area == profile.Area {
		b.AreaFit = w.Area
	}

	b.MaxPoints += w.State
	if scheme.State == models.StateAny || scheme.State == profile.State {
		b.StateFit = w.State
	}

	b.MaxPoints += w.Education
	if scheme.MinEducation == models.EducationAny || EducationEligible(profile.Education, scheme.MinEducation) {
		b.EducationFit = w.Education
	}

	b.MaxPoints += w.Category
	b.CategoryMatches = CategoryMatches(scheme.TargetGroups, profile.Categories)
	if b.CategoryMatches > 0 {
		share := float64(b.CategoryMatches) / float64(len(profile.Categories)) * w.Category
		b.CategoryFit = math.Min(w.Category, share)
	}

	b.Points = b.GenderFit + b.AgeFit + b.AreaFit + b.StateFit + b.EducationFit + b.CategoryFit
	if b.MaxPoints > 0 {
		b.MatchScore = int(math.Round(b.Points / b.MaxPoints * 100))
	}
	return b
}

// GenderEligible reports whether scheme admits profile's gender.
func GenderEligible(scheme models.Scheme, profile models.UserProfile) bool {
	return scheme.GenderEligibility == models.GenderAny || scheme.GenderEligibility == profile.Gender
}

// EducationEligible compares attainment by hierarchy rank. Unrecognized
// levels on either side are treated as eligible.
func EducationEligible(user, required models.Education) bool {
	userRank, requiredRank := user.Rank(), required.Rank()
	if userRank == -1 || requiredRank == -1 {
		return true
	}
	return userRank >= requiredRank
}

// CategoryMatches counts the categories that overlap any target group,
// comparing case-insensitively by substring in either direction.
func CategoryMatches(targetGroups, categories []string) int {
	if len(categories) == 0 || len(targetGroups) == 0 {
		return 0
	}

	targets := make([]string, len(targetGroups))
	for i, t := range targetGroups {
		targets[i] = strings.ToLower(t)
	}

	matches := 0
	for _, c := range categories {
		c = strings.ToLower(c)
		for _, t := range targets {
			if strings.Contains(t, c) || strings.Contains(c, t) {
				matches++
				break
			}
		}
	}
	return matches
}
