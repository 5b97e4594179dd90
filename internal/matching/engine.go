package matching

import (
	"sort"

	"scheme-finder/internal/models"
)

const (
	// MinMatchScore is the lowest score a scheme can have and still be recommended.
	MinMatchScore = 40
	// MaxRecommendations caps the returned list, forced entries included.
	MaxRecommendations = 8
)

// Override guarantees a scheme appears in the results for profiles matching
// Applies, regardless of its computed score.
type Override struct {
	Name        string
	SchemeID    string
	ForcedScore int
	Applies     func(models.UserProfile) bool
}

// BetiBachaoSchemeID identifies the girl-child scheme forced for young women.
const BetiBachaoSchemeID = "beti-bachao"

// BetiBachaoOverride surfaces Beti Bachao Beti Padhao for female citizens
// aged 0 to 21.
func BetiBachaoOverride() Override {
	return Override{
		Name:        "girl-child-priority",
		SchemeID:    BetiBachaoSchemeID,
		ForcedScore: 100,
		Applies: func(p models.UserProfile) bool {
			return p.Gender == models.GenderFemale && p.Age >= 0 && p.Age <= 21
		},
	}
}

// DefaultOverrides returns the override rules applied by NewEngine.
func DefaultOverrides() []Override {
	return []Override{BetiBachaoOverride()}
}

// Engine ranks a catalog for a profile. It is safe for concurrent use.
type Engine struct {
	weights      Weights
	overrides    []Override
	tieBreakByID bool
}

type Option func(*Engine)

func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithOverrides replaces the default override rules. Pass none to disable them.
func WithOverrides(overrides ...Override) Option {
	return func(e *Engine) { e.overrides = overrides }
}

// WithIDTieBreak orders equal scores by scheme id instead of catalog order.
func WithIDTieBreak() Option {
	return func(e *Engine) { e.tieBreakByID = true }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights:   DefaultWeights,
		overrides: DefaultOverrides(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is a ranking plus counters describing how it was produced.
type Result struct {
	Recommendations []models.ScoredScheme `json:"recommendations"`
	Evaluated       int                   `json:"evaluated"`
	Eligible        int                   `json:"eligible"`
	Applied         []string              `json:"overridesApplied,omitempty"`
}

var defaultEngine = NewEngine()

// Recommend ranks catalog for profile with the default engine.
func Recommend(profile models.UserProfile, catalog []models.Scheme) []models.ScoredScheme {
	return defaultEngine.Recommend(profile, catalog)
}

// Recommend returns at most MaxRecommendations schemes, best first. It never
// fails: an empty catalog or no eligible scheme yields an empty slice.
func (e *Engine) Recommend(profile models.UserProfile, catalog []models.Scheme) []models.ScoredScheme {
	return e.Rank(profile, catalog).Recommendations
}

// Rank is Recommend with counters attached.
func (e *Engine) Rank(profile models.UserProfile, catalog []models.Scheme) Result {
	eligible := make([]models.ScoredScheme, 0, len(catalog))
	for _, s := range catalog {
		score := e.weights.Breakdown(s, profile).MatchScore
		if !GenderEligible(s, profile) || score < MinMatchScore {
			continue
		}
		eligible = append(eligible, models.ScoredScheme{Scheme: s, MatchScore: score})
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].MatchScore != eligible[j].MatchScore {
			return eligible[i].MatchScore > eligible[j].MatchScore
		}
		if e.tieBreakByID {
			return eligible[i].ID < eligible[j].ID
		}
		return false
	})

	res := Result{Evaluated: len(catalog), Eligible: len(eligible)}

	forced, applied := e.applyOverrides(profile, catalog, eligible)
	res.Applied = applied

	ranked := append(forced, eligible...)
	if len(ranked) > MaxRecommendations {
		ranked = ranked[:MaxRecommendations]
	}
	res.Recommendations = ranked
	return res
}

// applyOverrides returns, in rule order, the forced entries whose scheme is
// not already ranked. Rules naming a scheme absent from catalog are skipped.
func (e *Engine) applyOverrides(profile models.UserProfile, catalog []models.Scheme, ranked []models.ScoredScheme) ([]models.ScoredScheme, []string) {
	forced := make([]models.ScoredScheme, 0, len(e.overrides))
	var applied []string

	present := make(map[string]bool, len(ranked))
	for _, r := range ranked {
		present[r.ID] = true
	}

	for _, o := range e.overrides {
		if o.Applies == nil || !o.Applies(profile) || present[o.SchemeID] {
			continue
		}
		s, ok := findScheme(catalog, o.SchemeID)
		if !ok {
			continue
		}
		forced = append(forced, models.ScoredScheme{Scheme: s, MatchScore: o.ForcedScore})
		present[o.SchemeID] = true
		applied = append(applied, o.Name)
	}
	return forced, applied
}

func findScheme(catalog []models.Scheme, id string) (models.Scheme, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return models.Scheme{}, false
}
