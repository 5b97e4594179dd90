package predictor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"scheme-finder/internal/models"
)

const (
	// MaxShortlist caps the predictor results shown to a citizen.
	MaxShortlist = 5

	UnknownScheme = "Unknown Scheme"
	UnknownState  = "Unknown State"

	BetiBachaoPriorityID   = "beti-bachao-priority"
	BetiBachaoName         = "Beti Bachao Beti Padhao"
	BetiBachaoOfficialLink = "https://wcd.nic.in/bbbp-scheme"
)

// femaleOnlyKeywords mark predictor results that only women may apply for.
var femaleOnlyKeywords = []string{
	"beti bachao",
	"beti padhao",
	"sukanya samriddhi",
	"matru vandana",
	"e-skilling for women",
	"women empowerment",
	"girl child",
	"pregnant women",
	"lactating mother",
}

// Item is one raw predictor result. Field names vary between model versions.
type Item map[string]interface{}

// ParseItems accepts a bare array or an object carrying the list under
// recommendations, schemes or data.
func ParseItems(body []byte) ([]Item, error) {
	var list []Item
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode predictor response: %w", err)
	}
	for _, key := range []string{"recommendations", "schemes", "data"} {
		raw, ok := wrapped[key]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decode predictor %s: %w", key, err)
		}
		return list, nil
	}
	return []Item{}, nil
}

// first returns the first non-empty string among keys.
func (it Item) first(keys ...string) string {
	for _, k := range keys {
		if s, ok := it[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func (it Item) Name() string {
	if n := it.first("Scheme_Name", "scheme_name", "name", "title"); n != "" {
		return n
	}
	return UnknownScheme
}

func (it Item) State() string {
	if s := it.first("State", "state", "location"); s != "" {
		return s
	}
	return UnknownState
}

func (it Item) Link() string {
	return it.first("Application_Link", "application_link", "link", "url")
}

// Shortlister turns raw predictor output into the list shown to a citizen.
type Shortlister struct {
	links      *LinkResolver
	restricted []restrictedName
}

type restrictedName struct {
	name   string
	gender models.Gender
}

// NewShortlister uses catalog both to resolve links and to learn which scheme
// names are restricted to one gender.
func NewShortlister(catalog []models.Scheme) *Shortlister {
	s := &Shortlister{links: NewLinkResolver(catalog)}
	for _, sc := range catalog {
		if sc.GenderEligibility != models.GenderAny && sc.Name != "" {
			s.restricted = append(s.restricted, restrictedName{
				name:   strings.ToLower(sc.Name),
				gender: sc.GenderEligibility,
			})
		}
	}
	return s
}

// Allowed reports whether a predictor result named name may be shown to a
// citizen of gender g.
func (s *Shortlister) Allowed(name string, g models.Gender) bool {
	lower := strings.ToLower(name)
	if g != models.GenderFemale {
		for _, kw := range femaleOnlyKeywords {
			if strings.Contains(lower, kw) {
				return false
			}
		}
	}
	for _, r := range s.restricted {
		if r.gender != g && strings.Contains(lower, r.name) {
			return false
		}
	}
	return true
}

// Shortlist filters items by gender, normalizes them, keeps the first
// MaxShortlist and makes sure girls and young women see Beti Bachao Beti
// Padhao, replacing the last entry when the list is full.
func (s *Shortlister) Shortlist(profile models.UserProfile, items []Item) []models.SchemeRecommendation {
	out := make([]models.SchemeRecommendation, 0, MaxShortlist)

	for _, it := range items {
		if len(out) == MaxShortlist {
			break
		}
		name := it.Name()
		if !s.Allowed(name, profile.Gender) {
			continue
		}

		link := it.Link()
		if !strings.HasPrefix(link, "http") {
			link = s.links.Resolve(name)
		}
		out = append(out, models.SchemeRecommendation{
			ID:              strconv.Itoa(len(out)),
			SchemeName:      name,
			State:           it.State(),
			ApplicationLink: link,
		})
	}

	if !needsBetiBachao(profile, out) {
		return out
	}

	priority := models.SchemeRecommendation{
		ID:              BetiBachaoPriorityID,
		SchemeName:      BetiBachaoName,
		State:           profile.State,
		ApplicationLink: BetiBachaoOfficialLink,
	}
	if len(out) >= MaxShortlist {
		out[MaxShortlist-1] = priority
	} else {
		out = append(out, priority)
	}
	return out
}

func needsBetiBachao(profile models.UserProfile, recs []models.SchemeRecommendation) bool {
	if profile.Gender != models.GenderFemale || profile.Age < 0 || profile.Age > 21 {
		return false
	}
	for _, r := range recs {
		name := strings.ToLower(r.SchemeName)
		if strings.Contains(name, "beti bachao") || strings.Contains(name, "beti padhao") {
			return false
		}
	}
	return true
}
