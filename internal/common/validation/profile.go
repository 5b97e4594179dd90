package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/xeipuuv/gojsonschema"

	"scheme-finder/internal/models"
)

// Messages shown to citizens for each invalid profile field.
const (
	MsgAge        = "Please enter a valid age between 0 and 100"
	MsgGender     = "Please select your gender"
	MsgEducation  = "Please select your education level"
	MsgArea       = "Please select your area type"
	MsgState      = "Please select your state"
	MsgCategories = "Please select at least one category"
	MsgCategory   = "Categories must be at most 60 characters"
)

// MaxCategoryLength bounds a single category tag. Tags are free text; the
// form's option list only fixes their canonical spelling.
const MaxCategoryLength = 60

// profileSchema checks the shape of a submitted profile. Value membership is
// left to ValidateProfile so that casing can be normalized first.
var profileSchema = map[string]interface{}{
	"$schema":  "http://json-schema.org/draft-07/schema#",
	"type":     "object",
	"required": []string{"age", "gender", "education", "area", "state", "categories"},
	"properties": map[string]interface{}{
		"age":        map[string]interface{}{"type": "integer"},
		"gender":     map[string]interface{}{"type": "string"},
		"education":  map[string]interface{}{"type": "string"},
		"area":       map[string]interface{}{"type": "string"},
		"state":      map[string]interface{}{"type": "string"},
		"categories": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
	},
}

var (
	profileOnce     sync.Once
	compiledProfile *gojsonschema.Schema
	profileErr      error
)

func ProfileSchema() (*gojsonschema.Schema, error) {
	profileOnce.Do(func() {
		raw, err := json.Marshal(profileSchema)
		if err != nil {
			profileErr = err
			return
		}
		compiledProfile, profileErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	})
	return compiledProfile, profileErr
}

// DecodeProfile validates the shape of a raw profile document and decodes it.
// The returned result lists shape violations; the profile is only usable when
// result.Valid is true.
func DecodeProfile(document map[string]interface{}) (models.UserProfile, *ValidationResult, error) {
	var profile models.UserProfile

	schema, err := ProfileSchema()
	if err != nil {
		return profile, nil, fmt.Errorf("compile profile schema: %w", err)
	}
	result, err := ValidateDocument(schema, document)
	if err != nil || !result.Valid {
		return profile, result, err
	}

	raw, err := json.Marshal(document)
	if err != nil {
		return profile, nil, fmt.Errorf("encode profile: %w", err)
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		return profile, nil, fmt.Errorf("decode profile: %w", err)
	}
	return profile, result, nil
}

// NormalizeProfile trims every field and maps option values onto their
// canonical spelling. Values outside the option lists are kept as entered.
func NormalizeProfile(p models.UserProfile) models.UserProfile {
	gender, _ := models.Canonical(string(p.Gender), genderOptions)
	area, _ := models.Canonical(string(p.Area), areaOptions)
	education, _ := models.Canonical(string(p.Education), educationOptions)
	state, _ := models.Canonical(p.State, models.IndianStates)

	out := models.UserProfile{
		Age:       p.Age,
		Gender:    models.Gender(gender),
		Education: models.Education(education),
		Area:      models.Area(area),
		State:     state,
	}

	seen := make(map[string]bool, len(p.Categories))
	for _, c := range p.Categories {
		c, _ = models.Canonical(c, models.CategoryOptions)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out.Categories = append(out.Categories, c)
	}
	return out
}

// ValidateProfile applies the profile form rules. Call it on a normalized
// profile.
func ValidateProfile(p models.UserProfile) *ValidationResult {
	err := ozzo.ValidateStruct(&p,
		ozzo.Field(&p.Age, ozzo.Min(0).Error(MsgAge), ozzo.Max(100).Error(MsgAge)),
		ozzo.Field(&p.Gender, ozzo.Required.Error(MsgGender), ozzo.In(genderValues()...).Error(MsgGender)),
		ozzo.Field(&p.Education, ozzo.Required.Error(MsgEducation), ozzo.In(educationValues()...).Error(MsgEducation)),
		ozzo.Field(&p.Area, ozzo.Required.Error(MsgArea), ozzo.In(areaValues()...).Error(MsgArea)),
		ozzo.Field(&p.State, ozzo.Required.Error(MsgState), ozzo.In(stringValues(models.IndianStates)...).Error(MsgState)),
		ozzo.Field(&p.Categories,
			ozzo.Required.Error(MsgCategories),
			ozzo.Each(ozzo.RuneLength(1, MaxCategoryLength).Error(MsgCategory)),
		),
	)
	return fromOzzo(err)
}

func fromOzzo(err error) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if err == nil {
		return result
	}

	errs, ok := err.(ozzo.Errors)
	if !ok {
		result.Valid = false
		result.Errors = []ValidationError{{Field: "profile", Message: err.Error(), Code: "INVALID_PROFILE"}}
		return result
	}

	flatten("", errs, &result.Errors)
	sort.SliceStable(result.Errors, func(i, j int) bool { return result.Errors[i].Field < result.Errors[j].Field })
	result.Valid = len(result.Errors) == 0
	return result
}

func flatten(prefix string, errs ozzo.Errors, out *[]ValidationError) {
	for field, err := range errs {
		if prefix != "" {
			field = fmt.Sprintf("%s[%s]", prefix, field)
		}
		if nested, ok := err.(ozzo.Errors); ok {
			flatten(field, nested, out)
			continue
		}
		code := "INVALID_VALUE"
		if e, ok := err.(ozzo.Error); ok {
			code = strings.ToUpper(e.Code())
		}
		*out = append(*out, ValidationError{Field: field, Message: err.Error(), Code: code})
	}
}

var (
	genderOptions    = []string{string(models.GenderMale), string(models.GenderFemale), string(models.GenderOther)}
	areaOptions      = []string{string(models.AreaRural), string(models.AreaUrban)}
	educationOptions = func() []string {
		out := make([]string, 0, len(models.EducationHierarchy))
		for _, e := range models.EducationHierarchy {
			if e != models.EducationAny {
				out = append(out, string(e))
			}
		}
		return out
	}()
)

func genderValues() []interface{} {
	out := make([]interface{}, len(models.Genders))
	for i, g := range models.Genders {
		out[i] = g
	}
	return out
}

func areaValues() []interface{} {
	out := make([]interface{}, len(models.Areas))
	for i, a := range models.Areas {
		out[i] = a
	}
	return out
}

func educationValues() []interface{} {
	out := make([]interface{}, len(educationOptions))
	for i, e := range educationOptions {
		out[i] = models.Education(e)
	}
	return out
}

func stringValues(options []string) []interface{} {
	out := make([]interface{}, len(options))
	for i, o := range options {
		out[i] = o
	}
	return out
}
