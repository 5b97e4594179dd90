// internal/models/profile.go
package models

import "strings"

// Gender is compared as an opaque string: a scheme restricted to "Female"
// never matches a profile that says "female".
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
	GenderAny    Gender = "Any" // scheme side only
)

type Area string

const (
	AreaRural Area = "Rural"
	AreaUrban Area = "Urban"
	AreaAny   Area = "Any" // scheme side only
)

// StateAny on a scheme admits citizens of every state.
const StateAny = "Any"

type Education string

const (
	EducationAny                Education = "Any"
	EducationDropout            Education = "Dropout"
	EducationBelowClass5        Education = "Below Class 5"
	EducationClass5             Education = "Class 5"
	EducationClass8             Education = "Class 8"
	EducationClass10            Education = "Class 10"
	EducationClass12            Education = "Class 12"
	EducationDiploma            Education = "Diploma"
	EducationGraduate           Education = "Graduate"
	EducationPostgraduate       Education = "Postgraduate"
	EducationProfessionalDegree Education = "Professional Degree"
)

// EducationHierarchy lists attainment levels in ascending order.
var EducationHierarchy = []Education{
	EducationAny,
	EducationDropout,
	EducationBelowClass5,
	EducationClass5,
	EducationClass8,
	EducationClass10,
	EducationClass12,
	EducationDiploma,
	EducationGraduate,
	EducationPostgraduate,
	EducationProfessionalDegree,
}

// Rank returns the index of e in EducationHierarchy, or -1 when e is not a
// recognized level.
func (e Education) Rank() int {
	for i, lvl := range EducationHierarchy {
		if lvl == e {
			return i
		}
	}
	return -1
}

// UserProfile is the citizen's self-reported demographics.
type UserProfile struct {
	Age        int       `json:"age"`
	Gender     Gender    `json:"gender"`
	Education  Education `json:"education"`
	Area       Area      `json:"area"`
	State      string    `json:"state"`
	Categories []string  `json:"categories"`
}

// Genders, Areas and the lists below are the closed option sets offered on
// the profile form.
var (
	Genders = []Gender{GenderMale, GenderFemale, GenderOther}
	Areas   = []Area{AreaRural, AreaUrban}

	IndianStates = []string{
		"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
		"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand",
		"Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra", "Manipur",
		"Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab",
		"Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura",
		"Uttar Pradesh", "Uttarakhand", "West Bengal", "Delhi",
		"Jammu and Kashmir", "Ladakh",
	}

	CategoryOptions = []string{
		"Student", "Unemployed", "Farmer", "Rural Worker", "Urban Worker",
		"Women", "Senior Citizen", "Entrepreneur", "Small Business Owner",
		"Graduate", "Minority", "BPL", "Dropout", "Youth", "Digital Skills",
		"Girl Child", "Pregnant Women", "Unorganized Worker", "Marginal Groups",
	}
)

// Canonical returns the option from options that equals s ignoring case and
// surrounding space, and whether one was found.
func Canonical(s string, options []string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, o := range options {
		if strings.EqualFold(o, s) {
			return o, true
		}
	}
	return s, false
}
