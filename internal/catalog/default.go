// internal/catalog/default.go
package catalog

import "scheme-finder/internal/models"

// Default returns the built-in national and state scheme catalog. Each call
// returns a fresh copy the caller may modify.
func Default() []models.Scheme {
	return clone(builtin)
}

var builtin = []models.Scheme{
	{
		ID:                "beti-bachao",
		Name:              "Beti Bachao Beti Padhao",
		Description:       "Scheme to save and educate girl children",
		Benefits:          "Financial assistance for education, healthcare, and skill development",
		MinAge:            0,
		MaxAge:            21,
		GenderEligibility: models.GenderFemale,
		MinEducation:      models.EducationAny,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Women", "Student", "Girl Child"},
		Department:        "Ministry of Women and Child Development",
		ApplicationLink:   "https://wcd.nic.in/bbbp-scheme",
	},
	{
		ID:                "sukanya-samriddhi",
		Name:              "Sukanya Samriddhi Yojana",
		Description:       "Savings scheme for girl children",
		Benefits:          "High interest rate savings account with tax benefits",
		MinAge:            0,
		MaxAge:            10,
		GenderEligibility: models.GenderFemale,
		MinEducation:      models.EducationAny,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Women", "Student", "Girl Child"},
		Department:        "Ministry of Finance",
		ApplicationLink:   "https://www.nsiindia.gov.in/",
	},
	{
		ID:                "pm-matru-vandana",
		Name:              "Pradhan Mantri Matru Vandana Yojana",
		Description:       "Maternity benefit scheme for pregnant and lactating mothers",
		Benefits:          "Cash incentive of ₹5,000 for first living child",
		MinAge:            19,
		MaxAge:            49,
		GenderEligibility: models.GenderFemale,
		MinEducation:      models.EducationAny,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Women", "Pregnant Women"},
		Department:        "Ministry of Women and Child Development",
		ApplicationLink:   "https://wcd.nic.in/schemes/pradhan-mantri-matru-vandana-yojana",
	},
	{
		ID:                "e-skilling-women",
		Name:              "e-Skilling for Women",
		Description:       "Digital literacy and ICT skills for women",
		Benefits:          "Free digital skills training with certification",
		MinAge:            18,
		MaxAge:            60,
		GenderEligibility: models.GenderFemale,
		MinEducation:      models.EducationClass10,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Women", "Unemployed", "Digital Skills"},
		Department:        "Ministry of Electronics and Information Technology",
		ApplicationLink:   "https://meity.gov.in/",
	},
	{
		ID:                "pm-kisan",
		Name:              "PM-KISAN Samman Nidhi",
		Description:       "Direct income support to small and marginal farmers",
		Benefits:          "₹6,000 per year in three equal installments directly to bank accounts",
		MinAge:            18,
		MaxAge:            100,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationAny,
		Area:              models.AreaRural,
		State:             models.StateAny,
		TargetGroups:      []string{"Farmer", "Rural Worker"},
		Department:        "Ministry of Agriculture & Farmers Welfare",
		ApplicationLink:   "https://pmkisan.gov.in/",
	},
	{
		ID:                "kisan-credit-card",
		Name:              "Kisan Credit Card",
		Description:       "Credit facility for farmers for agricultural needs",
		Benefits:          "Easy credit access for farming activities",
		MinAge:            18,
		MaxAge:            70,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationAny,
		Area:              models.AreaRural,
		State:             models.StateAny,
		TargetGroups:      []string{"Farmer", "Rural Worker"},
		Department:        "Ministry of Agriculture & Farmers Welfare",
		ApplicationLink:   "https://pmkisan.gov.in/Rpt_BeneficiaryStatus_pub.aspx",
	},
	{
		ID:                "ayushman-bharat",
		Name:              "Ayushman Bharat - PM-JAY",
		Description:       "Health insurance scheme for economically vulnerable families",
		Benefits:          "Health cover of ₹5 lakh per family per year for secondary and tertiary care",
		MinAge:            0,
		MaxAge:            100,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationAny,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Rural Worker", "Unemployed", "Senior Citizen", "BPL"},
		Department:        "Ministry of Health and Family Welfare",
		ApplicationLink:   "https://pmjay.gov.in/",
	},
	{
		ID:                "pmkvy-4",
		Name:              "PMKVY 4.0 - Pradhan Mantri Kaushal Vikas Yojana",
		Description:       "Skill development and vocational training program",
		Benefits:          "Free skill training with certification and job placement assistance",
		MinAge:            15,
		MaxAge:            59,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass8,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Student", "Unemployed", "Rural Worker", "Youth"},
		Department:        "Ministry of Skill Development and Entrepreneurship",
		ApplicationLink:   "https://pmkvyofficial.org",
	},
	{
		ID:                "ddu-gky",
		Name:              "Deen Dayal Upadhyaya Grameen Kaushalya Yojana",
		Description:       "Rural skill development program with placement guarantee",
		Benefits:          "Free skill training with guaranteed job placement",
		MinAge:            15,
		MaxAge:            35,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass8,
		Area:              models.AreaRural,
		State:             models.StateAny,
		TargetGroups:      []string{"Student", "Rural Worker", "Unemployed", "Youth"},
		Department:        "Ministry of Rural Development",
		ApplicationLink:   "https://ddugky.gov.in/",
	},
	{
		ID:                "strive",
		Name:              "STRIVE - Skills Strengthening for Industrial Value Enhancement",
		Description:       "Industry-linked urban skilling program",
		Benefits:          "Industry-relevant skill training with job linkages",
		MinAge:            18,
		MaxAge:            45,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass8,
		Area:              models.AreaUrban,
		State:             models.StateAny,
		TargetGroups:      []string{"Student", "Unemployed", "Urban Worker"},
		Department:        "Ministry of Skill Development and Entrepreneurship",
		ApplicationLink:   "https://strive.msde.gov.in/",
	},
	{
		ID:                "skill-india-digital",
		Name:              "Skill India Digital Platform",
		Description:       "Digital learning platform for skill development",
		Benefits:          "Free online courses with certification",
		MinAge:            15,
		MaxAge:            60,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass8,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Student", "Unemployed", "Digital Skills", "Youth"},
		Department:        "Ministry of Skill Development and Entrepreneurship",
		ApplicationLink:   "https://skillindiadigital.gov.in/",
	},
	{
		ID:                "nai-manzil",
		Name:              "Nai Manzil Scheme",
		Description:       "Education and skill development for minority communities",
		Benefits:          "Integrated education and skill training for minorities",
		MinAge:            10,
		MaxAge:            35,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationDropout,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Minority", "Student", "Unemployed", "Dropout"},
		Department:        "Ministry of Minority Affairs",
		ApplicationLink:   "https://minorityaffairs.gov.in/",
	},
	{
		ID:                "punjab-ghar-ghar-rozgar",
		Name:              "Punjab Ghar Ghar Rozgar Yojana",
		Description:       "Employment generation scheme for Punjab youth",
		Benefits:          "Job placement assistance and skill development",
		MinAge:            18,
		MaxAge:            35,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass10,
		Area:              models.AreaAny,
		State:             "Punjab",
		TargetGroups:      []string{"Student", "Unemployed", "Youth"},
		Department:        "Government of Punjab",
		ApplicationLink:   "https://pgrkam.com/",
	},
	{
		ID:                "gujarat-skill-development",
		Name:              "Gujarat Skill Development Initiative",
		Description:       "Vocational training and entrepreneurship development",
		Benefits:          "NSQF-aligned training with job linkages",
		MinAge:            18,
		MaxAge:            35,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass10,
		Area:              models.AreaAny,
		State:             "Gujarat",
		TargetGroups:      []string{"Student", "Unemployed", "Entrepreneur"},
		Department:        "Government of Gujarat",
		ApplicationLink:   "https://employment.gujarat.gov.in/",
	},
	{
		ID:                "up-skill-development",
		Name:              "Uttar Pradesh Skill Development Mission",
		Description:       "Comprehensive skill development program for UP",
		Benefits:          "NSQF courses with apprenticeships and job placements",
		MinAge:            18,
		MaxAge:            35,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass10,
		Area:              models.AreaAny,
		State:             "Uttar Pradesh",
		TargetGroups:      []string{"Student", "Unemployed", "Youth"},
		Department:        "Government of Uttar Pradesh",
		ApplicationLink:   "https://upsdm.gov.in/",
	},
	{
		ID:                "karnataka-yuva-nidhi",
		Name:              "Karnataka Yuva Nidhi (CMKKY)",
		Description:       "Skill development for Karnataka youth",
		Benefits:          "3,000+ NSQF-aligned courses with placement guarantee",
		MinAge:            18,
		MaxAge:            35,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationDiploma,
		Area:              models.AreaAny,
		State:             "Karnataka",
		TargetGroups:      []string{"Student", "Graduate", "Unemployed"},
		Department:        "Government of Karnataka",
		ApplicationLink:   "https://sevasindhu.karnataka.gov.in/",
	},
	{
		ID:                "maharashtra-skill-development",
		Name:              "Maharashtra Skill Development Program",
		Description:       "Vocational training and entrepreneurship support",
		Benefits:          "Skill training with priority for women and BPL families",
		MinAge:            18,
		MaxAge:            35,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass10,
		Area:              models.AreaAny,
		State:             "Maharashtra",
		TargetGroups:      []string{"Student", "Unemployed", "Entrepreneur"},
		Department:        "Government of Maharashtra",
		ApplicationLink:   "https://msde.maharashtra.gov.in/",
	},
	{
		ID:                "himayat-jk",
		Name:              "Himayat Scheme (J&K)",
		Description:       "Skill training and job placement for J&K youth",
		Benefits:          "Skill training with guaranteed job placements",
		MinAge:            18,
		MaxAge:            35,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass10,
		Area:              models.AreaAny,
		State:             "Jammu and Kashmir",
		TargetGroups:      []string{"Student", "Unemployed", "Rural Worker"},
		Department:        "Government of J&K",
		ApplicationLink:   "https://himayat.org/",
	},
	{
		ID:                "tamil-nadu-skill-development",
		Name:              "Tamil Nadu Skill Development Corporation",
		Description:       "Vocational training and apprenticeship programs",
		Benefits:          "NSQF-aligned training with industry partnerships",
		MinAge:            18,
		MaxAge:            35,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass10,
		Area:              models.AreaAny,
		State:             "Tamil Nadu",
		TargetGroups:      []string{"Student", "Unemployed", "Youth"},
		Department:        "Government of Tamil Nadu",
		ApplicationLink:   "https://tnskill.tn.gov.in/",
	},
	{
		ID:                "bihar-kaushal-yuva",
		Name:              "Bihar Kaushal Yuva Program",
		Description:       "Skill and entrepreneurship training for Bihar youth",
		Benefits:          "Skill training with job placement assistance",
		MinAge:            18,
		MaxAge:            35,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass8,
		Area:              models.AreaAny,
		State:             "Bihar",
		TargetGroups:      []string{"Student", "Unemployed", "Rural Worker"},
		Department:        "Government of Bihar",
		ApplicationLink:   "https://skillmissionbihar.org/",
	},
	{
		ID:                "west-bengal-utkarsh",
		Name:              "West Bengal Utkarsh Bangla",
		Description:       "Skill development for marginal groups in West Bengal",
		Benefits:          "Focus on entrepreneurship and skill training",
		MinAge:            18,
		MaxAge:            35,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass8,
		Area:              models.AreaAny,
		State:             "West Bengal",
		TargetGroups:      []string{"Student", "Unemployed", "Marginal Groups"},
		Department:        "Government of West Bengal",
		ApplicationLink:   "https://pbssd.gov.in/",
	},
	{
		ID:                "mgnrega",
		Name:              "Mahatma Gandhi NREGA",
		Description:       "Rural employment guarantee scheme",
		Benefits:          "100 days of guaranteed wage employment per household per year",
		MinAge:            18,
		MaxAge:            65,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationAny,
		Area:              models.AreaRural,
		State:             models.StateAny,
		TargetGroups:      []string{"Rural Worker", "Unemployed"},
		Department:        "Ministry of Rural Development",
		ApplicationLink:   "https://nrega.nic.in/",
	},
	{
		ID:                "startup-india-seed-fund",
		Name:              "Startup India Seed Fund Scheme",
		Description:       "Funding support for startups and entrepreneurs",
		Benefits:          "Financial support for proof of concept and prototype development",
		MinAge:            18,
		MaxAge:            50,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationGraduate,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Entrepreneur", "Student", "Graduate"},
		Department:        "Department for Promotion of Industry and Internal Trade",
		ApplicationLink:   "https://startupindia.gov.in/",
	},
	{
		ID:                "mudra-yojana",
		Name:              "Pradhan Mantri MUDRA Yojana",
		Description:       "Micro-finance scheme for small businesses",
		Benefits:          "Loans up to ₹10 lakh for micro and small enterprises",
		MinAge:            18,
		MaxAge:            65,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationClass10,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Entrepreneur", "Small Business Owner"},
		Department:        "Ministry of Finance",
		ApplicationLink:   "https://mudra.org.in/",
	},
	{
		ID:                "pm-awas-rural",
		Name:              "PM Awas Yojana - Gramin",
		Description:       "Housing scheme for rural areas",
		Benefits:          "Financial assistance for construction of pucca houses",
		MinAge:            18,
		MaxAge:            70,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationAny,
		Area:              models.AreaRural,
		State:             models.StateAny,
		TargetGroups:      []string{"Rural Worker", "Farmer", "BPL"},
		Department:        "Ministry of Rural Development",
		ApplicationLink:   "https://pmayg.nic.in/",
	},
	{
		ID:                "pm-awas-urban",
		Name:              "PM Awas Yojana - Urban",
		Description:       "Housing scheme for urban areas",
		Benefits:          "Credit linked subsidy and affordable housing",
		MinAge:            18,
		MaxAge:            70,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationAny,
		Area:              models.AreaUrban,
		State:             models.StateAny,
		TargetGroups:      []string{"Unemployed", "Small Business Owner", "Urban Worker"},
		Department:        "Ministry of Housing and Urban Affairs",
		ApplicationLink:   "https://pmaymis.gov.in/",
	},
	{
		ID:                "pension-scheme",
		Name:              "PM Shram Yogi Maan-dhan",
		Description:       "Pension scheme for unorganized workers",
		Benefits:          "Monthly pension of ₹3,000 after 60 years of age",
		MinAge:            18,
		MaxAge:            40,
		GenderEligibility: models.GenderAny,
		MinEducation:      models.EducationBelowClass5,
		Area:              models.AreaAny,
		State:             models.StateAny,
		TargetGroups:      []string{"Rural Worker", "Unemployed", "Unorganized Worker"},
		Department:        "Ministry of Labour and Employment",
		ApplicationLink:   "https://maandhan.in/",
	},
}
