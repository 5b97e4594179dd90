package predictor

import (
	"net/url"
	"strings"

	"scheme-finder/internal/models"
)

type linkEntry struct {
	key  string
	link string
}

// schemeLinks maps lower-case scheme names and aliases to official portals.
// Partial matching walks it in order, so more specific keys come first
// within each group.
var schemeLinks = []linkEntry{
	{"beti bachao beti padhao", "https://wcd.nic.in/bbbp-scheme"},
	{"sukanya samriddhi yojana", "https://www.nsiindia.gov.in/InternalPage.aspx?Id_Pk=61"},
	{"pradhan mantri matru vandana yojana", "https://wcd.nic.in/schemes/pradhan-mantri-matru-vandana-yojana"},
	{"e-skilling for women", "https://meity.gov.in/"},

	{"pm kisan", "https://pmkisan.gov.in/"},
	{"pm kisan samman nidhi", "https://pmkisan.gov.in/"},
	{"kisan credit card", "https://pmkisan.gov.in/Rpt_BeneficiaryStatus_pub.aspx"},
	{"pradhan mantri fasal bima yojana", "https://pmfby.gov.in/"},

	{"ayushman bharat", "https://pmjay.gov.in/"},
	{"pradhan mantri jan arogya yojana", "https://pmjay.gov.in/"},
	{"pm jay", "https://pmjay.gov.in/"},
	{"rashtriya swasthya bima yojana", "https://www.rsby.gov.in/"},

	{"pradhan mantri kaushal vikas yojana", "https://pmkvyofficial.org"},
	{"pmkvy", "https://pmkvyofficial.org"},
	{"pmkvy 4.0", "https://pmkvyofficial.org"},
	{"deen dayal upadhyaya grameen kaushalya yojana", "https://ddugky.gov.in/"},
	{"ddu-gky", "https://ddugky.gov.in/"},
	{"strive", "https://strive.msde.gov.in/"},
	{"strive industrial training support", "https://strive.msde.gov.in/"},
	{"skill india digital", "https://skillindiadigital.gov.in/"},
	{"skill india digital platform", "https://skillindiadigital.gov.in/"},
	{"startup india seed fund", "https://startupindia.gov.in/"},
	{"startup india seed fund scheme", "https://startupindia.gov.in/"},
	{"nai manzil", "https://minorityaffairs.gov.in/"},
	{"nai manzil scheme", "https://minorityaffairs.gov.in/"},

	{"punjab ghar ghar rozgar", "https://pgrkam.com/"},
	{"punjab ghar ghar rozgar yojana", "https://pgrkam.com/"},
	{"gujarat skill development", "https://employment.gujarat.gov.in/"},
	{"skill development initiative scheme gujarat", "https://employment.gujarat.gov.in/"},
	{"uttar pradesh skill development mission", "https://upsdm.gov.in/"},
	{"upsdm", "https://upsdm.gov.in/"},
	{"up skill development mission", "https://upsdm.gov.in/"},
	{"karnataka yuva nidhi", "https://sevasindhu.karnataka.gov.in/"},
	{"karnataka yuva nidhi scheme", "https://sevasindhu.karnataka.gov.in/"},
	{"cmkky", "https://sevasindhu.karnataka.gov.in/"},
	{"maharashtra skill development", "https://msde.maharashtra.gov.in/"},
	{"maharashtra skill development program", "https://msde.maharashtra.gov.in/"},
	{"himayat", "https://himayat.org/"},
	{"himayat scheme", "https://himayat.org/"},
	{"tamil nadu skill development", "https://tnskill.tn.gov.in/"},
	{"tamil nadu skill development corporation", "https://tnskill.tn.gov.in/"},
	{"tnsdc", "https://tnskill.tn.gov.in/"},
	{"bihar kaushal yuva", "https://skillmissionbihar.org/"},
	{"kaushal yuva program bihar", "https://skillmissionbihar.org/"},
	{"west bengal utkarsh bangla", "https://pbssd.gov.in/"},
	{"utkarsh bangla", "https://pbssd.gov.in/"},

	{"mahatma gandhi nrega", "https://nrega.nic.in/netnrega/home.aspx"},
	{"mgnrega", "https://nrega.nic.in/netnrega/home.aspx"},
	{"skill india", "https://www.skillindia.gov.in/"},

	{"pradhan mantri awas yojana", "https://pmaymis.gov.in/"},
	{"pm awas yojana urban", "https://pmaymis.gov.in/"},
	{"pm awas yojana gramin", "https://pmayg.nic.in/"},
	{"pradhan mantri awas yojana gramin", "https://pmayg.nic.in/"},

	{"pradhan mantri mudra yojana", "https://www.mudra.org.in/"},
	{"mudra loan", "https://www.mudra.org.in/"},
	{"pradhan mantri jan dhan yojana", "https://pmjdy.gov.in/"},
	{"stand up india", "https://www.standupmitra.in/"},

	{"sarva shiksha abhiyan", "https://samagra.education.gov.in/"},
	{"mid day meal scheme", "https://mdm.nic.in/"},
	{"rashtriya madhyamik shiksha abhiyan", "https://samagra.education.gov.in/"},

	{"startup india", "https://www.startupindia.gov.in/"},
	{"pradhan mantri employment generation programme", "https://www.kviconline.gov.in/pmegpeportal/jsp/pmegponline/index.jsp"},

	{"pradhan mantri shram yogi maan dhan", "https://maandhan.in/"},
	{"atal pension yojana", "https://npscra.nsdl.co.in/atal-pension-yojana.php"},
	{"pradhan mantri jeevan jyoti bima yojana", "https://www.jansuraksha.gov.in/"},
	{"pradhan mantri suraksha bima yojana", "https://www.jansuraksha.gov.in/"},

	{"pradhan mantri gram sadak yojana", "https://pmgsy.nic.in/"},
	{"national rural livelihood mission", "https://aajeevika.gov.in/"},

	{"digital india", "https://digitalindia.gov.in/"},
	{"pradhan mantri gramin digital saksharta abhiyan", "https://pmgdisha.in/"},

	{"pradhan mantri ujjwala yojana", "https://pmuy.gov.in/"},
	{"pradhan mantri sahaj bijli har ghar yojana", "https://saubhagya.gov.in/"},

	{"jal jeevan mission", "https://jaljeevanmission.gov.in/"},
	{"swachh bharat mission", "https://swachhbharatmission.gov.in/"},
}

var abbreviations = []linkEntry{
	{"pmkvy", "pradhan mantri kaushal vikas yojana"},
	{"ddu-gky", "deen dayal upadhyaya grameen kaushalya yojana"},
	{"upsdm", "uttar pradesh skill development mission"},
	{"cmkky", "karnataka yuva nidhi scheme"},
	{"tnsdc", "tamil nadu skill development corporation"},
}

// SearchFallbackURL is used when no official portal is known for a scheme.
const SearchFallbackURL = "https://www.mygov.in/search/?query="

// LinkResolver finds an official application link for a scheme name.
type LinkResolver struct {
	exact   map[string]string
	catalog map[string]string
}

// NewLinkResolver indexes the built-in directory and the application links of
// catalog, keyed by lower-case scheme name.
func NewLinkResolver(catalog []models.Scheme) *LinkResolver {
	r := &LinkResolver{
		exact:   make(map[string]string, len(schemeLinks)),
		catalog: make(map[string]string, len(catalog)),
	}
	for _, e := range schemeLinks {
		if _, ok := r.exact[e.key]; !ok {
			r.exact[e.key] = e.link
		}
	}
	for _, s := range catalog {
		if s.ApplicationLink != "" {
			r.catalog[strings.ToLower(strings.TrimSpace(s.Name))] = s.ApplicationLink
		}
	}
	return r
}

// Resolve tries an exact directory hit, an exact catalog name, a partial
// directory match, then known abbreviations. Anything else goes to the MyGov
// search page.
func (r *LinkResolver) Resolve(schemeName string) string {
	name := strings.ToLower(strings.TrimSpace(schemeName))

	if link, ok := r.exact[name]; ok {
		return link
	}
	if link, ok := r.catalog[name]; ok {
		return link
	}

	if name != "" {
		for _, e := range schemeLinks {
			if strings.Contains(name, e.key) || strings.Contains(e.key, name) {
				return e.link
			}
		}
	}

	for _, a := range abbreviations {
		if name == a.key {
			if link, ok := r.exact[a.link]; ok {
				return link
			}
		}
	}
	for _, a := range abbreviations {
		if strings.Contains(name, a.key) || strings.Contains(name, a.link) {
			if link, ok := r.exact[a.link]; ok {
				return link
			}
		}
	}

	return SearchFallbackURL + strings.ReplaceAll(url.QueryEscape(schemeName), "+", "%20")
}
