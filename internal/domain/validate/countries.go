package validate

import "strings"

// countryNames is the closed list accepted for nationality and place-of-issue
// fields. Matching is case-insensitive on the trimmed value.
var countryNames = []string{
	"Afghanistan",
	"Algeria",
	"Argentina",
	"Australia",
	"Austria",
	"Bahrain",
	"Bangladesh",
	"Belgium",
	"Brazil",
	"Canada",
	"China",
	"Colombia",
	"Czech Republic",
	"Denmark",
	"Egypt",
	"Ethiopia",
	"Finland",
	"France",
	"Germany",
	"Ghana",
	"Greece",
	"India",
	"Indonesia",
	"Iran",
	"Iraq",
	"Ireland",
	"Italy",
	"Japan",
	"Jordan",
	"Kenya",
	"Kuwait",
	"Lebanon",
	"Malaysia",
	"Mexico",
	"Morocco",
	"Nepal",
	"Netherlands",
	"New Zealand",
	"Nigeria",
	"Norway",
	"Oman",
	"Pakistan",
	"Philippines",
	"Poland",
	"Portugal",
	"Qatar",
	"Romania",
	"Russia",
	"Saudi Arabia",
	"Singapore",
	"Somalia",
	"South Africa",
	"South Korea",
	"Spain",
	"Sri Lanka",
	"Sudan",
	"Sweden",
	"Switzerland",
	"Syria",
	"Tanzania",
	"Thailand",
	"Tunisia",
	"Turkey",
	"Uganda",
	"Ukraine",
	"United Arab Emirates",
	"United Kingdom",
	"United States",
	"Vietnam",
	"Yemen",
}

var countrySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(countryNames))
	for _, name := range countryNames {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}()

func ValidCountry(name string) bool {
	_, ok := countrySet[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func Countries() []string {
	out := make([]string, len(countryNames))
	copy(out, countryNames)
	return out
}
