package scoring

import "strings"

const (
	RegionNorthAmerica = "North America"
	RegionEurope       = "Europe"
	RegionAsiaPacific  = "Asia-Pacific"
	RegionLatinAmerica = "Latin America"
	RegionOther        = "Other"
)

var regionByLocation = map[string]string{
	"United States":  RegionNorthAmerica,
	"Canada":         RegionNorthAmerica,
	"United Kingdom": RegionEurope,
	"Germany":        RegionEurope,
	"France":         RegionEurope,
	"Netherlands":    RegionEurope,
	"Australia":      RegionAsiaPacific,
	"Singapore":      RegionAsiaPacific,
	"Japan":          RegionAsiaPacific,
	"Brazil":         RegionLatinAmerica,
	"Mexico":         RegionLatinAmerica,
}

// RegionFor maps a lead location onto a sales region. Unmapped locations are "Other".
func RegionFor(location string) string {
	if region, ok := regionByLocation[location]; ok {
		return region
	}
	return RegionOther
}

// regionsForCountry guesses three target regions from the user's own country
func regionsForCountry(country string) []string {
	if country == "" {
		country = "United States"
	}
	switch {
	case strings.Contains(country, "United States"), strings.Contains(country, "Canada"):
		return []string{RegionNorthAmerica, RegionEurope, RegionAsiaPacific}
	case strings.Contains(country, "United Kingdom"),
		strings.Contains(country, "Germany"),
		strings.Contains(country, "France"):
		return []string{RegionEurope, RegionNorthAmerica, RegionAsiaPacific}
	default:
		return []string{RegionAsiaPacific, RegionNorthAmerica, RegionEurope}
	}
}
