package app

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// CountryCodes lists the countries offered by the country selector.
var CountryCodes = []string{"US", "IN", "GB", "DE", "CA", "FR", "AU", "JP", "IT", "BR"}

// CountryName returns the English name of an ISO 3166 country code, or the
// code itself when it is not a known region.
func CountryName(code string) string {
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := display.English.Regions().Name(region); name != "" {
		return name
	}
	return code
}

// Countries returns the selector entries.
func Countries() []Country {
	countries := make([]Country, 0, len(CountryCodes))
	for _, code := range CountryCodes {
		countries = append(countries, Country{Code: code, Name: CountryName(code)})
	}
	return countries
}

// NormalizeCountry validates a country code and returns it in upper case.
func NormalizeCountry(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return "", false
	}
	if _, err := language.ParseRegion(code); err != nil {
		return "", false
	}
	return code, true
}

// NextCountry returns the country following code in CountryCodes.
func NextCountry(code string) string {
	for i, c := range CountryCodes {
		if c == code {
			return CountryCodes[(i+1)%len(CountryCodes)]
		}
	}
	return CountryCodes[0]
}
