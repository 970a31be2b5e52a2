package location

import "github.com/dmitrymomot/geoapi/pkg/filter"

// Languages with a country name translation.
var translationLanguages = []string{
	"kr", "pt_BR", "pt", "nl", "hr", "fa", "de", "es", "fr", "ja", "it", "cn", "tr",
}

// Queryable fields per entity. Timezones are nested records and cannot be
// filtered on.
var (
	CountryFields = filter.NewFields(countryKinds())

	StateFields = filter.NewFields(map[string]filter.Kind{
		"id":           filter.Int,
		"name":         filter.String,
		"country_id":   filter.Int,
		"country_code": filter.String,
		"country_name": filter.String,
		"state_code":   filter.String,
		"type":         filter.String,
		"latitude":     filter.String,
		"longitude":    filter.String,
	})

	CityFields = filter.NewFields(map[string]filter.Kind{
		"id":           filter.Int,
		"name":         filter.String,
		"state_id":     filter.Int,
		"state_code":   filter.String,
		"state_name":   filter.String,
		"country_id":   filter.Int,
		"country_code": filter.String,
		"country_name": filter.String,
		"latitude":     filter.String,
		"longitude":    filter.String,
		"wikiDataId":   filter.String,
	})
)

func countryKinds() map[string]filter.Kind {
	kinds := map[string]filter.Kind{
		"id":              filter.Int,
		"name":            filter.String,
		"iso3":            filter.String,
		"iso2":            filter.String,
		"numeric_code":    filter.String,
		"phone_code":      filter.String,
		"capital":         filter.String,
		"currency":        filter.String,
		"currency_name":   filter.String,
		"currency_symbol": filter.String,
		"tld":             filter.String,
		"native":          filter.String,
		"region":          filter.String,
		"region_id":       filter.String,
		"subregion":       filter.String,
		"subregion_id":    filter.String,
		"nationality":     filter.String,
		"latitude":        filter.String,
		"longitude":       filter.String,
		"emoji":           filter.String,
		"emojiU":          filter.String,
	}
	for _, lang := range translationLanguages {
		kinds["translations."+lang] = filter.String
	}
	return kinds
}
