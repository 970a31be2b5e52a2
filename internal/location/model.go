package location

// Timezone is one entry of Country.Timezones.
type Timezone struct {
	ZoneName      string `bson:"zoneName" json:"zoneName"`
	GMTOffset     int    `bson:"gmtOffset" json:"gmtOffset"`
	GMTOffsetName string `bson:"gmtOffsetName" json:"gmtOffsetName"`
	Abbreviation  string `bson:"abbreviation" json:"abbreviation"`
	TZName        string `bson:"tzName" json:"tzName"`
}

// Country is a document of the countries collection.
type Country struct {
	ID             int               `bson:"id" json:"id"`
	Name           string            `bson:"name" json:"name"`
	ISO3           string            `bson:"iso3" json:"iso3"`
	ISO2           string            `bson:"iso2" json:"iso2"`
	NumericCode    string            `bson:"numeric_code" json:"numeric_code"`
	PhoneCode      string            `bson:"phone_code" json:"phone_code"`
	Capital        string            `bson:"capital" json:"capital"`
	Currency       string            `bson:"currency" json:"currency"`
	CurrencyName   string            `bson:"currency_name" json:"currency_name"`
	CurrencySymbol string            `bson:"currency_symbol" json:"currency_symbol"`
	TLD            string            `bson:"tld" json:"tld"`
	Native         string            `bson:"native" json:"native"`
	Region         string            `bson:"region" json:"region"`
	RegionID       string            `bson:"region_id" json:"region_id"`
	Subregion      string            `bson:"subregion" json:"subregion"`
	SubregionID    string            `bson:"subregion_id" json:"subregion_id"`
	Nationality    string            `bson:"nationality" json:"nationality"`
	Timezones      []Timezone        `bson:"timezones" json:"timezones"`
	Translations   map[string]string `bson:"translations" json:"translations"`
	Latitude       string            `bson:"latitude" json:"latitude"`
	Longitude      string            `bson:"longitude" json:"longitude"`
	Emoji          string            `bson:"emoji" json:"emoji"`
	EmojiU         string            `bson:"emojiU" json:"emojiU"`
}

// State is a document of the states collection.
type State struct {
	ID          int    `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	CountryID   int    `bson:"country_id" json:"country_id"`
	CountryCode string `bson:"country_code" json:"country_code"`
	CountryName string `bson:"country_name" json:"country_name"`
	StateCode   string `bson:"state_code" json:"state_code"`
	Type        string `bson:"type" json:"type"`
	Latitude    string `bson:"latitude" json:"latitude"`
	Longitude   string `bson:"longitude" json:"longitude"`
}

// City is a document of the cities collection.
type City struct {
	ID          int    `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	StateID     int    `bson:"state_id" json:"state_id"`
	StateCode   string `bson:"state_code" json:"state_code"`
	StateName   string `bson:"state_name" json:"state_name"`
	CountryID   int    `bson:"country_id" json:"country_id"`
	CountryCode string `bson:"country_code" json:"country_code"`
	CountryName string `bson:"country_name" json:"country_name"`
	Latitude    string `bson:"latitude" json:"latitude"`
	Longitude   string `bson:"longitude" json:"longitude"`
	WikiDataID  string `bson:"wikiDataId" json:"wikiDataId"`
}
