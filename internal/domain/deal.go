package domain

// FlightDeal is one parsed entry from a flight-search oracle response.
// Deals are ephemeral: rebuilt from scratch on every search, never stored.
type FlightDeal struct {
	Airline     string `json:"airline"`
	Price       string `json:"price"`
	Class       string `json:"class"`
	URL         string `json:"url"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// TravelDeal is the bulleted-dialect counterpart of FlightDeal; it carries a
// comparison blurb instead of a cabin class.
type TravelDeal struct {
	Airline    string `json:"airline"`
	Price      string `json:"price"`
	Comparison string `json:"comparison"`
	URL        string `json:"url"`
}

// Citation is one grounding record attached to an oracle completion.
type Citation struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// PartnerSource is a de-duplicated citation host shown as a booking partner.
type PartnerSource struct {
	Hostname string `json:"hostname"`
	URL      string `json:"url"`
}

// CityInsights is the maps-grounded neighborhood briefing for a city.
type CityInsights struct {
	City    string     `json:"city"`
	Text    string     `json:"text"`
	Sources []PartnerSource `json:"sources"`
}

// AuthenticityScore is the oracle's verdict on a blog draft. General posts
// are surface-level listicles; non-general ones earn scaled credits.
type AuthenticityScore struct {
	Score   int  `json:"score"`
	General bool `json:"isGeneral"`
}
