// Package currency localizes monetary values for the cities the hub serves.
// All stored prices are USD-based; display values are converted and formatted
// per the viewer's selected city. Every function here is pure.
package currency

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is one row of the fixed reference table. RateToUSD multiplies a
// USD base value into the local unit.
type Currency struct {
	Code      string  `json:"code"`
	Symbol    string  `json:"symbol"`
	RateToUSD float64 `json:"rate_to_usd"`
}

// ContactLabel is rendered when a listing has no price. Absence of price is
// not zero price.
const ContactLabel = "Contact"

const defaultCode = "USD"

var currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", RateToUSD: 1},
	"GBP": {Code: "GBP", Symbol: "£", RateToUSD: 0.78},
	"AUD": {Code: "AUD", Symbol: "A$", RateToUSD: 1.52},
	"EUR": {Code: "EUR", Symbol: "€", RateToUSD: 0.92},
	"AED": {Code: "AED", Symbol: "د.إ", RateToUSD: 3.67},
	"NPR": {Code: "NPR", Symbol: "रु", RateToUSD: 133.25},
}

var cityCurrency = map[string]string{
	"London":    "GBP",
	"Aldershot": "GBP",
	"New York":  "USD",
	"Dallas":    "USD",
	"Sydney":    "AUD",
	"Melbourne": "AUD",
	"Dubai":     "AED",
	"Doha":      "AED",
	"Lisbon":    "EUR",
	"Kathmandu": "NPR",
	"Global":    "USD",
}

var (
	indianGrouping  = message.NewPrinter(language.MustParse("en-IN"))
	westernGrouping = message.NewPrinter(language.English)
)

// ForCity returns the currency used in the given city, falling back to USD
// for cities outside the reference table.
func ForCity(city string) Currency {
	code, ok := cityCurrency[city]
	if !ok {
		code = defaultCode
	}
	return currencies[code]
}

// Format converts a USD value into the city's currency and renders it with
// the currency's display conventions, rounded to whole units. A nil value
// renders as ContactLabel. The suffix, if any, is appended verbatim
// (e.g. "/night").
func Format(value *float64, city, suffix string) string {
	if value == nil {
		return ContactLabel
	}
	cur := ForCity(city)
	converted := int64(math.Round(*value * cur.RateToUSD))

	// NPR carries a space after the symbol and groups digits the Indian way.
	if cur.Code == "NPR" {
		return cur.Symbol + " " + indianGrouping.Sprintf("%d", converted) + suffix
	}
	return cur.Symbol + westernGrouping.Sprintf("%d", converted) + suffix
}

// FormatCredits renders a credit balance as its dollar redemption value,
// at the fixed 100-credits-per-dollar rate.
func FormatCredits(credits float64) string {
	return fmt.Sprintf("$%.2f", credits/100)
}
