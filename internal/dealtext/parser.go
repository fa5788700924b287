// Package dealtext parses flight-deal records out of free text returned by
// the generative oracle. The text has no schema guarantee; two known but
// unstable dialects exist (numbered entries with Price/Class/Link labels, and
// bulleted entries with Price/Comparison labels), produced by different
// prompt formats. Both are kept as separate parsers on purpose. Anything the
// parsers cannot recognize degrades to zero results, never to an error.
package dealtext

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

// sectionMarkerPrefix demarcates named sections in oracle output,
// e.g. "### BUDGET_FLIGHTS".
const sectionMarkerPrefix = "### "

// maxDealsPerSection caps how many entries a single section may yield.
const maxDealsPerSection = 5

// maxPartnerSources caps the de-duplicated citation hosts surfaced to users.
const maxPartnerSources = 2

var (
	numberedEntrySplit = regexp.MustCompile(`\d+\.\s+`)
	bulletEntrySplit   = regexp.MustCompile(`\n\s*\*\s+`)
	travelSectionSplit = regexp.MustCompile(`### VALUE_DEALS|### PREMIUM_DEALS`)
	markdownLinkRe     = regexp.MustCompile(`\((https?://[^\s)]+)\)`)
	bareLinkRe         = regexp.MustCompile(`https?://[^\s]+`)
	boldOnlyLineRe     = regexp.MustCompile(`^\*\*[^*]+\*\*$`)
)

// ParseFlightSection extracts the numbered-dialect deals from the named
// section of an oracle completion. The section runs from its marker to the
// next marker or end of text. A missing marker yields an empty result.
// Entries missing any of airline, price, or URL are dropped; a missing class
// defaults to "Standard".
func ParseFlightSection(text, section, origin, destination string) []domain.FlightDeal {
	marker := sectionMarkerPrefix + section
	start := strings.Index(text, marker)
	if start == -1 {
		return nil
	}

	content := text[start:]
	if end := strings.Index(text[start+len(marker):], "###"); end != -1 {
		content = text[start : start+len(marker)+end]
	}

	items := numberedEntrySplit.Split(content, -1)
	if len(items) > 0 {
		items = items[1:]
	}

	deals := make([]domain.FlightDeal, 0, len(items))
	for _, item := range items {
		var lines []string
		for _, raw := range strings.Split(item, "\n") {
			if trimmed := strings.TrimSpace(raw); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
		if len(lines) == 0 {
			continue
		}

		airline := strings.TrimSpace(strings.ReplaceAll(lines[0], "**", ""))
		var price, class, link string

		for _, line := range lines {
			lower := strings.ToLower(line)
			switch {
			case strings.Contains(lower, "price:"):
				price = stripEmphasis(afterLabel(line))
			case strings.Contains(lower, "class:"):
				class = stripEmphasis(afterLabel(line))
			case strings.Contains(lower, "link:"):
				if m := markdownLinkRe.FindStringSubmatch(line); m != nil {
					link = m[1]
				}
			case strings.Contains(line, "http"):
				if m := bareLinkRe.FindString(line); m != "" {
					link = strings.NewReplacer("(", "", ")", "").Replace(m)
				}
			}
		}

		if airline == "" || price == "" || link == "" {
			continue
		}
		if class == "" {
			class = "Standard"
		}
		deals = append(deals, domain.FlightDeal{
			Airline:     airline,
			Price:       price,
			Class:       class,
			URL:         link,
			Origin:      origin,
			Destination: destination,
		})
	}

	if len(deals) > maxDealsPerSection {
		deals = deals[:maxDealsPerSection]
	}
	return deals
}

// ParseTravelSections splits a completion on the VALUE_DEALS and
// PREMIUM_DEALS markers and parses the bulleted dialect out of each part.
// Either or both results may be empty when the oracle ignored the format.
func ParseTravelSections(text string) (economical, premium []domain.TravelDeal) {
	parts := travelSectionSplit.Split(text, -1)
	var valuePart, premiumPart string
	if len(parts) > 1 {
		valuePart = parts[1]
	}
	if len(parts) > 2 {
		premiumPart = parts[2]
	}
	return parseTravelEntries(valuePart), parseTravelEntries(premiumPart)
}

// parseTravelEntries walks bullet-separated chunks accumulating fields into
// the current deal; the deal is emitted only once airline, price, URL, and
// comparison are all present.
func parseTravelEntries(text string) []domain.TravelDeal {
	items := bulletEntrySplit.Split(text, -1)

	var deals []domain.TravelDeal
	var current domain.TravelDeal

	for _, item := range items {
		chunk := strings.TrimSpace(item)
		if chunk == "" {
			continue
		}

		if strings.Contains(chunk, "Airline:") {
			current.Airline = stripEmphasis(strings.SplitN(chunk, "Airline:", 2)[1])
		} else if boldOnlyLineRe.MatchString(chunk) {
			current.Airline = stripEmphasis(chunk)
		}
		if strings.Contains(chunk, "Price:") {
			current.Price = stripEmphasis(strings.SplitN(chunk, "Price:", 2)[1])
		}
		if strings.Contains(chunk, "Comparison:") {
			current.Comparison = stripEmphasis(strings.SplitN(chunk, "Comparison:", 2)[1])
		}
		if m := markdownLinkRe.FindStringSubmatch(chunk); m != nil {
			current.URL = m[1]
		}

		if current.Airline != "" && current.Price != "" && current.URL != "" && current.Comparison != "" {
			deals = append(deals, current)
			current = domain.TravelDeal{}
		}
	}

	if len(deals) > maxDealsPerSection {
		deals = deals[:maxDealsPerSection]
	}
	return deals
}

// UniquePartnerSources keeps the first citation per hostname (a leading
// "www." stripped) and caps the result, guarding against the oracle citing
// one domain many times. Invalid URLs are skipped.
func UniquePartnerSources(citations []domain.Citation) []domain.PartnerSource {
	seen := make(map[string]struct{})
	unique := make([]domain.PartnerSource, 0, maxPartnerSources)

	for _, citation := range citations {
		if citation.URL != "" {
			parsed, err := url.Parse(citation.URL)
			if err == nil && parsed.Hostname() != "" {
				hostname := strings.TrimPrefix(parsed.Hostname(), "www.")
				if _, ok := seen[hostname]; !ok {
					seen[hostname] = struct{}{}
					unique = append(unique, domain.PartnerSource{Hostname: hostname, URL: citation.URL})
				}
			}
		}
		if len(unique) >= maxPartnerSources {
			break
		}
	}
	return unique
}

// afterLabel returns everything past the first colon, preserving colons in
// the value itself (prices like "USD 1:1 match" keep their tail).
func afterLabel(line string) string {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func stripEmphasis(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, "*", ""))
}
