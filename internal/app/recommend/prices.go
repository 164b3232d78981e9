package recommend

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// Display prices mix locale words and currency codes with the number itself
// ("Desde $75.000 COP/mes"). Strip the noise first, then take the first
// numeric run.
var priceNoiseWords = []string{
	"desde", "from", "starting at",
	"mes", "month", "año", "ano", "year", "viaje", "trip",
	"cop", "usd", "eur", "mxn",
}

var numericRun = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)*`)

// ExtractNumericPrice parses a numeric price out of a display string.
// Thousands separators (both "." and ",") are honored; a trailing 1-2 digit
// group after a separator is treated as decimals. Returns 0 when the string
// carries no number at all. Never errors.
func ExtractNumericPrice(display string) float64 {
	s := strings.ToLower(display)
	for _, w := range priceNoiseWords {
		s = strings.ReplaceAll(s, w, " ")
	}
	run := numericRun.FindString(s)
	if run == "" {
		return 0
	}
	v, err := strconv.ParseFloat(normalizeSeparators(run), 64)
	if err != nil {
		return 0
	}
	return v
}

// normalizeSeparators turns "75.000" into "75000" and "1.299,99" into
// "1299.99": every separator group of exactly three digits is a thousands
// group unless it is the last group and shorter than three.
func normalizeSeparators(run string) string {
	parts := strings.FieldsFunc(run, func(r rune) bool { return r == '.' || r == ',' })
	if len(parts) == 1 {
		return parts[0]
	}
	last := parts[len(parts)-1]
	if len(last) == 3 {
		// all groups are thousands groups
		return strings.Join(parts, "")
	}
	return strings.Join(parts[:len(parts)-1], "") + "." + last
}

// planPrice prefers the numeric base price and falls back to parsing the
// display string.
func planPrice(p domain.Plan) float64 {
	if p.BasePrice > 0 {
		return p.BasePrice
	}
	return ExtractNumericPrice(p.Price)
}

// planRating parses the rating string, defaulting to 0 on anything
// unparseable so one bad record never aborts a batch.
func planRating(p domain.Plan) float64 {
	r, err := strconv.ParseFloat(strings.TrimSpace(p.Rating), 64)
	if err != nil {
		return 0
	}
	return r
}
