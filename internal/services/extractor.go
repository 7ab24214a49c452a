package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sgladkov2017/currency-converter-agent/internal/currencies"
	"github.com/sgladkov2017/currency-converter-agent/internal/models"
)

// Building blocks for the conversion patterns. A currency token is either a
// word resolved through the alias table (3-letter codes pass as-is) or a
// currency symbol.
const (
	amountPat = `((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?)`
	tokenPat  = `[A-Za-z]{2,}|[$€£¥₹₩]`
	datePat   = `(?:\s+on\s+(\d{4}-\d{2}-\d{2}))?`
)

var (
	listPat = `((?:` + tokenPat + `)(?:(?:\s*,\s*(?:and\s+)?|\s+and\s+)(?:` + tokenPat + `))*)`

	// "convert 100 USD to EUR", "1,000 inr into usd, eur and gbp on 2024-05-01"
	reAmountFirst = regexp.MustCompile(`(?i)(?:\b(?:convert|change)\s+)?` + amountPat + `\s*(` + tokenPat + `)\s+(?:to|in|into)\s+` + listPat + datePat)
	// "$100 to EUR", "€ 50 into JPY"
	reSymbolFirst = regexp.MustCompile(`(?i)([$€£¥₹₩])\s*` + amountPat + `\s+(?:to|in|into)\s+` + listPat + datePat)

	reListSep = regexp.MustCompile(`(?i)\s*,\s*(?:and\s+)?|\s+and\s+`)
)

// Extractor deterministically parses free text into zero or more structured
// conversion requests. It is pure and total: no network calls, no state,
// and malformed candidates are skipped rather than reported.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Extract returns the conversion requests found in text, in left-to-right
// order. A target list ("1000 INR to USD, EUR, and GBP") expands into one
// request per target sharing the amount and source. An empty result is the
// signal that the fallback path should run; it is never an error.
func (e *Extractor) Extract(text string) []models.ConversionRequest {
	type clause struct {
		start, end int
		reqs       []models.ConversionRequest
	}

	var clauses []clause
	for _, m := range reAmountFirst.FindAllStringSubmatchIndex(text, -1) {
		reqs := buildRequests(group(text, m, 1), group(text, m, 2), group(text, m, 3), group(text, m, 4))
		if len(reqs) > 0 {
			clauses = append(clauses, clause{m[0], m[1], reqs})
		}
	}
	for _, m := range reSymbolFirst.FindAllStringSubmatchIndex(text, -1) {
		reqs := buildRequests(group(text, m, 2), group(text, m, 1), group(text, m, 3), group(text, m, 4))
		if len(reqs) > 0 {
			clauses = append(clauses, clause{m[0], m[1], reqs})
		}
	}

	sort.Slice(clauses, func(i, j int) bool { return clauses[i].start < clauses[j].start })

	var out []models.ConversionRequest
	lastEnd := -1
	for _, c := range clauses {
		if c.start < lastEnd {
			continue
		}
		out = append(out, c.reqs...)
		lastEnd = c.end
	}
	return out
}

func group(text string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return text[m[2*i]:m[2*i+1]]
}

// buildRequests turns one matched clause into requests, one per resolvable
// target token. It returns nil when the amount, source, or date is invalid.
func buildRequests(amountStr, sourceTok, listStr, dateStr string) []models.ConversionRequest {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(amountStr, ",", ""), 64)
	if err != nil || amount <= 0 {
		return nil
	}

	from, ok := currencies.Resolve(sourceTok)
	if !ok {
		return nil
	}

	if dateStr != "" {
		if _, err := time.Parse("2006-01-02", dateStr); err != nil {
			return nil
		}
	}

	var reqs []models.ConversionRequest
	for _, tok := range reListSep.Split(listStr, -1) {
		to, ok := currencies.Resolve(tok)
		if !ok {
			continue
		}
		reqs = append(reqs, models.ConversionRequest{
			Amount:       amount,
			FromCurrency: from,
			ToCurrency:   to,
			Date:         dateStr,
		})
	}
	return reqs
}
