package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/nvasani/findocqa/internal/domain/docModel"
)

// The fixed pattern-to-answer lookup. No learning, no generalization: a
// question either names a known metric (possibly with a small typo), a year,
// or "latest", and the answer is read straight out of the extracted data.

var metricTerms = []string{
	"revenue", "net income", "net loss", "profit", "total assets",
	"total liabilities", "cash", "operating income", "gross profit",
}

var (
	yearRe       = regexp.MustCompile(`20\d{2}`)
	lastPeriodRe = regexp.MustCompile(`last (year|quarter|q[1-4])`)
)

type Answer struct {
	Text       string
	Confidence float64
}

// Evaluate runs the rule table over the extracted data. The caller scopes the
// records to a document beforehand. Confidence grades how precise the hit was:
// 0.9 exact year, 0.8 latest period, 0.7 any period, 0.4 loose numbers only,
// 0.0 nothing.
func Evaluate(question string, records map[string]docModel.DocumentRecord) Answer {
	q := strings.ToLower(question)

	metric := matchMetric(q)
	year := yearRe.FindString(q)
	latest := strings.Contains(q, "latest") || strings.Contains(q, "most recent") ||
		lastPeriodRe.MatchString(q)

	if metric != "" {
		if answer, ok := lookupMetric(records, metric, year, latest); ok {
			return answer
		}
	}

	// fallback: surface whatever amounts we did extract
	if numbers := collectValues(records, 5); len(numbers) > 0 {
		return Answer{
			Text:       fmt.Sprintf("I found numbers in the document but couldn't map them precisely to your question. Examples: %s", strings.Join(numbers, ", ")),
			Confidence: 0.4,
		}
	}

	return Answer{Text: "I couldn't find a precise answer in the extracted data.", Confidence: 0.0}
}

func matchMetric(q string) string {
	for _, term := range metricTerms {
		if strings.Contains(q, term) {
			return term
		}
	}
	// tolerate small typos: "revenu", "net incme"
	for _, term := range metricTerms {
		for _, word := range strings.Fields(term) {
			if len(word) < 5 {
				continue
			}
			for _, token := range strings.Fields(q) {
				if len(token) < 5 {
					continue
				}
				if rank := fuzzy.RankMatchFold(token, word); rank >= 0 && rank <= 2 {
					return term
				}
			}
		}
	}
	return ""
}

func lookupMetric(records map[string]docModel.DocumentRecord, metric string, year string, latest bool) (Answer, bool) {
	for _, docName := range sortedKeys(records) {
		financial := records[docName].Financial

		for _, sectionName := range sortedKeys(financial) {
			metrics := financial[sectionName]

			for _, label := range sortedKeys(metrics) {
				if !strings.Contains(label, metric) {
					continue
				}
				periods := metrics[label]

				if year != "" {
					for _, period := range sortedPeriods(periods) {
						if strings.Contains(period, year) {
							return Answer{
								Text:       fmt.Sprintf("%s for %s is %s", label, year, periods[period]),
								Confidence: 0.9,
							}, true
						}
					}
					// no value for that year; still answer from the
					// periods we do have
				}

				// periods sort descending, so the first is the most recent
				for _, period := range sortedPeriods(periods) {
					if latest {
						return Answer{
							Text:       fmt.Sprintf("%s (most recent found: %s) = %s", label, period, periods[period]),
							Confidence: 0.8,
						}, true
					}
					return Answer{
						Text:       fmt.Sprintf("%s (%s) = %s", label, period, periods[period]),
						Confidence: 0.7,
					}, true
				}
			}
		}
	}
	return Answer{}, false
}

func collectValues(records map[string]docModel.DocumentRecord, limit int) []string {
	var values []string
	for _, docName := range sortedKeys(records) {
		financial := records[docName].Financial
		for _, sectionName := range sortedKeys(financial) {
			for _, label := range sortedKeys(financial[sectionName]) {
				periods := financial[sectionName][label]
				for _, period := range sortedPeriods(periods) {
					if len(values) == limit {
						return values
					}
					values = append(values, periods[period].String())
				}
			}
		}
	}
	return values
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedPeriods(periods docModel.PeriodValues) []string {
	keys := sortedKeys(periods)
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}
