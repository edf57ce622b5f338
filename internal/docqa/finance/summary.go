package finance

import (
	"sort"
	"strings"

	"github.com/nvasani/findocqa/internal/domain/docModel"
)

// BuildSummary renders extracted data into the compact text block handed to a
// model provider. Keys are sorted so the same data always yields the same
// prompt.
func BuildSummary(records map[string]docModel.DocumentRecord) string {
	var parts []string

	for _, docName := range sortedKeys(records) {
		parts = append(parts, "Document: "+docName)
		financial := records[docName].Financial

		for _, sectionName := range sortedKeys(financial) {
			parts = append(parts, "Section: "+sectionName)
			metrics := financial[sectionName]

			for _, label := range sortedKeys(metrics) {
				var values []string
				periods := metrics[label]
				for _, period := range sortedKeys(periods) {
					values = append(values, period+": "+periods[period].String())
				}
				parts = append(parts, "- "+label+": {"+strings.Join(values, ", ")+"}")
			}
		}
	}
	return strings.Join(parts, "\n")
}

// ScopeRecords narrows records to one document, or returns them all for the
// "all" scope. An unknown name scopes to nothing.
func ScopeRecords(records map[string]docModel.DocumentRecord, selected string) map[string]docModel.DocumentRecord {
	if selected == "" || selected == "all" {
		return records
	}
	scoped := map[string]docModel.DocumentRecord{}
	if record, ok := records[selected]; ok {
		scoped[selected] = record
	}
	return scoped
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
