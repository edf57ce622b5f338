package extract

import (
	"regexp"
	"strings"

	"github.com/nvasani/findocqa/internal/domain/docModel"
)

var (
	periodTokenRe  = regexp.MustCompile(`^(?:FY\s?20\d{2}|FY20\d{2}|20\d{2}|FY|Q[1-4])$`)
	numericTokenRe = regexp.MustCompile(`^\(?-?\$?[\d,]+(?:\.\d+)?\)?$`)
)

// TablesFromText rebuilds simple financial tables from extracted plain text.
// Statement tables in filings collapse to lines shaped like
//
//	Revenue 12,345 11,820
//
// with an optional header line of period columns ("2023 2022"). A run of such
// lines becomes one table; the header line, when present, becomes row 0 with
// an empty label cell so it lines up with the data rows.
func TablesFromText(text string) []docModel.Table {
	var tables []docModel.Table
	var current [][]string

	// a single stray label+number line is noise, not a table
	flush := func() {
		if len(current) >= 2 {
			tables = append(tables, docModel.Table{Rows: current})
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			flush()
			continue
		}

		if header, ok := headerRow(fields); ok {
			// a new header starts a new table
			if len(current) > 0 {
				flush()
			}
			current = append(current, header)
			continue
		}

		if row, ok := dataRow(fields); ok {
			current = append(current, row)
			continue
		}

		flush()
	}
	flush()

	return tables
}

func headerRow(fields []string) ([]string, bool) {
	for _, f := range fields {
		if !periodTokenRe.MatchString(f) {
			return nil, false
		}
	}
	return append([]string{""}, fields...), true
}

// dataRow splits a line into a leading label and trailing numeric cells.
func dataRow(fields []string) ([]string, bool) {
	split := len(fields)
	for split > 0 && numericTokenRe.MatchString(fields[split-1]) {
		split--
	}
	if split == len(fields) || split == 0 {
		return nil, false
	}

	label := strings.Join(fields[:split], " ")
	return append([]string{label}, fields[split:]...), true
}
