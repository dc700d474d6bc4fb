// Package export renders expenses for download.
package export

import (
	"bufio"
	"io"
	"slices"
	"strings"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
)

// ContentType is the media type for CSV downloads.
const ContentType = "text/csv; charset=utf-8"

// bom makes spreadsheet tools detect UTF-8.
const bom = "\ufeff"

var header = []string{"Date", "Category", "Description", "Amount"}

// CSV writes list newest first. The output depends only on the input set:
// description is always quoted, category only when it has to be, and the
// amount always has two decimals.
func CSV(w io.Writer, list []domain.Expense) error {
	rows := slices.Clone(list)
	slices.SortFunc(rows, domain.NewerFirst)

	bw := bufio.NewWriter(w)
	bw.WriteString(bom)
	bw.WriteString(strings.Join(header, ","))

	for _, e := range rows {
		bw.WriteByte('\n')
		bw.WriteString(e.Date.String())
		bw.WriteByte(',')
		bw.WriteString(field(e.Category))
		bw.WriteByte(',')
		bw.WriteString(quote(e.Description))
		bw.WriteByte(',')
		bw.WriteString(e.Amount.String())
	}
	bw.WriteByte('\n')

	return bw.Flush()
}

// Filename is the attachment name for an export made on day.
func Filename(day domain.Date) string {
	return "expenses-" + day.String() + ".csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// field quotes s when RFC 4180 requires it.
func field(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsAny(s, "\",\r\n") || s[0] == ' ' || s[0] == '\t' {
		return quote(s)
	}
	return s
}
