package google

import (
	"fmt"
	"strconv"
	"strings"

	"gagyebu/internal/core"
)

func entryRow(e core.Entry) []any {
	return []any{
		strconv.FormatInt(e.ID, 10),
		e.Date.String(),
		e.UserID,
		e.Kind.Label(),
		string(e.Category),
		e.Amount,
		e.Memo,
	}
}

// findRow returns the zero-based row index whose first cell is id, or -1.
func findRow(values [][]any, id int64) int {
	want := strconv.FormatInt(id, 10)
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == want {
			return i
		}
	}
	return -1
}

// parseRows converts sheet values into entries, skipping the header and any
// row that does not parse.
func parseRows(values [][]any) []core.Entry {
	out := []core.Entry{}
	for _, row := range values {
		e, ok := parseRow(toStrings(row))
		if ok {
			out = append(out, e)
		}
	}
	return out
}

func parseRow(cols []string) (core.Entry, bool) {
	if len(cols) < 6 {
		return core.Entry{}, false
	}
	id, err := strconv.ParseInt(cols[0], 10, 64)
	if err != nil {
		return core.Entry{}, false
	}
	date, err := core.ParseDate(cols[1])
	if err != nil {
		return core.Entry{}, false
	}
	kind, err := core.ParseKind(cols[3])
	if err != nil {
		return core.Entry{}, false
	}
	amount, err := core.ParseWon(cols[5])
	if err != nil {
		return core.Entry{}, false
	}
	e := core.Entry{
		ID:       id,
		UserID:   cols[2],
		Date:     date,
		Kind:     kind,
		Category: core.Category(cols[4]),
		Amount:   amount,
	}
	if len(cols) > 6 {
		e.Memo = cols[6]
	}
	return e, true
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
