package aicc

import (
	"context"
	"encoding/csv"
	"strings"

	"github.com/ternarybob/elearnparse/pkg/fileaccess"
)

// table is a parsed CSV descriptor file: a header row of field names plus
// one row per record, stored as read; field names are matched
// case-insensitively on lookup (spec §3.5's "comma-separated records",
// §6.1's quoted-comma support).
type table struct {
	header []string
	rows   [][]string
}

// loadTable reads path through fa as a CSV file: first row is the header,
// remaining rows are records. AICC readers tolerate \r\n and \n line
// endings and quoted fields containing commas, which encoding/csv handles
// natively.
func loadTable(ctx context.Context, fa fileaccess.FileAccess, path string) (*table, error) {
	rc, err := fa.Open(ctx, path)
	if err != nil {
		return nil, &Error{File: path, Cause: err}
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &Error{File: path, Cause: err}
	}
	if len(records) == 0 {
		return &table{}, nil
	}
	return &table{header: records[0], rows: records[1:]}, nil
}

// field returns row[col] for the header field named name (case-insensitive),
// or "" if the field is absent from either the header or the row.
func (t *table) field(row []string, name string) string {
	for i, h := range t.header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
	}
	return ""
}
