// Package dataset describes the external JSON datasets the bootstrapper
// imports and the field mappings that bind their record shapes to events.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Record is one raw entry from an external dataset.
type Record map[string]any

// FieldMap names the source-record key that holds each logical event field.
// One mapping per dataset. Title, location and both dates must be mapped;
// description may be left unmapped, in which case imported events carry an
// empty description.
type FieldMap struct {
	Title       string
	Location    string
	Description string
	StartDate   string
	EndDate     string
}

// Validate reports every required logical field that has no mapped source
// key. It runs before any record is touched, so a broken mapping fails the
// whole configuration instead of every record at load time.
func (m FieldMap) Validate() error {
	var missing []string
	if m.Title == "" {
		missing = append(missing, "title")
	}
	if m.Location == "" {
		missing = append(missing, "location")
	}
	if m.StartDate == "" {
		missing = append(missing, "start_date")
	}
	if m.EndDate == "" {
		missing = append(missing, "end_date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("field map missing source keys for: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Dataset is one external source file plus the mapping and target category
// used to import it. Name doubles as the import-ledger key and must stay
// stable across releases.
type Dataset struct {
	Name     string
	File     string
	Category string
	Fields   FieldMap
}

// Catalog returns the datasets the bootstrapper imports, in order. The key
// names follow the public-data feeds the files are exported from.
func Catalog() []Dataset {
	return []Dataset{
		{
			Name:     "festivals",
			File:     "festivals.json",
			Category: "축제",
			Fields: FieldMap{
				Title:       "fstvlNm",
				Location:    "opar",
				Description: "fstvlCo",
				StartDate:   "fstvlStartDate",
				EndDate:     "fstvlEndDate",
			},
		},
		{
			Name:     "performances",
			File:     "performances.json",
			Category: "전시/공연",
			Fields: FieldMap{
				Title:       "prfnm",
				Location:    "fcltynm",
				Description: "sty",
				StartDate:   "prfpdfrom",
				EndDate:     "prfpdto",
			},
		},
	}
}

type payload struct {
	Records []Record `json:"records"`
}

// ReadFile loads the records array from a dataset file. A missing or null
// records key and an empty array both mean "no data", not an error; an
// unreadable or syntactically broken file is an error the caller is
// expected to log and skip.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode dataset file %s: %w", path, err)
	}
	return p.Records, nil
}
