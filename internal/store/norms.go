package store

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NormRow maps a raw score onto the normalized (iq) score,
// its percentile and a short textual band description.
type NormRow struct {
	RawScore    int    `json:"raw_score"`
	IQScore     int    `json:"iq_score"`
	Percentile  int    `json:"percentile"`
	Description string `json:"description"`
}

// required header columns of the norm table
var normColumns = []string{"raw_score", "iq_score", "percentile", "description"}

func (r *FileRepository) LoadNorms() ([]NormRow, error) {
	f, err := os.Open(r.normsPath)
	if err != nil {
		return nil, &LoadError{Source: r.normsPath, Err: err}
	}
	defer f.Close()

	norms, err := ParseNorms(f)
	if err != nil {
		return nil, &LoadError{Source: r.normsPath, Err: err}
	}
	return norms, nil
}

// ParseNorms reads a headed csv norm table. Columns are
// found by name so their order in the file does not matter.
// Rows are returned in file order, unsorted and not deduplicated.
// A table with no data rows is an error.
func ParseNorms(rd io.Reader) ([]NormRow, error) {

	cr := csv.NewReader(rd)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("norm table is empty")
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot read norm table header")
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range normColumns {
		if _, ok := idx[col]; !ok {
			return nil, errors.Errorf("norm table missing column: %s", col)
		}
	}

	norms := []NormRow{}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "norm table row %d", line)
		}

		var row NormRow
		if row.RawScore, err = atoi(rec[idx["raw_score"]]); err != nil {
			return nil, errors.Wrapf(err, "norm table row %d: raw_score", line)
		}
		if row.IQScore, err = atoi(rec[idx["iq_score"]]); err != nil {
			return nil, errors.Wrapf(err, "norm table row %d: iq_score", line)
		}
		if row.Percentile, err = atoi(rec[idx["percentile"]]); err != nil {
			return nil, errors.Wrapf(err, "norm table row %d: percentile", line)
		}
		row.Description = rec[idx["description"]]
		norms = append(norms, row)
	}

	if len(norms) == 0 {
		return nil, errors.New("norm table has no rows")
	}

	return norms, nil
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
