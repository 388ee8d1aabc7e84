package workload

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/neural-hawkes/neural-hawkes/hawkes"
)

// CSV column layout: sequence id, event type, inter-arrival time.
// Rows of one sequence must be contiguous and in event order; sequence ids
// only delimit groups and are not preserved.
var datasetHeader = []string{"sequence", "event_type", "inter_arrival"}

// SaveDataset writes raw sequences to a CSV file, overwriting any existing
// file at path.
func SaveDataset(path string, raw []hawkes.RawSequence) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create dataset %s", path)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(datasetHeader); err != nil {
		return errors.Wrap(err, "write dataset header")
	}
	for b, seq := range raw {
		for i := range seq.Types {
			row := []string{
				strconv.Itoa(b),
				strconv.Itoa(seq.Types[i]),
				strconv.FormatFloat(seq.InterArrival[i], 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return errors.Wrapf(err, "write dataset row for sequence %d", b)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "flush dataset %s", path)
	}

	logrus.Debugf("wrote %d sequences to %s", len(raw), path)
	return nil
}

// LoadDataset reads raw sequences from a CSV file written by SaveDataset.
// TotalTime is left at zero so padding derives it from the inter-arrivals.
func LoadDataset(path string) ([]hawkes.RawSequence, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parse dataset %s", path)
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("dataset %s is empty", path)
	}
	if len(rows[0]) != len(datasetHeader) || rows[0][0] != datasetHeader[0] {
		return nil, errors.Errorf("dataset %s: unexpected header %v", path, rows[0])
	}

	var raw []hawkes.RawSequence
	currentID := ""
	for n, row := range rows[1:] {
		id := row[0]
		kind, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, errors.Wrapf(err, "dataset %s row %d: event type", path, n+2)
		}
		dt, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "dataset %s row %d: inter-arrival", path, n+2)
		}

		if id != currentID || len(raw) == 0 {
			raw = append(raw, hawkes.RawSequence{})
			currentID = id
		}
		last := &raw[len(raw)-1]
		last.Types = append(last.Types, kind)
		last.InterArrival = append(last.InterArrival, dt)
	}

	logrus.Debugf("loaded %d sequences from %s", len(raw), path)
	return raw, nil
}
