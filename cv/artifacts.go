package cv

import (
	"encoding/csv"
	"encoding/gob"
	"os"
	"sort"
	"strconv"

	"github.com/YuminosukeSato/featsweep/pkg/errors"
)

// SaveFloatArray persists a numeric array to path using gob encoding.
// Values written by SaveFloatArray reload bit-for-bit via LoadFloatArray.
func SaveFloatArray(path string, values []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create array file")
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(values); err != nil {
		return errors.Wrap(err, "encode array")
	}
	return nil
}

// LoadFloatArray reads a numeric array written by SaveFloatArray.
func LoadFloatArray(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open array file")
	}
	defer file.Close()

	var values []float64
	if err := gob.NewDecoder(file).Decode(&values); err != nil {
		return nil, errors.Wrap(err, "decode array")
	}
	return values, nil
}

// writeFoldTable records which sample indices were held out by each fold,
// so pooled out-of-fold predictions can be mapped back to samples.
func writeFoldTable(path string, valIndices [][]int) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create fold table")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"fold", "val_index"}); err != nil {
		return errors.Wrap(err, "write fold table header")
	}
	for fold, indices := range valIndices {
		for _, idx := range indices {
			row := []string{strconv.Itoa(fold), strconv.Itoa(idx)}
			if err := writer.Write(row); err != nil {
				return errors.Wrap(err, "write fold table row")
			}
		}
	}
	return nil
}

// writeSummary writes the merged metric records as a key,value table sorted
// lexicographically by key.
func writeSummary(path string, summary map[string]float64) error {
	keys := make([]string, 0, len(summary))
	for key := range summary {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create summary file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for _, key := range keys {
		row := []string{key, strconv.FormatFloat(summary[key], 'g', -1, 64)}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "write summary row")
		}
	}
	return nil
}
