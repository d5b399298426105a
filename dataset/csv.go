package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featsweep/pkg/errors"
)

// labelColumn is the header name of the label column in dataset CSV files.
const labelColumn = "label"

// LoadCSV reads a dataset from a CSV file. The expected layout follows the
// usual radiomics feature table: a header row, the first column holding the
// sample name, a column named "label" holding the binary label, and every
// other column holding one numeric feature.
func LoadCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dataset file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse dataset file")
	}
	if len(rows) < 2 || len(rows[0]) < 2 {
		return nil, errors.NewValueError("dataset.LoadCSV", "file has no data rows")
	}

	header := rows[0]
	labelIdx := -1
	var featureNames []string
	var featureIdx []int
	for j := 1; j < len(header); j++ {
		if header[j] == labelColumn {
			labelIdx = j
			continue
		}
		featureNames = append(featureNames, header[j])
		featureIdx = append(featureIdx, j)
	}
	if labelIdx < 0 {
		return nil, errors.NewValueError("dataset.LoadCSV", "no '"+labelColumn+"' column in header")
	}

	nSamples := len(rows) - 1
	nFeatures := len(featureIdx)
	X := mat.NewDense(nSamples, nFeatures, nil)
	y := make([]float64, nSamples)
	sampleNames := make([]string, nSamples)

	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, errors.NewDimensionError("dataset.LoadCSV", len(header), len(row), 1)
		}
		sampleNames[i] = row[0]
		label, err := strconv.ParseFloat(row[labelIdx], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad label at row %d", i+1)
		}
		y[i] = label
		for j, col := range featureIdx {
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "bad value at row %d column %s", i+1, header[col])
			}
			X.Set(i, j, v)
		}
	}

	return New(X, y, featureNames, sampleNames)
}
