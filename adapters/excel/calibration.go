// Package excel reads calibration/holdout datasets from spreadsheet and CSV
// exports, the form these splits usually arrive in from analysts.
package excel

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"clvplot/domain/customer"
	"clvplot/internal/errors"
)

// Required column headers, matched case-insensitively.
const (
	colFrequencyCal     = "frequency_cal"
	colRecencyCal       = "recency_cal"
	colAgeCal           = "t_cal"
	colFrequencyHoldout = "frequency_holdout"
	colDurationHoldout  = "duration_holdout"
)

// CalibrationReader reads CalibrationHoldoutRow datasets from .xlsx or .csv
// files, picked by file extension.
type CalibrationReader struct {
	filePath string
}

// NewCalibrationReader creates a reader for the given file.
func NewCalibrationReader(filePath string) *CalibrationReader {
	return &CalibrationReader{filePath: filePath}
}

// CalibrationHoldoutRows reads and parses the full dataset.
func (r *CalibrationReader) CalibrationHoldoutRows(ctx context.Context) ([]customer.CalibrationHoldoutRow, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, errors.DataSourceError("calibration file", err)
	}

	var records [][]string
	var err error
	if strings.EqualFold(filepath.Ext(r.filePath), ".csv") {
		records, err = r.readCSV()
	} else {
		records, err = r.readExcel()
	}
	if err != nil {
		return nil, err
	}
	return parseRecords(records)
}

func (r *CalibrationReader) readExcel() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.DataSourceError("excel", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, errors.DataSourceError("excel", err)
	}
	return rows, nil
}

func (r *CalibrationReader) readCSV() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.DataSourceError("csv", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.DataSourceError("csv", err)
	}
	return records, nil
}

func parseRecords(records [][]string) ([]customer.CalibrationHoldoutRow, error) {
	if len(records) < 2 {
		return nil, errors.ConfigInvalid("calibration file needs a header row and at least one data row")
	}

	index := map[string]int{}
	for i, header := range records[0] {
		index[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range []string{colFrequencyCal, colRecencyCal, colAgeCal, colFrequencyHoldout, colDurationHoldout} {
		if _, ok := index[col]; !ok {
			return nil, errors.ConfigInvalidf("calibration file is missing column %q", col)
		}
	}

	rows := make([]customer.CalibrationHoldoutRow, 0, len(records)-1)
	for n, record := range records[1:] {
		cell := func(col string) (float64, error) {
			i := index[col]
			if i >= len(record) {
				return 0, errors.InvariantViolationf("row %d is missing column %q", n+1, col)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				return 0, errors.InvariantViolationf("row %d column %q: %q is not numeric", n+1, col, record[i])
			}
			return v, nil
		}

		var row customer.CalibrationHoldoutRow
		var err error
		if row.FrequencyCal, err = cell(colFrequencyCal); err != nil {
			return nil, err
		}
		if row.RecencyCal, err = cell(colRecencyCal); err != nil {
			return nil, err
		}
		if row.AgeCal, err = cell(colAgeCal); err != nil {
			return nil, err
		}
		if row.FrequencyHoldout, err = cell(colFrequencyHoldout); err != nil {
			return nil, err
		}
		if row.DurationHoldout, err = cell(colDurationHoldout); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
