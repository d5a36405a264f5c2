package similarity

import (
	"encoding/csv"
	"io"
	"strconv"
)

// ComparisonRow is one line of the method-comparison table: a
// configuration label and its headline metrics at the selected threshold.
type ComparisonRow struct {
	ConfigID    string
	Accuracy    float64
	Sensitivity float64
	Specificity float64
	F1          float64
	AUC         float64
	Threshold   int
}

// Row condenses an evaluation into a comparison row.
func Row(configID string, ev *Evaluation) ComparisonRow {
	return ComparisonRow{
		ConfigID:    configID,
		Accuracy:    ev.Best.Accuracy,
		Sensitivity: ev.Best.Sensitivity,
		Specificity: ev.Best.Specificity,
		F1:          ev.Best.F1,
		AUC:         ev.AUC,
		Threshold:   ev.Best.Threshold,
	}
}

// WriteCSV serializes comparison rows with a header line. NaN metrics are
// rendered as "NaN" rather than silently defaulted.
func WriteCSV(w io.Writer, rows []ComparisonRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"config-id", "accuracy", "sensitivity", "specificity", "f1", "auc", "optimal-threshold"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.ConfigID,
			formatMetric(r.Accuracy),
			formatMetric(r.Sensitivity),
			formatMetric(r.Specificity),
			formatMetric(r.F1),
			formatMetric(r.AUC),
			strconv.Itoa(r.Threshold),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
