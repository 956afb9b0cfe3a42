// Package evaluate computes holdout diagnostics for a fitted classifier.
package evaluate

import (
	"fmt"
	"slices"
	"strings"
)

// ClassMetrics holds per-class precision, recall, F1 and support.
type ClassMetrics struct {
	Class     int     `json:"class"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report is the evaluation of predictions against ground truth.
type Report struct {
	Classes []int `json:"classes"`
	// Confusion[i][j] counts samples of Classes[i] predicted as Classes[j].
	Confusion   [][]int        `json:"confusion"`
	Accuracy    float64        `json:"accuracy"`
	PerClass    []ClassMetrics `json:"per_class"`
	MacroAvg    ClassMetrics   `json:"macro_avg"`
	WeightedAvg ClassMetrics   `json:"weighted_avg"`
	Total       int            `json:"total"`
}

// Evaluate builds a Report. Codes outside classes are collected into the
// confusion matrix as extra columns/rows so nothing is silently dropped.
func Evaluate(classes, yTrue, yPred []int) (Report, error) {
	if len(yTrue) != len(yPred) {
		return Report{}, fmt.Errorf("got %d true labels but %d predictions", len(yTrue), len(yPred))
	}

	all := slices.Clone(classes)
	all = append(all, yTrue...)
	all = append(all, yPred...)
	slices.Sort(all)
	all = slices.Compact(all)

	pos := make(map[int]int, len(all))
	for i, c := range all {
		pos[c] = i
	}

	confusion := make([][]int, len(all))
	for i := range confusion {
		confusion[i] = make([]int, len(all))
	}
	var correct int
	for i := range yTrue {
		confusion[pos[yTrue[i]]][pos[yPred[i]]]++
		if yTrue[i] == yPred[i] {
			correct++
		}
	}

	r := Report{
		Classes:   all,
		Confusion: confusion,
		Total:     len(yTrue),
		PerClass:  make([]ClassMetrics, len(all)),
	}
	if r.Total > 0 {
		r.Accuracy = float64(correct) / float64(r.Total)
	}

	for i, c := range all {
		tp := confusion[i][i]
		var predicted, actual int
		for k := range all {
			predicted += confusion[k][i]
			actual += confusion[i][k]
		}
		m := ClassMetrics{
			Class:     c,
			Precision: safeDiv(tp, predicted),
			Recall:    safeDiv(tp, actual),
			Support:   actual,
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.PerClass[i] = m

		r.MacroAvg.Precision += m.Precision
		r.MacroAvg.Recall += m.Recall
		r.MacroAvg.F1 += m.F1
		r.WeightedAvg.Precision += m.Precision * float64(actual)
		r.WeightedAvg.Recall += m.Recall * float64(actual)
		r.WeightedAvg.F1 += m.F1 * float64(actual)
	}

	if n := float64(len(all)); n > 0 {
		r.MacroAvg.Precision /= n
		r.MacroAvg.Recall /= n
		r.MacroAvg.F1 /= n
	}
	if r.Total > 0 {
		t := float64(r.Total)
		r.WeightedAvg.Precision /= t
		r.WeightedAvg.Recall /= t
		r.WeightedAvg.F1 /= t
	}
	r.MacroAvg.Support = r.Total
	r.WeightedAvg.Support = r.Total

	return r, nil
}

func safeDiv(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// String renders the confusion matrix and a classification report table.
func (r Report) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Accuracy: %.2f%%\n", r.Accuracy*100)
	sb.WriteString("Confusion Matrix:\n")
	for _, row := range r.Confusion {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%5d", v)
		}
		fmt.Fprintf(&sb, "[%s]\n", strings.Join(cells, " "))
	}

	sb.WriteString("Classification Report:\n")
	fmt.Fprintf(&sb, "%12s %10s %10s %10s %10s\n", "", "precision", "recall", "f1-score", "support")
	for _, m := range r.PerClass {
		fmt.Fprintf(&sb, "%12d %10.2f %10.2f %10.2f %10d\n", m.Class, m.Precision, m.Recall, m.F1, m.Support)
	}
	fmt.Fprintf(&sb, "%12s %10s %10s %10.2f %10d\n", "accuracy", "", "", r.Accuracy, r.Total)
	for _, row := range []struct {
		name string
		m    ClassMetrics
	}{{"macro avg", r.MacroAvg}, {"weighted avg", r.WeightedAvg}} {
		fmt.Fprintf(&sb, "%12s %10.2f %10.2f %10.2f %10d\n", row.name, row.m.Precision, row.m.Recall, row.m.F1, row.m.Support)
	}
	return sb.String()
}
