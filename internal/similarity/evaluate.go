package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrEmptyDataset is returned when evaluation is attempted over zero
// pairs.
var ErrEmptyDataset = errors.New("similarity: empty pair dataset")

// LabeledPair is one evaluated image pair: identifiers, the ground-truth
// label, and the computed Hamming distance between the two hashes.
type LabeledPair struct {
	A, B     string
	Similar  bool
	Distance int
}

// Criterion selects which metric the threshold sweep maximizes.
type Criterion int

const (
	// ByAccuracy maximizes overall accuracy and is the default.
	ByAccuracy Criterion = iota
	// ByYouden maximizes sensitivity + specificity - 1.
	ByYouden
	// ByF1 maximizes the F1 score.
	ByF1
)

func (c Criterion) String() string {
	switch c {
	case ByAccuracy:
		return "accuracy"
	case ByYouden:
		return "youden"
	case ByF1:
		return "f1"
	}
	return fmt.Sprintf("criterion(%d)", int(c))
}

// ParseCriterion maps a criterion name to its constant.
func ParseCriterion(s string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accuracy":
		return ByAccuracy, nil
	case "youden":
		return ByYouden, nil
	case "f1":
		return ByF1, nil
	}
	return 0, fmt.Errorf("similarity: unknown criterion %q", s)
}

// ThresholdResult is the confusion matrix and derived metrics at one
// candidate threshold. Sensitivity and specificity are NaN when their
// denominator is zero; precision and F1 collapse to 0 instead, matching
// their usual definition for empty positive predictions.
type ThresholdResult struct {
	Threshold   int
	TP, FP      int
	TN, FN      int
	Accuracy    float64
	Sensitivity float64
	Specificity float64
	Precision   float64
	F1          float64
}

// Evaluation is the full calibration output: the selected threshold, the
// whole sweep for plotting, and the ROC curve with its AUC.
type Evaluation struct {
	Criterion Criterion
	Best      ThresholdResult
	Sweep     []ThresholdResult
	ROC       []ROCPoint
	AUC       float64
}

// Evaluate sweeps every distinct observed distance as a candidate
// threshold, predicting "similar" iff distance <= threshold, and selects
// the threshold maximizing the criterion. Ties go to the smallest
// threshold.
func Evaluate(pairs []LabeledPair, criterion Criterion) (*Evaluation, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyDataset
	}

	candidates := distinctDistances(pairs)
	sweep := make([]ThresholdResult, len(candidates))
	for i, threshold := range candidates {
		sweep[i] = MetricsAt(pairs, threshold)
	}

	bestIdx := 0
	bestScore := math.Inf(-1)
	for i, res := range sweep {
		score := criterionScore(res, criterion)
		// NaN scores (degenerate one-label datasets) never win, so the
		// comparison below skips them without special casing.
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	roc, auc := rocCurve(pairs, candidates)

	return &Evaluation{
		Criterion: criterion,
		Best:      sweep[bestIdx],
		Sweep:     sweep,
		ROC:       roc,
		AUC:       auc,
	}, nil
}

// MetricsAt computes the confusion matrix and metric tuple at a single
// threshold.
func MetricsAt(pairs []LabeledPair, threshold int) ThresholdResult {
	res := ThresholdResult{Threshold: threshold}
	for _, p := range pairs {
		predicted := p.Distance <= threshold
		switch {
		case predicted && p.Similar:
			res.TP++
		case predicted && !p.Similar:
			res.FP++
		case !predicted && !p.Similar:
			res.TN++
		default:
			res.FN++
		}
	}

	total := res.TP + res.TN + res.FP + res.FN
	res.Accuracy = float64(res.TP+res.TN) / float64(total)
	res.Sensitivity = ratioOrNaN(res.TP, res.TP+res.FN)
	res.Specificity = ratioOrNaN(res.TN, res.TN+res.FP)
	if res.TP+res.FP > 0 {
		res.Precision = float64(res.TP) / float64(res.TP+res.FP)
	}
	if res.Precision+res.Sensitivity > 0 {
		res.F1 = 2 * res.Precision * res.Sensitivity / (res.Precision + res.Sensitivity)
	}
	if math.IsNaN(res.Sensitivity) {
		res.F1 = 0
	}
	return res
}

func criterionScore(res ThresholdResult, criterion Criterion) float64 {
	switch criterion {
	case ByYouden:
		return res.Sensitivity + res.Specificity - 1
	case ByF1:
		return res.F1
	default:
		return res.Accuracy
	}
}

func ratioOrNaN(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}

func distinctDistances(pairs []LabeledPair) []int {
	seen := make(map[int]struct{}, len(pairs))
	var out []int
	for _, p := range pairs {
		if _, ok := seen[p.Distance]; !ok {
			seen[p.Distance] = struct{}{}
			out = append(out, p.Distance)
		}
	}
	sort.Ints(out)
	return out
}
