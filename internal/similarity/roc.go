package similarity

import (
	"math"
	"sort"
)

// ROCPoint is one (false positive rate, true positive rate) sample.
type ROCPoint struct {
	FPR, TPR float64
}

// rocCurve builds the ROC curve over the candidate thresholds. Smaller
// distance means higher similarity, so pairs are scored with the explicit
// transform score = -distance; a pair is predicted positive when its score
// reaches the score threshold, which is exactly distance <= threshold.
// Keeping the transform separate from the comparison lets the same sweep
// serve any future distance metric.
//
// AUC is the trapezoidal area over FPR-sorted points. When every pair
// carries the same label one of the rates is 0/0 and the AUC is NaN.
func rocCurve(pairs []LabeledPair, candidates []int) ([]ROCPoint, float64) {
	positives, negatives := 0, 0
	for _, p := range pairs {
		if p.Similar {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return nil, math.NaN()
	}

	points := make([]ROCPoint, 0, len(candidates)+2)
	points = append(points, ROCPoint{FPR: 0, TPR: 0})
	for _, threshold := range candidates {
		scoreCut := -threshold
		tp, fp := 0, 0
		for _, p := range pairs {
			if -p.Distance >= scoreCut {
				if p.Similar {
					tp++
				} else {
					fp++
				}
			}
		}
		points = append(points, ROCPoint{
			FPR: float64(fp) / float64(negatives),
			TPR: float64(tp) / float64(positives),
		})
	}
	points = append(points, ROCPoint{FPR: 1, TPR: 1})

	sort.Slice(points, func(i, j int) bool {
		if points[i].FPR != points[j].FPR {
			return points[i].FPR < points[j].FPR
		}
		return points[i].TPR < points[j].TPR
	})

	auc := 0.0
	for i := 1; i < len(points); i++ {
		base := points[i].FPR - points[i-1].FPR
		auc += base * (points[i].TPR + points[i-1].TPR) / 2
	}
	return points, auc
}
