// Package main provides the evaluate tool: it calibrates a decision
// threshold over a labeled pair dataset and can sweep several hashing
// methods into a comparison table.
//
// The pair dataset is a CSV with an "image1,image2,label" header; labels
// are 1 for similar pairs and 0 for dissimilar ones.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/app"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/similarity"
)

func main() {
	pairsPath := flag.String("pairs", "", "labeled pairs CSV (required)")
	criterionName := flag.String("criterion", "accuracy", "threshold selection criterion: accuracy, youden or f1")
	family := flag.String("family", "haar", "wavelet family: haar, db2 or db4")
	level := flag.Int("level", 2, "decomposition level")
	mode := flag.String("mode", "approx", "subband mode")
	quant := flag.String("quant", "median", "quantization method")
	bits := flag.Int("bits", 256, "hash length in bits")
	size := flag.Int("size", 256, "normalized image side in pixels")
	compare := flag.Bool("compare", false, "evaluate the stock configurations plus classic baselines instead of a single config")
	out := flag.String("out", "", "write the comparison table as CSV to this path")
	flag.Parse()

	if *pairsPath == "" {
		log.Fatal("--pairs is required")
	}

	criterion, err := similarity.ParseCriterion(*criterionName)
	if err != nil {
		log.Fatalf("invalid criterion: %v", err)
	}
	pairs, err := app.LoadPairs(*pairsPath)
	if err != nil {
		log.Fatalf("pairs load failed: %v", err)
	}

	if *compare {
		runComparison(pairs, criterion, *out)
		return
	}

	cfg, err := app.BuildConfig(*family, *level, *mode, *quant, *bits, *size)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	svc, err := app.NewService(cfg, nil)
	if err != nil {
		log.Fatalf("service setup failed: %v", err)
	}

	ev, labeled, err := svc.EvaluatePairs(pairs, criterion)
	if err != nil {
		log.Fatalf("evaluation failed: %v", err)
	}

	fmt.Printf("config:      %s\n", cfg.ID())
	fmt.Printf("pairs:       %d\n", len(labeled))
	fmt.Printf("criterion:   %s\n", criterion)
	fmt.Printf("threshold:   %d\n", ev.Best.Threshold)
	fmt.Printf("accuracy:    %.4f\n", ev.Best.Accuracy)
	fmt.Printf("sensitivity: %.4f\n", ev.Best.Sensitivity)
	fmt.Printf("specificity: %.4f\n", ev.Best.Specificity)
	fmt.Printf("precision:   %.4f\n", ev.Best.Precision)
	fmt.Printf("f1:          %.4f\n", ev.Best.F1)
	fmt.Printf("auc:         %.4f\n", ev.AUC)

	if *out != "" {
		if err := writeRows(*out, []similarity.ComparisonRow{similarity.Row(cfg.ID(), ev)}); err != nil {
			log.Fatalf("csv write failed: %v", err)
		}
	}
}

func runComparison(pairs []app.Pair, criterion similarity.Criterion, out string) {
	methods := append(app.PresetComparators(), app.BaselineComparators()...)
	rows, err := app.CompareMethods(pairs, methods, criterion)
	if err != nil {
		log.Fatalf("comparison failed: %v", err)
	}

	fmt.Printf("%-28s %-9s %-12s %-12s %-8s %-8s %s\n",
		"config", "accuracy", "sensitivity", "specificity", "f1", "auc", "threshold")
	for _, r := range rows {
		fmt.Printf("%-28s %-9.4f %-12.4f %-12.4f %-8.4f %-8.4f %d\n",
			r.ConfigID, r.Accuracy, r.Sensitivity, r.Specificity, r.F1, r.AUC, r.Threshold)
	}

	if out != "" {
		if err := writeRows(out, rows); err != nil {
			log.Fatalf("csv write failed: %v", err)
		}
	}
}

func writeRows(path string, rows []similarity.ComparisonRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return similarity.WriteCSV(f, rows)
}
