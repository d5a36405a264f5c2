// Package main provides the hashtool command for hashing single images
// and comparing image pairs on the command line.
//
// Usage:
//
//	hashtool [flags] <image>            print the image's hash
//	hashtool [flags] <image-a> <image-b> print both hashes and their distance
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
	family := flag.String("family", "haar", "wavelet family: haar, db2 or db4")
	level := flag.Int("level", 2, "decomposition level")
	mode := flag.String("mode", "approx", "subband mode: approx, approx-horiz, approx-vert, approx-horiz-vert or all")
	quant := flag.String("quant", "median", "quantization: median, mean, ternary or uniform-step")
	bits := flag.Int("bits", 256, "hash length in bits")
	size := flag.Int("size", 256, "normalized image side in pixels")
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "usage: hashtool [flags] <image> [image]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := app.BuildConfig(*family, *level, *mode, *quant, *bits, *size)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	svc, err := app.NewService(cfg, nil)
	if err != nil {
		log.Fatalf("service setup failed: %v", err)
	}

	if flag.NArg() == 1 {
		h, err := svc.HashFile(flag.Arg(0))
		if err != nil {
			log.Fatalf("hash failed: %v", err)
		}
		fmt.Printf("config: %s\n", cfg.ID())
		fmt.Printf("hash:   %s\n", h.Hex())
		return
	}

	ha, err := svc.HashFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("hash %s failed: %v", flag.Arg(0), err)
	}
	hb, err := svc.HashFile(flag.Arg(1))
	if err != nil {
		log.Fatalf("hash %s failed: %v", flag.Arg(1), err)
	}
	distance, err := similarity.Distance(ha, hb)
	if err != nil {
		log.Fatalf("distance failed: %v", err)
	}

	fmt.Printf("config:     %s\n", cfg.ID())
	fmt.Printf("hash a:     %s\n", ha.Hex())
	fmt.Printf("hash b:     %s\n", hb.Hex())
	score, err := similarity.Score(ha, hb)
	if err != nil {
		log.Fatalf("score failed: %v", err)
	}
	fmt.Printf("distance:   %d of %d bits\n", distance, ha.BitLen())
	fmt.Printf("similarity: %.4f\n", score)
}
