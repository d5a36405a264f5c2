// Package main provides the gallery tool: it walks an image directory,
// hashes every supported image concurrently and persists the result so
// the search tool and the server can reuse it.
package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/app"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/storage"
	"github.com/Algoculus/UTH-CVIP-assignments/pkg/logger"
	"github.com/Algoculus/UTH-CVIP-assignments/pkg/profiler"
)

func main() {
	family := flag.String("family", "haar", "wavelet family: haar, db2 or db4")
	level := flag.Int("level", 2, "decomposition level")
	mode := flag.String("mode", "approx", "subband mode")
	quant := flag.String("quant", "median", "quantization method")
	bits := flag.Int("bits", 256, "hash length in bits")
	size := flag.Int("size", 256, "normalized image side in pixels")
	dir := flag.String("dir", "", "image directory to index (required)")
	dbDir := flag.String("db", "data/gallery", "badger database directory")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent hashing workers")
	quiet := flag.Bool("quiet", false, "disable the progress bar")
	flag.Parse()

	if *dir == "" {
		log.Fatal("--dir is required")
	}

	zlog, err := logger.New("gallery")
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer zlog.Sync()

	cfg, err := app.BuildConfig(*family, *level, *mode, *quant, *bits, *size)
	if err != nil {
		zlog.Fatal("invalid configuration", zap.Error(err))
	}
	svc, err := app.NewService(cfg, zlog)
	if err != nil {
		zlog.Fatal("service setup failed", zap.Error(err))
	}

	var progress func()
	if !*quiet {
		bar := progressbar.Default(-1, "hashing")
		progress = func() { bar.Add(1) }
	}

	timer := profiler.Start()
	gallery, failures, err := svc.BuildGalleryDir(*dir, *workers, progress)
	if err != nil {
		zlog.Fatal("gallery build failed", zap.Error(err))
	}

	store, err := storage.Open(storage.BadgerConfig{Dir: *dbDir, SyncWrites: true})
	if err != nil {
		zlog.Fatal("store open failed", zap.Error(err))
	}
	defer store.Close()

	if err := store.PutGallery(gallery); err != nil {
		zlog.Fatal("store write failed", zap.Error(err))
	}

	zlog.Info("gallery built",
		zap.String("config", cfg.ID()),
		zap.String("db", *dbDir),
		zap.Int("indexed", gallery.Len()),
		zap.Int("skipped", len(failures)),
		zap.Duration("elapsed", timer.Elapsed()),
		zap.Duration("per_image", timer.PerItem(gallery.Len())))
}
