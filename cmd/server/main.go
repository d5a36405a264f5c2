// Package main provides the HTTP server exposing hashing and gallery
// search. When a database directory is given the stored gallery and its
// pinned configuration are loaded at startup; otherwise the server hashes
// under the flag-provided configuration with /search disabled.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/api"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/app"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/hash"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/retrieval"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/storage"
	"github.com/Algoculus/UTH-CVIP-assignments/pkg/logger"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbDir := flag.String("db", "", "badger database directory holding a prebuilt gallery")
	family := flag.String("family", "haar", "wavelet family when no database is given")
	level := flag.Int("level", 2, "decomposition level")
	mode := flag.String("mode", "approx", "subband mode")
	quant := flag.String("quant", "median", "quantization method")
	bits := flag.Int("bits", 256, "hash length in bits")
	size := flag.Int("size", 256, "normalized image side in pixels")
	flag.Parse()

	zlog, err := logger.New("server")
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer zlog.Sync()

	cfg, gallery, err := loadState(*dbDir, *family, *level, *mode, *quant, *bits, *size)
	if err != nil {
		zlog.Fatal("startup failed", zap.Error(err))
	}

	svc, err := app.NewService(cfg, zlog)
	if err != nil {
		zlog.Fatal("service setup failed", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.NewHandler(svc, gallery, zlog).RegisterRoutes(router)

	srv := &http.Server{Addr: *addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		gallerySize := 0
		if gallery != nil {
			gallerySize = gallery.Len()
		}
		zlog.Info("listening",
			zap.String("addr", *addr),
			zap.String("config", cfg.ID()),
			zap.Int("gallery", gallerySize))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown failed", zap.Error(err))
	}
}

// loadState resolves the hashing configuration and gallery. A stored
// gallery always wins over the flag configuration.
func loadState(dbDir, family string, level int, mode, quant string, bits, size int) (hash.Config, *retrieval.Gallery, error) {
	if dbDir == "" {
		cfg, err := app.BuildConfig(family, level, mode, quant, bits, size)
		return cfg, nil, err
	}

	store, err := storage.Open(storage.BadgerConfig{Dir: dbDir})
	if err != nil {
		return hash.Config{}, nil, err
	}
	defer store.Close()

	cfg, err := store.Config()
	if err != nil {
		return hash.Config{}, nil, err
	}
	if cfg == nil {
		return hash.Config{}, nil, errors.New("database holds no gallery")
	}
	gallery, err := store.LoadGallery()
	if err != nil {
		return hash.Config{}, nil, err
	}
	return *cfg, gallery, nil
}
