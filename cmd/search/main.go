// Package main provides the search tool: it hashes a query image under
// the configuration a stored gallery was built with and prints the
// closest matches.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/app"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/retrieval"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/storage"
)

func main() {
	dbDir := flag.String("db", "data/gallery", "badger database directory")
	k := flag.Int("k", 5, "number of matches to return")
	maxDistance := flag.Int("max-distance", -1, "drop matches past this distance (-1 disables)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: search [flags] <query-image>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	store, err := storage.Open(storage.BadgerConfig{Dir: *dbDir})
	if err != nil {
		log.Fatalf("store open failed: %v", err)
	}
	defer store.Close()

	// The stored gallery pins the configuration; the query must be hashed
	// the same way or every distance would be meaningless.
	cfg, err := store.Config()
	if err != nil {
		log.Fatalf("store config read failed: %v", err)
	}
	if cfg == nil {
		log.Fatalf("store %s holds no gallery, run the gallery tool first", *dbDir)
	}

	gallery, err := store.LoadGallery()
	if err != nil {
		log.Fatalf("gallery load failed: %v", err)
	}

	svc, err := app.NewService(*cfg, nil)
	if err != nil {
		log.Fatalf("service setup failed: %v", err)
	}
	query, err := svc.HashFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("query hash failed: %v", err)
	}

	var matches []retrieval.Match
	if *maxDistance >= 0 {
		matches, err = gallery.SearchWithin(query, *k, *maxDistance)
	} else {
		matches, err = gallery.Search(query, *k)
	}
	if err != nil {
		log.Fatalf("search failed: %v", err)
	}

	fmt.Printf("config:  %s\n", cfg.ID())
	fmt.Printf("query:   %s\n", query.Hex())
	fmt.Printf("gallery: %d images\n", gallery.Len())
	for i, m := range matches {
		fmt.Printf("%2d. %-40s distance=%-4d similarity=%.4f\n", i+1, m.ID, m.Distance, m.Similarity)
	}
	if len(matches) == 0 {
		fmt.Println("no matches within the distance cutoff")
	}
}
