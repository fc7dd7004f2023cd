package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"dependency-manager/core/config"
	"dependency-manager/core/descriptor"
	"dependency-manager/core/library"
	"dependency-manager/core/maven"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	tracked, err := cfg.Project.TrackedCoordinates()
	if err != nil {
		log.Fatal(err)
	}
	archives, err := cfg.Project.TrackedArchives()
	if err != nil {
		log.Fatal(err)
	}

	// Coordinates given on the command line replace the tracked list
	if len(os.Args) > 1 {
		tracked = tracked[:0]
		for _, raw := range os.Args[1:] {
			coord, err := maven.ParseCoordinate(raw)
			if err != nil {
				log.Fatal(err)
			}
			tracked = append(tracked, coord)
		}
	}

	client := maven.NewClient(cfg.Repository)
	ctx := context.Background()

	// Test 1: Descriptor declarations
	fmt.Println("=== TEST 1: Descriptor Declarations ===")
	declared := map[string]string{}
	if doc, err := descriptor.Load(cfg.Project.Descriptor); err != nil {
		fmt.Printf("Descriptor not loaded: %v\n", err)
	} else {
		for _, d := range doc.CurrentVersions(tracked) {
			fmt.Printf("%s: %s (%s)\n", d.Coordinate, d.Version, d.Shape.Keyword)
			declared[d.Coordinate.String()] = d.Version
		}
	}

	// Test 2: Repository lookups
	fmt.Println("\n=== TEST 2: Repository Lookups ===")
	latest := map[string]string{}
	for _, coord := range tracked {
		fmt.Printf("%s\n  search: %s\n", coord, client.SearchURL(coord))
		v, err := client.LatestVersion(ctx, coord)
		if err != nil {
			fmt.Printf("  FAILED: %v\n", err)
			continue
		}
		fmt.Printf("  latest: %s\n", v)
		latest[coord.String()] = v
	}

	// Test 3: Library inventory
	fmt.Println("\n=== TEST 3: Library Inventory ===")
	lib := library.New(cfg.Project.LibraryDirs, cfg.Project.StagingDir, client, nil)
	records, problems := lib.Inventory(archives)
	vendored := map[string]string{}
	for _, r := range records {
		fmt.Printf("%s: %s (%s)\n", r.Archive, r.Version, r.Path)
		vendored[r.Archive.String()] = r.Version
	}
	for _, p := range problems {
		fmt.Printf("%s: NOT FOUND (%v), pattern %s\n", p.Archive, p.Err, library.Pattern(p.Archive))
	}

	// Save detailed output
	output := map[string]interface{}{
		"declared": declared,
		"latest":   latest,
		"vendored": vendored,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	os.WriteFile("debug_lookup.json", data, 0644)

	fmt.Println("\nDebug complete. Check debug_lookup.json for details.")
}
