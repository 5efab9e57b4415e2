// Command storagemapcheck validates storage map declarations against the
// capability profiles of the bundled backends, so key-shape mistakes are
// caught before deployment instead of mid-request.
//
// Usage:
//
//	storagemapcheck [-backend <name>] storagemaps.yaml
//
// Without -backend, every declaration is checked against every bundled
// backend profile and the full verdict matrix is printed.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/suparena/polystore"
	"github.com/suparena/polystore/backend"
	"github.com/suparena/polystore/backend/cassandra"
	"github.com/suparena/polystore/backend/ddb"
	"github.com/suparena/polystore/backend/memory"
	"github.com/suparena/polystore/backend/sqlite"
	"github.com/suparena/polystore/metadata"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	backendFlag = flag.String("backend", "", "Check against one backend profile only")
)

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := polystore.GetVersionInfo()
		fmt.Printf("PolyStore storagemapcheck version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: storagemapcheck [-backend <name>] <storagemaps.yaml>")
		os.Exit(2)
	}

	profiles := capabilityProfiles()
	if *backendFlag != "" {
		caps, ok := profiles[*backendFlag]
		if !ok {
			fmt.Fprintf(os.Stderr, "storagemapcheck: unknown backend %q\n", *backendFlag)
			os.Exit(2)
		}
		profiles = map[string]backend.Capabilities{*backendFlag: caps}
	}

	maps, err := metadata.LoadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "storagemapcheck: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, entity := range sortedKeys(maps) {
		m := maps[entity]
		for _, name := range sortedKeys(profiles) {
			if err := m.Validate(profiles[name]); err != nil {
				fmt.Printf("FAIL  %-20s %-10s %v\n", entity, name, err)
				failed = true
				continue
			}
			fmt.Printf("ok    %-20s %-10s storage=%s key=%v\n", entity, name, m.StorageName, m.KeyFields)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// capabilityProfiles collects the capability report of every bundled
// backend, keyed by backend name. Only Capabilities is called, so bare
// adapter values are enough.
func capabilityProfiles() map[string]backend.Capabilities {
	stores := []backend.Backend{
		&cassandra.Store{},
		&ddb.Store{},
		memory.NewStore(),
		&sqlite.Store{},
	}

	profiles := make(map[string]backend.Capabilities, len(stores))
	for _, s := range stores {
		profiles[s.Name()] = s.Capabilities()
	}
	return profiles
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
