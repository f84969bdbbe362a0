package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/ns8/epsilon/internal/engine"
	"github.com/ns8/epsilon/internal/storage"
	"github.com/ns8/epsilon/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	hashMB     = flag.Int("hash", engine.DefaultHashMB, "transposition table size in MB")
	depth      = flag.Int("depth", engine.DefaultDepth, "default search depth")
	dbDir      = flag.String("db", "", "database directory (default: user data dir)")
	noDB       = flag.Bool("nodb", false, "run without persistent storage")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	var opts []uci.Option
	settings := storage.DefaultOptions(*hashMB, *depth)

	if !*noDB {
		store, err := storage.Open(*dbDir)
		if err != nil {
			log.Fatal("could not open storage: ", err)
		}
		defer store.Close()

		settings, err = store.LoadOptions(settings)
		if err != nil {
			log.Printf("Warning: stored options not loaded: %v", err)
			settings = storage.DefaultOptions(*hashMB, *depth)
		}
		opts = append(opts, uci.WithStorage(store))
	}

	// Explicit flags win over stored options
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hash":
			settings.HashMB = *hashMB
		case "depth":
			settings.Depth = *depth
		}
	})

	eng := engine.NewEngine(engine.DefaultHashMB, engine.DefaultDepth)
	if settings.HashMB != eng.HashSize() {
		if err := eng.SetHashSize(settings.HashMB); err != nil {
			log.Printf("Warning: %v, using %d MB", err, eng.HashSize())
		}
	}
	if err := eng.SetDepth(settings.Depth); err != nil {
		log.Printf("Warning: %v, using depth %d", err, eng.Depth())
	}

	protocol := uci.New(eng, opts...)
	if err := protocol.Run(os.Stdin); err != nil {
		log.Printf("input error: %v", err)
	}
}
