// Command rustychess-uci speaks the UCI protocol on stdin/stdout so the
// engine can be used from chess GUIs and test harnesses.
package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/colmak/rustychess/internal/engine"
	"github.com/colmak/rustychess/internal/uci"
)

var (
	depth      = flag.Int("depth", 4, "default search depth when go gives none")
	workers    = flag.Int("workers", runtime.NumCPU(), "number of parallel search workers")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	uci.New(engine.New(*workers), *depth, os.Stdin, os.Stdout).Run()
}
