package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/lukaszgryglicki/rotfield/internal/rotfield"
)

func main() {
	rotfield.Debug = os.Getenv("DEBUG") != ""
	rotfield.PNG = os.Getenv("PNG") != ""
	rotfield.RAW = os.Getenv("RAW") != ""
	rotfield.Plot = os.Getenv("PLOT") != ""
	rotfield.Chart = os.Getenv("CHART") != ""
	rotfield.Viewer = os.Getenv("VIEW") != ""
	rotfield.Progress = os.Getenv("QUIET") == ""
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := rotfield.ConfigPath
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := rotfield.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
