// Package main provides the entry point for rvcontrol.
// rvcontrol replays a datapath signal trace through the pipeline control
// unit and reports stall, refill, and predictor-update behavior.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/rvcontrol/control"
	"github.com/sarchlab/rvcontrol/sim"
)

var (
	configPath = flag.String("config", "", "Path to configuration JSON file")
	verbose    = flag.Bool("v", false, "Print per-tick outputs")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: rvcontrol [options] <trace.json>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	config := control.DefaultConfig()
	if *configPath != "" {
		loaded, err := control.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config = loaded
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	trace, err := sim.LoadTrace(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trace: %v\n", err)
		os.Exit(1)
	}

	harness := sim.NewHarness(config)
	records := harness.Run(trace)

	if *verbose {
		printRecords(records)
	}
	printStats(harness.Stats())
}

func printRecords(records []sim.TickRecord) {
	for _, r := range records {
		sigs := r.Outputs.Signals
		fmt.Printf(
			"tick %4d  hit=%-5v stall=%-5v aluop=%-4s regwrite=%-5v "+
				"memread=%-5v memwrite=%-5v memreq=%-5v retry=%-5v update=%s\n",
			r.Tick, r.CacheHit, sigs.IsStall, sigs.ALUOp, sigs.RegWrite,
			sigs.MemRead, sigs.MemWrite,
			r.Outputs.MemReadRequest, r.Outputs.CacheRetry,
			r.Outputs.Update.Direction,
		)
	}
}

func printStats(stats sim.Stats) {
	fmt.Println("=== Control Unit ===")
	fmt.Printf("Ticks:             %d\n", stats.Unit.Ticks)
	fmt.Printf("Stalls:            %d (%.1f%%)\n",
		stats.Unit.Stalls, stats.Unit.StallRate()*100)
	fmt.Printf("Bubbles:           %d\n", stats.Unit.Bubbles)
	fmt.Printf("Mem read requests: %d\n", stats.Unit.MemReadRequests)
	fmt.Printf("Cache retries:     %d\n", stats.Unit.CacheRetries)
	fmt.Println("=== I-Cache ===")
	fmt.Printf("Lookups:           %d\n", stats.ICache.Lookups)
	fmt.Printf("Hits:              %d\n", stats.ICache.Hits)
	fmt.Printf("Misses:            %d\n", stats.ICache.Misses)
	fmt.Printf("Refills:           %d\n", stats.ICache.Refills)
	fmt.Println("=== Predictor ===")
	fmt.Printf("BHT updates:       %d\n", stats.Predictor.BHTUpdates)
	fmt.Printf("BTB updates:       %d\n", stats.Predictor.BTBUpdates)
}
