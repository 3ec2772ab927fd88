// Benchmark driver: -stage a|b|c|d
package main

import (
	"flag"
	"fmt"
	"log"
)

type stageOpts struct {
	workers int
	radius  int
}

func main() {
	stage := flag.String("stage", "", "benchmark stage: a(write/read) | b(capacity) | c(concurrency) | d(backend comparison)")
	workers := flag.Int("workers", 0, "fixed worker count for stage c, 0 sweeps a default set")
	radius := flag.Int("radius", 64, "chunk coordinate radius around the origin")
	flag.Parse()
	opts := stageOpts{workers: *workers, radius: *radius}
	switch *stage {
	case "a":
		runStageA(opts)
	case "b":
		runStageB(opts)
	case "c":
		runStageC(opts)
	case "d":
		runStageD(opts)
	default:
		log.Fatalf("pass -stage a|b|c|d")
	}
	fmt.Println("benchmark finished")
}
