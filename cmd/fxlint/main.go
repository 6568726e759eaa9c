// fxlint cross-checks a trigger effect config against a dumped
// animation-graph description. It prints one line per configuration
// error and exits non-zero if any were found.
//
// Usage:
//
//	fxlint -config triggers.yaml -graph player_graph.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/nodefx/prefabs"
	"github.com/milk9111/nodefx/validate"
)

func main() {
	configPath := flag.String("config", "", "path to the trigger config YAML")
	graphPath := flag.String("graph", "", "path to the dumped animation graph YAML")
	flag.Parse()

	if *configPath == "" || *graphPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := prefabs.LoadTriggerSpec(*configPath)
	if err != nil {
		log.Fatalf("fxlint: %v", err)
	}
	graph, err := validate.LoadGraphSpec(*graphPath)
	if err != nil {
		log.Fatalf("fxlint: %v", err)
	}

	report := validate.Check(cfg, graph)
	if !report.OK() {
		for _, e := range report.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		fmt.Fprintf(os.Stderr, "fxlint: %d error(s) in %s against graph %q\n", len(report.Errors), *configPath, graph.Name)
		os.Exit(1)
	}

	fmt.Printf("ok: %s validated against graph %q (%d nodes)\n", *configPath, graph.Name, len(graph.Nodes))
}
