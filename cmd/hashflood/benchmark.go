package main

import (
	"fmt"
	"os"

	"github.com/VictoriaMetrics/metrics"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lth/hashflood/internal/attacks"
	"github.com/lth/hashflood/internal/bench"
	"github.com/lth/hashflood/internal/hashmodel"
)

var (
	benchColliders []string
	benchCounts    []int
	iterations     int
	workers        int
	input          string
	tableHash      string
	writeMetrics   bool
)

func newBenchmarkCmd() *cobra.Command {
	benchCmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Time hash table inserts under colliding and random string sets",
		Run:   runBenchmark,
	}

	benchCmd.Flags().StringSliceVarP(&benchColliders, "colliders", "a", attacks.Names(), "Colliders to benchmark")
	benchCmd.Flags().IntSliceVarP(&benchCounts, "counts", "n",
		[]int{10, 100, 1000, 2500, 5000, 10000, 15000, 20000, 25000, 30000}, "String counts")
	benchCmd.Flags().IntVarP(&iterations, "iterations", "i", cfg.Iterations, "Table fills per case")
	benchCmd.Flags().IntVarP(&workers, "workers", "t", cfg.Workers, "Number of worker goroutines")
	benchCmd.Flags().IntVarP(&length, "length", "l", attacks.DefaultRandomLength, "Byte length of Random strings")
	benchCmd.Flags().StringVarP(&input, "input", "f", "", "Benchmark strings from file instead of generating them")
	benchCmd.Flags().StringVar(&tableHash, "hash", "", "Table hash: DJBX31A or Murmur3 (default: the collider's own)")
	benchCmd.Flags().BoolVar(&writeMetrics, "metrics", false, "Print Prometheus metrics after the run")

	return benchCmd
}

func resolveModel(name string) (hashmodel.Model, error) {
	switch name {
	case "":
		return nil, nil
	case attacks.NameDJBX31A:
		return hashmodel.DJBX31A{}, nil
	case attacks.NameMurmur3:
		return hashmodel.NewMurmur3(hashSeed), nil
	default:
		return nil, errors.Errorf("unknown table hash %q", name)
	}
}

func runBenchmark(cmd *cobra.Command, args []string) {
	model, err := resolveModel(tableHash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signalContext()
	defer cancel()

	var cases []bench.Case
	if input != "" {
		strs, err := attacks.ReadWordlist(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cases = append(cases, bench.Case{Collider: "File", Count: len(strs), Iterations: iterations, Model: model, Strings: strs})
	} else {
		for _, name := range benchColliders {
			for _, n := range benchCounts {
				cases = append(cases, bench.Case{Collider: name, Count: n, Iterations: iterations, Model: model})
			}
		}
	}

	fmt.Printf("hashflood v%s benchmark\n", version)
	fmt.Println("================================")
	fmt.Printf("Cases: %d | Iterations: %d | Workers: %d\n\n", len(cases), iterations, workers)

	bar := progressbar.NewOptions(len(cases)*max(iterations, 1),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("filling tables"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	runner := bench.New(workers, logger.WithField("command", "benchmark"), colliderOptions()...)
	runner.SetProgressCallback(func(p bench.Progress) {
		bar.Add(1)
	})

	var results []bench.Result
	for _, c := range cases {
		result, err := runner.Run(ctx, c)
		if err != nil {
			bar.Finish()
			fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
			os.Exit(1)
		}
		results = append(results, result)
	}
	bar.Finish()

	fmt.Printf("%-8s %-8s %8s %6s %12s %12s %12s %12s %10s %8s\n",
		"Collider", "Hash", "Count", "Len", "Min", "Mean", "Max", "Comparisons", "Per insert", "Chain")
	for _, r := range results {
		fmt.Printf("%-8s %-8s %8d %6d %12s %12s %12s %12d %10.2f %8d\n",
			r.Collider, r.Model, r.Count, r.Length,
			formatDuration(r.Min), formatDuration(r.Mean), formatDuration(r.Max),
			r.Comparisons, r.ComparisonsPerInsert, r.MaxChain)
	}

	if writeMetrics {
		fmt.Println()
		metrics.WritePrometheus(os.Stdout, false)
	}
}
