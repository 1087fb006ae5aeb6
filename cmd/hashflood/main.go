package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lth/hashflood/internal/attacks"
	"github.com/lth/hashflood/internal/config"
	"github.com/lth/hashflood/internal/hashmodel"
)

var (
	version = "1.0.0"

	colliderName string
	count        int
	length       int
	seed         int64
	hashSeed     uint32
	output       string
	verbose      bool

	cfg    config.Config
	logger *logrus.Logger
)

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "hashflood",
		Short: "Hash-flooding string generator - colliding key sets for naive hash tables",
		Long: `hashflood v` + version + `
Generates large sets of distinct strings that share one hash value under
DJBX31A (Java String.hashCode) or Murmur3 x86_32, plus random control sets,
and measures what they do to a naive chained hash table.

Colliders: ` + strings.Join(attacks.Names(), ", "),
		PersistentPreRun: setupLogger,
		Run:              runGenerate,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", cfg.Seed, "Seed for the Random collider (0 = time based)")
	rootCmd.PersistentFlags().Uint32Var(&hashSeed, "hash-seed", 0, "Murmur3 table seed (random when not set)")

	rootCmd.Flags().StringVarP(&colliderName, "collider", "a", attacks.NameDJBX31A, "Collider: "+strings.Join(attacks.Names(), ", "))
	rootCmd.Flags().IntVarP(&count, "count", "n", 10, "Number of strings to generate")
	rootCmd.Flags().IntVarP(&length, "length", "l", attacks.DefaultRandomLength, "Byte length of Random strings")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Write strings to file instead of stdout")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Display collider roots, hashes and expansion estimate",
		Run:   runInfo,
	}
	infoCmd.Flags().StringVarP(&colliderName, "collider", "a", attacks.NameDJBX31A, "Collider: "+strings.Join(attacks.Names(), ", "))
	infoCmd.Flags().IntVarP(&count, "count", "n", 25000, "Number of strings to estimate for")

	rootCmd.AddCommand(infoCmd, newBenchmarkCmd(), newFootprintCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(cmd *cobra.Command, args []string) {
	level := cfg.LogLevel
	if verbose {
		level = logrus.DebugLevel.String()
	}

	var err error
	logger, err = config.NewLogger(level, cfg.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !cmd.Flags().Changed("hash-seed") {
		hashSeed = uint32(time.Now().UnixNano())
	}
	logger.WithField("hash_seed", hashSeed).Debug("murmur3 table seed")
}

func colliderOptions() []attacks.Option {
	return []attacks.Option{
		attacks.WithSeed(seed),
		attacks.WithLength(length),
		attacks.WithHashSeed(hashSeed),
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	collider, err := attacks.Resolve(colliderName, colliderOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	generated, err := collider.Generate(count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.WithFields(logrus.Fields{
		"collider": colliderName,
		"count":    len(generated),
		"elapsed":  time.Since(start),
	}).Info("strings generated")

	if output == "" {
		err = attacks.WriteWordlist(os.Stdout, generated)
	} else {
		err = writeWordlistFile(output, generated)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// writeWordlistFile writes strs to path. A failed close is an error.
func writeWordlistFile(path string, strs []string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}

	if err := attacks.WriteWordlist(f, strs); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close output")
}

func runInfo(cmd *cobra.Command, args []string) {
	collider, err := attacks.Resolve(colliderName, colliderOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Collider Information")
	fmt.Println("====================")

	targeted, ok := collider.(attacks.Targeted)
	if !ok {
		sample, err := collider.Generate(1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Collider:    %s\n", colliderName)
		fmt.Printf("Collides:    no (control group)\n")
		fmt.Printf("Length:      %d characters\n", len(sample[0]))
		fmt.Printf("Sample:      %s\n", sample[0])
		return
	}

	model := targeted.Model()
	roots := targeted.Roots()
	est := attacks.EstimateFor(targeted, count)

	generated, err := targeted.Generate(count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Collider:    %s\n", colliderName)
	fmt.Printf("Hash:        %s\n", model.Name())
	for _, r := range roots {
		fmt.Printf("Root:        %q -> %#08x\n", r, model.Sum32(r))
	}
	fmt.Printf("Count:       %d\n", count)
	fmt.Printf("Rounds:      %d\n", est.Rounds)
	fmt.Printf("Length:      %d bytes\n", est.Length)
	fmt.Printf("Reachable:   %d\n", est.Reachable)

	if len(generated) > 0 {
		first, last := generated[0], generated[len(generated)-1]
		fmt.Printf("First:       %s -> %#08x\n", truncate(first, 40), model.Sum32(first))
		fmt.Printf("Last:        %s -> %#08x\n", truncate(last, 40), model.Sum32(last))
	}

	if djb, ok := model.(hashmodel.DJBX31A); ok && len(generated) > 0 && est.Rounds > 0 {
		half := len(generated[0]) / 2
		h := djb.Sum32(generated[0][:half])
		law := djb.Compose(h, h, half) == djb.Sum32(generated[0])
		fmt.Printf("Compose law: %v\n", law)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nInterrupted - stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
