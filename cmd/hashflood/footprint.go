package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lth/hashflood/internal/attacks"
	"github.com/lth/hashflood/internal/bench"
)

var footprintCounts []int

func newFootprintCmd() *cobra.Command {
	footprintCmd := &cobra.Command{
		Use:   "footprint",
		Short: "Compare table memory for a colliding set and a random set of equal string length",
		Run:   runFootprint,
	}

	footprintCmd.Flags().StringVarP(&colliderName, "collider", "a", attacks.NameDJBX31A, "Colliding strategy: DJBX31A or Murmur3")
	footprintCmd.Flags().IntSliceVarP(&footprintCounts, "counts", "n",
		[]int{10, 100, 1000, 10000, 30000}, "String counts")

	return footprintCmd
}

func runFootprint(cmd *cobra.Command, args []string) {
	collider, err := attacks.Resolve(colliderName, colliderOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	targeted, ok := collider.(attacks.Targeted)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %s does not collide\n", colliderName)
		os.Exit(1)
	}
	random := attacks.NewRandomCollider(attacks.RandomConfig{Seed: seed})

	bar := progressbar.NewOptions(len(footprintCounts)*2,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("measuring"),
		progressbar.OptionClearOnFinish(),
	)

	var lines []string
	for _, n := range footprintCounts {
		colliding, err := targeted.Generate(n)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fp := bench.MeasureFootprint(targeted.Model(), colliding)
		lines = append(lines, fmt.Sprintf("%d %s %d %d", n, targeted.Model().Name(), fp.TableBytes+fp.StringBytes, fp.MaxChain))
		bar.Add(1)

		// Random bytes sized so the encoded strings match the colliding length.
		byteLength := 1
		if n > 0 {
			byteLength = max(len(colliding[0])*3/4, 1)
		}
		control, err := random.GenerateLength(n, byteLength)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fp = bench.MeasureFootprint(targeted.Model(), control)
		lines = append(lines, fmt.Sprintf("%d rnd %d %d", n, fp.TableBytes+fp.StringBytes, fp.MaxChain))
		bar.Add(1)
	}
	bar.Finish()

	fmt.Println("count hash bytes max_chain")
	for _, l := range lines {
		fmt.Println(l)
	}
}
