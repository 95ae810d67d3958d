package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-catch/internal/games/fruitcatch"
)

var flagWheelSamples int

var wheelCmd = &cobra.Command{
	Use:   "wheel [impulse...]",
	Short: "Print the reward wheel and resolve spins",
	Long: `Print the slot layout of the reward wheel and where spins land.

Each impulse is an initial angular velocity in degrees per tick. Without
impulses, --samples random impulses are drawn from the configured range
using --seed.

Examples:
  fruitcatch wheel
  fruitcatch wheel 15 20 24.5
  fruitcatch wheel --samples 1000 --seed 1`,
	Run: runWheel,
}

func init() {
	wheelCmd.Flags().IntVar(&flagWheelSamples, "samples", 5, "Random impulses to resolve when none are given")
}

func runWheel(_ *cobra.Command, args []string) {
	applyGameFlags("")
	cfg := fruitcatch.LoadConfigPreset("")
	resolver := fruitcatch.NewResolver(cfg.Wheel)
	layout := resolver.Layout

	fmt.Printf("Wheel: %d slots, %.1f degrees each, decay %.3f, stop below %.2f\n",
		layout.Len(), layout.SliceAngle(), resolver.Decay, resolver.Threshold)
	fmt.Println()

	counts := make(map[string]int)
	var order []string
	for i, seg := range layout.Segments() {
		fmt.Printf("  %2d  %-6s  x%g\n", i, seg.Label, seg.Multiplier)
		if counts[seg.Label] == 0 {
			order = append(order, seg.Label)
		}
		counts[seg.Label]++
	}
	fmt.Println()

	impulses := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid impulse %q\n", a)
			os.Exit(1)
		}
		impulses = append(impulses, v)
	}
	if len(impulses) == 0 {
		rng := rand.New(rand.NewSource(flagSeed)) //#nosec G404 -- reproducible sampling, not security
		for range max(flagWheelSamples, 0) {
			impulses = append(impulses, resolver.RandomImpulse(rng))
		}
	}

	if len(impulses) <= 20 {
		fmt.Printf("  %-8s  %-6s  %-10s  %-4s  %s\n", "Impulse", "Ticks", "Rotation", "Slot", "Result")
		for _, v0 := range impulses {
			seg, rotation := resolver.Resolve(v0)
			fmt.Printf("  %-8.2f  %-6d  %-10.2f  %-4d  %s\n",
				v0, resolver.Steps(v0), rotation, layout.IndexAt(rotation), seg.Label)
		}
		return
	}

	// Many samples: print the outcome distribution next to the slot share.
	landed := make(map[string]int)
	for _, v0 := range impulses {
		landed[resolver.RestingSegment(v0).Label]++
	}
	fmt.Printf("  %-6s  %-8s  %s\n", "Result", "Slots", "Landed")
	for _, label := range order {
		fmt.Printf("  %-6s  %5.1f%%   %5.1f%%\n", label,
			100*float64(counts[label])/float64(layout.Len()),
			100*float64(landed[label])/float64(len(impulses)))
	}
}
