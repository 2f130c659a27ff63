// neurcodec is a command-line front-end for compressing and decompressing
// mono 16-bit WAV recordings with the neurcodec container format.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neurcodec/neurcodec"
	"github.com/neurcodec/neurcodec/internal/wavio"
)

var (
	order     int
	blockSize int
	modeFlag  string
	threshold float32
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neurcodec",
	Short: "Compress and decompress mono 16-bit signal recordings",
}

var encodeCmd = &cobra.Command{
	Use:   "encode [input.wav] [output.neur]",
	Short: "Encode a WAV file into a neurcodec container",
	Args:  cobra.ExactArgs(2),
	RunE:  runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode [input.neur] [output.wav]",
	Short: "Decode a neurcodec container into a WAV file",
	Args:  cobra.ExactArgs(2),
	RunE:  runDecode,
}

func init() {
	encodeCmd.Flags().IntVar(&order, "order", 8, "LPC predictor order")
	encodeCmd.Flags().IntVar(&blockSize, "block-size", 32, "samples per LPC block")
	encodeCmd.Flags().StringVar(&modeFlag, "mode", "events", "coding mode: lossless, events, or elite")
	encodeCmd.Flags().Float32Var(&threshold, "threshold", 6.0, "RMS threshold multiplier for events mode")

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
}

func parseMode(s string) (neurcodec.Mode, error) {
	switch s {
	case "lossless":
		return neurcodec.ModeLossless, nil
	case "events":
		return neurcodec.ModeEvents, nil
	case "elite":
		return neurcodec.ModeElite, nil
	default:
		return 0, fmt.Errorf("unknown mode %q: want lossless, events, or elite", s)
	}
}

func runEncode(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(modeFlag)
	if err != nil {
		return err
	}

	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	samples, h, err := wavio.Read(in)
	if err != nil {
		return fmt.Errorf("read WAV: %w", err)
	}

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	opts := neurcodec.Options{Order: order, BlockSize: blockSize, ThresholdMultiplier: threshold}
	if err := neurcodec.Encode(out, samples, h, mode, opts); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	outStat, err := out.Stat()
	if err != nil {
		return fmt.Errorf("stat output: %w", err)
	}

	ratio := float64(len(samples)*2) / float64(outStat.Size())
	fmt.Printf("Final Ratio: %.2fx\n", ratio)

	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	samples, h, err := neurcodec.Decode(in)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := wavio.Write(out, samples, h); err != nil {
		return fmt.Errorf("write WAV: %w", err)
	}

	return nil
}
