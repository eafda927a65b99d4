// Package main provides the corr command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corr-ml/corr/backend/cpu"
	"github.com/corr-ml/corr/nn"
	"github.com/corr-ml/corr/tensor"
)

const version = "v0.1.0"

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "corr",
		Short: "2-D cross-correlation playground",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
		},
	}

	cobra.EnableCommandSorting = false

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("corr %s\n", version)
		},
	}

	var rows, cols int
	edgesCmd := &cobra.Command{
		Use:   "edges",
		Short: "Detect vertical edges in a synthetic band image",
		Long: `Builds an image of ones with a horizontal band of zeros, correlates it
with the [1, -1] kernel and prints the result. Columns where the value
changes show up as +1/-1 edges; constant regions produce 0.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdges(rows, cols)
		},
	}
	edgesCmd.Flags().IntVar(&rows, "rows", 6, "image height")
	edgesCmd.Flags().IntVar(&cols, "cols", 8, "image width")

	shapeCmd := &cobra.Command{
		Use:   "shape H W KH KW",
		Short: "Print the output shape of a convolution configuration",
		Args:  cobra.ExactArgs(4),
		RunE:  runShape,
	}
	shapeCmd.Flags().IntSlice("pad", []int{0, 0}, "symmetric padding per axis (h,w)")
	shapeCmd.Flags().IntSlice("stride", []int{1, 1}, "window step per axis (h,w)")

	rootCmd.AddCommand(
		versionCmd,
		edgesCmd,
		shapeCmd,
	)

	return rootCmd
}

// runEdges reproduces the classic edge detection example: a band image
// correlated with the [1, -1] kernel.
func runEdges(rows, cols int) error {
	if rows < 1 || cols < 4 {
		return fmt.Errorf("image too small: %dx%d", rows, cols)
	}

	backend := cpu.New()

	x := tensor.Ones[float64](tensor.Shape{rows, cols}, backend)
	for i := 0; i < rows; i++ {
		for j := cols / 4; j < 3*cols/4; j++ {
			x.Set(0, i, j)
		}
	}

	k, err := tensor.FromSlice([]float64{1, -1}, tensor.Shape{1, 2}, backend)
	if err != nil {
		return err
	}

	y, err := nn.Corr2D(x, k)
	if err != nil {
		return err
	}

	fmt.Println("input:")
	printGrid(x)
	fmt.Println("kernel [1 -1], output:")
	printGrid(y)

	return nil
}

// printGrid prints a 2-D tensor one row per line.
func printGrid[B tensor.Backend](t *tensor.Tensor[float64, B]) {
	rows, cols := t.Shape()[0], t.Shape()[1]
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			fmt.Printf("%5.1f", t.At(i, j))
		}
		fmt.Println()
	}
}

func runShape(cmd *cobra.Command, args []string) error {
	var dims [4]int
	for i, arg := range args {
		if _, err := fmt.Sscanf(arg, "%d", &dims[i]); err != nil {
			return fmt.Errorf("invalid dimension %q: %w", arg, err)
		}
	}
	h, w, kh, kw := dims[0], dims[1], dims[2], dims[3]

	pad, err := cmd.Flags().GetIntSlice("pad")
	if err != nil {
		return err
	}
	stride, err := cmd.Flags().GetIntSlice("stride")
	if err != nil {
		return err
	}
	if len(pad) != 2 || len(stride) != 2 {
		return fmt.Errorf("pad and stride each take exactly two values, got pad=%v stride=%v", pad, stride)
	}
	if stride[0] < 1 || stride[1] < 1 {
		return fmt.Errorf("stride must be >= 1, got %v", stride)
	}
	if kh > h+2*pad[0] || kw > w+2*pad[1] {
		return fmt.Errorf("kernel (%d,%d) larger than padded input (%d,%d)", kh, kw, h+2*pad[0], w+2*pad[1])
	}

	conv := nn.NewConv2D[float64](kh, kw, stride[0], stride[1], pad[0], pad[1], false, cpu.New())
	out := conv.ComputeOutputSize(h, w)
	fmt.Printf("input (%d,%d) kernel (%d,%d) pad %v stride %v -> output (%d,%d)\n",
		h, w, kh, kw, pad, stride, out[0], out[1])

	return nil
}

func main() {
	if err := NewCLI().Execute(); err != nil {
		os.Exit(1)
	}
}
