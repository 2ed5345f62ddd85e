package main

import (
	"fmt"
	"io"

	"github.com/born-ml/ndview/internal/index"
	"github.com/born-ml/ndview/internal/tensor"
	"github.com/spf13/cobra"
)

// arrayFlags describe a generated arange source array.
type arrayFlags struct {
	shape string
	dtype string
}

func (f *arrayFlags) register(cmd *cobra.Command, prefix, defShape, defDType string) {
	cmd.Flags().StringVar(&f.shape, prefix+"shape", defShape, "shape of the generated arange array")
	cmd.Flags().StringVar(&f.dtype, prefix+"dtype", defDType, "element type of the generated array")
}

func (f *arrayFlags) build(a *app) (*tensor.RawTensor, error) {
	shape, err := parseShape(f.shape)
	if err != nil {
		return nil, err
	}
	dtype, err := tensor.ParseDataType(f.dtype)
	if err != nil {
		return nil, err
	}
	return a.arange(shape, dtype)
}

func printArray(w io.Writer, a *app, label string, x *tensor.RawTensor) error {
	vals, err := a.values(x)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s shape=%s dtype=%s strides=%s offset=%d contiguous=%t\n",
		label, formatShape(x.Shape()), x.DType(), formatShape(x.Strides()), x.Offset(), x.IsContiguous())
	fmt.Fprintf(w, "%s\n", formatValues(x.Shape(), vals))
	return nil
}

func newViewCmd(flags *rootFlags) *cobra.Command {
	var src arrayFlags
	cmd := &cobra.Command{
		Use:   "view EXPR",
		Short: "Resolve an index expression against an arange array",
		Example: `  ndview view --shape 2,3,4 "1, ::-1"
  ndview view --shape 4 "newaxis, ..., 1:"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app) error {
				x, err := src.build(a)
				if err != nil {
					return err
				}
				defer x.Release()

				expr, err := index.Parse(args[0])
				if err != nil {
					return err
				}
				specs, err := index.Normalize(x.Rank(), expr)
				if err != nil {
					return err
				}
				v, err := index.Resolve(x, specs)
				if err != nil {
					return err
				}
				defer v.Release()

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "index %s\n", index.FormatSpecs(specs))
				if err := printArray(out, a, "source", x); err != nil {
					return err
				}
				return printArray(out, a, "view", v)
			})
		},
	}
	src.register(cmd, "", "2,3", "float32")
	return cmd
}

func newBroadcastCmd() *cobra.Command {
	var dtypeName string
	cmd := &cobra.Command{
		Use:   "broadcast SHAPE [SHAPE...]",
		Short: "Compute the broadcast shape and per-operand virtual strides",
		Example: `  ndview broadcast 3,1 1,4
  ndview broadcast "()" 2,3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dtype, err := tensor.ParseDataType(dtypeName)
			if err != nil {
				return err
			}
			shapes := make([]tensor.Shape, len(args))
			for i, s := range args {
				if shapes[i], err = parseShape(s); err != nil {
					return err
				}
			}

			out, err := tensor.BroadcastShapes(shapes...)
			if err != nil {
				return fmt.Errorf("broadcast: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "shape %s\n", formatShape(out))
			for _, s := range shapes {
				strides, err := tensor.BroadcastStrides(s, s.ByteStrides(dtype.Size()), out)
				if err != nil {
					return fmt.Errorf("broadcast: %w", err)
				}
				fmt.Fprintf(w, "  %s strides=%s\n", formatShape(s), formatShape(strides))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dtypeName, "dtype", "float32", "element type used for byte strides")
	return cmd
}

func newTakeCmd(flags *rootFlags) *cobra.Command {
	var (
		src        arrayFlags
		indices    string
		indexShape string
		axis       int
	)
	cmd := &cobra.Command{
		Use:   "take",
		Short: "Gather elements of an arange array along an axis",
		Example: `  ndview take --shape 3,4 --indices 2,0 --axis 1
  ndview take --shape 5 --indices 0,-1,1,-2 --index-shape 2,2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, err := parseInts(indices)
			if err != nil {
				return err
			}
			var shape tensor.Shape
			if indexShape != "" {
				if shape, err = parseShape(indexShape); err != nil {
					return err
				}
			}

			return withApp(cmd, flags, func(a *app) error {
				x, err := src.build(a)
				if err != nil {
					return err
				}
				defer x.Release()

				y, err := a.engine.TakeInts(x, idx, shape, axis)
				if err != nil {
					return err
				}
				defer y.Release()
				return printArray(cmd.OutOrStdout(), a, "result", y)
			})
		},
	}
	src.register(cmd, "", "3,4", "float32")
	cmd.Flags().StringVar(&indices, "indices", "0", "comma separated indices; negative values count from the end")
	cmd.Flags().StringVar(&indexShape, "index-shape", "", "shape of the index array (default 1-D)")
	cmd.Flags().IntVar(&axis, "axis", 0, "axis to gather along; negative values count from the end")
	return cmd
}

func newWhereCmd(flags *rootFlags) *cobra.Command {
	var cond, x, y arrayFlags
	cmd := &cobra.Command{
		Use:   "where",
		Short: "Select from two arange arrays by an arange condition",
		Long: `where builds three arange arrays. Condition elements are true where the
value is non-zero, so the first element always selects from y.`,
		Example: `  ndview where --cond-shape 3,1 --x-shape 1,4 --y-shape "()"
  ndview where --x-dtype int8 --y-dtype uint8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(a *app) error {
				c, err := cond.build(a)
				if err != nil {
					return err
				}
				defer c.Release()
				xa, err := x.build(a)
				if err != nil {
					return err
				}
				defer xa.Release()
				ya, err := y.build(a)
				if err != nil {
					return err
				}
				defer ya.Release()

				out, err := a.engine.Where(c, xa, ya)
				if err != nil {
					return err
				}
				defer out.Release()
				return printArray(cmd.OutOrStdout(), a, "result", out)
			})
		},
	}
	cond.register(cmd, "cond-", "2,3", "bool")
	x.register(cmd, "x-", "2,3", "float32")
	y.register(cmd, "y-", "()", "float32")
	return cmd
}
