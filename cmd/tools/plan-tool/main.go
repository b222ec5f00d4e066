// cmd/tools/plan-tool/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"transit-report/internal/catalog"
	"transit-report/internal/common/logger"
	"transit-report/internal/layout"
	"transit-report/internal/models"
	"transit-report/internal/planner"

	"github.com/spf13/cobra"
)

var (
	shapesPath    string
	heuristicPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "plan-tool",
		Short:         "Inspect report catalogs and compiled plans offline",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&shapesPath, "shapes", "configs/catalog/shapes_info.json", "Path to the shape catalog")
	root.PersistentFlags().StringVar(&heuristicPath, "heuristics", "configs/catalog/heuristic.json", "Path to the heuristic catalog")

	root.AddCommand(newValidateCmd(), newCompileCmd(), newFitCmd())
	return root
}

func loadCatalogs() (*catalog.ShapeCatalog, *catalog.HeuristicCatalog, error) {
	shapes, err := catalog.LoadShapes(shapesPath)
	if err != nil {
		return nil, nil, err
	}
	heuristics, err := catalog.LoadHeuristics(heuristicPath)
	if err != nil {
		return nil, nil, err
	}
	return shapes, heuristics, nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate both catalogs and list keys present in only one of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			shapes, heuristics, err := loadCatalogs()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "shapes: %d\nheuristics: %d\n", shapes.Len(), heuristics.Len())

			referenced := make(map[string]bool, shapes.Len())
			for _, shape := range shapes.Shapes() {
				referenced[shape.PrimaryKey] = true
				if !heuristics.Has(shape.PrimaryKey) {
					fmt.Fprintf(out, "  %s: no heuristic\n", shape.PrimaryKey)
				} else if _, ok := heuristics.Lookup(shape.PrimaryKey); !ok {
					fmt.Fprintf(out, "  %s: left alone\n", shape.PrimaryKey)
				}
			}
			for _, key := range heuristics.Keys() {
				if !referenced[key] {
					fmt.Fprintf(out, "  %s: not in shape catalog\n", key)
				}
			}
			return nil
		},
	}
}

func newCompileCmd() *cobra.Command {
	var (
		inputPath   string
		withDeletes bool
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a plan for an input document and print the research tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			shapes, heuristics, err := loadCatalogs()
			if err != nil {
				return err
			}

			raw, err := readInput(cmd, inputPath)
			if err != nil {
				return err
			}
			input, err := planner.DecodeInput(raw)
			if err != nil {
				return err
			}

			tasks := planner.NewCompiler(shapes, heuristics, logger.NewNoOpLogger()).Compile(input)

			result := map[string]interface{}{"tasks": tasks}
			if withDeletes {
				result["deleteSlideJobs"] = planner.DeleteJobsFor(tasks)
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "Input JSON file, - for stdin")
	cmd.Flags().BoolVar(&withDeletes, "deletes", false, "Also print the clear-region jobs for the plan")
	return cmd
}

func newFitCmd() *cobra.Command {
	var (
		text          string
		width, height float64
		unitsPerPoint float64
		fontPath      string
		lineSpacing   float64
	)

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Show the font size and cut the fit-text search picks for a box",
		RunE: func(cmd *cobra.Command, args []string) error {
			measurer, err := layout.NewFontMeasurer(fontPath, lineSpacing)
			if err != nil {
				return err
			}
			fitter := layout.NewFitter(measurer, unitsPerPoint)
			result := fitter.FitText(text, models.BoundingBox{Width: width, Height: height})
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Text to fit")
	cmd.Flags().Float64Var(&width, "width", 0, "Box width in template units")
	cmd.Flags().Float64Var(&height, "height", 0, "Box height in template units")
	cmd.Flags().Float64Var(&unitsPerPoint, "units-per-point", 12700, "Template units per point")
	cmd.Flags().StringVar(&fontPath, "font", "", "TrueType font file, empty for the built-in face")
	cmd.Flags().Float64Var(&lineSpacing, "line-spacing", 1.2, "Line spacing multiple")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
