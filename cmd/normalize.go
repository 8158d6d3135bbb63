package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsingjyujing/vireview/controller"
)

// writeNormalized prints input<TAB>normalized, or input<TAB><TAB>error when
// a review fails.
func writeNormalized(w io.Writer, inputs, normalized, errs []string) error {
	out := bufio.NewWriter(w)
	for i, input := range inputs {
		line := strings.ReplaceAll(input, "\t", " ") + "\t" + normalized[i]
		if errs[i] != "" {
			line += "\t" + errs[i]
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return out.Flush()
}

func NewNormalizeCommand() *cobra.Command {
	var configFile string
	var inputFile string

	normalizeCommand := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize reviews from a .txt or .csv file and print them as TSV",
		Run: func(cmd *cobra.Command, args []string) {
			envelope := readConfig(configFile)
			pipeline, err := buildPipeline(envelope)
			if err != nil {
				logger.WithError(err).Fatal("Failed to build normalization pipeline")
			}
			f, err := os.Open(inputFile)
			if err != nil {
				logger.WithError(err).Fatal("Failed to open input file")
			}
			defer f.Close()
			reviews, err := controller.ReadUploadedReviews(inputFile, f)
			if err != nil {
				logger.WithError(err).Fatal("Failed to read input file")
			}

			results := pipeline.NormalizeStrings(cmd.Context(), reviews)
			normalized := make([]string, len(results))
			errs := make([]string, len(results))
			for i, r := range results {
				normalized[i] = r.Normalized
				if r.Err != nil {
					errs[i] = r.Err.Error()
				}
			}
			if err := writeNormalized(cmd.OutOrStdout(), reviews, normalized, errs); err != nil {
				logger.WithError(err).Fatal("Failed to write output")
			}
		},
	}
	normalizeCommand.Flags().StringVar(&configFile, "config", "", "Path to config file")
	normalizeCommand.Flags().StringVarP(&inputFile, "input", "i", "", "Reviews to normalize, .txt or .csv")
	_ = normalizeCommand.MarkFlagRequired("input")
	return normalizeCommand
}
