package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tsingjyujing/vireview/controller"
)

func NewImportCommand() *cobra.Command {
	var configFile string
	var inputFile string

	importCommand := &cobra.Command{
		Use:   "import",
		Short: "Import restaurants and reviews from a CSV export",
		Run: func(cmd *cobra.Command, args []string) {
			envelope := readConfig(configFile)
			f, err := os.Open(inputFile)
			if err != nil {
				logger.WithError(err).Fatal("Failed to open input file")
			}
			defer f.Close()
			records, err := controller.ReadImportCSV(f)
			if err != nil {
				logger.WithError(err).Fatal("Failed to read input file")
			}

			c := newController(cmd.Context(), envelope)
			defer c.Close()
			stats, err := c.Import(cmd.Context(), records)
			if err != nil {
				logger.WithError(err).Fatal("Failed to import reviews")
			}
			logger.WithField("restaurants", stats.Restaurants).
				WithField("reviews", stats.Reviews).
				WithField("normalized", stats.Normalized).
				WithField("classified", stats.Classified).
				WithField("failed", stats.Failed).
				Info("Import finished")
		},
	}
	importCommand.Flags().StringVar(&configFile, "config", "", "Path to config file")
	importCommand.Flags().StringVarP(&inputFile, "input", "i", "", "CSV export to import")
	_ = importCommand.MarkFlagRequired("input")
	return importCommand
}
