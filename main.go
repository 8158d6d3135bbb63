package main

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tsingjyujing/vireview/cmd"
	"github.com/tsingjyujing/vireview/utils"
)

var logger = logrus.New()

//go:embed version.txt
var version string

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Vireview",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(strings.TrimSpace(version))
	},
}

func main() {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "vireview",
		Short: "Vireview classifies Vietnamese restaurant reviews by sentiment",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				utils.SetVerbose()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	commands := []*cobra.Command{
		cmd.NewServerCommand(),
		cmd.NewMcpCommand(),
		cmd.NewImportCommand(),
		cmd.NewNormalizeCommand(),
		versionCommand,
	}
	for _, command := range commands {
		rootCmd.AddCommand(command)
	}
	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Fatal("Failed to execute command")
	}
}
