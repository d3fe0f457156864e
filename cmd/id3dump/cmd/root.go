package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simonhull/id3tag"
)

const AppName = "id3dump"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:     AppName,
		Short:   AppName + " - inspect and rewrite ID3 tags",
		Version: id3tag.GetVersionInfo().Version,
	}
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(DefineDumpCommand())
	rootCmd.AddCommand(DefineFramesCommand())
	rootCmd.AddCommand(DefineRewriteCommand())

	return rootCmd.Execute()
}

// newLogger builds the logger for parse diagnostics from the --log-level flag.
func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	s, _ := cmd.Flags().GetString("log-level")
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(level)
	return log, nil
}

func loadOptions(cmd *cobra.Command) ([]id3tag.Option, error) {
	log, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	opts := []id3tag.Option{id3tag.WithLogger(log)}

	if lenient, _ := cmd.Flags().GetBool("lenient"); lenient {
		opts = append(opts, id3tag.WithLenientHeaders())
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		opts = append(opts, id3tag.WithStrictParsing())
	}
	if noV1, _ := cmd.Flags().GetBool("no-id3v1"); noV1 {
		opts = append(opts, id3tag.WithoutID3v1Fallback())
	}
	return opts, nil
}

func addLoadFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("lenient", false, "accept headers with reserved flag bits set")
	cmd.Flags().Bool("strict", false, "fail on any undecodable frame")
	cmd.Flags().Bool("no-id3v1", false, "do not fall back to the ID3v1 trailer")
}
