package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/id3tag"
)

func DefineRewriteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite <file>",
		Short: "Load a tag and write it back",
		Long: `The 'rewrite' command loads the tag of a file and saves it again.
Tags recovered from an ID3v1 trailer are written as ID3v2.4.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunRewrite,
	}

	cmd.Flags().StringP("output", "o", "", "write to this path instead of rewriting in place")
	cmd.Flags().String("backup", "", "keep the original under this suffix")
	cmd.Flags().Int("padding", id3tag.DefaultPadding, "zero bytes after the frames")
	cmd.Flags().Bool("strip-id3v1", false, "remove a trailing ID3v1 block")
	cmd.Flags().Bool("preserve-mtime", false, "keep the modification time")
	addLoadFlags(cmd)
	return cmd
}

func RunRewrite(cmd *cobra.Command, args []string) error {
	src := args[0]
	dst, _ := cmd.Flags().GetString("output")
	if dst == "" {
		dst = src
	}

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	tag, err := id3tag.Load(src, opts...)
	if err != nil {
		return err
	}

	backup, _ := cmd.Flags().GetString("backup")
	padding, _ := cmd.Flags().GetInt("padding")
	saveOpts := []id3tag.SaveOption{id3tag.WithPadding(padding), id3tag.WithValidation()}
	if backup != "" {
		saveOpts = append(saveOpts, id3tag.WithBackup(backup))
	}
	if strip, _ := cmd.Flags().GetBool("strip-id3v1"); strip {
		saveOpts = append(saveOpts, id3tag.WithStripID3v1())
	}
	if keep, _ := cmd.Flags().GetBool("preserve-mtime"); keep {
		saveOpts = append(saveOpts, id3tag.WithPreserveModTime())
	}

	if err := id3tag.SaveAs(src, dst, tag, saveOpts...); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: wrote %d frames (%d unknown)\n", dst, tag.Len(), len(tag.Unknown))
	return nil
}
