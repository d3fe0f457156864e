package cmd

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simonhull/id3tag"
)

func DefineFramesCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "frames",
		Short:        "List all frame ids with a known layout",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunFrames,
	}
}

func RunFrames(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tFIELDS")

	ids := id3tag.FrameIDs()
	slices.Sort(ids)
	for _, id := range ids {
		f, err := id3tag.NewFrame(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%T\t%v\n", id, f, f.FieldNames())
	}
	return w.Flush()
}
