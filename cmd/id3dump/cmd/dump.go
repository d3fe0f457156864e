package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/id3tag"
)

func DefineDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dump <file>...",
		Short:        "Print the ID3 tag of one or more files",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunDump,
	}

	cmd.Flags().StringP("format", "f", "text", "output format (text, yaml)")
	addLoadFlags(cmd)
	return cmd
}

func RunDump(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "yaml" {
		return fmt.Errorf("unknown format %q", format)
	}

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	tags, err := id3tag.LoadManyWith(cmd.Context(), args, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, tag := range tags {
		d := newDump(args[i], tag)
		if format == "yaml" {
			if err := writeYAML(out, d); err != nil {
				return err
			}
			continue
		}
		writeText(out, d)
	}
	return nil
}

type frameDump struct {
	Key    string         `yaml:"key"`
	Value  string         `yaml:"value"`
	Fields map[string]any `yaml:"fields"`
}

type opaqueDump struct {
	ID    string `yaml:"id"`
	Size  int    `yaml:"size"`
	Error string `yaml:"error,omitempty"`
}

type tagDump struct {
	Path     string       `yaml:"path"`
	Version  string       `yaml:"version"`
	Size     int          `yaml:"size"`
	Frames   []frameDump  `yaml:"frames"`
	Unknown  []opaqueDump `yaml:"unknown,omitempty"`
	Warnings []string     `yaml:"warnings,omitempty"`
}

func newDump(path string, tag *id3tag.Tag) tagDump {
	d := tagDump{
		Path:    path,
		Version: tag.Version.String(),
		Size:    tag.Size,
	}
	for key, f := range tag.All() {
		d.Frames = append(d.Frames, frameDump{Key: key, Value: f.String(), Fields: f.Fields()})
	}
	for _, o := range tag.Unknown {
		od := opaqueDump{ID: o.ID, Size: len(o.Body())}
		if o.Err != nil {
			od.Error = o.Err.Error()
		}
		d.Unknown = append(d.Unknown, od)
	}
	for _, w := range tag.Warnings {
		d.Warnings = append(d.Warnings, w.String())
	}
	return d
}

func writeYAML(w io.Writer, d tagDump) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

func writeText(w io.Writer, d tagDump) {
	fmt.Fprintf(w, "%s: %s (%d bytes)\n", d.Path, d.Version, d.Size)

	width := 4
	for _, f := range d.Frames {
		width = max(width, len(f.Key))
	}
	for _, f := range d.Frames {
		fmt.Fprintf(w, "  %-*s  %s\n", width, f.Key, oneLine(f.Value))
	}
	for _, o := range d.Unknown {
		line := fmt.Sprintf("  %-*s  <%d bytes>", width, o.ID, o.Size)
		if o.Error != "" {
			line += " error: " + o.Error
		}
		fmt.Fprintln(w, line)
	}
	if len(d.Warnings) > 0 {
		sort.Strings(d.Warnings)
		fmt.Fprintln(w, "  warnings:")
		for _, msg := range d.Warnings {
			fmt.Fprintf(w, "    %s\n", msg)
		}
	}
}

func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
