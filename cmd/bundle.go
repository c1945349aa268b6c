package cmd

import (
	"errors"
	"strings"

	"filebundler/pkg/bundle"
	"filebundler/pkg/console"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type bundleFlags struct {
	languages        []string
	output           string
	note             bool
	sort             string
	removeEmptyLines bool
	author           string
	exclude          []string
	skipBinary       bool
}

func newBundleCommand(a *app) *cobra.Command {
	var f bundleFlags

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Bundle code files to a single file",
		Long: `Bundle concatenates the files of the current directory (not recursive) into
one output file. Each file is preceded by a "// File: <name>" comment and
followed by a blank line.

Examples:
  filebundler bundle -l cs,py -o bundle.txt
  filebundler bundle -l all -o out/bundle.txt -n -s extension -r -a "Jane Doe"
  filebundler bundle @bundle.rsp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			author := f.author
			if !cmd.Flags().Changed("author") {
				author = a.cfg.Author
			}

			opts := bundle.Options{
				Languages:        f.languages,
				Output:           f.output,
				Note:             f.note,
				Sort:             bundle.SortKey(f.sort),
				RemoveEmptyLines: f.removeEmptyLines,
				Author:           author,
				Exclude:          f.exclude,
				IgnoreFile:       a.cfg.IgnoreFile,
				SkipBinary:       f.skipBinary,
			}
			return a.runBundle(console.NewPrinter(cmd.OutOrStdout()), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&f.languages, "language", "l", nil, `Extensions to include, comma-separated or repeated (e.g. cs,py), or "all"`)
	flags.StringVarP(&f.output, "output", "o", "", "File path and name for the bundled file")
	flags.BoolVarP(&f.note, "note", "n", false, "Include the source file path as a comment in the bundle")
	flags.StringVarP(&f.sort, "sort", "s", string(bundle.SortByName), "Sort files by "+sortKeyList())
	flags.BoolVarP(&f.removeEmptyLines, "remove-empty-lines", "r", false, "Remove empty lines from the code before adding it to the bundle")
	flags.StringVarP(&f.author, "author", "a", "", "Name of the author to include in the bundle file as a comment")
	flags.StringArrayVarP(&f.exclude, "exclude", "x", nil, "Gitignore-style pattern of files to leave out (repeatable)")
	flags.BoolVarP(&f.skipBinary, "skip-binary", "b", false, "Leave out files that look binary")

	_ = cmd.MarkFlagRequired("language")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (a *app) runBundle(p *console.Printer, opts bundle.Options) error {
	res, err := bundle.Run(opts, a.logger)
	if errors.Is(err, bundle.ErrNoMatchingFiles) {
		p.Warnf("No matching code files found.")
		return nil
	}
	if err != nil {
		a.logger.Debug("Bundle failed", zap.Error(err))
		return report(p, err)
	}

	if len(res.Binary) > 0 {
		p.Warnf("Skipped %d binary file(s): %s", len(res.Binary), strings.Join(res.Binary, ", "))
	}
	p.Successf("Files bundled successfully into %s", res.OutputPath)
	return nil
}

func sortKeyList() string {
	keys := make([]string, len(bundle.SortKeys))
	for i, k := range bundle.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, " or ")
}
