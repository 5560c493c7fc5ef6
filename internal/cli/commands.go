// internal/cli/commands.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/UriNeri/pyraseq/internal/config"
	"github.com/UriNeri/pyraseq/internal/version"
)

// Handler runs a fully validated command line. cfg already holds the merged
// flag, environment and file settings.
type Handler func(cmd *cobra.Command, o Options, cfg *config.Config) error

// NewRootCommand builds the pyraseq command tree. Errors from flag parsing,
// argument checks, config loading and validation carry ErrConfig; anything
// else comes from h.
func NewRootCommand(h Handler) *cobra.Command {
	var o Options

	root := &cobra.Command{
		Use:   "pyraseq",
		Short: "Filter, count and parse FASTA/FASTQ files in parallel",
		Long: `pyraseq streams FASTA/FASTQ records (plain, gzip, zstd, lz4 or bzip2;
local paths, '-' for stdin, or s3:// URLs) through a pool of workers.

Without a subcommand it keeps the records whose identifier (the first
whitespace-delimited word of the header) is in --headers, or is not in it
with --invert, and writes them as FASTA to --output. --headers takes a
file path or a comma-separated list; a leading '@' always means a file.`,
		Example: `  pyraseq -i reads.fq.gz -H ids.txt -o hits.fa -t 8
  pyraseq -i contigs.fa -H id1,id2 -o - --invert
  pyraseq -i reads.fq --count
  pyraseq count -i reads.fq.zst --json
  pyraseq parse -i reads.fq --format tsv`,
		Version:       version.Version,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.Mode = ModeFilter
			if count, _ := cmd.Flags().GetBool("count"); count {
				o.Mode = ModeCount
			}
			return finish(cmd, &o, h)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageErr("%v", err) })

	pf := root.PersistentFlags()
	pf.IntVarP(&o.Threads, "threads", "t", 0, "worker threads (0 = all CPUs)")
	pf.IntVar(&o.BatchSize, "batch-size", 0, "records per worker hand-off (default from config, 256)")
	pf.StringVar(&o.ConfigPath, "config", "", "config file (default .pyraseq.yaml or ~/.pyraseq/config.yaml)")
	pf.StringVar(&o.LogLevel, "log-level", "", "log level: debug | info | warn | error")
	pf.StringVar(&o.LogFormat, "log-format", "", "log format: text | json")
	pf.BoolVarP(&o.Quiet, "quiet", "q", false, "only log warnings and errors")

	f := root.Flags()
	f.StringVarP(&o.Input, "input", "i", "", "input FASTA/FASTQ path, '-' for stdin, or s3://bucket/key")
	f.StringVarP(&o.Output, "output", "o", "", "output FASTA path, '-' or /dev/stdout for stdout, or s3://bucket/key")
	f.StringVarP(&o.Headers, "headers", "H", "", "header file, @file, or comma-separated identifiers; a leading @ always names a file")
	f.BoolVarP(&o.Invert, "invert", "v", false, "keep records whose identifier is NOT in the header set")
	f.BoolP("count", "c", false, "only count records and bases")
	f.BoolVar(&o.JSON, "json", false, "print the run summary as JSON on stdout")

	root.AddCommand(
		newCountCommand(&o, h),
		newParseCommand(&o, h),
		newHeadersCommand(&o, h),
	)
	return root
}

func newCountCommand(o *Options, h Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count records and bases",
		Long:  "Count prints \"<records>\\t<bases>\" for the input, or a JSON object with --json.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.Mode = ModeCount
			return finish(cmd, o, h)
		},
	}
	cmd.Flags().StringVarP(&o.Input, "input", "i", "", "input FASTA/FASTQ path, '-' for stdin, or s3://bucket/key")
	cmd.Flags().BoolVar(&o.JSON, "json", false, "print the totals as JSON")
	return cmd
}

func newParseCommand(o *Options, h Handler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Print every record in file order",
		Long: `Parse reads the input on a single worker and prints every record in file
order. Quality is null (json/jsonl) or "." (tsv) for FASTA input.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.Mode = ModeParse
			return finish(cmd, o, h)
		},
	}
	cmd.Flags().StringVarP(&o.Input, "input", "i", "", "input FASTA/FASTQ path, '-' for stdin, or s3://bucket/key")
	cmd.Flags().StringVarP(&o.Format, "format", "f", "jsonl", "output format: fastx | json | jsonl | tsv")
	return cmd
}

func newHeadersCommand(o *Options, h Handler) *cobra.Command {
	return &cobra.Command{
		Use:   "headers FILE",
		Short: "Print the identifiers loaded from a header file",
		Long: `Headers prints one identifier per line as they would be loaded from FILE:
whitespace trimmed, blank lines dropped, file order and duplicates kept.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageErr("%v", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Mode = ModeHeaders
			o.Headers = args[0]
			return finish(cmd, o, h)
		},
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErr("unexpected argument %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func finish(cmd *cobra.Command, o *Options, h Handler) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	o.ApplyConfig(cfg, func(name string) bool { return cmd.Flags().Changed(name) })
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	return h(cmd, *o, cfg)
}
