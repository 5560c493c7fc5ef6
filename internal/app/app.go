// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UriNeri/pyraseq/internal/appcore"
	"github.com/UriNeri/pyraseq/internal/blobstore"
	"github.com/UriNeri/pyraseq/internal/cli"
	"github.com/UriNeri/pyraseq/internal/config"
	perrors "github.com/UriNeri/pyraseq/internal/errors"
	"github.com/UriNeri/pyraseq/internal/headerset"
	"github.com/UriNeri/pyraseq/internal/logging"
	"github.com/UriNeri/pyraseq/internal/output"
	"github.com/UriNeri/pyraseq/internal/runutil"
	"github.com/UriNeri/pyraseq/internal/writers"
)

// RunContext runs one pyraseq command line and returns the process exit code.
// stdin backs the "-" input path.
func RunContext(parent context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	r := &runner{stdin: stdin, stdout: stdout, stderr: stderr}
	root := cli.NewRootCommand(r.handle)
	root.SetArgs(argv)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(parent)
	if err == nil || writers.IsBrokenPipe(err) {
		if parent.Err() != nil {
			return 130
		}
		return 0
	}
	_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	if !r.ran && perrors.Kind(err) == "" && !errors.Is(err, context.Canceled) {
		// cobra's own parse failures
		return 2
	}
	return perrors.ExitCode(err)
}

// Run is RunContext without cancellation, reading stdin from the process.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, os.Stdin, stdout, stderr)
}

type runner struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	ran            bool
}

func (r *runner) handle(cmd *cobra.Command, o cli.Options, cfg *config.Config) error {
	r.ran = true
	ctx := cmd.Context()

	level, _ := logging.ParseLevel(cfg.Log.Level)
	format, _ := logging.ParseFormat(cfg.Log.Format)
	log := logging.New(r.stderr, level, format)
	for _, w := range runutil.ValidateThreads(o.Threads) {
		log.WarnContext(ctx, w, "threads", o.Threads)
	}

	store, err := appcore.NewStore(cfg.Storage)
	if err != nil {
		return err
	}
	store.Local = &blobstore.LocalStore{Stdin: r.stdin, Stdout: r.stdout}
	env := appcore.Env{Store: store, Logger: log}

	common := appcore.Options{
		Input:         o.Input,
		Threads:       o.Threads,
		BatchSize:     o.BatchSize,
		ProgressEvery: cfg.Run.ProgressEvery,
	}

	switch o.Mode {
	case cli.ModeFilter:
		set, err := appcore.LoadHeaders(ctx, env, o.Headers)
		if err != nil {
			return err
		}
		counts, err := appcore.Filter(ctx, env, appcore.FilterOptions{
			Options: common,
			Output:  o.Output,
			Headers: set,
			Invert:  o.Invert,
		})
		if err != nil || !o.JSON {
			return err
		}
		return r.print(func(w io.Writer) error { return output.WriteCountsJSON(w, counts) })

	case cli.ModeCount:
		totals, err := appcore.Count(ctx, env, common)
		if err != nil {
			return err
		}
		if o.JSON {
			return r.print(func(w io.Writer) error { return output.WriteTotalsJSON(w, totals) })
		}
		return r.print(func(w io.Writer) error { return output.WriteTotals(w, totals) })

	case cli.ModeParse:
		recs, err := appcore.Parse(ctx, env, common)
		if err != nil {
			return err
		}
		return r.print(func(w io.Writer) error { return writers.WriteRecords(o.Format, w, recs) })

	case cli.ModeHeaders:
		path, _ := strings.CutPrefix(o.Headers, headerset.FilePrefix)
		ids, err := headerset.LoadFile(path)
		if err != nil {
			return err
		}
		log.LogHeadersLoaded(ctx, path, len(ids))
		return r.print(func(w io.Writer) error {
			for _, id := range ids {
				if _, err := io.WriteString(w, id+"\n"); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return fmt.Errorf("%w: unknown mode %q", perrors.ErrConfig, o.Mode)
}

// print writes a terminal result to stdout. A broken pipe is success.
func (r *runner) print(write func(io.Writer) error) error {
	bw := bufio.NewWriter(r.stdout)
	err := write(bw)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil && !writers.IsBrokenPipe(err) {
		return fmt.Errorf("%w: stdout: %w", perrors.ErrSink, err)
	}
	return nil
}
