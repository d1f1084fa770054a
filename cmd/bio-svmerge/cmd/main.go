package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	golog "log"
	"os"

	"github.com/grailbio/svdistil/svmerge"
	"github.com/grailbio/svdistil/variant"
	"v.io/x/lib/cmdline"
)

const programName = "bio-svmerge"

// Exit statuses.  Command-line errors exit with status 2 through
// cmdline.ErrUsage.
const (
	exitIOError      = 1
	exitContentError = 3
)

// commonFlags are shared by all subcommands.
type commonFlags struct {
	out, config, regions, logFile string
	parallelism                   int
	sort, strict, callers         bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	f := &commonFlags{}
	fs.StringVar(&f.out, "out", "", "Output path; stdout if empty. A .gz suffix selects BGZF compression")
	fs.StringVar(&f.config, "config", "", "YAML file with option values. Flags given on the command line override it")
	fs.StringVar(&f.regions, "regions", "", "BED file; calls outside these regions are ignored")
	fs.StringVar(&f.logFile, "log-file", "", "Write progress messages to this file instead of stderr")
	fs.IntVar(&f.parallelism, "parallelism", svmerge.DefaultOpts.Parallelism, "Number of workers searching for overlapping calls; 0 = runtime.NumCPU()")
	fs.BoolVar(&f.sort, "sort", svmerge.DefaultOpts.Sort, "Sort output rows by position")
	fs.BoolVar(&f.strict, "strict", svmerge.DefaultOpts.StrictRepresentative, "Fail when the members of a cluster disagree on chromosome, orientation or state")
	fs.BoolVar(&f.callers, "callers", svmerge.DefaultOpts.TrackCallers, "Report per-caller evidence columns")
	return f
}

// opts builds the merge options: defaults, then the -config file, then the
// flags set on the command line.  apply handles subcommand-specific flags.
func (f *commonFlags) opts(env *cmdline.Env, fs *flag.FlagSet, apply func(name string, o *svmerge.Opts)) (svmerge.Opts, error) {
	opts := svmerge.DefaultOpts
	if f.config != "" {
		var err error
		if opts, err = svmerge.LoadOpts(context.Background(), f.config, opts); err != nil {
			var cerr *svmerge.ConfigError
			if errors.As(err, &cerr) {
				return opts, env.UsageErrorf("-config: %v", err)
			}
			return opts, err
		}
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "parallelism":
			opts.Parallelism = f.parallelism
		case "sort":
			opts.Sort = f.sort
		case "strict":
			opts.StrictRepresentative = f.strict
		case "callers":
			opts.TrackCallers = f.callers
		default:
			if apply != nil {
				apply(fl.Name, &opts)
			}
		}
	})
	if err := opts.Validate(); err != nil {
		return opts, env.UsageErrorf("%v", err)
	}
	return opts, nil
}

// setupLog redirects log output to -log-file, if set.  The returned function
// closes the file.
func (f *commonFlags) setupLog() (func(), error) {
	if f.logFile == "" {
		return func() {}, nil
	}
	out, err := os.Create(f.logFile)
	if err != nil {
		return nil, err
	}
	golog.SetOutput(out)
	golog.Printf("command line: %v", os.Args)
	return func() {
		golog.SetOutput(os.Stderr)
		_ = out.Close()
	}, nil
}

// fail reports err in the program's error format and converts it into the
// matching exit status.
func fail(env *cmdline.Env, err error) error {
	if err == nil || err == cmdline.ErrUsage {
		return err
	}
	fmt.Fprintf(env.Stderr, "%s ERROR: %v, exiting\n", programName, err)
	if variant.IsContentError(err) {
		return cmdline.ErrExitCode(exitContentError)
	}
	return cmdline.ErrExitCode(exitIOError)
}

// runner wraps fn with log setup and error reporting.  fn receives the
// positional arguments, which must not be empty.
func runner(name string, f *commonFlags, fn func(env *cmdline.Env, argv []string) error) cmdline.Runner {
	return cmdline.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return env.UsageErrorf("%s takes at least one input path", name)
		}
		closeLog, err := f.setupLog()
		if err != nil {
			return fail(env, err)
		}
		defer closeLog()
		err = fn(env, argv)
		if isUsage(err) {
			return err
		}
		return fail(env, err)
	})
}

func newCmdDistil() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "distil",
		Short:    "Convert SV calls in VCF files into per-sample breakend rows",
		ArgsName: "vcf...",
	}
	f := addCommonFlags(&cmd.Flags)
	qual := cmd.Flags.Float64("qual", 0, "Minimum QUAL; records below it are dropped. Unset means no minimum")
	isPass := cmd.Flags.Bool("ispass", svmerge.DefaultOpts.PassOnly, "Keep only records whose FILTER is PASS")
	cmd.Runner = runner("distil", f, func(env *cmdline.Env, argv []string) error {
		opts, err := f.opts(env, &cmd.Flags, func(name string, o *svmerge.Opts) {
			switch name {
			case "qual":
				q := *qual
				o.MinQual = &q
			case "ispass":
				o.PassOnly = *isPass
			}
		})
		if err != nil {
			return err
		}
		return runDistil(context.Background(), opts, f, argv)
	})
	return cmd
}

func newCmdSV() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "sv",
		Short:    "Merge distilled breakend rows into a catalog of events",
		ArgsName: "tsv...",
		Long: `
Input files hold distilled breakend rows, as written by "distil". The caller
is taken from the file name, <sample>.<caller>.tsv; it is only reported with
-callers.`,
	}
	f := addCommonFlags(&cmd.Flags)
	window := cmd.Flags.Int("window", svmerge.DefaultOpts.Window, "Breakend clustering window in bases")
	cmd.Runner = runner("sv", f, func(env *cmdline.Env, argv []string) error {
		opts, err := f.opts(env, &cmd.Flags, func(name string, o *svmerge.Opts) {
			if name == "window" {
				o.Window = *window
			}
		})
		if err != nil {
			return err
		}
		return runSV(context.Background(), opts, f, argv)
	})
	return cmd
}

func newCmdCNV() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "cnv",
		Short:    "Merge per-sample CNV calls into a catalog of events",
		ArgsName: "tsv...",
		Long: `
Input files hold the columns chr, start, end, state and median. The sample
and caller are taken from the file name, <sample>[.<caller>].tsv.`,
	}
	f := addCommonFlags(&cmd.Flags)
	overlap := cmd.Flags.Float64("overlap", svmerge.DefaultOpts.Overlap, "Minimum fraction of each CNV's length two CNVs must share to be merged")
	span := cmd.Flags.String("cnv-span", string(svmerge.DefaultOpts.CNVSpan), `Interval reported for merged CNVs: "median" or "union"`)
	cmd.Runner = runner("cnv", f, func(env *cmdline.Env, argv []string) error {
		opts, err := f.opts(env, &cmd.Flags, func(name string, o *svmerge.Opts) {
			switch name {
			case "overlap":
				o.Overlap = *overlap
			case "cnv-span":
				o.CNVSpan = svmerge.CNVSpan(*span)
			}
		})
		if err != nil {
			return err
		}
		return runCNV(context.Background(), opts, f, argv)
	})
	return cmd
}

func newCmdRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:     programName,
		Short:    "Merge structural-variant and copy-number calls across samples and callers",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdDistil(),
			newCmdSV(),
			newCmdCNV(),
		},
	}
}

// Run is the entry point of bio-svmerge.
func Run() {
	golog.SetFlags(golog.Ldate | golog.Ltime | golog.Lmicroseconds)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}

func isUsage(err error) bool {
	return err == cmdline.ErrUsage
}
