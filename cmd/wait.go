package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/CoreMedia/joala-sub001/internal/config"
	"github.com/CoreMedia/joala-sub001/internal/probe"
	"github.com/CoreMedia/joala-sub001/internal/report"
	"github.com/CoreMedia/joala-sub001/internal/runner"
	"github.com/CoreMedia/joala-sub001/pkg/condition"
	"github.com/CoreMedia/joala-sub001/pkg/logging"
	"github.com/CoreMedia/joala-sub001/pkg/timeout"
)

// newKubernetesClient connects to the cluster of the current kubeconfig context.
// Tests replace it with a fake client.
var newKubernetesClient = func() (client.Client, error) {
	restConfig, err := ctrl.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load Kubernetes configuration: %w", err)
	}
	return probe.NewKubernetesClient(restConfig)
}

type waitOptions struct {
	configPath string
	httpURLs   []string
	httpStatus int
	tcpAddrs   []string
	files      []string
	contains   string
	timeout    time.Duration
	factor     float64
	interval   time.Duration
	parallel   int
	failFast   bool
	assume     bool
	message    string
	output     string
	quiet      bool
	noColor    bool
	debug      bool
	logLevel   string
}

// newWaitCmd creates the command waiting for the targets of a plan or of flags.
func newWaitCmd() *cobra.Command {
	return newWaitCmdWithOptions(&waitOptions{})
}

// newWaitCmdWithOptions binds the flags of the wait command to opts.
func newWaitCmdWithOptions(opts *waitOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait until targets become ready",
		Long: `Wait until every target is ready or its timeout expires.

Targets come from a wait plan (--config) and from the --http, --tcp and
--file flags. Timing flags override the values of the plan.

Exit codes:
  0  all targets are ready
  1  error, e.g. an invalid plan or a target that cannot be checked
  2  at least one target did not become ready in time
  3  only assumed targets (assume: true or --assume) did not become ready`,
		Example: `  joala wait --http http://localhost:8080/healthz --tcp localhost:5432 --timeout 1m
  joala wait --config plan.yaml --parallel 4 --output json
  joala wait --file /tmp/ready --contains done --assume`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWait(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Path to a wait plan YAML file")
	f.StringArrayVar(&opts.httpURLs, "http", nil, "URL to wait for (repeatable)")
	f.IntVar(&opts.httpStatus, "http-status", config.DefaultHTTPStatus, "Expected HTTP status of --http targets")
	f.StringArrayVar(&opts.tcpAddrs, "tcp", nil, "host:port to wait for (repeatable)")
	f.StringArrayVar(&opts.files, "file", nil, "File to wait for (repeatable)")
	f.StringVar(&opts.contains, "contains", "", "Text that --file targets must contain")
	f.DurationVarP(&opts.timeout, "timeout", "t", config.DefaultTimeout, "Timeout of every target")
	f.Float64Var(&opts.factor, "factor", 1, "Factor applied to all timeouts")
	f.DurationVar(&opts.interval, "interval", config.DefaultPollInterval, "Pause between attempts")
	f.IntVarP(&opts.parallel, "parallel", "p", config.DefaultParallel, "Number of targets waited for concurrently")
	f.BoolVar(&opts.failFast, "fail-fast", false, "Stop after the first target that is not ready")
	f.BoolVar(&opts.assume, "assume", false, "Treat flag targets as assumptions (exit code 3 instead of 2)")
	f.StringVar(&opts.message, "message", "", "Message added to failures of flag targets")
	f.StringVarP(&opts.output, "output", "o", string(report.FormatTable), "Output format (table|json|yaml)")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "Print nothing for table output; rely on the exit code")
	f.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging (same as --log-level debug)")
	f.StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr (debug|info|warn|error)")

	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runWait(cmd *cobra.Command, opts *waitOptions) error {
	logLevel, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	if opts.debug {
		logLevel = logging.LevelDebug
	}
	logging.InitForCLI(logLevel, cmd.ErrOrStderr())

	format, err := report.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	plan, err := buildPlan(cmd, opts)
	if err != nil {
		return err
	}

	t, err := timeout.FromDuration(plan.Timeout.Duration())
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	factory := condition.NewFactory(timeout.NewProviderWith(t), condition.WithPollInterval(plan.PollInterval))

	builder := probe.NewBuilder(factory)
	if probe.RequiresKubernetes(plan) {
		k8sClient, err := newKubernetesClient()
		if err != nil {
			return err
		}
		builder.Kubernetes = k8sClient
	}

	checks, err := builder.BuildAll(plan)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	showProgress := !opts.quiet && format == report.FormatTable
	done := 0
	var s *spinner.Spinner
	if showProgress {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
		s.Suffix = fmt.Sprintf(" Waiting for %d target(s)...", len(checks))
		s.Start()
	}

	suite, runErr := runner.New(runner.Options{
		Parallel: plan.Parallel,
		FailFast: plan.FailFast,
		OnResult: func(r runner.TargetResult) {
			done++
			if s != nil {
				s.Lock()
				s.Suffix = fmt.Sprintf(" %d/%d target(s) done, last: %s %s", done, len(checks), r.Name, r.Result)
				s.Unlock()
			}
		},
	}, nil).Run(ctx, checks)

	if s != nil {
		s.Stop()
	}

	if !opts.quiet || format != report.FormatTable {
		if err := report.Write(cmd.OutOrStdout(), suite, report.Options{
			Format: format,
			Color:  !opts.noColor && os.Getenv("NO_COLOR") == "" && isTerminal(cmd.OutOrStdout()),
		}); err != nil {
			return err
		}
	}

	if runErr != nil {
		return fmt.Errorf("wait interrupted: %w", runErr)
	}
	return suite.Err()
}

// buildPlan loads the plan file, if any, and adds targets and overrides from flags.
func buildPlan(cmd *cobra.Command, opts *waitOptions) (config.Plan, error) {
	var plan config.Plan
	if opts.configPath != "" {
		loaded, err := config.LoadPlan(opts.configPath)
		if err != nil {
			return config.Plan{}, err
		}
		plan = loaded
	}

	for _, url := range opts.httpURLs {
		plan.Targets = append(plan.Targets, flagTarget(opts, url, config.Target{
			HTTP: &config.HTTPCheck{URL: url, Status: opts.httpStatus},
		}))
	}
	for _, addr := range opts.tcpAddrs {
		plan.Targets = append(plan.Targets, flagTarget(opts, addr, config.Target{
			TCP: &config.TCPCheck{Address: addr},
		}))
	}
	for _, path := range opts.files {
		plan.Targets = append(plan.Targets, flagTarget(opts, path, config.Target{
			File: &config.FileCheck{Path: path, Contains: opts.contains},
		}))
	}

	flags := cmd.Flags()
	if flags.Changed("timeout") || opts.configPath == "" {
		plan.Timeout = config.Duration(opts.timeout)
	}
	if flags.Changed("factor") {
		plan.TimeoutFactor = &opts.factor
	}
	if flags.Changed("interval") || opts.configPath == "" {
		plan.PollInterval = opts.interval
	}
	if flags.Changed("parallel") || opts.configPath == "" {
		plan.Parallel = opts.parallel
	}
	if flags.Changed("fail-fast") {
		plan.FailFast = opts.failFast
	}

	config.ApplyDefaults(&plan)
	if errs := config.Validate(plan); errs.HasErrors() {
		return config.Plan{}, errs
	}
	return plan, nil
}

func flagTarget(opts *waitOptions, name string, t config.Target) config.Target {
	t.Name = name
	t.Assume = opts.assume
	t.Message = opts.message
	return t
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
