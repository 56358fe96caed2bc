package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ferdiebergado/snaptools/internal/app"
	"github.com/ferdiebergado/snaptools/internal/pkg/logging"
	"github.com/ferdiebergado/snaptools/internal/tool"
	"github.com/ferdiebergado/snaptools/internal/transform"
)

// errReported means the failure was already shown through the notifier.
var errReported = errors.New("reported")

type globalFlags struct {
	noColor bool
	verbose bool
}

func rootFlagSet(gf *globalFlags) *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.BoolVar(&gf.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&gf.verbose, "verbose", "v", false, "enable debug logging")
	return flags
}

// NewRootCommand builds the command tree around st.
func NewRootCommand(st *State) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "snaptools",
		Short:         "Hash, encrypt and convert text from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetIn(st.Stdin)
	rootCmd.SetOut(st.Stdout)
	rootCmd.SetErr(st.Stderr)

	subCommands := []func(*State) *cobra.Command{
		getCmdList, getCmdRun, getCmdVerify, getCmdCosts, getCmdKeygen,
	}
	for _, sc := range subCommands {
		rootCmd.AddCommand(sc(st))
	}

	return rootCmd
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	var gf globalFlags
	flags := rootFlagSet(&gf)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.Usage = func() {}
	_ = flags.Parse(args)

	level := "warn"
	if gf.verbose {
		level = "debug"
	}
	logging.SetupLogger("development", level, os.Stderr)

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	provider, err := app.NewProvider(cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	transformCfg := cfg.Transform
	svc := tool.NewService(provider.Catalog, provider.Invoker, transformCfg.Timeout.Duration, transformCfg.KeygenTimeout.Duration)

	st := NewState(ctx, svc, transformCfg.ClipboardWait.Duration, gf.noColor)
	rootCmd := NewRootCommand(st)
	rootCmd.PersistentFlags().AddFlagSet(rootFlagSet(&gf))
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		report(st.Notifier, err)
		return 1
	}
	return 0
}

func report(n tool.Notifier, err error) {
	var terr *transform.Error
	switch {
	case errors.Is(err, errReported):
	case errors.As(err, &terr):
		tool.NotifyResult(n, transform.NewResult("", err), "")
	default:
		n.Notify(tool.LevelError, "Error", err.Error())
	}
}

// parseRef splits "category/tool".
func parseRef(ref string) (category, id string, err error) {
	category, id, ok := strings.Cut(ref, "/")
	if !ok || category == "" || id == "" {
		return "", "", fmt.Errorf("invalid tool %q, want <category>/<tool>", ref)
	}
	return category, id, nil
}

func trimNewline(s string) string {
	return strings.TrimRight(s, "\r\n")
}
