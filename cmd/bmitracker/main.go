package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bmitracker/internal/adapter/filestore"
	"bmitracker/internal/adapter/memory"
	"bmitracker/internal/adapter/postgres"
	"bmitracker/internal/app"
	"bmitracker/internal/config"
	"bmitracker/internal/domain"
	"bmitracker/internal/logging"
)

// StoreFactory opens the storage backend selected by cfg. The returned func
// releases it.
type StoreFactory func(cfg *config.Config, log *slog.Logger) (domain.Store, func() error, error)

// DefaultStoreFactory opens the file, memory or postgres backend.
func DefaultStoreFactory(cfg *config.Config, log *slog.Logger) (domain.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage {
	case config.StorageMemory:
		return memory.New(), noop, nil
	case config.StoragePostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		return db, db.Close, nil
	default:
		return filestore.New(cfg.DataDir, log), noop, nil
	}
}

// Options carries injectable dependencies for tests.
type Options struct {
	StoreFactory StoreFactory
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
}

type runner struct {
	open   StoreFactory
	in     *bufio.Scanner
	out    io.Writer
	errOut io.Writer

	units  string
	asJSON bool
	yes    bool

	// svc is set inside the shell so every line shares one backend.
	svc *app.TrackerService
	log *slog.Logger
}

func newRunner(opts Options) *runner {
	r := &runner{
		open:   opts.StoreFactory,
		out:    opts.Stdout,
		errOut: opts.Stderr,
	}
	if r.open == nil {
		r.open = DefaultStoreFactory
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	r.in = bufio.NewScanner(stdin)
	r.log = slog.New(slog.DiscardHandler)
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.errOut == nil {
		r.errOut = os.Stderr
	}
	return r
}

// NewRootCmd builds the bmitracker command tree.
func NewRootCmd(opts Options) *cobra.Command {
	return newRunner(opts).rootCmd(true)
}

func (r *runner) rootCmd(withShell bool) *cobra.Command {
	root := &cobra.Command{
		Use:           "bmitracker",
		Short:         "bmitracker - track BMI measurements per user",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(r.out)
	root.SetErr(r.errOut)
	root.PersistentFlags().StringVar(&r.units, "units", string(domain.Metric), "input units: metric (kg, cm) or imperial (lb, in)")
	root.PersistentFlags().BoolVar(&r.asJSON, "json", false, "print results as JSON")

	submitCmd := &cobra.Command{
		Use:   "submit NAME AGE GENDER WEIGHT HEIGHT",
		Short: "Calculate BMI and store the measurement",
		Args:  cobra.ExactArgs(5),
		RunE:  r.runSubmit,
	}
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE:  r.runUsers,
	}
	profileCmd := &cobra.Command{
		Use:   "profile NAME",
		Short: "Show a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runProfile,
	}
	historyCmd := &cobra.Command{
		Use:   "history NAME",
		Short: "Show all measurements of a user",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runHistory,
	}
	statsCmd := &cobra.Command{
		Use:   "stats NAME",
		Short: "Show BMI statistics of a user",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runStats,
	}
	deleteRecordsCmd := &cobra.Command{
		Use:   "delete-records NAME",
		Short: "Delete all measurements of a user, keeping the profile",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runDeleteRecords,
	}
	deleteUserCmd := &cobra.Command{
		Use:   "delete-user NAME",
		Short: "Delete a user and all of their measurements",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runDeleteUser,
	}
	exportCmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Export a plain-text report for a user",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runExport,
	}
	for _, c := range []*cobra.Command{deleteRecordsCmd, deleteUserCmd} {
		c.Flags().BoolVarP(&r.yes, "yes", "y", false, "do not ask for confirmation")
	}
	root.AddCommand(submitCmd, usersCmd, profileCmd, historyCmd, statsCmd, deleteRecordsCmd, deleteUserCmd, exportCmd)

	if withShell {
		var persistent bool
		shellCmd := &cobra.Command{
			Use:   "shell",
			Short: "Interactive session; records are kept in memory unless --persistent",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.runShell(cmd.Context(), persistent)
			},
		}
		shellCmd.Flags().BoolVar(&persistent, "persistent", false, "use the configured storage backend")
		root.AddCommand(shellCmd)
	}
	return root
}

func main() {
	if err := NewRootCmd(Options{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// withService runs fn against a TrackerService on the configured backend, or
// the shell's shared one.
func (r *runner) withService(ctx context.Context, fn func(ctx context.Context, svc *app.TrackerService) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.svc != nil {
		return fn(ctx, r.svc)
	}
	svc, closeFn, err := r.openService(false)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()
	return fn(ctx, svc)
}

// openService loads config and opens the store. ephemeral forces the memory
// backend for profiles and records; exported reports still go to files in the
// data directory so they outlive the session.
func (r *runner) openService(ephemeral bool) (*app.TrackerService, func() error, error) {
	var opts []config.Option
	if ephemeral {
		opts = append(opts, config.WithStorage(config.StorageMemory))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logging.New(r.errOut, cfg.LogLevel, cfg.LogFormat)
	store, closeFn, err := r.open(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	var reports domain.ReportSink = store
	if ephemeral {
		reports = filestore.New(cfg.DataDir, log)
	}
	r.log = log
	log.Debug("storage opened", "backend", cfg.Storage)
	return app.NewTrackerService(store, store, reports, log), closeFn, nil
}

// confirm asks a yes/no question on the runner's input. --yes skips it.
func (r *runner) confirm(question string) bool {
	if r.yes {
		return true
	}
	fmt.Fprintf(r.out, "%s [y/N] ", question)
	if !r.in.Scan() {
		fmt.Fprintln(r.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(r.in.Text())) {
	case "y", "yes":
		return true
	}
	return false
}
