package cli

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tddguard/cargo-reporter/internal/config"
	"github.com/tddguard/cargo-reporter/internal/logging"
	"github.com/tddguard/cargo-reporter/internal/pipeline"
	"github.com/tddguard/cargo-reporter/internal/runner"
	"github.com/tddguard/cargo-reporter/internal/storage"
)

// session is the resolved configuration of one command.
type session struct {
	root   string
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
	store  *storage.Store
}

// openSession validates the project root, loads the configuration, feeds it
// to viper as defaults and opens the log file.
func (a *app) openSession(cmd *cobra.Command) (*session, error) {
	root, err := a.projectRoot()
	if err != nil {
		return nil, err
	}

	cfgFile, _ := cmd.Flags().GetString(configFlag)
	cfg, cfgPath, warnings, err := config.LoadAndValidate(root, cfgFile)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		a.out.Warning("%s: %s", cfgPath, w)
	}

	a.v.SetDefault(runnerKey, cfg.Runner)
	a.v.SetDefault(autoPassthroughKey, cfg.AutoPassthroughEnabled())
	a.v.SetDefault(plainOutputKey, cfg.PlainOutputEnabled())
	a.v.SetDefault(dataDirKey, cfg.DataDir)
	a.v.SetDefault(logLevelKey, cfg.Log.Level)

	level, err := logging.ParseLevel(a.v.GetString(logLevelKey))
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose, _ := cmd.Flags().GetBool(verboseFlag); verbose {
		level = slog.LevelDebug
	}

	logFile := cfg.Log.Filename
	if !filepath.IsAbs(logFile) {
		logFile = filepath.Join(root, logFile)
	}
	logger, closer := logging.Setup(logging.Options{
		Filename:   logFile,
		Level:      level,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	logger.Debug("configuration loaded", "project_root", root, "config", cfgPath, "warnings", len(warnings))

	return &session{
		root:   root,
		cfg:    cfg,
		logger: logger,
		closer: closer,
		store:  storage.New(root, a.v.GetString(dataDirKey)),
	}, nil
}

func (s *session) Close() {
	_ = s.closer.Close()
}

// runReport is the root command: run or read the tests, then save the report.
func (a *app) runReport(cmd *cobra.Command, args []string) error {
	s, err := a.openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	explicit, _ := cmd.Flags().GetBool(passthroughFlag)
	noAuto, _ := cmd.Flags().GetBool(noAutoPassthroughFlag)
	autoEnabled := !noAuto && config.ParseSwitch(a.v.GetString(autoPassthroughKey))
	stdinIsTerminal := a.stdinIsTerminal()
	usePassthrough := runner.DecidePassthrough(explicit, autoEnabled, stdinIsTerminal)
	s.logger.Info("mode selected",
		"passthrough", usePassthrough,
		"explicit", explicit,
		"auto", autoEnabled,
		"stdin_terminal", stdinIsTerminal)

	opts := pipeline.Options{PlainOutput: a.v.GetBool(plainOutputKey)}

	if usePassthrough {
		lines, err := runner.ReadPassthrough(a.stdin, a.stdout)
		if err != nil {
			s.logger.Warn("reading stdin failed", "error", err, "lines", len(lines))
		}
		structured, text := runner.PartitionLines(lines)
		if err := a.processAndSave(s, structured, text, opts); err != nil {
			return err
		}
		a.exitCode = 0
		return nil
	}

	r := a.registry.Detect(cmd.Context(), a.v.GetString(runnerKey))
	command := r.Command(args)
	s.logger.Info("running tests", "runner", r.Name(), "command", command.String())

	res, err := runner.Run(cmd.Context(), command, runner.Options{
		Dir:    s.root,
		Stdout: a.stdout,
		Stderr: a.stderr,
	})
	if err != nil {
		if res == nil {
			return err
		}
		s.logger.Warn("capturing test output failed", "error", err)
	}
	s.logger.Debug("test run finished", "exit_code", res.ExitCode,
		"stdout_lines", len(res.Stdout), "stderr_lines", len(res.Stderr))

	if err := a.processAndSave(s, res.Stdout, res.Stderr, opts); err != nil {
		return err
	}
	a.exitCode = res.ExitCode
	return nil
}

func (a *app) processAndSave(s *session, stdout, stderr []string, opts pipeline.Options) error {
	r, stats := pipeline.Process(stdout, stderr, opts)
	counts := r.Counts()
	s.logger.Info("report built",
		"events", stats.Events,
		"compilation_errors", stats.CompilationErrors,
		"plain_fallback", stats.PlainFallback,
		"modules", len(r.TestModules),
		"passed", counts.Passed,
		"failed", counts.Failed,
		"skipped", counts.Skipped,
		"reason", r.Reason)

	if err := s.store.Save(r); err != nil {
		s.logger.Error("saving report failed", "path", s.store.Path(), "error", err)
		return err
	}
	s.logger.Info("report saved", "path", s.store.Path())
	return nil
}
