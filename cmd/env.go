package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/config"
	"github.com/abhisek/quizbox/internal/errorbank"
	"github.com/abhisek/quizbox/internal/logging"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/store"
	"github.com/abhisek/quizbox/internal/themes"
)

// environment is an opened screen.Env plus the resources backing it.
type environment struct {
	*screen.Env
	closers []io.Closer
}

// Close releases the history store and the log file.
func (e *environment) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	return errors.Join(errs...)
}

// openEnv loads the config, opens the log, loads the theme registry,
// and makes sure the error bank theme exists. When withHistory is set
// the history database is opened too; failing to open it is a warning
// and leaves Env.History nil.
func openEnv(cmd *cobra.Command, withHistory bool) (*environment, error) {
	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}

	log, logCloser, err := logging.Open(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	e := &environment{closers: []io.Closer{logCloser}}

	st, warnings, err := themes.Open(cfg.RegistryFile)
	warn(cmd, log, cfg.RegistryFile, warnings)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load themes: %w", err)
	}
	if err := st.EnsureErrorsTheme(cfg.ErrorsDir); err != nil {
		e.Close()
		return nil, fmt.Errorf("register error bank: %w", err)
	}

	e.Env = &screen.Env{
		Config: cfg,
		Themes: st,
		Bank:   errorbank.New(cfg.ErrorsDir, errorbank.WithCapacity(cfg.ErrorBankCapacity)),
		Log:    log,
		Rand:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	if withHistory {
		h, err := store.Open(cfg.HistoryDB)
		if err != nil {
			log.Warn("history unavailable", "path", cfg.HistoryDB, "err", err)
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: history unavailable:", err)
		} else {
			e.History = h.HistoryRepo()
			e.closers = append(e.closers, h)
		}
	}

	log.Info("start", "data_dir", dataDir, "command", cmd.CommandPath())
	return e, nil
}

// warn prints each warning to stderr and logs it.
func warn(cmd *cobra.Command, log *slog.Logger, source string, warnings []error) {
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	logging.Warnings(log, source, warnings)
}
