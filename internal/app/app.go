package app

import (
	"fmt"
	"os"

	"fmeta/internal/config"
	"fmeta/internal/digest"
	"fmeta/internal/fm"
	"fmeta/internal/fs"
	"fmeta/internal/identity"
	"fmeta/internal/journal"
)

// FMApp is the application layer between the CLI and the Inspector.
// It constructs all dependencies from config and owns the journal and log
// file lifecycle until Close.
type FMApp struct {
	cfg       *config.Config
	run       *Run
	journal   fm.Journal
	inspector *fm.Inspector
	logger    fm.Logger
	logFile   *os.File
}

// Options controls the parts of the app that come from the command line
// rather than the config file.
type Options struct {
	// Command names the CLI command being run, e.g. "show".
	Command string
	// Verbose lowers the stderr log level to debug.
	Verbose bool
}

// NewFMApp creates a fully wired FMApp from the given config.
// The caller must call Close when done.
func NewFMApp(cfg *config.Config, opts Options) (*FMApp, error) {
	run := NewRun(opts.Command)

	logger, logFile, err := newLogger(cfg.LogDir, run.ID, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	closeLog := func() {
		if logFile != nil {
			logFile.Close()
		}
	}

	engine, err := digest.NewDigesterFromConfig(cfg.Digest)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("creating digest engine: %w", err)
	}

	resolver, err := identity.NewResolverFromConfig(cfg.Identity)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("creating identity resolver: %w", err)
	}

	j, err := journal.NewJournalFromConfig(cfg.Journal)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	adapter := &slogAdapter{l: logger}
	inspector := fm.NewInspector(fs.NewOSFilesystemManager(), resolver, engine, j, adapter, fm.RealClock{}, fm.UUIDGenerator{})

	adapter.Debug("run started", "command", run.Command, "digest", engine.Algorithm(), "chunk_size", engine.ChunkSize(), "identity", cfg.Identity.Source, "journal", cfg.Journal.Type)

	return &FMApp{
		cfg:       cfg,
		run:       run,
		journal:   j,
		inspector: inspector,
		logger:    adapter,
		logFile:   logFile,
	}, nil
}

// Inspect collects the metadata of the file at rawPath.
func (a *FMApp) Inspect(rawPath string, includeDigest bool) (*fm.FileRecord, error) {
	rec, err := a.inspector.Inspect(rawPath, includeDigest)
	if err != nil {
		a.run.Fail()
		a.logger.Debug("inspection failed", "path", rawPath, "err", err)
		return nil, err
	}
	return rec, nil
}

// History returns the most recent journal entries, newest first.
func (a *FMApp) History(limit int) ([]*fm.JournalEntry, error) {
	entries, err := a.inspector.History(limit)
	if err != nil {
		a.run.Fail()
		return nil, err
	}
	return entries, nil
}

// Close closes the journal and the log file.
func (a *FMApp) Close() error {
	var firstErr error

	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			firstErr = fmt.Errorf("closing journal: %w", err)
		}
	}

	a.logger.Debug("run finished", "command", a.run.Command, "status", a.run.Status, "elapsed", a.run.Elapsed())

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
