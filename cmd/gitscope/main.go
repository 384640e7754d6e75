package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gitscope/internal/config"
	"gitscope/internal/logging"
	"gitscope/internal/tui"
	"gitscope/pkg/gitdir"
)

func main() {
	root := newRootCmd()
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	var logPath string

	cmd := &cobra.Command{
		Use:   "gitscope [path]",
		Short: "Interactive explorer for a repository's .git internals",
		Long: `gitscope opens a read-only terminal browser over a repository's .git
directory: the file layout, decoded loose objects, and pack files with
their delta chains resolved.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return run(path, cfgPath, logPath)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a TOML config file")
	cmd.Flags().StringVar(&logPath, "log", "", "write a debug log to this file (overrides config)")
	return cmd
}

func run(path, cfgPath, logPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if logPath != "" {
		cfg.LogFile = logPath
	}

	log, err := logging.NewLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Sync()

	// An unreadable or absent .git directory is fatal before the terminal
	// is touched; everything after this point degrades in-app instead.
	gitDir, err := gitdir.FindGitDir(path)
	if err != nil {
		return err
	}

	m, err := tui.New(tui.Services{
		Repo:   gitdir.NewService(log),
		Cfg:    cfg,
		Log:    log,
		GitDir: gitDir,
	})
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("gitscope 0.1.0-dev")
		},
	}
}
