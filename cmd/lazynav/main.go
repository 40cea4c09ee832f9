package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/lazynav/internal/app"
	"github.com/rebeliceyang/lazynav/internal/config"
	"github.com/rebeliceyang/lazynav/internal/export"
	"github.com/rebeliceyang/lazynav/internal/history"
	"github.com/rebeliceyang/lazynav/internal/logging"
	"github.com/rebeliceyang/lazynav/internal/models"
	"github.com/rebeliceyang/lazynav/internal/navtree"
	"github.com/rebeliceyang/lazynav/internal/watcher"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// globalOptions are the flags shared by every command
type globalOptions struct {
	configPath string
	dataPath   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "lazynav",
		Short: "Browse a navigation map as an accessible tree",
		Long: `lazynav mounts a declarative navigation map and lets you browse it
with the tree keyboard protocol, a live filter and the mouse.

Examples:
  lazynav                          # Browse the built-in map
  lazynav --data site.yaml         # Browse a map file, reloading on change
  lazynav render --filter fin      # Print the tree markup with a filter applied
  lazynav index --format csv       # Export the node index`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: user config dir, ., ./config)")
	cmd.PersistentFlags().StringVar(&opts.dataPath, "data", "", "navigation map file (YAML or JSON)")

	cmd.AddCommand(
		newRenderCmd(opts),
		newIndexCmd(opts),
		newHistoryCmd(opts),
	)
	return cmd
}

func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.dataPath != "" {
		cfg.Tree.DataPath = o.dataPath
	}
	return cfg, nil
}

// treeLoader reads the configured map, or the built-in one
func treeLoader(cfg *config.Config) app.Loader {
	path := cfg.Tree.DataPath
	return func() (*models.TreeData, error) {
		if path == "" {
			return models.DefaultTreeData()
		}
		return models.LoadTreeData(path)
	}
}

// mountTree loads, renders and mounts the configured map
func mountTree(cfg *config.Config) (*navtree.Controller, error) {
	data, err := treeLoader(cfg)()
	if err != nil {
		return nil, err
	}
	tree, err := navtree.Render(data)
	if err != nil {
		return nil, fmt.Errorf("render tree: %w", err)
	}
	return navtree.NewController(tree, navtree.WithMinFilterLength(cfg.Filter.MinLength)), nil
}

func runTUI(opts *globalOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()

	appOpts := []app.Option{app.WithLogger(logger.Logger)}

	if cfg.History.Enabled {
		store, err := openHistory(cfg)
		if err != nil {
			// The visit log is optional; browsing still works without it
			logger.Warn("visit log disabled", "err", err)
		} else {
			defer store.Close()
			if cfg.History.MaxEntries > 0 {
				if n, err := store.Prune(cfg.History.MaxEntries); err != nil {
					logger.Warn("failed to prune visit log", "err", err)
				} else if n > 0 {
					logger.Debug("pruned visit log", "removed", n)
				}
			}
			appOpts = append(appOpts, app.WithVisitRecorder(store))
		}
	}

	if cfg.Tree.Watch && cfg.Tree.DataPath != "" {
		w, err := watcher.New(cfg.Tree.DataPath, watcher.WithOnError(func(err error) {
			logger.Warn("data file watcher", "err", err)
		}))
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			logger.Warn("not watching data file", "path", cfg.Tree.DataPath, "err", err)
		} else {
			defer w.Close()
			appOpts = append(appOpts, app.WithWatcher(w))
		}
	}

	zone.NewGlobal()
	defer zone.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(app.New(cfg, treeLoader(cfg), appOpts...), programOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.NewStore(path)
}

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the tree markup",
		Long: `Print the mounted tree as HTML with tree roles and ARIA attributes.
With --filter the markup reflects the filtered state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			c, err := mountTree(cfg)
			if err != nil {
				return err
			}
			if filter != "" {
				c.Filter(filter)
			}
			return navtree.WriteMarkup(cmd.OutOrStdout(), c.Tree())
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "filter term to apply before rendering")
	return cmd
}

func newIndexCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Export the node index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			c, err := mountTree(cfg)
			if err != nil {
				return err
			}
			return export.WriteIndex(cmd.OutOrStdout(), c.Index(), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "output format (json, csv)")
	return cmd
}

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		limit  int
		search string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently visited destinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			store, err := openHistory(cfg)
			if err != nil {
				return fmt.Errorf("open visit log: %w", err)
			}
			defer store.Close()

			var visits []history.Visit
			if search != "" {
				visits, err = store.Search(search, limit)
			} else {
				visits, err = store.GetRecent(limit)
			}
			if err != nil {
				return fmt.Errorf("read visit log: %w", err)
			}
			return export.WriteVisits(cmd.OutOrStdout(), visits, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "output format (json, csv)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of visits")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only visits whose label or link contains this text")
	return cmd
}
