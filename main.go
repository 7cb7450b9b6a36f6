package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/particle-field/internal/app"
	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/game"
	"github.com/iburimskiy/particle-field/internal/terminal"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

// flags override the environment when set on the command line.
type flags struct {
	statePath    string
	ephemeral    bool
	hud          bool
	maxParticles int
}

func (f *flags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.statePath, "state", "", "Preferences database (default $PARTICLES_STATE_PATH)")
	cmd.PersistentFlags().BoolVar(&f.ephemeral, "ephemeral", false, "Keep preferences in memory only")
	cmd.PersistentFlags().BoolVar(&f.hud, "hud", false, "Show the stats panel on start")
	cmd.PersistentFlags().IntVar(&f.maxParticles, "cap", 0, "Maximum particle count (default $PARTICLES_CAP)")
}

func (f *flags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if f.statePath != "" {
		cfg.StatePath = f.statePath
	}
	if cmd.Flags().Changed("ephemeral") {
		cfg.Ephemeral = f.ephemeral
	}
	if cmd.Flags().Changed("hud") {
		cfg.HUD = f.hud
	}
	if f.maxParticles > 0 {
		cfg.Cap = f.maxParticles
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	rootCmd := &cobra.Command{
		Use:   "particles",
		Short: "Animated particle field that reacts to the pointer",
		Long: `Particles draws a depth-simulated particle field joined by proximity
lines and pushed around by the pointer.

  particles           open a resizable window
  particles term      render in the terminal
  particles motion    show or flip the persisted motion preference`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			return runWindow(cmd.Context(), cfg)
		},
	}
	f.register(rootCmd)

	rootCmd.AddCommand(
		termCmd(&f),
		motionCmd(&f),
		versionCmd(),
	)
	return rootCmd
}

func runWindow(ctx context.Context, cfg config.Config) error {
	logger := app.NewLogger(cfg, os.Stderr)
	a, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	a.ServeMetrics(ctx)

	g := game.New(ctx, game.Options{
		Driver: a.Driver,
		Gate:   a.Gate,
		Reveal: a.Reveal,
		Logger: logger.With("component", "window"),
		HUD:    cfg.HUD,
	})
	return game.Run(g, cfg.WindowWidth, cfg.WindowHeight)
}

func termCmd(f *flags) *cobra.Command {
	var fps int
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Render the particle field in the terminal",
		Long: `Render the particle field with terminal cells. Mouse motion moves the
pointer, m flips the motion preference, q or Esc quits.

Logs go to $PARTICLES_LOG_FILE when set and are discarded otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if fps > 0 {
				cfg.FPS = fps
			}
			return runTerminal(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 0, "Frames per second (default $PARTICLES_FPS)")
	return cmd
}

func runTerminal(ctx context.Context, cfg config.Config) error {
	logOut, err := app.OpenLogFile(cfg)
	if err != nil {
		return err
	}
	defer logOut.Close()
	logger := app.NewLogger(cfg, logOut)

	a, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	a.ServeMetrics(ctx)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return terminal.Run(ctx, screen, terminal.Options{
		Driver:     a.Driver,
		Gate:       a.Gate,
		Logger:     logger.With("component", "terminal"),
		FPS:        cfg.FPS,
		CellWidth:  cfg.CellWidth,
		CellHeight: cfg.CellHeight,
	})
}

func motionCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "motion [status|toggle]",
		Short: "Show or flip the persisted motion preference",
		Long: `Show or flip the motion preference read at startup.

A running particle loop is not stopped by a toggle; the change applies the
next time the field starts.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"status", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			action := "status"
			if len(args) == 1 {
				action = args[0]
			}
			return runMotion(cmd, cfg, action)
		},
	}
	return cmd
}

func runMotion(cmd *cobra.Command, cfg config.Config, action string) error {
	a, err := app.Build(cfg, app.NewLogger(cfg, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	enabled := a.Gate.IsEnabled(ctx)
	switch action {
	case "status":
	case "toggle":
		if enabled, err = a.Gate.Toggle(ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown action %q (want status or toggle)", action)
	}

	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "motion %s\n", state)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "particles %s (%s)\n", version, commit)
		},
	}
}
