package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/patience/internal/config"
	"github.com/arcanaland/patience/internal/deck"
	"github.com/arcanaland/patience/internal/game"
	"github.com/arcanaland/patience/internal/logging"
)

var (
	configPath string
	seedFlag   uint64
	layoutFlag string
	noColor    bool

	// cfg is the effective configuration: file, then environment, then flags
	cfg = config.Default()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "patience",
	Short: "Play the foundation card game in your terminal",
	Long: `Patience is a terminal version of the drag-and-drop foundation game.
Cards can be arranged freely on the tableau; each suit's foundation only
accepts its cards in order from Ace to King. Fill all four to win.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/patience/config.toml)")
	RootCmd.PersistentFlags().Uint64Var(&seedFlag, "seed", 0, "shuffle seed; 0 picks a random one")
	RootCmd.PersistentFlags().StringVar(&layoutFlag, "layout", "", "initial deal shape, e.g. 1,2,3,4,5,6,7")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// loadSettings resolves the configuration and sets up logging and colour
func loadSettings(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.GetConfigFilePath()
	}

	loaded, err := config.LoadFrom(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		loaded.Seed = seedFlag
	}
	if flags.Changed("layout") {
		layout, err := deck.ParseLayout(layoutFlag)
		if err != nil {
			return fmt.Errorf("invalid --layout: %v", err)
		}
		loaded.Layout = layout
	}
	if noColor {
		loaded.Color = config.ColorNever
	}

	logging.Init(loaded.Log)
	applyColor(loaded.Color)

	cfg = loaded
	return nil
}

// applyColor sets the global colour switch for fatih/color
func applyColor(mode string) {
	switch mode {
	case config.ColorAlways:
		colorize.NoColor = false
	case config.ColorNever:
		colorize.NoColor = true
	default:
		colorize.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// newSession starts a session from the effective configuration
func newSession() (*game.Session, error) {
	return game.NewSession(game.Options{
		Layout:   cfg.DeckLayout(),
		Seed:     cfg.Seed,
		AutoSome: cfg.AutoSome,
	})
}
