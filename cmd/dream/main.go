package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dreamvoid/internal/config"
	_ "dreamvoid/internal/flights/cruise"
	_ "dreamvoid/internal/flights/drift"
	_ "dreamvoid/internal/flights/warp"
	"dreamvoid/internal/logging"
	"dreamvoid/internal/oracle"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
	sets       []string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dream",
	Short: "dreamvoid - an endless procedural flythrough",
	Long: `dreamvoid flies a camera along an infinite depth axis. Entities are
generated ahead of the camera and dropped behind it, so the dream never ends
and never fills memory.

Whispered phrases are echoed back by a generative oracle (Gemini) and drift
past later as text in the void.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var flyCmd = &cobra.Command{
	Use:   "fly",
	Short: "Fly through the dream in the terminal",
	Long: `Starts the terminal host. Controls:
  +/-      throttle
  space    pause
  enter    whisper to the dream
  q, esc   quit

Logs go to the configured log file (default: dreamvoid.log in the temp dir).`,
	RunE: runFly,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run a flight headless and print window summaries",
	RunE:  runPreview,
}

var whisperCmd = &cobra.Command{
	Use:   "whisper [text]",
	Short: "Ask the oracle for an echo, a mood and optionally a vision",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWhisper,
}

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List world and flight tunables",
	RunE:  runParams,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "dreamvoid.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringArrayVar(&sets, "set", nil, "Override a config value (section.key=value), repeatable")

	flyCmd.Flags().String("flight", "", "Flight profile (cruise, warp, drift)")
	flyCmd.Flags().Int64("seed", 0, "Spacing seed")
	flyCmd.Flags().Bool("sound", false, "Chime when passing through a portal")

	previewCmd.Flags().String("flight", "", "Flight profile (cruise, warp, drift)")
	previewCmd.Flags().Int64("seed", 0, "Spacing seed")
	previewCmd.Flags().Int("ticks", 600, "Ticks to simulate")
	previewCmd.Flags().Int("every", 60, "Print a summary every N ticks")
	previewCmd.Flags().Int("width", 72, "Frame width in cells")
	previewCmd.Flags().Int("height", 20, "Frame height in cells")

	whisperCmd.Flags().String("vision", "", "Write the manifested vision to this file")

	rootCmd.AddCommand(flyCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(whisperCmd)
	rootCmd.AddCommand(paramsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config, applies --set overrides and builds the logger.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	overrides, err := parseSets(sets)
	if err != nil {
		return err
	}
	if err := loaded.Apply(overrides); err != nil {
		return err
	}
	if err := applyFlightFlags(cmd, loaded); err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	opts := logging.Options{Level: cfg.Logging.Level, JSON: cfg.Logging.JSON}
	if verbose {
		opts.Level = "debug"
	}
	logFile := cfg.Logging.File
	if cmd.Name() == "fly" && logFile == "" {
		logFile = filepath.Join(os.TempDir(), "dreamvoid.log")
	}
	if logFile != "" {
		opts.OutputPaths = []string{logFile}
	}
	logger, err = logging.New(opts)
	return err
}

// parseSets turns repeated key=value flags into a map.
func parseSets(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--set %q: expected section.key=value", kv)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// applyFlightFlags lets --flight, --seed and --sound win over the file.
func applyFlightFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if f := flags.Lookup("flight"); f != nil && f.Changed {
		c.Flight.Name = f.Value.String()
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		seed, err := flags.GetInt64("seed")
		if err != nil {
			return err
		}
		c.Flight.Seed = seed
	}
	if flags.Lookup("sound") != nil && flags.Changed("sound") {
		sound, err := flags.GetBool("sound")
		if err != nil {
			return err
		}
		c.Display.Sound = sound
	}
	return nil
}

func oracleOptions() oracle.Options {
	return oracle.Options{
		TextModel:  cfg.Oracle.TextModel,
		ImageModel: cfg.Oracle.ImageModel,
		Timeout:    cfg.OracleTimeout(),
		Logger:     logger,
	}
}
