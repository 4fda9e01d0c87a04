package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/petsense/internal/app"
	"github.com/zjrosen/petsense/internal/config"
	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/paths"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const envPrefix = "PETSENSE"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "petsense",
	Short: "Identify your pet's breed from a photo",
	Long: `PetSense AI sends a photo of a dog or cat to a recognition server and shows
the most likely breed together with its probability.

Photos come from the library directory or from a camera capture command.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/petsense/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log and enable the log overlay (ctrl+x)")
	rootCmd.PersistentFlags().String("endpoint", "",
		"recognition server URL (overrides classifier.endpoint)")
	rootCmd.PersistentFlags().String("library", "",
		"directory the photo library opens in (overrides source.library_dir)")

	_ = viper.BindPFlag("classifier.endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("source.library_dir", rootCmd.PersistentFlags().Lookup("library"))
}

func initConfig() {
	setDefaults(viper.GetViper(), config.Defaults())

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config lookup order:
	// 1. --config (a file, or a directory holding .petsense/config.yaml)
	// 2. .petsense/config.yaml (current directory)
	// 3. ~/.config/petsense/config.yaml (user config)
	path, found := paths.ResolveConfigFile(cfgFile)
	if !found && path != "" {
		// No config file found - create the default so settings can be saved.
		if err := config.WriteDefaultConfig(path); err == nil {
			found = true
		}
	}
	if found {
		viper.SetConfigFile(path)
		_ = viper.ReadInConfig()
	}

	_ = viper.Unmarshal(&cfg)
	cfg.Source.LibraryDir = config.ExpandHome(cfg.Source.LibraryDir)
	cfg.Source.Camera.WatchDir = config.ExpandHome(cfg.Source.Camera.WatchDir)
}

// setDefaults registers every key so environment overrides apply even when
// the config file omits it.
func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("classifier.endpoint", d.Classifier.Endpoint)
	v.SetDefault("classifier.field_name", d.Classifier.FieldName)
	v.SetDefault("classifier.cache_ttl", d.Classifier.CacheTTL)
	v.SetDefault("workflow.gate", d.Workflow.Gate)
	v.SetDefault("workflow.frame_interval", d.Workflow.FrameInterval)
	v.SetDefault("source.library_dir", d.Source.LibraryDir)
	v.SetDefault("source.camera.command", d.Source.Camera.Command)
	v.SetDefault("source.camera.watch_dir", d.Source.Camera.WatchDir)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("ui.show_tip", d.UI.ShowTip)
	v.SetDefault("ui.show_disclaimer", d.UI.ShowDisclaimer)
}

// configPath is the file settings are written back to.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	path, _ := paths.ResolveConfigFile(cfgFile)
	return path
}

// initLogging enables the file log when --debug or PETSENSE_DEBUG is set.
func initLogging(name string) (func(), bool, error) {
	if !debugFlag && !log.DebugFromEnv() {
		return func() {}, false, nil
	}
	logPath := os.Getenv("PETSENSE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return nil, false, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, name+" starting", "version", version, "config", viper.ConfigFileUsed())
	return cleanup, true, nil
}

func runApp(_ *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanup, debug, err := initLogging("petsense")
	if err != nil {
		return err
	}
	defer cleanup()

	svc, err := newServices(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	model := app.New(app.Options{
		Config:        cfg,
		ConfigPath:    configPath(),
		Classifier:    svc.Classifier,
		Library:       svc.Library,
		Camera:        svc.Camera,
		Tracer:        svc.tracer.Tracer(),
		Debug:         debug,
		MarkdownStyle: style,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if m, ok := final.(app.Model); ok {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// shutdownTimeout bounds flushing of buffered spans on exit.
const shutdownTimeout = 2 * time.Second

func shutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), shutdownTimeout)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
