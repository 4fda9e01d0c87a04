package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/petsense/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), configPath())
		return err
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value, keeping comments",
	Long: `Set one dotted key in the config file. Comments and ordering are kept.

Examples:
  petsense config set classifier.endpoint http://10.0.0.5:8000/upload-photo/
  petsense config set workflow.gate 5s
  petsense config set source.camera.command "fswebcam --no-banner {output}"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(cmd.OutOrStdout(), configPath(), args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigSet writes key, then reloads the file and reports an error when
// it no longer loads or validates.
func runConfigSet(out io.Writer, path, key, value string) error {
	if err := config.SetValue(path, key, value); err != nil {
		return err
	}

	v := viper.New()
	setDefaults(v, config.Defaults())
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := config.Validate(c); err != nil {
		return fmt.Errorf("%s is now invalid: %w", path, err)
	}

	_, err := fmt.Fprintf(out, "%s = %s (%s)\n", key, value, path)
	return err
}
