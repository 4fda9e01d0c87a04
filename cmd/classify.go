package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/petsense/internal/classify"
	"github.com/zjrosen/petsense/internal/config"
	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/source"
	"github.com/zjrosen/petsense/internal/workflow"
)

var classifyTimeout time.Duration

var classifyCmd = &cobra.Command{
	Use:   "classify <photo>",
	Short: "Classify a single photo without the TUI",
	Long: `Send one photo to the recognition server and print the result.

The exit status is non-zero when the photo cannot be read or the server
does not return a recognition.

Examples:
  petsense classify ~/Pictures/rex.jpg
  petsense classify rex.jpg --endpoint http://localhost:8000/upload-photo/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, _, err := initLogging("petsense classify")
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if classifyTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, classifyTimeout)
			defer cancel()
		}
		return runClassify(ctx, cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	classifyCmd.Flags().DurationVar(&classifyTimeout, "timeout", 0,
		"give up after this long (0 waits for the server)")
	rootCmd.AddCommand(classifyCmd)
}

// runClassify resolves path like a library pick and submits it once.
func runClassify(ctx context.Context, out io.Writer, c config.Config, path string) error {
	if err := config.ValidateClassifier(c.Classifier); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	abs, err := filepath.Abs(config.ExpandHome(path))
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	c.Source.LibraryDir = dir

	svc, err := newServices(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	lib := source.NewLibrary(dir, source.FSPermissions{LibraryDir: dir})
	ref, err := lib.Resolve(ctx, abs)
	if err != nil {
		return fmt.Errorf("reading photo: %w", err)
	}

	result, err := svc.Classifier.Classify(ctx, ref)
	if err != nil {
		log.ErrorErr(log.CatClassify, "headless classification failed", err, "photo", ref)
		fmt.Fprintln(out, workflow.FailureText)
		return fmt.Errorf("%s: %w", classify.KindOf(err), err)
	}

	fmt.Fprintln(out, workflow.SuccessText(workflow.Success{Label: result.Label, Probability: result.Probability}))
	return nil
}
