package cmd

import (
	"fmt"

	"github.com/zjrosen/petsense/internal/classify"
	"github.com/zjrosen/petsense/internal/config"
	"github.com/zjrosen/petsense/internal/log"
	"github.com/zjrosen/petsense/internal/source"
	"github.com/zjrosen/petsense/internal/tracing"
)

// services are the collaborators shared by the TUI and the headless commands.
type services struct {
	Classifier classify.Classifier
	Library    source.Library
	// Camera is nil when neither a capture command nor a watch dir is set.
	Camera source.Provider

	tracer *tracing.Provider
}

func newServices(c config.Config) (*services, error) {
	provider, err := tracing.NewProvider(c.Tracing.Provider())
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}

	client, err := classify.NewClient(c.Classifier.Endpoint,
		classify.WithFieldName(c.Classifier.FieldName),
		classify.WithTracer(provider.Tracer()),
	)
	if err != nil {
		ctx, cancel := shutdownContext()
		defer cancel()
		_ = provider.Shutdown(ctx)
		return nil, fmt.Errorf("configuring classifier: %w", err)
	}

	var classifier classify.Classifier = client
	if c.Classifier.CacheTTL > 0 {
		classifier = classify.NewCachingClassifier(client, c.Classifier.CacheTTL)
		log.Info(log.CatCache, "result cache enabled", "ttl", c.Classifier.CacheTTL)
	}

	perms := source.FSPermissions{
		LibraryDir:     c.Source.LibraryDir,
		CameraWatchDir: c.Source.Camera.WatchDir,
		CameraCommand:  c.Source.Camera.Command,
	}

	s := &services{
		Classifier: classifier,
		Library:    source.NewLibrary(c.Source.LibraryDir, perms),
		tracer:     provider,
	}
	if c.Source.Camera.Command != "" || c.Source.Camera.WatchDir != "" {
		s.Camera = source.Camera{
			Command:     c.Source.Camera.Command,
			WatchDir:    c.Source.Camera.WatchDir,
			Permissions: perms,
		}
	}
	log.Info(log.CatConfig, "services ready",
		"endpoint", client.Endpoint(),
		"library", c.Source.LibraryDir,
		"camera", s.Camera != nil,
		"tracing", provider.Enabled())
	return s, nil
}

// Close flushes pending spans.
func (s *services) Close() {
	ctx, cancel := shutdownContext()
	defer cancel()
	if err := s.tracer.Shutdown(ctx); err != nil {
		log.Warn(log.CatTrace, "tracer shutdown failed", "error", err)
	}
}
