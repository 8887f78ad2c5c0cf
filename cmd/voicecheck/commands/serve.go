package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/voicecheck/audio"
	"github.com/kbukum/voicecheck/bootstrap"
	"github.com/kbukum/voicecheck/classifier"
	"github.com/kbukum/voicecheck/classifier/heuristic"
	"github.com/kbukum/voicecheck/classifier/remote"
	"github.com/kbukum/voicecheck/component"
	"github.com/kbukum/voicecheck/detection"
	"github.com/kbukum/voicecheck/logger"
	"github.com/kbukum/voicecheck/observability"
	"github.com/kbukum/voicecheck/provider"
	"github.com/kbukum/voicecheck/server"
	"github.com/kbukum/voicecheck/util"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the detection API",
		Long: `Run the HTTP API. Configuration is read from config.yml and .env in the
working directory, cmd/voicecheck or config/, and from the environment
(API_KEY, SERVER_PORT, CLASSIFIER_BACKEND, AUDIO_MAX_SIZE, ...).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig(configFile, root.envFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default config.yml in the search path)")
	return cmd
}

func serve(ctx context.Context, cfg *AppConfig, out io.Writer) error {
	app, err := bootstrap.NewApp(cfg,
		bootstrap.WithSummaryOutput(out),
		bootstrap.WithGracefulTimeout(drainTimeout(cfg.Server)),
	)
	if err != nil {
		return err
	}
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
		st, err := newStack(a.Cfg, defaultClassifiers(), a.Logger, a.Components.HealthAll)
		if err != nil {
			return err
		}
		a.Logger.Info("API key loaded", logger.Fields("api_key", util.MaskSecret(a.Cfg.APIKey, 4)))
		for _, c := range st.components() {
			if err := a.RegisterComponent(c); err != nil {
				return err
			}
		}
		a.OnReady(func(context.Context) error {
			a.Logger.Info("accepting detection requests", logger.Fields(
				logger.FieldBackend, st.service.Classifier().Name(),
				"languages", detection.SupportedLanguages,
			))
			return nil
		})
		return nil
	})
	return app.Run(ctx)
}

// drainTimeout leaves in-flight requests their full write timeout to finish.
func drainTimeout(cfg server.Config) time.Duration {
	return max(15*time.Second, time.Duration(cfg.WriteTimeout)*time.Second)
}

// defaultClassifiers registers the built-in backends.
func defaultClassifiers() *provider.Registry[classifier.Classifier, classifier.Config] {
	reg := classifier.NewRegistry()
	reg.RegisterFactory(heuristic.ProviderName, heuristic.Factory())
	reg.RegisterFactory(remote.ProviderName, remote.Factory())
	return reg
}

// stack is the wired service, before any component is started.
type stack struct {
	telemetry  *observability.Component
	classifier *classifier.Component
	server     *server.Server
	service    *detection.Service
}

// newStack builds the detection pipeline and the HTTP server around it.
// health reports on the registered components for /health and /ready.
func newStack(
	cfg *AppConfig,
	classifiers *provider.Registry[classifier.Classifier, classifier.Config],
	log *logger.Logger,
	health func(context.Context) []component.Health,
) (*stack, error) {
	clf, err := classifiers.Build(cfg.Classifier.Backend, cfg.Classifier)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, err
	}

	svc := detection.NewService(audio.NewDecoder(cfg.Audio), clf, cfg.Classifier,
		detection.WithMetrics(metrics),
		detection.WithPolicy(cfg.Detection.Policy()),
		detection.WithServiceName(cfg.Name),
	)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	if err := srv.RegisterAPI(server.APIConfig{
		ServiceName: cfg.Name,
		APIKey:      cfg.APIKey,
		Detector:    svc,
		Health:      health,
	}); err != nil {
		return nil, err
	}

	return &stack{
		telemetry:  observability.NewComponent(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment),
		classifier: classifier.NewComponent(clf, cfg.Classifier),
		server:     srv,
		service:    svc,
	}, nil
}

// components returns the lifecycle components in start order.
func (st *stack) components() []component.Component {
	return []component.Component{st.telemetry, st.classifier, server.NewComponent(st.server)}
}
