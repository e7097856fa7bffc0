package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/M1DES1/aigenimgtovid/internal/config"
	"github.com/M1DES1/aigenimgtovid/internal/generation"
	"github.com/M1DES1/aigenimgtovid/internal/httpserver"
	"github.com/M1DES1/aigenimgtovid/internal/logging"
	"github.com/M1DES1/aigenimgtovid/internal/models"
)

// Run bootstraps the avatar video application.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("expected command: serve, generate, or probe")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)
	ctx = logging.WithLogger(ctx, logger)

	switch args[0] {
	case "serve":
		return serve(ctx, cfg, logger)
	case "generate":
		return generate(ctx, cfg, logger, args[1:], stdout)
	case "probe":
		return probe(ctx, cfg, stdout)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if err := cfg.ValidateGateway(); err != nil {
		return err
	}

	handler := buildRouter(cfg, logger, buildDependencies(cfg))
	srv := httpserver.New(cfg.AppPort, handler, httpserver.Options{WriteTimeout: cfg.Gateway.WriteTimeout})

	logger.Info("starting http server", "addr", srv.Addr(), "provider", cfg.Provider.BaseURL)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.Start()
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalCh)

	select {
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	case sig := <-signalCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-srvErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func generate(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stdout)
	prompt := fs.String("prompt", "", "text the avatar should speak")
	style := fs.String("style", "realistic", "style key (realistic, cinematic, animated, fantasy, documentary, polish)")
	motion := fs.Int("motion", 5, "motion intensity 1-10")
	dimension := fs.String("dimension", string(models.DimensionPortrait), "portrait, square or landscape")
	avatar := fs.String("avatar", "", "avatar id (defaults to the gateway default)")
	voice := fs.String("voice", "", "voice id (defaults to a voice matching the style)")
	silent := fs.Bool("silent", false, "generate without narration")
	image := fs.String("image", "", "path to an image to attach")
	gatewayURL := fs.String("gateway", cfg.Client.GatewayURL, "gateway base url")
	interval := fs.Duration("interval", cfg.Client.PollInterval, "status poll interval")
	maxAttempts := fs.Int("max-attempts", cfg.Client.MaxAttempts, "status poll attempt budget")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Client.GatewayURL = *gatewayURL
	cfg.Client.PollInterval = *interval
	cfg.Client.MaxAttempts = *maxAttempts

	ctrl := buildController(cfg, logger, func(p generation.Progress) {
		fmt.Fprintf(stdout, "[%3d%%] %s\n", p.Percent, p.Message)
	})

	text := *prompt
	if *image != "" {
		suggestion, err := attachImage(ctrl, *image)
		if err != nil {
			return err
		}
		if text == "" {
			text = suggestion
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	form := generation.Form{
		Prompt:    text,
		Style:     *style,
		Motion:    *motion,
		Dimension: models.ParseDimension(*dimension),
		AvatarID:  *avatar,
		VoiceID:   *voice,
	}
	if *silent {
		includeVoice := false
		form.IncludeVoice = &includeVoice
	}

	record, err := ctrl.Generate(ctx, form)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "video: %s\n", record.VideoURL)
	if record.ThumbnailURL != "" {
		fmt.Fprintf(stdout, "thumbnail: %s\n", record.ThumbnailURL)
	}
	return nil
}

func attachImage(ctrl *generation.Controller, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return ctrl.AttachImage(filepath.Base(path), contentType, data)
}

func probe(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	if err := cfg.ValidateGateway(); err != nil {
		return err
	}
	user, err := buildGateway(cfg).Probe(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "provider reachable: %s\n", user)
	return nil
}
