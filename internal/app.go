package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"property-viewer/internal/adapters/backend_client"
	"property-viewer/internal/adapters/gateway"
	logger_adapter "property-viewer/internal/adapters/logger"
	"property-viewer/internal/adapters/tui"
	"property-viewer/internal/configs"
	"property-viewer/internal/core/coordinator"
	"property-viewer/internal/core/port"
	fluentlogger "property-viewer/pkg/fluent_logger"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fluent/fluent-logger-golang/fluent"
)

// Options tune NewApp for the way the binary is run.
type Options struct {
	// EnvPath names a dotenv file; "" means ./.env if present.
	EnvPath string
	// BackendURL overrides BACKEND_URL when set.
	BackendURL string
	// Interactive sends logs to LOG_FILE since the terminal belongs to the UI.
	Interactive bool
	// LogWriter overrides the log destination.
	LogWriter io.Writer
}

type App struct {
	config      *configs.AppConfig
	backend     *backend_client.Client
	coordinator *coordinator.Coordinator
	notifier    *tui.Notifier

	fluentClient *fluent.Fluent
	logFile      *os.File
	logger       port.LoggerPort
}

func NewApp(opts Options) (*App, error) {
	appConfig, err := configs.LoadConfig(opts.EnvPath)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}
	if opts.BackendURL != "" {
		if err := configs.ValidateBackendURL(opts.BackendURL); err != nil {
			return nil, err
		}
		appConfig.Backend.URL = opts.BackendURL
	}

	app := &App{config: appConfig}

	// --- 1. Loggers ---
	var activeLoggers []port.LoggerPort

	writer, useColor, err := app.logDestination(opts)
	if err != nil {
		return nil, err
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Writer:   writer,
		Level:    logger_adapter.ParseLevel(appConfig.StdoutLogger.Level),
		IsJSON:   strings.EqualFold(appConfig.StdoutLogger.Format, "json"),
		UseColor: useColor,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if appConfig.FluentBit.Enabled {
		app.fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			app.closeLogFile()
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(app.fluentClient, logger_adapter.ParseLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			_ = app.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	app.logger = baseLogger.WithFields(port.Fields{"component": "app"})
	app.logger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 2. Backend access ---
	gw, err := gateway.NewClient(appConfig.Backend.URL, appConfig.Backend.Timeout)
	if err != nil {
		app.logger.Error("Failed to create backend gateway", err, nil)
		_ = app.Close()
		return nil, fmt.Errorf("failed to create backend gateway: %w", err)
	}
	app.backend = backend_client.NewClient(gw)
	app.logger.Info("Backend gateway configured", port.Fields{
		"backend_url": gw.BaseURL(), "timeout": appConfig.Backend.Timeout.String(),
	})

	// --- 3. State ---
	app.notifier = tui.NewNotifier()
	app.coordinator = coordinator.New(app.backend, app.backend, app.backend, baseLogger,
		coordinator.WithOnChange(app.notifier.Notify))

	return app, nil
}

func (a *App) logDestination(opts Options) (io.Writer, bool, error) {
	if opts.LogWriter != nil {
		return opts.LogWriter, false, nil
	}
	if !opts.Interactive {
		return os.Stderr, true, nil
	}
	f, err := os.OpenFile(a.config.StdoutLogger.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open log file %s: %w", a.config.StdoutLogger.File, err)
	}
	a.logFile = f
	return f, false, nil
}

func (a *App) Config() *configs.AppConfig {
	return a.config
}

// Backend exposes the data access functions for one-shot commands.
func (a *App) Backend() *backend_client.Client {
	return a.backend
}

func (a *App) Coordinator() *coordinator.Coordinator {
	return a.coordinator
}

func (a *App) Logger() port.LoggerPort {
	return a.logger
}

// RunTUI starts the initial load and runs the terminal UI until the user
// quits or the process is signalled. Background requests are awaited before
// it returns.
func (a *App) RunTUI(ctx context.Context, programOpts ...tea.ProgramOption) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a.logger.Info("Application is starting...", nil)
	a.coordinator.Start(ctx)

	model := tui.NewModel(ctx, a.coordinator, a.notifier, a.logger)
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)
	_, err := tea.NewProgram(model, opts...).Run()

	interrupted := ctx.Err() != nil
	cancel()
	a.coordinator.Wait()

	if err != nil && !(interrupted && errors.Is(err, tea.ErrProgramKilled)) {
		a.logger.Error("Terminal UI stopped with an error", err, nil)
		return fmt.Errorf("terminal ui: %w", err)
	}
	if interrupted {
		a.logger.Warn("Received OS signal, shutting down...", nil)
	}
	a.logger.Info("Application shut down gracefully.", nil)
	return nil
}

// Close flushes and releases the log sinks.
func (a *App) Close() error {
	var errs []error
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing fluent client: %w", err))
		}
		a.fluentClient = nil
	}
	if err := a.closeLogFile(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeLogFile() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	if err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	return nil
}
