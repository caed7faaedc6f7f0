// Command psai-panel-bridge runs the local bridge for the AI image panel: a
// loopback HTTP server hosting the panel UI, the generate/apply workflow
// controller, a simulated host document and a persistent event journal.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/core"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/core/validation"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/hostdoc"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/inspector"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/journal"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/logging"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/metrics"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/preview"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/shutdown"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/webui"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/webui/auth"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/workflow"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Windows service install/uninstall/etc. commands exit here
	if HandleServiceCommand(os.Args) {
		return
	}

	// When launched by the Windows service manager, run under its lifecycle
	if ran, err := RunAsService(); ran {
		if err != nil {
			fmt.Printf("Service error: %v\n", err)
			os.Exit(core.ExitCodeError)
		}
		return
	}

	os.Exit(run(context.Background()))
}

// run starts the bridge and blocks until shutdown. The returned value is the
// process exit code. ctx cancellation (used by the service wrapper) triggers
// the same graceful shutdown as a signal.
func run(ctx context.Context) int {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// fmt here, the logger isn't initialized yet
		fmt.Printf("Note: no .env file loaded: %v\n", err)
	}

	devMode := os.Getenv("PSAI_DEV_MODE") == "true"
	logFile := os.Getenv("PSAI_LOG_FILE")
	if logFile == "" {
		logFile = core.DefaultLogFile
	}

	logger, err := logging.NewLogger(devMode, logFile)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return core.ExitCodeError
	}
	defer logger.Sync()

	// Validate configuration before wiring anything
	result := validation.NewSuite().WithShowProgress(true).Validate()
	if !result.Success {
		logger.Error("startup validation failed",
			zap.Int("failed_steps", result.FailedSteps))
		return core.ExitCodeError
	}

	cfg, err := core.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", zap.Error(err))
		return core.ExitCodeError
	}

	logger.Info("configuration loaded",
		zap.String("panel_addr", cfg.PanelAddr()),
		zap.Bool("auth_enabled", cfg.AuthEnabled()),
		zap.Duration("preview_latency", cfg.PreviewLatency),
		zap.String("journal_path", cfg.JournalPath),
		zap.String("labels_file", cfg.LabelsPath),
		zap.Bool("dev_mode", devMode),
		zap.String("version", core.GetVersion()))

	// Label tables, with optional YAML overrides
	labels := preview.DefaultLabels()
	if cfg.LabelsPath != "" {
		labels, err = preview.LoadLabels(cfg.LabelsPath)
		if err != nil {
			logger.Error("failed to load label overrides", zap.Error(err))
			return core.ExitCodeError
		}
	}

	// Simulated host, optionally seeded with a document
	host := hostdoc.NewMemory()
	if doc := cfg.SimDocument; doc != nil {
		layers := make([]string, 0, doc.Layers)
		for i := 0; i < doc.Layers; i++ {
			if i == 0 {
				layers = append(layers, "Background")
			} else {
				layers = append(layers, fmt.Sprintf("Layer %d", i))
			}
		}
		host.OpenDocument(hostdoc.Document{
			Name:       doc.Name,
			WidthPx:    doc.WidthPx,
			HeightPx:   doc.HeightPx,
			Resolution: doc.Resolution,
			Layers:     layers,
		})
		logger.Info("simulated document opened", zap.String("name", doc.Name))
	}

	// Event journal
	jnl, err := journal.Open(cfg.JournalPath, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Error("failed to open journal", zap.Error(err))
		return core.ExitCodeError
	}

	// Workflow controller with metrics and journal as event sinks
	store := metrics.NewStore(metrics.StoreConfig{
		HistoryCapacity: 100,
		Version:         core.GetVersion(),
	}, time.Now())
	controller := workflow.NewController(
		host,
		inspector.New(host, logger),
		preview.NewSimulatedProvider(cfg.PreviewLatency, logger),
		labels,
		logger,
		store, jnl,
	)

	// Optional password gate
	var authProvider webui.AuthProvider
	if cfg.AuthEnabled() {
		hash, err := auth.HashPassword(cfg.PanelPassword)
		if err != nil {
			logger.Error("failed to hash panel password", zap.Error(err))
			jnl.Close()
			return core.ExitCodeError
		}
		cookies := auth.DefaultCookieConfig()
		cookies.Secure = cfg.SecureCookies
		authProvider = auth.NewMiddleware(hash, auth.NewSessionStore(core.DefaultSessionDuration), cookies, logger.Zap())
	}

	serverCfg := webui.DefaultServerConfig()
	serverCfg.Host = cfg.PanelHost
	serverCfg.Port = cfg.PanelPort
	server := webui.NewServer(serverCfg, webui.NewPanelAPI(controller, store, jnl, logger.Zap()), authProvider, logger.Zap())

	// Graceful shutdown: server drains first, then the journal
	manager := shutdown.NewManager(logger.Zap(), shutdown.WithTimeout(cfg.ShutdownTimeout))
	manager.Register("panel-server", 10, server.Shutdown)
	manager.Register("journal", 20, func(context.Context) error { return jnl.Close() })
	manager.Register("logger", 30, func(context.Context) error { return logger.Sync() })
	manager.Start()

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("panel server failed", zap.Error(err))
			manager.Shutdown()
		}
	}()

	// External cancellation (service stop) joins the same shutdown path
	go func() {
		select {
		case <-ctx.Done():
			manager.Shutdown()
		case <-manager.Context().Done():
		}
	}()

	logger.Info("panel bridge running", zap.String("url", "http://"+cfg.PanelAddr()+"/panel"))

	<-manager.Context().Done()
	manager.Wait()
	logger.Info("panel bridge stopped")
	return core.ExitCodeSuccess
}
