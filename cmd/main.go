package main

import (
	"flag"
	"fmt"
	"os"

	renderer "github.com/juangutierrez01/canvas-renderer"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML config file.")
	modelPath := flag.String("model", "", "Model file (.yaml, .yml, .ply or .dxf). Overrides the config.")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error). Overrides the config.")
	flag.Parse()

	cfg, err := renderer.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *modelPath != "" {
		cfg.Model = *modelPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, err := renderer.NewLogger(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	model := renderer.DefaultScene()
	if cfg.Model != "" {
		model, err = renderer.LoadModelFile(cfg.Model)
		if err != nil {
			logger.Error("load model", zap.String("path", cfg.Model), zap.Error(err))
			exit(logger)
		}
	}

	logger.Info("starting",
		zap.Float64("field_of_view", cfg.FieldOfView),
		zap.String("projection", cfg.Projection),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	if err := renderer.Run(cfg, model, logger); err != nil {
		logger.Error("run", zap.Error(err))
		exit(logger)
	}
}

// exit flushes the logger and exits 1.
func exit(logger *zap.Logger) {
	_ = logger.Sync()
	osExit(1)
}

var osExit = os.Exit
