package main

import (
	"flag"
	"fmt"
	"fractal-renderer/internal/app"
	"fractal-renderer/internal/domain"
	"fractal-renderer/internal/infrastructure"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usage = "usage: renderer [flags] julia_in julia_out mandelbrot_in mandelbrot_out workers"

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "Log file path (default stderr)")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	job, err := parseJob(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}

	// Инициализация логгера
	logger := initLogger("info")

	// Чтение конфигурации
	configReader := infrastructure.NewYAMLConfigReader(logger, infrastructure.ConfigOverrides{
		LogLevel: *logLevel,
		LogFile:  *logFile,
	})
	config, err := configReader.ReadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to read config", zap.Error(err))
	}

	// Обновляем уровень логирования
	if config.LogFile != "" {
		logger = initLogger(config.LogLevel, config.LogFile)
	} else {
		logger = initLogger(config.LogLevel)
	}
	defer logger.Sync()

	// Инициализация компонентов
	paramsReader := infrastructure.NewTXTParamsReader(logger)
	imageWriter := infrastructure.NewImageFileWriter(logger)
	renderer := app.NewFractalRenderer(logger, config, paramsReader, imageWriter, imageWriter)

	logger.Info("Starting fractal rendering",
		zap.String("julia", job.JuliaInput),
		zap.String("mandelbrot", job.MandelbrotInput),
		zap.Int("workers", job.Workers))

	report, err := renderer.Run(job)
	if err != nil {
		logger.Fatal("Rendering aborted", zap.Error(err))
	}

	if code := exitCode(logger, report, config.StrictOutput); code != 0 {
		logger.Sync()
		os.Exit(code)
	}
}

// exitCode logs the outcome of a finished run. Output errors only fail the
// process when strict is set.
func exitCode(logger *zap.Logger, report *domain.RunReport, strict bool) int {
	if report.OutputErr != nil {
		if strict {
			logger.Error("Rendering finished with output errors", zap.Error(report.OutputErr))
			return 1
		}
		logger.Warn("Rendering finished with output errors", zap.Error(report.OutputErr))
		return 0
	}

	logger.Info("Fractal rendering completed successfully",
		zap.String("run_id", report.RunID),
		zap.Duration("julia", report.Julia.Duration),
		zap.Duration("mandelbrot", report.Mandelbrot.Duration))
	return 0
}

// parseJob maps the five positional arguments to a job.
func parseJob(args []string) (domain.Job, error) {
	if len(args) < 5 {
		return domain.Job{}, fmt.Errorf("%w: expected 5 arguments, got %d", domain.ErrUsage, len(args))
	}

	workers, err := strconv.Atoi(args[4])
	if err != nil || workers < 1 {
		return domain.Job{}, fmt.Errorf("%w: workers must be a positive integer, got %q", domain.ErrUsage, args[4])
	}

	return domain.Job{
		JuliaInput:       args[0],
		JuliaOutput:      args[1],
		MandelbrotInput:  args[2],
		MandelbrotOutput: args[3],
		Workers:          workers,
	}, nil
}

// initLogger initializes the logger with the specified level and log file name.
// Without a file name the logger writes to stderr.
func initLogger(level string, logfileName ...string) *zap.Logger {
	config := zap.NewProductionConfig()

	switch level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	outputPath := []string{"stderr"}
	if len(logfileName) > 0 {
		outputPath = logfileName
	}

	config.OutputPaths = outputPath
	config.ErrorOutputPaths = outputPath
	config.EncoderConfig.TimeKey = "t"
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	config.DisableCaller = false

	logger, err := config.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return zap.NewNop()
	}
	return logger
}
