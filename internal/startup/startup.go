package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"media-board/internal/logging"
	"media-board/internal/storage"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration.
type Config struct {
	StoreDir       string
	Port           string
	MetricsPort    string
	MetricsEnabled bool
	WatchEnabled   bool
	LogMediaFiles  bool
}

// LoadConfig loads and validates configuration from environment
// variables. The storage root defaults to the platform config
// directory when STORE_DIR is unset.
func LoadConfig() (*Config, error) {
	printBanner()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	storeDir := os.Getenv("STORE_DIR")
	if storeDir == "" {
		var err error
		storeDir, err = storage.DefaultRoot()
		if err != nil {
			return nil, err
		}
	}
	storeDir, err := filepath.Abs(storeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store directory: %w", err)
	}

	config := &Config{
		StoreDir:       storeDir,
		Port:           getEnv("PORT", "8790"),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		WatchEnabled:   getEnvBool("WATCH_ENABLED", true),
		LogMediaFiles:  getEnvBool("LOG_MEDIA_FILES", false),
	}

	logging.Info("  STORE_DIR:        %s", config.StoreDir)
	logging.Info("  PORT:             %s", config.Port)
	logging.Info("  METRICS_PORT:     %s", config.MetricsPort)
	logging.Info("  METRICS_ENABLED:  %v", config.MetricsEnabled)
	logging.Info("  WATCH_ENABLED:    %v", config.WatchEnabled)
	logging.Info("  LOG_MEDIA_FILES:  %v", config.LogMediaFiles)
	logging.Info("  LOG_LEVEL:        %s", logging.GetLevel())
	logging.Info("")

	return config, nil
}

// LogStoreReady logs successful storage scaffolding.
func LogStoreReady(paths *storage.Context, duration time.Duration) {
	logging.Info("------------------------------------------------------------")
	logging.Info("STORAGE SETUP")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Root:     %s", paths.Root)
	logging.Info("  Images:   %s", paths.ImagesDir)
	logging.Info("  Metadata: %s", paths.MetadataDir)
	logging.Info("  [OK] Storage ready in %v", duration)
	logging.Info("")
}

// LogServerStarted logs successful server start with endpoint
// information.
func LogServerStarted(port, metricsPort string, metricsEnabled bool, startupDuration time.Duration) {
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time: %v", startupDuration)
	logging.Info("")
	logging.Info("  Application:  http://localhost:%s", port)
	if metricsEnabled {
		logging.Info("  Metrics:      http://localhost:%s/metrics", metricsPort)
	} else {
		logging.Info("  Metrics:      DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop")
	logging.Info("------------------------------------------------------------")
}

// LogShutdownInitiated logs shutdown start.
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStepComplete logs a completed shutdown step.
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion.
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits.
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func printBanner() {
	logging.Info("media-board content store")
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Go:         %s on %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
