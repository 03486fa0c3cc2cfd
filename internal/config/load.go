package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/willbeason/mandelbench/pkg/fractal"
)

// EnvPrefix prefixes every environment override, e.g. MANDELBENCH_MAX_THREADS.
const EnvPrefix = "MANDELBENCH"

// Config is the fully resolved configuration of one CLI invocation.
type Config struct {
	Render     fractal.RenderConfig
	Viewport   fractal.Viewport
	MaxThreads int
	Preset     string

	StoreKind string
	StorePath string

	Output string
	Chart  string

	Verbose     bool
	LogFile     string
	MetricsAddr string
}

// Load initializes viper from .env, the config file and environment variables.
// An explicitly named cfgFile must exist; the default ./mandelbench.yaml is
// optional.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("mandelbench")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	} else {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if name := viper.GetString("preset"); name != "" {
		preset, err := fractal.LookupPreset(name)
		if err != nil {
			return err
		}
		applyPreset(preset)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("width", fractal.DefaultConfig.Width)
	viper.SetDefault("height", fractal.DefaultConfig.Height)
	viper.SetDefault("max_iterations", fractal.DefaultConfig.MaxIterations)
	viper.SetDefault("power", fractal.DefaultConfig.Power)

	viper.SetDefault("viewport.min_real", fractal.DefaultViewport.MinReal)
	viper.SetDefault("viewport.max_real", fractal.DefaultViewport.MaxReal)
	viper.SetDefault("viewport.min_imaginary", fractal.DefaultViewport.MinImaginary)
	viper.SetDefault("viewport.max_imaginary", fractal.DefaultViewport.MaxImaginary)

	viper.SetDefault("max_threads", runtime.NumCPU())
	viper.SetDefault("preset", "")

	viper.SetDefault("store.kind", "text")
	viper.SetDefault("store.path", "data.txt")

	viper.SetDefault("output", "mandelbrot.png")
	viper.SetDefault("chart", "")

	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("metrics_addr", "")
}

// applyPreset replaces the render defaults, so explicit flags, environment
// variables and config file values still win over the preset.
func applyPreset(p fractal.Preset) {
	viper.SetDefault("width", p.Config.Width)
	viper.SetDefault("height", p.Config.Height)
	viper.SetDefault("max_iterations", p.Config.MaxIterations)
	viper.SetDefault("power", p.Config.Power)

	viper.SetDefault("viewport.min_real", p.Viewport.MinReal)
	viper.SetDefault("viewport.max_real", p.Viewport.MaxReal)
	viper.SetDefault("viewport.min_imaginary", p.Viewport.MinImaginary)
	viper.SetDefault("viewport.max_imaginary", p.Viewport.MaxImaginary)
}

// Current reads the loaded values into a Config.
func Current() Config {
	return Config{
		Render: fractal.RenderConfig{
			Width:         viper.GetInt("width"),
			Height:        viper.GetInt("height"),
			MaxIterations: viper.GetInt("max_iterations"),
			Power:         viper.GetInt("power"),
		},
		Viewport: fractal.Viewport{
			MinReal:      viper.GetFloat64("viewport.min_real"),
			MaxReal:      viper.GetFloat64("viewport.max_real"),
			MinImaginary: viper.GetFloat64("viewport.min_imaginary"),
			MaxImaginary: viper.GetFloat64("viewport.max_imaginary"),
		},
		MaxThreads:  viper.GetInt("max_threads"),
		Preset:      viper.GetString("preset"),
		StoreKind:   viper.GetString("store.kind"),
		StorePath:   viper.GetString("store.path"),
		Output:      viper.GetString("output"),
		Chart:       viper.GetString("chart"),
		Verbose:     viper.GetBool("verbose"),
		LogFile:     viper.GetString("log_file"),
		MetricsAddr: viper.GetString("metrics_addr"),
	}
}
