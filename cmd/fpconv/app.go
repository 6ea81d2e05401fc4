// Copyright 2020 Aleksandr Demakin. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/avdva/floatconv"
	"github.com/avdva/floatconv/internal/logger"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix      = "FPCONV"
	configName     = ".fpconv"
	defaultFormat  = "fp32"
	outputText     = "text"
	outputJSON     = "json"
	outputYAML     = "yaml"
	keyFormat      = "format"
	keyOutput      = "output"
	keyLogLevel    = "log-level"
	keyFormatsList = "formats"
)

// App holds the state shared by all commands.
type App struct {
	v          *viper.Viper
	out, errW  io.Writer
	renderer   *lipgloss.Renderer
	configFile string
	custom     map[string]floatconv.Format
	customList []floatconv.Format
}

func newApp(out, errW io.Writer) *App {
	return &App{
		v:        viper.New(),
		out:      out,
		errW:     errW,
		renderer: lipgloss.NewRenderer(out),
		custom:   make(map[string]floatconv.Format),
	}
}

func (app *App) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fpconv",
		Short: "Convert numbers to and from binary floating-point formats",
		Long: `fpconv shows how real numbers are stored in binary floating-point formats,
like fp32, fp16, bf16, fp8-e4m3, or custom layouts from the config file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.initConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(keyFormat, "f", defaultFormat, "Format name, see 'fpconv formats'")
	flags.StringP(keyOutput, "o", outputText, "Output mode (text|json|yaml)")
	flags.String(keyLogLevel, "", "Set log level (debug|info|warn|error) [default: info]")
	flags.StringVar(&app.configFile, "config", "", "Config file [default: $HOME/.fpconv.yaml]")
	for _, key := range []string{keyFormat, keyOutput, keyLogLevel} {
		if err := app.v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err) // should not normally happen
		}
	}

	rootCmd.AddCommand(
		app.encodeCommand(),
		app.decodeCommand(),
		app.breakdownCommand(),
		app.hexCommand(),
		app.formatsCommand(),
		app.limitsCommand(),
		app.lossCommand(),
		app.checkCommand(),
	)
	return rootCmd
}

func (app *App) initConfig(_ *cobra.Command, _ []string) error {
	if app.configFile != "" {
		app.v.SetConfigFile(app.configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			app.v.AddConfigPath(home)
		}
		app.v.SetConfigName(configName)
		app.v.SetConfigType("yaml")
	}
	app.v.SetEnvPrefix(envPrefix)
	app.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	app.v.AutomaticEnv()

	if err := app.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if app.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	if err := logger.Configure(app.v.GetString(keyLogLevel), app.errW); err != nil {
		return err
	}
	if used := app.v.ConfigFileUsed(); used != "" {
		logger.Debug("Config loaded", "file", used)
	}
	return app.loadFormats()
}

// loadFormats validates the custom formats of the config file.
func (app *App) loadFormats() error {
	var layouts []floatconv.Layout
	if err := app.v.UnmarshalKey(keyFormatsList, &layouts); err != nil {
		return fmt.Errorf("reading formats: %w", err)
	}
	for _, l := range layouts {
		f, err := floatconv.NewFormat(l)
		if err != nil {
			return err
		}
		name := strings.ToLower(f.Name())
		if _, err := floatconv.Lookup(name); err == nil {
			return &floatconv.ConfigurationError{Format: f.Name(), Reason: "name is taken by a predefined format"}
		}
		if _, found := app.custom[name]; found {
			return &floatconv.ConfigurationError{Format: f.Name(), Reason: "duplicate name"}
		}
		app.custom[name] = f
		app.customList = append(app.customList, f)
		logger.Debug("Custom format", "format", f.String())
	}
	return nil
}

// lookup finds a custom or a predefined format.
func (app *App) lookup(name string) (floatconv.Format, error) {
	if f, found := app.custom[strings.ToLower(strings.TrimSpace(name))]; found {
		return f, nil
	}
	return floatconv.Lookup(name)
}

func (app *App) format() (floatconv.Format, error) {
	return app.lookup(app.v.GetString(keyFormat))
}

// formats returns predefined formats followed by custom ones.
func (app *App) formats() []floatconv.Format {
	return append(floatconv.Catalog(), app.customList...)
}

// print writes data as json or yaml, or calls text for the text mode.
func (app *App) print(data interface{}, text func(w io.Writer) error) error {
	switch mode := strings.ToLower(app.v.GetString(keyOutput)); mode {
	case outputText, "":
		return text(app.out)
	case outputJSON:
		enc := json.NewEncoder(app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case outputYAML:
		enc := yaml.NewEncoder(app.out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output mode %q", mode)
	}
}
