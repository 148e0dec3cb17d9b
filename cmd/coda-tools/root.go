/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"reflect"
	"strings"

	"github.com/fatih/structs"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
	"gopkg.in/yaml.v2"

	"github.com/toothbrush/coda-tools/coda"
	"github.com/toothbrush/coda-tools/internal/termfmt"
)

const defaultConfig = "~/.config/coda-tools.yaml"

var (
	// Store the result of binding cobra flags
	Config       string
	ConfigActual string
	Debug        bool
	WithVCR      bool

	// Command to run to retrieve the API token, if CODA_API_KEY isn't set
	APITokenCmd []string

	BaseURL    string
	LocalStore string
	Workers    int

	ParsedConfig YamlConfig

	logger hclog.Logger = hclog.NewNullLogger()
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "coda-tools",
	Short: "Work with Coda docs from the command line, or hand them to an agent",
	Long: `
Coda docs, their pages, tables, rows and formulas, as a set of tools.  Serve them to an agent runtime
over MCP, call them one by one from the shell, or dump a whole doc to local Markdown files.

Authenticate by setting CODA_API_KEY (a .env file in the working directory is read too), or with
--api-token-cmd.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("coda-tools: failed to initialise config: %w", err)
		}

		logger = newLogger(Debug)
		termfmt.SetEnabled(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: "+defaultConfig+", respects CODA_TOOLS_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to record and replay responses")
	rootCmd.PersistentFlags().StringSliceVar(&APITokenCmd, "api-token-cmd", []string{}, "shell command to retrieve the Coda API token, used when CODA_API_KEY is unset")
	rootCmd.PersistentFlags().StringVar(&BaseURL, "base-url", coda.DefaultBaseURL, "Coda REST API root")
	rootCmd.PersistentFlags().StringVar(&LocalStore, "store", "", "location to save dumped docs")
	rootCmd.PersistentFlags().IntVar(&Workers, "workers", 4, "number of pages to export at once")
}

func newLogger(debug bool) hclog.Logger {
	level := hclog.Info
	if debug {
		level = hclog.Debug
	}

	// stdout belongs to the MCP transport when serving, so everything goes to stderr
	return hclog.New(&hclog.LoggerOptions{
		Name:   "coda-tools",
		Level:  level,
		Output: os.Stderr,
	})
}

func initializeConfig(cmd *cobra.Command) error {
	// A missing config file is only a problem when someone asked for it by name.
	explicit := true
	if Config == "" {
		if envConfig := os.Getenv("CODA_TOOLS_CONFIG"); envConfig != "" {
			Config = envConfig
		} else {
			Config = defaultConfig
			explicit = false
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("coda-tools: unable to expand homedir: %w", err)
	}
	ConfigActual = config

	if _, err := os.Stat(ConfigActual); errors.Is(err, os.ErrNotExist) {
		if explicit {
			return fmt.Errorf("coda-tools: specified config file does not exist: %w", err)
		}
		ConfigActual = ""
		return nil
	}

	yamlFile, err := os.ReadFile(ConfigActual)
	if err != nil {
		return fmt.Errorf("coda-tools: error reading config file: %w", err)
	}

	// bark if a user sets a key we don't recognise
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("coda-tools: issue parsing config file: %w", err)
	}

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("coda-tools: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	Debug          *bool `yaml:"debug"`
	WithVCR        *bool `yaml:"with-vcr"`
	AlwaysDownload *bool `yaml:"always-download"`
	WriteMarkdown  *bool `yaml:"write-markdown"`
	Prune          *bool `yaml:"prune"`
	KeepGoing      *bool `yaml:"keep-going"`

	BaseURL     string   `yaml:"base-url"`
	StorePath   string   `yaml:"store"`
	Format      string   `yaml:"format"`
	Workers     string   `yaml:"workers"`
	APITokenCmd []string `yaml:"api-token-cmd"`
	Docs        []string `yaml:"docs"`
}

// Bind each cobra flag the user didn't pass to the value from the config file
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("coda-tools: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// legitimately happens: `list docs` has no `prune` flag, but the config file may well
			// set it for `dump`
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		switch field.Kind() {
		case reflect.Ptr:
			// YamlConfig only uses pointers for bools
			b, ok := field.Value().(*bool)
			if !ok {
				return fmt.Errorf("coda-tools: found unrecognised field: %+v", field.Name())
			}
			if b != nil {
				if err := cmd.Flags().Set(key, fmt.Sprintf("%v", *b)); err != nil {
					return fmt.Errorf("coda-tools: bad value for %s: %w", key, err)
				}
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("coda-tools: found unrecognised field: %+v", field.Name())
			}
			if s != "" {
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("coda-tools: bad value for %s: %w", key, err)
				}
			}

		case reflect.Slice:
			ss, ok := field.Value().([]string)
			if !ok {
				return fmt.Errorf("coda-tools: found unrecognised field: %+v", field.Name())
			}
			for _, s := range ss {
				// repeatedly calling Set() appends to the slice
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("coda-tools: bad value for %s: %w", key, err)
				}
			}

		default:
			return fmt.Errorf("coda-tools: found unrecognised field: %+v", field.Name())
		}
	}

	return nil
}

// apiToken prefers CODA_API_KEY, and falls back to the first line printed by --api-token-cmd.
func apiToken() (string, error) {
	if token := strings.TrimSpace(os.Getenv("CODA_API_KEY")); token != "" {
		return token, nil
	}

	if len(APITokenCmd) < 1 {
		return "", fmt.Errorf("coda-tools: no API token, please set CODA_API_KEY or provide --api-token-cmd")
	}

	tokenCmdOutput, err := exec.Command(APITokenCmd[0], APITokenCmd[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("coda-tools: couldn't execute api-token-cmd '%v': %w", APITokenCmd, err)
	}

	token := strings.TrimSpace(strings.Split(string(tokenCmdOutput), "\n")[0])
	if token == "" {
		return "", fmt.Errorf("coda-tools: api-token-cmd '%v' printed nothing", APITokenCmd)
	}
	return token, nil
}

// newAPI builds the client every API-talking command uses.  Call the returned func when done, it
// flushes the VCR cassette if there is one.
func newAPI() (*coda.API, func(), error) {
	token, err := apiToken()
	if err != nil {
		return nil, nil, err
	}

	api, err := coda.NewAPI(BaseURL, token)
	if err != nil {
		return nil, nil, fmt.Errorf("coda-tools: couldn't instantiate Coda API: %w", err)
	}
	api.Logger = logger.Named("api")

	if !WithVCR {
		return api, func() {}, nil
	}

	opts := &recorder.Options{
		CassetteName:       "fixtures/coda-tools",
		Mode:               recorder.ModeReplayWithNewEpisodes,
		SkipRequestLatency: true,
		RealTransport:      http.DefaultTransport,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("coda-tools: couldn't set up go-vcr recording: %w", err)
	}

	// Add a hook which removes Authorization headers from all requests
	hook := func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Authorization")
		return nil
	}
	r.AddHook(hook, recorder.AfterCaptureHook)
	r.SetReplayableInteractions(true)

	vcrClient := r.GetDefaultClient()
	api.Client = vcrClient
	api.DownloadClient = vcrClient

	stop := func() {
		if err := r.Stop(); err != nil {
			logger.Warn("couldn't save VCR cassette", "error", err)
		}
	}
	return api, stop, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("coda-tools: execution error: %w", err)
	}

	return nil
}
