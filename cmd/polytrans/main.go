// Command polytrans translates text and HTML through pluggable providers.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZaguanLabs/polytrans"
	"github.com/ZaguanLabs/polytrans/cache"
	"github.com/ZaguanLabs/polytrans/internal/config"
	"github.com/ZaguanLabs/polytrans/internal/logging"
	"github.com/ZaguanLabs/polytrans/processor"
	"github.com/ZaguanLabs/polytrans/provider"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = polytrans.Version
	commit    = polytrans.GitCommit
	buildDate = polytrans.BuildDate
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	envFile   string
	provider  string
	cacheFile string
	noCache   bool
	quiet     bool

	cfg        *config.Config
	logger     zerolog.Logger
	cache      cache.Enumerable
	closeCache func() error
	translator *polytrans.Translator
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{logger: zerolog.Nop()}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer a.close()
	return root.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   polytrans.Name,
		Short: polytrans.Description,
		Long: `polytrans translates text and HTML documents through a registry of
translation providers (libre, lingva, google, openai, mock).

Configuration is read from the environment; --env loads a .env file first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["setup"] == "none" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.exportCache(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env", "", "Load environment variables from this .env file")
	pf.StringVarP(&a.provider, "provider", "p", "", "Provider name (default: POLYTRANS_DEFAULT_PROVIDER)")
	pf.StringVar(&a.cacheFile, "cache-file", "", "Import the cache from this JSON file before running and export it afterwards")
	pf.BoolVar(&a.noCache, "no-cache", false, "Disable the translation cache")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "Suppress progress output")

	root.AddCommand(
		a.translateCommand(),
		a.htmlCommand(),
		a.providersCommand(),
		a.preaccelerateCommand(),
		a.serveCommand(),
		versionCommand(),
	)
	return root
}

// setup loads configuration and builds the translator.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.provider == "" {
		a.provider = cfg.DefaultProvider
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger

	registry, err := provider.NewRegistry(cfg.ProviderConfig(), logger)
	if err != nil {
		return fmt.Errorf("building provider registry: %w", err)
	}

	opts := []polytrans.TranslatorOption{
		polytrans.WithProcessor(processor.NewHTMLProcessor()),
		polytrans.WithLogger(logger),
		polytrans.WithWorkers(cfg.Workers),
	}
	if !a.noCache {
		if err := a.openCache(cmd.Context()); err != nil {
			return err
		}
		opts = append(opts, polytrans.WithCache(a.cache))
	}

	a.translator = polytrans.NewTranslator(registry, opts...)
	return nil
}

// openCache selects Redis when REDIS_URL is set and an in-memory cache otherwise,
// then loads --cache-file into it.
func (a *app) openCache(ctx context.Context) error {
	if a.cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:    a.cfg.RedisURL,
			TTL:    a.cfg.CacheTTLSeconds,
			Logger: a.logger,
		})
		if err != nil {
			return err
		}
		a.cache = rc
		a.closeCache = rc.Close
	} else {
		a.cache = cache.NewInMemoryCache(a.cfg.CacheTTLSeconds)
	}

	if a.cacheFile == "" {
		return nil
	}
	res, err := cache.NewImporter(a.cache).ImportFromFile(ctx, a.cacheFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("importing cache: %w", err)
	}
	a.logger.Debug().Int("imported", res.Imported).Int("failed", res.Failed).Msg("cache imported")
	return nil
}

func (a *app) exportCache(ctx context.Context) error {
	if a.cacheFile == "" || a.cache == nil {
		return nil
	}
	meta := map[string]string{"provider": a.provider, "version": version}
	if err := cache.NewExporter(a.cache).ExportToFile(ctx, a.cacheFile, meta); err != nil {
		return fmt.Errorf("exporting cache: %w", err)
	}
	return nil
}

func (a *app) close() {
	if a.closeCache != nil {
		if err := a.closeCache(); err != nil {
			a.logger.Warn().Err(err).Msg("closing cache")
		}
	}
}

// progress writes a status line to stderr unless --quiet is set.
func (a *app) progress(cmd *cobra.Command, format string, args ...any) {
	if a.quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"setup": "none"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", polytrans.Name, version)
			if commit != "unknown" && commit != "" {
				fmt.Fprintf(out, "  commit:  %s\n", commit)
			}
			if buildDate != "unknown" && buildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", buildDate)
			}
			return nil
		},
	}
}

// readInput returns the joined args, the named file, or stdin.
func readInput(cmd *cobra.Command, args []string, fromFile bool) (string, string, error) {
	if len(args) > 0 && !fromFile {
		return strings.Join(args, " "), "args", nil
	}
	if len(args) > 0 {
		data, err := os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return "", "", fmt.Errorf("reading file: %w", err)
		}
		return string(data), args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "stdin", nil
}
