package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZaguanLabs/polytrans"
	"github.com/ZaguanLabs/polytrans/internal/httpapi"
	"github.com/ZaguanLabs/polytrans/processor"
	"github.com/spf13/cobra"
)

// requestFlags are the per-request options shared by translate and html.
type requestFlags struct {
	from          string
	to            string
	timeout       time.Duration
	sleep         time.Duration
	limit         int
	ignoreEmpty   bool
	truncate      bool
	preaccelerate bool
	field         string
	host          string
	jsonOut       bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.from, "from", "f", polytrans.DefaultFromLanguage, "Source language code (auto to detect)")
	fl.StringVarP(&f.to, "to", "t", polytrans.DefaultToLanguage, "Target language code")
	fl.DurationVar(&f.timeout, "timeout", 0, "Per-request timeout (0 = none)")
	fl.DurationVar(&f.sleep, "sleep", 0, "Pause before each provider call")
	fl.IntVar(&f.limit, "limit", polytrans.DefaultLimitOfLength, "Maximum query length in characters")
	fl.BoolVar(&f.ignoreEmpty, "ignore-empty", false, "Return an empty translation for empty input instead of failing")
	fl.BoolVar(&f.truncate, "truncate", false, "Truncate over-long input instead of failing")
	fl.BoolVar(&f.preaccelerate, "preaccelerate", false, "Warm every provider before the first request")
	fl.StringVar(&f.field, "field", "", "Professional field hint for LLM providers (e.g. medicine)")
	fl.StringVar(&f.host, "host", "", "Override the provider host for this request")
	fl.BoolVar(&f.jsonOut, "json", false, "Output result as JSON")
}

func (f *requestFlags) options() polytrans.Options {
	opts := polytrans.Options{
		Timeout:          f.timeout,
		Sleep:            f.sleep,
		LimitOfLength:    f.limit,
		IgnoreEmptyQuery: f.ignoreEmpty,
		IgnoreOverLength: f.truncate,
		Preaccelerate:    f.preaccelerate,
	}
	specific := map[string]any{}
	if f.field != "" {
		specific["professional_field"] = f.field
	}
	if f.host != "" {
		specific["host"] = f.host
	}
	if len(specific) > 0 {
		opts.ProviderSpecific = specific
	}
	return opts
}

func (a *app) translateCommand() *cobra.Command {
	var flags requestFlags
	var detail bool

	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate plain text",
		Long: `Translate plain text with the selected provider.

The text is taken from the arguments, or from stdin when none are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _, err := readInput(cmd, args, false)
			if err != nil {
				return err
			}

			opts := flags.options()
			opts.IsDetailResult = detail

			res, err := a.translator.TranslateText(cmd.Context(), a.provider, text, flags.from, flags.to, opts)
			if err != nil {
				return fmt.Errorf("translation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if flags.jsonOut || detail {
				return writeJSON(out, textOutput{
					Text:               res.Text,
					Detail:             res.Detail,
					Provider:           res.Provider,
					From:               res.From,
					To:                 res.To,
					SyntheticLanguages: res.SyntheticLanguages,
					Truncated:          res.Truncated,
				})
			}
			fmt.Fprintln(out, res.Text)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&detail, "detail", false, "Include the provider's structured response (implies --json)")
	return cmd
}

func (a *app) htmlCommand() *cobra.Command {
	var flags requestFlags
	var workers int
	var output string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "html [file]",
		Short: "Translate the text of an HTML document",
		Long: `Translate the text runs of an HTML document, leaving markup untouched.

The document is read from the file argument, or from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, inputName, err := readInput(cmd, args, true)
			if err != nil {
				return err
			}

			if dryRun {
				return runDryRun(cmd.OutOrStdout(), input, inputName, flags.to, flags.jsonOut)
			}

			a.progress(cmd, "Translating %s to %s with %s...", inputName, flags.to, a.provider)
			start := time.Now()
			res, err := a.translator.TranslateHTML(cmd.Context(), a.provider, input, flags.from, flags.to, workers, flags.options())
			if err != nil {
				return fmt.Errorf("translation failed: %w", err)
			}
			elapsed := time.Since(start)

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			if flags.jsonOut {
				return writeJSON(out, htmlOutput{
					Content:     res.Content,
					Segments:    res.Segments,
					UniqueTexts: res.UniqueTexts,
					ElapsedMs:   elapsed.Milliseconds(),
				})
			}
			fmt.Fprint(out, res.Content)

			a.progress(cmd, "\nDone in %v", elapsed.Round(time.Millisecond))
			a.progress(cmd, "  Text runs:    %d", res.Segments)
			a.progress(cmd, "  Unique texts: %d", res.UniqueTexts)
			return nil
		},
	}
	flags.register(cmd)
	fl := cmd.Flags()
	fl.IntVarP(&workers, "workers", "w", 0, "Concurrent provider calls (default: POLYTRANS_WORKERS or number of CPUs)")
	fl.StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	fl.BoolVar(&dryRun, "dry-run", false, "List the texts that would be translated without calling a provider")
	return cmd
}

func (a *app) providersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range a.translator.ListProviders() {
				marker := " "
				if name == a.provider {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func (a *app) preaccelerateCommand() *cobra.Command {
	var timeout time.Duration
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "preaccelerate",
		Short: "Warm every provider with a probe request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.translator.Preaccelerate(cmd.Context(), timeout)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				errs := make(map[string]string, len(res.Errors))
				for name, e := range res.Errors {
					errs[name] = e.Error()
				}
				return writeJSON(out, preaccelerateOutput{Success: res.Success, Fail: res.Fail, Errors: errs})
			}

			for _, name := range res.Success {
				fmt.Fprintf(out, "ok    %s\n", name)
			}
			for _, name := range res.Fail {
				fmt.Fprintf(out, "fail  %s: %v\n", name, res.Errors[name])
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", polytrans.DefaultPreaccelerateTimeout, "Timeout per provider probe")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output result as JSON")
	return cmd
}

func (a *app) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the translation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpapi.NewServer(a.translator, a.logger, httpapi.Options{
				Addr:            addr,
				DefaultProvider: a.provider,
			})
			return srv.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: POLYTRANS_HTTP_ADDR)")
	return cmd
}

// runDryRun lists the text runs that would be sent to the provider.
func runDryRun(w io.Writer, input, inputName, to string, jsonOut bool) error {
	proc := processor.NewHTMLProcessor()
	segments, err := proc.Extract(input)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}
	texts := polytrans.DedupeTexts(segments)

	if jsonOut {
		return writeJSON(w, dryRunOutput{
			InputFile:   inputName,
			TargetLang:  to,
			Segments:    len(segments),
			UniqueTexts: texts,
		})
	}

	fmt.Fprintf(w, "Dry run: %s -> %s\n", inputName, to)
	fmt.Fprintf(w, "Found %d text runs, %d unique:\n\n", len(segments), len(texts))
	for i, text := range texts {
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		fmt.Fprintf(w, "%3d. %q\n", i+1, text)
	}
	return nil
}

type textOutput struct {
	Text               string `json:"text"`
	Detail             any    `json:"detail,omitempty"`
	Provider           string `json:"provider"`
	From               string `json:"from"`
	To                 string `json:"to"`
	SyntheticLanguages bool   `json:"synthetic_languages,omitempty"`
	Truncated          bool   `json:"truncated,omitempty"`
}

type htmlOutput struct {
	Content     string `json:"content"`
	Segments    int    `json:"segments"`
	UniqueTexts int    `json:"unique_texts"`
	ElapsedMs   int64  `json:"elapsed_ms"`
}

type dryRunOutput struct {
	InputFile   string   `json:"input_file"`
	TargetLang  string   `json:"target_lang"`
	Segments    int      `json:"segments"`
	UniqueTexts []string `json:"unique_texts"`
}

type preaccelerateOutput struct {
	Success []string          `json:"success"`
	Fail    []string          `json:"fail"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

