// Package cli implements adminctl, a command-line client for the admin API.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thecodejesters/visaadmin/internal/apiclient"
	"github.com/thecodejesters/visaadmin/internal/config"
	"github.com/thecodejesters/visaadmin/internal/logger"
)

type options struct {
	publicOnly bool
	apiURL     string
	token      string
	timeout    time.Duration
	verbose    bool
}

func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "adminctl",
		Short:        "Manage permit rules and required documents",
		Long:         `adminctl talks to the visa admin API, failing over between the configured base URLs until one answers.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			slog.SetDefault(logger.New(cmd.ErrOrStderr(), level, true))
		},
	}
	cmd.SetOut(out)

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.publicOnly, "public-only", false, "Only use the public API address, as a browser would")
	flags.StringVar(&opts.apiURL, "api-url", "", "Explicit API base URL tried before any other candidate")
	flags.StringVar(&opts.token, "token", "", "Bearer token (default $ADMIN_API_TOKEN)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Per-attempt timeout (default $API_TIMEOUT_SECONDS)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every attempt")

	cmd.AddCommand(
		newRulesCommand(opts),
		newDocsCommand(opts),
		newHealthCommand(opts),
		newEndpointsCommand(opts),
		newMigrateCommand(),
	)
	return cmd
}

func (o *options) deployment() (apiclient.DeploymentContext, config.APIConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return apiclient.DeploymentContext{}, config.APIConfig{}, err
	}
	api := cfg.API
	if o.apiURL != "" {
		api.ExplicitURL = o.apiURL
	}
	if o.token != "" {
		api.Token = o.token
	}
	if o.timeout > 0 {
		api.Timeout = o.timeout
	}

	return apiclient.DeploymentContext{
		PublicOnly:  o.publicOnly,
		ExplicitURL: api.ExplicitURL,
		InternalURL: api.InternalURL,
		PublicURL:   api.PublicURL,
		LocalURLs:   api.LocalURLs,
		DefaultURL:  api.DefaultURL,
	}, api, nil
}

func (o *options) client() (*apiclient.Client, error) {
	dc, api, err := o.deployment()
	if err != nil {
		return nil, err
	}
	headers := map[string]string{}
	if api.Token != "" {
		headers["Authorization"] = "Bearer " + api.Token
	}
	return apiclient.NewClient(dc, api.Timeout, headers)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readPayload decodes --data, or the file named by --file ("-" for stdin), into v.
func readPayload(cmd *cobra.Command, data, file string, v any) error {
	var raw []byte
	switch {
	case data != "" && file != "":
		return fmt.Errorf("use either --data or --file")
	case data != "":
		raw = []byte(data)
	case file == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		raw = b
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		raw = b
	default:
		return fmt.Errorf("a JSON payload is required (--data or --file)")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	return nil
}
