package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"oauth-userdata/internal/app"
	"oauth-userdata/internal/auth/provider/yahoo"
	"oauth-userdata/internal/logger"
	"oauth-userdata/internal/userdata"
	"oauth-userdata/internal/userdata/extractor"
	"oauth-userdata/internal/userdata/service"
)

// defaultBaseURLs are the API roots relative endpoints resolve against.
var defaultBaseURLs = map[string]string{
	"yahoo": yahoo.APIBaseURL,
}

type extractOptions struct {
	provider string
	token    string
	baseURL  string
	input    string
	field    string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "userdata",
		Short:         "Normalize OAuth provider profiles",
		Long:          "Fetches a user's profile from an OAuth provider API and prints it in the normalized user-data shape.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newProvidersCmd(), newExtractCmd())
	return root
}

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range app.Extractors().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newExtractCmd() *cobra.Command {
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Fetch and normalize a profile",
		Long:  "Loads the raw profile with --token (or from --input) and prints the normalized JSON, or a single --field.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.provider, "provider", "", "provider name (required)")
	cmd.Flags().StringVar(&opts.token, "token", "", "OAuth access token")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "override the provider API base URL")
	cmd.Flags().StringVar(&opts.input, "input", "", "normalize a saved raw profile JSON file instead of calling the API ('-' for stdin)")
	cmd.Flags().StringVar(&opts.field, "field", "", "print only this normalized field")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")
	_ = cmd.MarkFlagRequired("provider")

	return cmd
}

func runExtract(cmd *cobra.Command, opts extractOptions) error {
	if opts.verbose {
		logger.Init(logger.Config{Level: "debug", Format: "console", Output: cmd.ErrOrStderr()})
		defer logger.Sync()
	}

	ex, err := app.Extractors().Get(opts.provider)
	if err != nil {
		return err
	}

	var ud *userdata.UserData
	switch {
	case opts.input != "":
		p, err := readProfile(cmd.InOrStdin(), opts.input)
		if err != nil {
			return err
		}
		ud = ex.Normalize(p)

	case opts.token != "":
		baseURL := opts.baseURL
		if baseURL == "" {
			baseURL = defaultBaseURLs[opts.provider]
		}
		svc := service.FromAccessToken(cmd.Context(), opts.token, baseURL)

		ud, err = extractor.Extract(cmd.Context(), ex, svc)
		if err != nil {
			return fmt.Errorf("extract %s profile: %w", opts.provider, err)
		}
		logger.Info("profile extracted", map[string]any{"provider": opts.provider})

	default:
		return errors.New("one of --token or --input is required")
	}

	var out any = ud
	if opts.field != "" {
		v, ok := ud.Get(userdata.Field(opts.field))
		if !ok {
			return fmt.Errorf("unknown field %q", opts.field)
		}
		out = v
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readProfile(stdin io.Reader, path string) (userdata.Profile, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return userdata.DecodeProfile(path, raw)
}
