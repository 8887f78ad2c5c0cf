package commands

import (
	"context"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/kbukum/voicecheck/httpclient"
	"github.com/kbukum/voicecheck/server/endpoint"
)

func newHealthCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API health (GET " + endpoint.PathHealth + ")",
		Long: `Query the health endpoint and print the JSON answer. Exit status is 0 on
a 2xx answer, 1 on any other status and 2 when the API could not be reached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(cmd.Context(), cmd.OutOrStdout(), root)
		},
	}
}

func runHealth(ctx context.Context, out io.Writer, root *rootOptions) error {
	if err := root.loadEnv(); err != nil {
		return withCode(ExitLocal, err)
	}
	baseURL := root.apiBaseURL()
	client, err := newClient(baseURL, healthTimeout)
	if err != nil {
		return withCode(ExitLocal, err)
	}
	defer client.CloseIdleConnections()

	resp, err := client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: endpoint.PathHealth})
	if resp == nil {
		return unreachable(baseURL, err)
	}
	printResponse(out, http.MethodGet, baseURL+endpoint.PathHealth, resp)
	if !resp.IsSuccess() {
		return withCode(ExitFailure, nil)
	}
	return nil
}
