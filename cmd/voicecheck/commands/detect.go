package commands

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/voicecheck/detection"
	"github.com/kbukum/voicecheck/httpclient"
	"github.com/kbukum/voicecheck/server/endpoint"
	"github.com/kbukum/voicecheck/server/middleware"
)

func newDetectCommand(root *rootOptions) *cobra.Command {
	var apiKey string
	cmd := &cobra.Command{
		Use:   "detect <file.mp3> <language>",
		Short: "Classify an MP3 clip (POST " + endpoint.PathDetection + ")",
		Long: `Base64-encode an MP3 file, send it to the detection endpoint and print
the JSON answer.

Languages: ` + strings.Join(detection.SupportedLanguages, ", ") + `

Exit status is 0 for a success envelope, 1 for an error envelope and 2 when
the request could not be made.`,
		Example: `  voicecheck detect sample.mp3 Tamil
  voicecheck detect sample.mp3 English --base-url http://localhost:9000`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return withCode(ExitLocal, fmt.Errorf("expected <file.mp3> <language>, got %d argument(s)", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd.Context(), cmd.OutOrStdout(), root, apiKey, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (default $API_KEY)")
	return cmd
}

func runDetect(ctx context.Context, out io.Writer, root *rootOptions, apiKey, path, language string) error {
	if err := root.loadEnv(); err != nil {
		return withCode(ExitLocal, err)
	}
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}
	if strings.TrimSpace(apiKey) == "" {
		return withCode(ExitLocal, errors.New("missing API key. Set API_KEY in .env or the environment, or pass --api-key"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return withCode(ExitLocal, fmt.Errorf("audio file not found: %s", path))
		}
		return withCode(ExitLocal, fmt.Errorf("read audio file: %w", err))
	}

	baseURL := root.apiBaseURL()
	client, err := newClient(baseURL, detectTimeout)
	if err != nil {
		return withCode(ExitLocal, err)
	}
	defer client.CloseIdleConnections()

	resp, err := client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   endpoint.PathDetection,
		Body: detection.Request{
			Language:    language,
			AudioFormat: detection.AudioFormatMP3,
			AudioBase64: base64.StdEncoding.EncodeToString(data),
		},
		Auth: httpclient.APIKeyAuth(middleware.APIKeyHeader, apiKey),
	})
	if resp == nil {
		return unreachable(baseURL, err)
	}
	printResponse(out, http.MethodPost, baseURL+endpoint.PathDetection, resp)

	var envelope struct {
		Status string `json:"status"`
	}
	if err == nil && json.Unmarshal(resp.Body, &envelope) == nil && envelope.Status == detection.StatusSuccess {
		return nil
	}
	return withCode(ExitFailure, nil)
}
