package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/voicecheck/httpclient"
)

const (
	detectTimeout = 120 * time.Second
	healthTimeout = 20 * time.Second
)

func newClient(baseURL string, timeout time.Duration) (*httpclient.Client, error) {
	return httpclient.New(httpclient.Config{BaseURL: baseURL, Timeout: timeout})
}

// printResponse writes the status line and the body, indented when it is JSON.
func printResponse(w io.Writer, method, url string, resp *httpclient.Response) {
	fmt.Fprintf(w, "%s %s -> %d\n", method, url, resp.StatusCode)
	var out bytes.Buffer
	if err := json.Indent(&out, resp.Body, "", "  "); err != nil {
		fmt.Fprintln(w, string(resp.Body))
		return
	}
	fmt.Fprintln(w, out.String())
}

// unreachable reports a transport failure with a hint to start the server.
func unreachable(baseURL string, err error) error {
	if httpclient.IsTimeout(err) {
		return withCode(ExitLocal, fmt.Errorf("request to %s timed out: %w", baseURL, err))
	}
	return withCode(ExitLocal, fmt.Errorf("could not connect to the API at %s. Start it with: %s serve", baseURL, appName))
}
