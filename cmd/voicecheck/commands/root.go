package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/voicecheck/config"
)

const (
	appName        = "voicecheck"
	defaultBaseURL = "http://localhost:8000"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	baseURL string
	envFile string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   appName,
		Short: "AI-generated voice detection service and client",
		Long: `voicecheck classifies short MP3 voice clips in Tamil, English, Hindi,
Malayalam or Telugu as AI_GENERATED or HUMAN.

Run the API with "voicecheck serve", then query it with "voicecheck detect"
and "voicecheck health". The client commands read API_KEY and API_BASE_URL
from the environment or a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "API base URL (default $API_BASE_URL or "+defaultBaseURL+")")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file to load (default .env in the working directory, if present)")

	root.AddCommand(
		newServeCommand(opts),
		newDetectCommand(opts),
		newHealthCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return run(NewRootCommand(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err != nil && err.Error() != "" {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

// loadEnv loads the --env-file, or ./.env when it exists.
func (o *rootOptions) loadEnv() error {
	if o.envFile != "" {
		return config.LoadEnvFile(o.envFile)
	}
	if _, err := os.Stat(".env"); err == nil {
		return config.LoadEnvFile(".env")
	}
	return nil
}

// apiBaseURL resolves the flag, then API_BASE_URL, then the default.
func (o *rootOptions) apiBaseURL() string {
	url := o.baseURL
	if url == "" {
		url = os.Getenv("API_BASE_URL")
	}
	if url == "" {
		url = defaultBaseURL
	}
	return strings.TrimRight(url, "/")
}
