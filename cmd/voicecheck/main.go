// Command voicecheck runs the AI-generated voice detection service and
// talks to a running instance.
//
// Usage:
//
//	voicecheck serve [--config FILE] [--env-file FILE]
//	voicecheck detect <file.mp3> <language> [--api-key KEY] [--base-url URL]
//	voicecheck health [--base-url URL]
//	voicecheck version
package main

import (
	"os"

	"github.com/kbukum/voicecheck/cmd/voicecheck/commands"
)

func main() {
	os.Exit(commands.Execute())
}
