// Command schemadesigner edits JSON schema documents in the terminal and
// from scripts.
package main

import (
	"os"

	"github.com/vvwxvv/Data-Schema-Json-App/cmd"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  string
	date    string
)

func main() {
	cmd.SetVersion(version, commit, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
