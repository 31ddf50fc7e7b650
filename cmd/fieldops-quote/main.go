// README: Entry point for the offline quoting CLI.
package main

import (
	"os"

	"fieldops/cmd/fieldops-quote/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
