// recnotify - Recreation.gov availability batch notifier
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/recnotify

package main

import (
	"os"

	"github.com/ariel-frischer/recnotify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
