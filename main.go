// Appdiet - a screen-time diet tracker for your most addictive apps.

package main

import (
	"os"

	"github.com/appdiet/appdiet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
