package main

import (
	"os"

	"github.com/thecodejesters/visaadmin/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
