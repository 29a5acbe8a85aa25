package main

import (
	"os"

	"github.com/Aasim-A/btree/cli"
	"github.com/spf13/afero"
)

func main() {
	if err := cli.NewRootCmd(afero.NewOsFs(), os.Stdin).Execute(); err != nil {
		os.Exit(1)
	}
}
