package main

import (
	"os"

	"github.com/quickwritereader/structjson/cmd/structjson/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
