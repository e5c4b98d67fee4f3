package main

import (
	"context"
	"os"

	"github.com/codcodedob/aura/pkg/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(context.Background(), os.Args, version); err != nil {
		os.Exit(1)
	}
}
