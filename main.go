package main

import (
	"os"

	"github.com/glowcat/glowcat/internal/cli"
)

func main() {
	code, _ := cli.Run(os.Args, nil)
	os.Exit(code)
}
