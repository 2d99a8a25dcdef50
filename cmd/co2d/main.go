package main

import (
	"os"

	"co2d/internal/cli"
)

func main() {
	os.Exit(cli.MainWithArgs(os.Args[1:]))
}
