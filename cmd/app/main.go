package main

import (
	"os"

	"github.com/LongVanNgo/CAPTCHA-solver/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	root := cli.NewRootCmd(version)
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		return 1
	}
	return 0
}
