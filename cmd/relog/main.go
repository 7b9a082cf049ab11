package main

import (
	"os"

	"github.com/relogkit/relog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
