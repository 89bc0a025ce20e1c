package main

import (
	"os"

	"github.com/little-fluffy/notesearch/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
