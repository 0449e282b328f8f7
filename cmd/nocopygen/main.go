// Command nocopygen generates zero-copy buffer views for Go structs annotated
// with @nocopy.
package main

import (
	"os"

	"github.com/alexhholmes/nocopy/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
