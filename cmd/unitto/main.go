// Command unitto converts units and evaluates expressions with exact
// decimal arithmetic.
package main

import (
	"os"

	"github.com/mesh-intelligence/unitto/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
