// main - main entry-point to payment-go commands through cobra
// individual commands are outlined in ./cmd/
package main

import (
	"github.com/ebuy-platform/payment-go/cmd"
	"github.com/ebuy-platform/payment-go/libs/logging"

	// pull in the serve subcommands, setup code is in init
	_ "github.com/ebuy-platform/payment-go/cmd/serve"
)

var (
	// variables will be overwritten at build time
	version   string
	commit    string
	buildTime string
)

func main() {
	defer func() {
		if logging.Writer != nil {
			logging.Writer.Close()
		}
	}()
	cmd.Execute(version, commit, buildTime)
}
