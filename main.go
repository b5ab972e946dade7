package main

import (
	"os"

	"go.uber.org/fx"
)

func main() {
	flags := newFlagSet()
	// ExitOnError: bad flags never get here
	_ = flags.Parse(os.Args[1:])

	fx.New(
		fx.Supply(flags),
		AppOptions,
	).Run()
}
