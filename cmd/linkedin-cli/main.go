package main

import (
	"linkedin-voyager/cmd/linkedin-cli/commands"
	"linkedin-voyager/lib/osutil"
)

func main() {
	ctx, cancel := osutil.SignalContext()
	defer cancel()

	err := commands.ExecuteContext(ctx)
	if err != nil {
		cancel()
		osutil.Fatal("linkedin-cli failed", err)
	}
}
