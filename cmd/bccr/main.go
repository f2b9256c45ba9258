package main

import (
	"bccrdata/cmd/bccr/commands"
	"bccrdata/lib/osutil"
	"bccrdata/lib/telemetry"
)

func main() {
	ctx, cancel := osutil.SignalContext()
	defer cancel()

	telemetry.SetupFromEnv(ctx, "bccr")
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
