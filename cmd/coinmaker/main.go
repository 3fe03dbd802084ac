// Command coinmaker generates 3D printable coin models from heightmap
// images.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/unixpickle/essentials"

	"github.com/chibicitiberiu/3d-coin-maker/internal/adapters/driving/cli"
)

// version is overridden at build time:
//
//	go build -ldflags "-X main.version=1.2.3" ./cmd/coinmaker
var version = "dev"

func main() {
	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		essentials.Die("Error:", err)
	}
}
