package opts

import (
	"context"

	"github.com/walteh/movesync/pkg/config"
	"github.com/walteh/movesync/pkg/executil"
	"github.com/walteh/movesync/pkg/log"
)

// RootOpts carries the shared dependencies every command needs.
type RootOpts struct {
	ConfigPath string
	Logger     *log.Logger
	Runner     executil.Runner
}

// LoadMovefile reads and validates the configured movefile. Commands call
// this lazily so `init` and `--help` work without one.
func (o *RootOpts) LoadMovefile(ctx context.Context) (*config.Movefile, error) {
	return config.Load(ctx, o.ConfigPath)
}
