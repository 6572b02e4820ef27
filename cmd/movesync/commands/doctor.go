package commands

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/movesync/cmd/movesync/opts"
	"github.com/walteh/movesync/pkg/cmdbuild"
	"github.com/walteh/movesync/pkg/config"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// Local tools a move shells out to. The database tools only matter when a
// move includes --db, so their absence is a warning, not a failure.
var (
	requiredBinaries = []string{"rsync", "ssh", "scp"}
	databaseBinaries = []string{"mysql", "mysqldump", "wp"}
)

// NewDoctorCmd creates the doctor command.
func NewDoctorCmd(ro *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the movefile, local tools, and ssh reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			failures := 0

			mf, err := ro.LoadMovefile(ctx)
			if err != nil {
				pterm.Error.Printfln("movefile: %v", err)
				return errors.Errorf("doctor found a broken movefile")
			}
			pterm.Success.Printfln("movefile: %d environment(s) defined", len(mf.Environments))

			for _, bin := range requiredBinaries {
				if _, err := exec.LookPath(bin); err != nil {
					pterm.Error.Printfln("%s: not found in PATH", bin)
					failures++
					continue
				}
				pterm.Success.Printfln("%s: found", bin)
			}
			for _, bin := range databaseBinaries {
				if _, err := exec.LookPath(bin); err != nil {
					pterm.Warning.Printfln("%s: not found in PATH (needed for --db moves)", bin)
					continue
				}
				pterm.Success.Printfln("%s: found", bin)
			}

			failures += checkReachability(ctx, ro, mf)

			if failures > 0 {
				return errors.Errorf("doctor found %d problem(s)", failures)
			}
			pterm.Success.Printfln("everything looks good")
			return nil
		},
	}
}

// checkReachability probes every remote environment concurrently and
// reports per-environment results in name order.
func checkReachability(ctx context.Context, ro *opts.RootOpts, mf *config.Movefile) int {
	var (
		mu      sync.Mutex
		results = map[string]error{}
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range mf.EnvNames() {
		env := mf.Environments[name]
		if !env.IsRemote() {
			continue
		}
		g.Go(func() error {
			err := probeSSH(ctx, ro, env)
			mu.Lock()
			results[env.Name] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	failures := 0
	for _, name := range names {
		if err := results[name]; err != nil {
			pterm.Error.Printfln("ssh %s: %v", name, err)
			failures++
			continue
		}
		pterm.Success.Printfln("ssh %s: reachable", name)
	}
	return failures
}

func probeSSH(ctx context.Context, ro *opts.RootOpts, env *config.Environment) error {
	command, err := cmdbuild.SSHExec{
		Remote: &cmdbuild.Remote{
			Host: env.SSH.Host,
			User: env.SSH.User,
			Port: env.SSH.Port,
			Key:  env.SSH.Key,
		},
		Command: "true",
		// BatchMode fails fast instead of hanging on a password prompt.
		Options: []string{"BatchMode=yes", "ConnectTimeout=5"},
	}.Build()
	if err != nil {
		return err
	}

	res, err := ro.Runner.Run(ctx, command)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("exit %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return nil
}
