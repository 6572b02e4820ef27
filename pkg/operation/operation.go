// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package operation orchestrates push and pull moves between two
// environments: it selects content groups, builds every command through
// pkg/cmdbuild, hands them one at a time to the subprocess runner, and
// turns raw tool output into note lines. Subprocesses run strictly
// sequentially; an operation never overlaps two transfers.
package operation

import (
	"context"
	"strings"

	"github.com/walteh/movesync/pkg/cmdbuild"
	"github.com/walteh/movesync/pkg/config"
	"github.com/walteh/movesync/pkg/executil"
	"github.com/walteh/movesync/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 📦 Group is one transferable slice of the application tree.
type Group struct {
	Name     string
	Rel      string   // Subdirectory under the environment root; "" is the whole root
	Excludes []string // Group-specific exclude patterns
}

func (g Group) describe() string {
	if g.Rel == "" {
		return "application core"
	}
	return g.Rel
}

// The transferable content groups. Core is the whole tree minus wp-content,
// whose pieces travel as their own groups.
var (
	GroupUploads   = Group{Name: "uploads", Rel: "wp-content/uploads"}
	GroupThemes    = Group{Name: "themes", Rel: "wp-content/themes"}
	GroupPlugins   = Group{Name: "plugins", Rel: "wp-content/plugins"}
	GroupLanguages = Group{Name: "languages", Rel: "wp-content/languages"}
	GroupCore      = Group{Name: "core", Excludes: []string{"wp-content/"}}
)

// ⚙️ Options selects what one push or pull moves and how.
type Options struct {
	Movefile *config.Movefile
	Runner   executil.Runner
	Logger   *log.Logger

	Target string // Environment to push to / pull from
	Local  string // Local environment name; defaults to "local"

	DB        bool
	Uploads   bool
	Themes    bool
	Plugins   bool
	Languages bool
	Core      bool
	All       bool

	DryRun bool
	VCS    bool // Restrict a push to version-controlled files
	Force  bool // Allow pushing to a protected environment
}

// 🔧 Operation is one configured push/pull invocation.
type Operation struct {
	opts   Options
	local  *config.Environment
	target *config.Environment
	logger *log.Logger
	runner executil.Runner
}

// 🏭 New validates the options and resolves both environments. All
// configuration defects surface here, before any command is built.
func New(opts Options) (*Operation, error) {
	if opts.Movefile == nil {
		return nil, errors.Errorf("movefile is required")
	}
	if opts.Runner == nil {
		return nil, errors.Errorf("runner is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Target == "" {
		return nil, errors.Errorf("target environment is required")
	}
	if opts.Local == "" {
		opts.Local = "local"
	}
	if opts.Local == opts.Target {
		return nil, errors.Errorf("source and destination are both %q", opts.Target)
	}

	local, err := opts.Movefile.Env(opts.Local)
	if err != nil {
		return nil, err
	}
	target, err := opts.Movefile.Env(opts.Target)
	if err != nil {
		return nil, err
	}
	if local.IsRemote() {
		return nil, errors.Errorf("environment %q must be local but defines ssh access", local.Name)
	}

	op := &Operation{
		opts:   opts,
		local:  local,
		target: target,
		logger: opts.Logger,
		runner: opts.Runner,
	}
	if len(op.fileGroups()) == 0 && !op.wantDB() {
		return nil, errors.Errorf("nothing selected: choose content groups, --db, or --all")
	}
	return op, nil
}

func (o *Operation) wantDB() bool {
	return o.opts.DB || o.opts.All
}

// fileGroups returns the selected content groups in a fixed order so the
// same options always produce the same command sequence.
func (o *Operation) fileGroups() []Group {
	all := o.opts.All
	var groups []Group
	if o.opts.Core || all {
		groups = append(groups, GroupCore)
	}
	if o.opts.Uploads || all {
		groups = append(groups, GroupUploads)
	}
	if o.opts.Themes || all {
		groups = append(groups, GroupThemes)
	}
	if o.opts.Plugins || all {
		groups = append(groups, GroupPlugins)
	}
	if o.opts.Languages || all {
		groups = append(groups, GroupLanguages)
	}
	return groups
}

// run executes one command and normalizes failure: a transfer-tool failure
// carries the captured standard error, and no partial success is claimed.
func (o *Operation) run(ctx context.Context, command, desc string) (*executil.Result, error) {
	res, err := o.runner.Run(ctx, command)
	if err != nil {
		return nil, errors.Errorf("%s: %w", desc, err)
	}
	if res.ExitCode != 0 {
		return nil, errors.Errorf("%s failed (exit %d): %s",
			desc, res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return res, nil
}

// remoteFor converts an environment's access descriptor for the builders.
func remoteFor(env *config.Environment) *cmdbuild.Remote {
	if env.SSH == nil {
		return nil
	}
	return &cmdbuild.Remote{
		Host: env.SSH.Host,
		User: env.SSH.User,
		Port: env.SSH.Port,
		Key:  env.SSH.Key,
	}
}

// dbFor converts an environment's database credentials for the builders.
func dbFor(env *config.Environment) cmdbuild.DB {
	return cmdbuild.DB{
		Name:     env.Database.Name,
		User:     env.Database.User,
		Password: env.Database.Password,
		Host:     env.Database.Host,
		Port:     env.Database.Port,
		Charset:  env.Database.Charset,
	}
}

// groupRoot returns the filesystem root a group syncs from in env. The
// core group honors a separate application-core path when configured.
func groupRoot(env *config.Environment, g Group) string {
	if g.Name == GroupCore.Name && env.CorePath != "" {
		return env.CorePath
	}
	return env.Path
}
