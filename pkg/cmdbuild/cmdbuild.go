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

// Package cmdbuild constructs the command lines movesync hands to the
// subprocess layer. Each command is a typed request struct; fields stay
// structured until the final serialization step, where every value is
// individually shell-quoted. Builders validate their required fields before
// any string is built: a silently empty credential or path is a defect, not
// a degraded mode.
package cmdbuild

import (
	"fmt"
	"strconv"

	"github.com/kballard/go-shellquote"
)

// ❌ MissingFieldError reports a required field that was empty when a
// command was about to be built.
type MissingFieldError struct {
	Command string // Command being built (e.g. "rsync")
	Field   string // Name of the empty field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("building %s command: required field %q is empty", e.Command, e.Field)
}

func missingField(command, field string) error {
	return &MissingFieldError{Command: command, Field: field}
}

// 🔐 Remote parameterizes command construction for one remote endpoint.
// It is never mutated by a builder.
type Remote struct {
	Host string
	User string
	Port int    // 0 means the default port 22
	Key  string // Optional private key path
}

// userHost renders the [user@]host form used by ssh, scp and rsync.
func (r *Remote) userHost() string {
	if r.User == "" {
		return r.Host
	}
	return r.User + "@" + r.Host
}

func (r *Remote) port() string {
	if r.Port == 0 {
		return "22"
	}
	return strconv.Itoa(r.Port)
}

func (r *Remote) validate(command string) error {
	if r == nil {
		return missingField(command, "remote")
	}
	if r.Host == "" {
		return missingField(command, "remote.host")
	}
	return nil
}

// join serializes argv into a single fully-quoted command line.
func join(args []string) string {
	return shellquote.Join(args...)
}
