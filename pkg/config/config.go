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

package config

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gitlab.com/tozd/go/errors"
)

// 🗄️ Database holds credentials for one environment's database
type Database struct {
	Name     string `validate:"required"` // Database name
	User     string `validate:"required"` // Database user
	Password string // Database password (may legitimately be empty)
	Host     string `validate:"required"` // Database host
	Port     int    `validate:"min=0,max=65535"`
	Charset  string // Optional connection charset
}

// 🔐 SSH describes remote access to an environment
type SSH struct {
	Host string `validate:"required"` // Remote host
	User string // Remote user (empty means current user)
	Port int    `validate:"min=0,max=65535"`
	Key  string // Path to private key (optional)
}

// 🌍 Environment is one named deployment target
type Environment struct {
	Name      string    `validate:"-"`            // Environment name (map key in the movefile)
	Vhost     string    `validate:"required,url"` // Public URL
	Path      string    `validate:"required"`     // Filesystem root of the application
	CorePath  string    // Optional separate application-core path
	Database  *Database `validate:"required"`
	SSH       *SSH      // nil for local environments
	Exclude   []string  // Per-environment exclude patterns
	Protected bool      // Refuse pushes without explicit confirmation
}

// 📚 Movefile is the fully resolved configuration
type Movefile struct {
	Exclude      []string // Global exclude patterns
	Environments map[string]*Environment

	location string // Path the movefile was loaded from
}

// IsRemote reports whether the environment is reached over SSH.
func (e *Environment) IsRemote() bool {
	return e.SSH != nil
}

// Location returns the path this movefile was loaded from.
func (mf *Movefile) Location() string {
	return mf.location
}

// 🎯 Env looks up an environment by name
func (mf *Movefile) Env(name string) (*Environment, error) {
	env, ok := mf.Environments[name]
	if !ok {
		return nil, errors.Errorf("environment %q is not defined (have: %s)",
			name, strings.Join(mf.EnvNames(), ", "))
	}
	return env, nil
}

// EnvNames returns the defined environment names, sorted.
func (mf *Movefile) EnvNames() []string {
	names := make([]string, 0, len(mf.Environments))
	for name := range mf.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 🧩 MergedExcludes returns the global patterns unioned with the
// environment's own patterns. Order is preserved but carries no meaning:
// patterns are independent predicates.
func (mf *Movefile) MergedExcludes(env *Environment) []string {
	merged := make([]string, 0, len(mf.Exclude)+len(env.Exclude))
	seen := make(map[string]bool, len(mf.Exclude)+len(env.Exclude))
	for _, p := range mf.Exclude {
		if !seen[p] {
			merged = append(merged, p)
			seen[p] = true
		}
	}
	for _, p := range env.Exclude {
		if !seen[p] {
			merged = append(merged, p)
			seen[p] = true
		}
	}
	return merged
}

// 🔍 Validate checks the resolved configuration, reporting missing fields
// by name before any component consumes the movefile.
func (mf *Movefile) Validate() error {
	if len(mf.Environments) == 0 {
		return errors.Errorf("no environments defined")
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	for _, name := range mf.EnvNames() {
		env := mf.Environments[name]
		if env == nil {
			return errors.Errorf("environment %q is empty", name)
		}
		env.Name = name
		applyDefaults(env)

		if err := v.Struct(env); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return errors.Errorf("environment %q: field %q is missing or invalid",
					name, fieldPath(verrs[0]))
			}
			return errors.Errorf("validating environment %q: %w", name, err)
		}
	}
	return nil
}

// applyDefaults fills optional fields that have conventional values.
func applyDefaults(env *Environment) {
	if env.SSH != nil && env.SSH.Port == 0 {
		env.SSH.Port = 22
	}
	if env.Database != nil && env.Database.Host == "" {
		env.Database.Host = "127.0.0.1"
	}
}

// fieldPath renders a validator namespace like "Environment.Database.Name"
// as the movefile's own spelling ("database.name").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}
