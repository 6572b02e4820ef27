package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a movefile from the given path.
// The format is determined by the file extension:
// - .yaml or .yml for YAML
// - .hcl for HCL
// Environment variable references of the form ${VAR} are expanded before
// decoding; an unresolved reference is a configuration defect.
func Load(ctx context.Context, path string) (*Movefile, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading movefile")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading movefile: %w", err)
	}

	data, err = expandEnv(data)
	if err != nil {
		return nil, err
	}

	var mf *Movefile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		mf, err = loadYAML(data)
	case ".hcl":
		mf, err = loadHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported movefile extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	mf.location = path
	if err := mf.Validate(); err != nil {
		return nil, errors.Errorf("validating movefile: %w", err)
	}

	logger.Debug().
		Strs("environments", mf.EnvNames()).
		Int("global_excludes", len(mf.Exclude)).
		Msg("movefile loaded")
	return mf, nil
}

// envRef matches a ${VAR} environment variable reference.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv resolves ${VAR} references against the process environment.
// All unresolved names are collected so the error reports every one at once.
func expandEnv(data []byte) ([]byte, error) {
	var missing []string
	out := envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		name := string(envRef.FindSubmatch(ref)[1])
		value, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
			return ref
		}
		return []byte(value)
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, errors.Errorf("unresolved variable reference(s): %s",
			strings.Join(dedupe(missing), ", "))
	}
	return out, nil
}

func dedupe(in []string) []string {
	out := in[:0]
	for i, s := range in {
		if i == 0 || s != in[i-1] {
			out = append(out, s)
		}
	}
	return out
}

// yamlDatabase, yamlSSH and friends are the on-disk YAML shapes. They are
// decoded strictly and then normalized into the canonical model so the rest
// of the tool never sees format-specific structs.
type yamlDatabase struct {
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Charset  string `yaml:"charset"`
}

type yamlSSH struct {
	Host string `yaml:"host"`
	User string `yaml:"user"`
	Port int    `yaml:"port"`
	Key  string `yaml:"key"`
}

type yamlEnvironment struct {
	Vhost     string        `yaml:"vhost"`
	Path      string        `yaml:"path"`
	CorePath  string        `yaml:"core_path"`
	Database  *yamlDatabase `yaml:"database"`
	SSH       *yamlSSH      `yaml:"ssh"`
	Exclude   []string      `yaml:"exclude"`
	Protected bool          `yaml:"protected"`
}

type yamlMovefile struct {
	Exclude      []string                    `yaml:"exclude"`
	Environments map[string]*yamlEnvironment `yaml:"environments"`
}

// loadYAML decodes a movefile from YAML data, rejecting unknown fields.
func loadYAML(data []byte) (*Movefile, error) {
	var raw yamlMovefile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	mf := &Movefile{
		Exclude:      raw.Exclude,
		Environments: make(map[string]*Environment, len(raw.Environments)),
	}
	for name, env := range raw.Environments {
		if env == nil {
			mf.Environments[name] = nil
			continue
		}
		mf.Environments[name] = &Environment{
			Name:      name,
			Vhost:     env.Vhost,
			Path:      env.Path,
			CorePath:  env.CorePath,
			Database:  (*Database)(env.Database),
			SSH:       (*SSH)(env.SSH),
			Exclude:   env.Exclude,
			Protected: env.Protected,
		}
	}
	return mf, nil
}
