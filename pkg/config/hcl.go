package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// hclMovefile mirrors the HCL movefile shape: one labeled environment block
// per deployment target.
type hclMovefile struct {
	Exclude      []string          `hcl:"exclude,optional"`
	Environments []*hclEnvironment `hcl:"environment,block"`
}

type hclEnvironment struct {
	Name      string       `hcl:"name,label"`
	Vhost     string       `hcl:"vhost"`
	Path      string       `hcl:"path"`
	CorePath  string       `hcl:"core_path,optional"`
	Database  *hclDatabase `hcl:"database,block"`
	SSH       *hclSSH      `hcl:"ssh,block"`
	Exclude   []string     `hcl:"exclude,optional"`
	Protected bool         `hcl:"protected,optional"`
}

type hclDatabase struct {
	Name     string `hcl:"name"`
	User     string `hcl:"user"`
	Password string `hcl:"password,optional"`
	Host     string `hcl:"host,optional"`
	Port     int    `hcl:"port,optional"`
	Charset  string `hcl:"charset,optional"`
}

type hclSSH struct {
	Host string `hcl:"host"`
	User string `hcl:"user,optional"`
	Port int    `hcl:"port,optional"`
	Key  string `hcl:"key,optional"`
}

// loadHCL decodes a movefile from HCL data.
func loadHCL(data []byte, filename string) (*Movefile, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclMovefile
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	mf := &Movefile{
		Exclude:      raw.Exclude,
		Environments: make(map[string]*Environment, len(raw.Environments)),
	}
	for _, env := range raw.Environments {
		if _, dup := mf.Environments[env.Name]; dup {
			return nil, errors.Errorf("environment %q is defined twice", env.Name)
		}
		mf.Environments[env.Name] = &Environment{
			Name:      env.Name,
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
