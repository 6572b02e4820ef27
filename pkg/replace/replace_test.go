package replace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/movesync/pkg/config"
)

func env(name, vhost, path string) *config.Environment {
	return &config.Environment{Name: name, Vhost: vhost, Path: path}
}

func TestRules(t *testing.T) {
	rules, err := Rules(
		env("local", "http://localhost:8080/", "/home/me/sites/example"),
		env("production", "https://example.com", "/var/www/example"),
	)
	require.NoError(t, err)

	assert.Equal(t, []Rule{
		{From: "http://localhost:8080", To: "https://example.com"},
		{From: "/home/me/sites/example", To: "/var/www/example"},
	}, rules)
}

func TestRules_SamePathEmitsOnlyVhostRule(t *testing.T) {
	rules, err := Rules(
		env("a", "http://a.test", "/var/www/site"),
		env("b", "http://b.test", "/var/www/site"),
	)
	require.NoError(t, err)
	assert.Equal(t, []Rule{{From: "http://a.test", To: "http://b.test"}}, rules)
}

func TestRules_MissingVhost(t *testing.T) {
	_, err := Rules(env("a", "", "/x"), env("b", "http://b.test", "/y"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"a"`)
}
