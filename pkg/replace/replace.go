// Package replace derives the URL and path rewrite rules a database move
// needs so content keeps pointing at the destination environment.
package replace

import (
	"strings"

	"github.com/walteh/movesync/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is one from/to rewrite applied across the destination database.
type Rule struct {
	From string
	To   string
}

// 🎯 Rules returns the rewrites for a move from one environment to
// another: the public URL pair and, when they differ, the filesystem root
// pair (absolute paths stored in content and options).
func Rules(from, to *config.Environment) ([]Rule, error) {
	if from.Vhost == "" {
		return nil, errors.Errorf("environment %q has no vhost to rewrite from", from.Name)
	}
	if to.Vhost == "" {
		return nil, errors.Errorf("environment %q has no vhost to rewrite to", to.Name)
	}

	rules := []Rule{{From: trimSlash(from.Vhost), To: trimSlash(to.Vhost)}}
	if from.Path != to.Path && from.Path != "" && to.Path != "" {
		rules = append(rules, Rule{From: trimSlash(from.Path), To: trimSlash(to.Path)})
	}
	return rules, nil
}

// trimSlash normalizes away a trailing slash so "https://a.com/" and
// "https://a.com" produce identical rewrites.
func trimSlash(s string) string {
	if s == "/" {
		return s
	}
	return strings.TrimRight(s, "/")
}
