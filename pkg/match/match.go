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

// Package match decides whether relative paths are excluded or included by
// a set of patterns. A pattern is one of a closed set of kinds: an exact
// relative path, a directory prefix (trailing separator), or a glob. Each
// kind has exactly one matching function; patterns are independent
// predicates and their order never affects the outcome.
package match

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind classifies a pattern.
type Kind int

const (
	KindExact  Kind = iota // Full relative path
	KindPrefix             // Directory prefix, trailing "/"
	KindGlob               // Contains * or ** wildcards
)

// String returns a string representation of the pattern kind.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindPrefix:
		return "prefix"
	case KindGlob:
		return "glob"
	default:
		return "unknown"
	}
}

// Classify determines the kind of a pattern. Wildcards win over a trailing
// separator so "build/*/" stays a glob.
func Classify(pattern string) Kind {
	if strings.ContainsAny(pattern, "*?[") {
		return KindGlob
	}
	if strings.HasSuffix(pattern, "/") {
		return KindPrefix
	}
	return KindExact
}

// Matches reports whether relPath matches pattern. Paths use forward
// slashes; relPath must be relative to the tree root. Pure function.
func Matches(relPath, pattern string) bool {
	switch Classify(pattern) {
	case KindPrefix:
		// The directory entry itself matches, as does everything under it.
		return relPath == strings.TrimSuffix(pattern, "/") ||
			strings.HasPrefix(relPath, pattern)
	case KindGlob:
		// doublestar: * stops at path separators, ** crosses them.
		ok, err := doublestar.Match(pattern, relPath)
		return err == nil && ok
	default:
		return relPath == pattern
	}
}

// Any reports whether relPath matches any pattern in the set.
func Any(relPath string, patterns []string) bool {
	for _, p := range patterns {
		if Matches(relPath, p) {
			return true
		}
	}
	return false
}

// Excluded reports whether relPath matches any of the exclude patterns.
func Excluded(relPath string, patterns []string) bool {
	return Any(relPath, patterns)
}

// Included reports whether the directory at relPath survives an include
// restriction: it matches an include directly, or an include pattern could
// still match somewhere below it, so intermediate directories stay visible
// in previews without themselves being leaf matches.
func Included(relPath string, includes []string) bool {
	for _, p := range includes {
		if Matches(relPath, p) || couldMatchBeneath(relPath, p) {
			return true
		}
	}
	return false
}

// Subsumed reports whether a pattern names the directory at dir or a
// directory above it, meaning the whole subtree is included and needs no
// further per-path checks. Globs never subsume: they match individual
// paths, not subtrees.
func Subsumed(dir string, patterns []string) bool {
	for _, p := range patterns {
		switch Classify(p) {
		case KindPrefix:
			if Matches(dir, p) {
				return true
			}
		case KindExact:
			if dir == p || strings.HasPrefix(dir, p+"/") {
				return true
			}
		}
	}
	return false
}

// couldMatchBeneath reports whether pattern could match a path strictly
// below the directory at dir. For a glob, each leading directory segment
// must match its pattern segment; a ** consumes everything from there down.
func couldMatchBeneath(dir, pattern string) bool {
	if Classify(pattern) != KindGlob {
		return strings.HasPrefix(pattern, dir+"/")
	}

	pSegs := strings.Split(pattern, "/")
	for i, seg := range strings.Split(dir, "/") {
		if i >= len(pSegs) {
			return false
		}
		if pSegs[i] == "**" {
			return true
		}
		if ok, err := doublestar.Match(pSegs[i], seg); err != nil || !ok {
			return false
		}
	}
	return len(pSegs) > strings.Count(dir, "/")+1
}
