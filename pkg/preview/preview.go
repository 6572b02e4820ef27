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

// Package preview walks a source tree and produces a collapsed list of
// transfer units for a dry run. The output is proportional to the shape of
// exclusion, not to the total file count: a fully included subtree becomes
// a single entry carrying its cumulative file count.
package preview

import (
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/walteh/movesync/pkg/match"
	"gitlab.com/tozd/go/errors"
)

// 📋 Entry is one row of a dry-run preview
type Entry struct {
	Path      string // Relative path of the directory
	Files     int    // Cumulative file count; meaningful only when Collapsed
	Collapsed bool   // Whole subtree included, nothing emitted beneath it
}

// ⚙️ Options controls a preview scan
type Options struct {
	Excludes           []string // Patterns removing paths from the transfer
	Includes           []string // Patterns restricting the transfer (optional)
	RestrictToIncludes bool     // When set, only include-matched paths survive
}

// 🔍 Scan walks root depth-first and returns the collapsed entry sequence.
// Symbolic links count as single files and are never followed.
func Scan(root string, opts Options) ([]Entry, error) {
	s := &scanner{root: root, opts: opts}

	entries, files, full, err := s.walkDir("", opts.RestrictToIncludes)
	if err != nil {
		return nil, err
	}
	if full {
		return []Entry{{Path: ".", Files: files, Collapsed: true}}, nil
	}
	return entries, nil
}

type scanner struct {
	root string
	opts Options
}

// walkDir scans the directory at rel. It returns the entries to emit if the
// parent does not collapse, the cumulative included file count, and whether
// the whole subtree is included (no exclusions, nothing restricted away).
// restrict is cleared once an include pattern subsumes the subtree, so
// descendants of an included directory need no further per-path checks.
func (s *scanner) walkDir(rel string, restrict bool) (entries []Entry, files int, full bool, err error) {
	dirEntries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, 0, false, errors.Errorf("reading directory %q: %w", rel, err)
	}
	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name() < dirEntries[j].Name()
	})

	full = true
	for _, de := range dirEntries {
		childRel := de.Name()
		if rel != "" {
			childRel = path.Join(rel, de.Name())
		}

		if match.Excluded(childRel, s.opts.Excludes) {
			full = false
			continue
		}

		// A symlink to a directory still counts as a single file; cycles
		// are never entered.
		if !de.IsDir() {
			if restrict && !match.Any(childRel, s.opts.Includes) {
				full = false
				continue
			}
			files++
			continue
		}

		// Directories prune differently from files: one naming the subtree
		// lifts the restriction below it, one an include could still match
		// beneath stays visible, anything else is pruned.
		childRestrict := restrict
		if restrict {
			if match.Subsumed(childRel, s.opts.Includes) {
				childRestrict = false
			} else if !match.Included(childRel, s.opts.Includes) {
				full = false
				continue
			}
		}

		childEntries, childFiles, childFull, err := s.walkDir(childRel, childRestrict)
		if err != nil {
			return nil, 0, false, err
		}
		files += childFiles

		if childFull {
			entries = append(entries, Entry{Path: childRel, Files: childFiles, Collapsed: true})
			continue
		}

		full = false
		// A partially included directory with nothing left beneath it is
		// omitted entirely.
		if childFiles == 0 && len(childEntries) == 0 {
			continue
		}
		entries = append(entries, Entry{Path: childRel})
		entries = append(entries, childEntries...)
	}

	return entries, files, full, nil
}
