package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		pattern string
		want    Kind
	}{
		{"wp-config.php", KindExact},
		{"wp-content/uploads/", KindPrefix},
		{"*.log", KindGlob},
		{"wp-content/**/*.php", KindGlob},
		{"build/*/", KindGlob},
		{"cache/", KindPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.pattern))
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		relPath string
		pattern string
		want    bool
	}{
		{"exact_hit", "wp-config.php", "wp-config.php", true},
		{"exact_miss", "wp-config.php.bak", "wp-config.php", false},
		{"exact_nested", "a/b/c.txt", "a/b/c.txt", true},

		{"prefix_descendant", "cache/page/index.html", "cache/", true},
		{"prefix_directory_itself", "cache", "cache/", true},
		{"prefix_miss_sibling", "cache2/file", "cache/", false},
		{"prefix_deep", "wp-content/uploads/2024/01/a.jpg", "wp-content/uploads/", true},

		{"glob_star_same_level", "error.log", "*.log", true},
		{"glob_star_does_not_cross_separator", "logs/error.log", "*.log", false},
		{"glob_doublestar_crosses_separator", "logs/deep/error.log", "**/*.log", true},
		{"glob_doublestar_matches_top_level", "error.log", "**/*.log", true},
		{"glob_mid_pattern", "wp-content/themes/mytheme/style.css", "wp-content/themes/*/style.css", true},
		{"glob_mid_pattern_miss", "wp-content/themes/a/b/style.css", "wp-content/themes/*/style.css", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.relPath, tt.pattern))
		})
	}
}

// Matching must be a pure function of its arguments.
func TestMatches_Idempotent(t *testing.T) {
	pairs := [][2]string{
		{"cache/page/index.html", "cache/"},
		{"error.log", "*.log"},
		{"wp-config.php", "wp-config.php"},
	}
	for _, p := range pairs {
		first := Matches(p[0], p[1])
		second := Matches(p[0], p[1])
		assert.Equal(t, first, second)
	}
}

func TestExcluded(t *testing.T) {
	patterns := []string{".git/", "*.log", "wp-config.php"}

	assert.True(t, Excluded(".git/HEAD", patterns))
	assert.True(t, Excluded("debug.log", patterns))
	assert.True(t, Excluded("wp-config.php", patterns))
	assert.False(t, Excluded("wp-content/uploads/a.jpg", patterns))
	assert.False(t, Excluded("readme.md", nil))
}

func TestIncluded(t *testing.T) {
	includes := []string{"wp-content/uploads/", "wp-config.php"}

	assert.True(t, Included("wp-config.php", includes), "direct match")
	assert.True(t, Included("wp-content/uploads/a.jpg", includes), "under prefix include")
	assert.True(t, Included("wp-content", includes), "ancestor of an include stays visible")
	assert.False(t, Included("wp-admin", includes))
	assert.False(t, Included("wp-content/themes", includes))
}

func TestIncluded_GlobAncestors(t *testing.T) {
	// A directory survives when a glob include could still match beneath
	// it, segment by segment; ** reaches arbitrarily deep.
	assert.True(t, Included("wp-content", []string{"**/*.jpg"}))
	assert.True(t, Included("wp-content/uploads", []string{"**/*.jpg"}))
	assert.True(t, Included("wp-content", []string{"wp-content/*.jpg"}))
	assert.True(t, Included("wp-content", []string{"wp-*/uploads/*.jpg"}))

	assert.False(t, Included("wp-admin", []string{"wp-content/*.jpg"}))
	assert.False(t, Included("wp-content/uploads", []string{"wp-content/*.jpg"}),
		"single-star glob cannot reach below a matched directory")
}

func TestSubsumed(t *testing.T) {
	assert.True(t, Subsumed("wp-content", []string{"wp-content/"}))
	assert.True(t, Subsumed("wp-content/uploads", []string{"wp-content/"}))
	assert.True(t, Subsumed("wp-content/uploads", []string{"wp-content/uploads"}))
	assert.True(t, Subsumed("wp-content/uploads/2024", []string{"wp-content/uploads"}))

	assert.False(t, Subsumed("wp-content", []string{"wp-content/uploads"}),
		"a deeper include does not subsume its ancestors")
	assert.False(t, Subsumed("wp-content", []string{"wp-content/**"}),
		"globs match individual paths, never whole subtrees")
}
