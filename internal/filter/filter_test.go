package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesFolder(t *testing.T) {
	assert.True(t, MatchesFolder("anything/at/all.png", nil), "empty prefix list matches all")
	assert.True(t, MatchesFolder("assets/images/logo.png", []string{"assets/"}))
	assert.True(t, MatchesFolder("Assets/Images/logo.png", []string{"assets/"}), "prefix match is case-insensitive")
	assert.True(t, MatchesFolder("icons/x.svg", []string{"assets/", "icons/"}), "prefixes are OR-combined")
	assert.False(t, MatchesFolder("static/logo.png", []string{"assets/"}))
}

func TestMatchesFile(t *testing.T) {
	assert.True(t, MatchesFile("a/b/c.png", nil), "empty pattern list matches all")
	assert.True(t, MatchesFile("assets/images/logo-large.png", []string{"logo"}))
	assert.True(t, MatchesFile("assets/LOGO.png", []string{"logo"}), "substring match is case-insensitive")
	assert.True(t, MatchesFile("assets/banner.png", []string{"logo", "banner"}), "patterns are OR-combined")
	assert.False(t, MatchesFile("logo/banner.png", []string{"logo"}), "only the final segment is matched")
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".png", Ext("assets/logo.png"))
	assert.Equal(t, ".png", Ext("assets/LOGO.PNG"))
	assert.Equal(t, ".gz", Ext("assets/archive.tar.gz"))
	assert.Equal(t, "", Ext("assets/Makefile"))
	assert.Equal(t, "", Ext("assets.v2/Makefile"), "dots in folders do not count")
}

func TestClassifyDirectoryMarkers(t *testing.T) {
	configs := []Config{
		NewConfig(nil, nil, false, nil, nil),
		NewConfig([]string{"assets/"}, []string{"logo"}, true, nil, nil),
	}
	for _, cfg := range configs {
		for _, key := range []string{"", "   ", "assets/", "assets/images/"} {
			d := Classify(key, cfg)
			assert.False(t, d.Include, "key %q", key)
			assert.Equal(t, ReasonDirectoryMarker, d.Reason, "key %q", key)
		}
	}
}

func TestClassifyScenarios(t *testing.T) {
	t.Run("include_matching_folder_and_extension", func(t *testing.T) {
		cfg := NewConfig([]string{"assets/"}, nil, true, nil, nil)
		d := Classify("assets/images/logo.png", cfg)
		assert.True(t, d.Include)
	})

	t.Run("folder_mismatch", func(t *testing.T) {
		cfg := NewConfig([]string{"assets/"}, nil, false, nil, nil)
		d := Classify("static/logo.png", cfg)
		assert.False(t, d.Include)
		assert.Equal(t, ReasonFolderMismatch, d.Reason)
	})

	t.Run("file_mismatch", func(t *testing.T) {
		cfg := NewConfig(nil, []string{"logo"}, false, nil, nil)
		d := Classify("assets/banner.png", cfg)
		assert.False(t, d.Include)
		assert.Equal(t, ReasonFileMismatch, d.Reason)
	})

	t.Run("skipped_extension", func(t *testing.T) {
		cfg := NewConfig(nil, nil, true, nil, nil)
		d := Classify("assets/readme.txt", cfg)
		assert.False(t, d.Include)
		assert.Equal(t, ReasonSkippedExtension, d.Reason)
	})

	t.Run("unlisted_extension", func(t *testing.T) {
		cfg := NewConfig(nil, nil, true, nil, nil)
		d := Classify("assets/video.mp4", cfg)
		assert.False(t, d.Include)
		assert.Equal(t, ReasonUnlistedExtension, d.Reason)
	})

	t.Run("no_extension", func(t *testing.T) {
		cfg := NewConfig(nil, nil, true, nil, nil)
		d := Classify("assets/Makefile", cfg)
		assert.False(t, d.Include)
		assert.Equal(t, ReasonNoExtension, d.Reason)
	})

	t.Run("extension_filter_disabled_includes_everything", func(t *testing.T) {
		cfg := NewConfig(nil, nil, false, nil, nil)
		for _, key := range []string{"a.txt", "b.mp4", "Makefile", "deep/path/x.html"} {
			assert.True(t, Classify(key, cfg).Include, "key %q", key)
		}
	})
}

func TestClassifyRuleOrder(t *testing.T) {
	// Folder mismatch must win over the extension rules for reason
	// reporting, and skip must win over the allow list.
	cfg := NewConfig([]string{"assets/"}, nil, true, nil, nil)
	d := Classify("static/style.css", cfg)
	assert.Equal(t, ReasonFolderMismatch, d.Reason)

	cfg = NewConfig(nil, nil, true, []string{".txt"}, []string{".txt"})
	d = Classify("notes.txt", cfg)
	assert.Equal(t, ReasonSkippedExtension, d.Reason, "skip list is checked before the allow list")
}

func TestClassifyEmptyFiltersDependOnlyOnExtension(t *testing.T) {
	cfg := NewConfig(nil, nil, true, nil, nil)
	assert.True(t, Classify("anywhere/deep/logo.webp", cfg).Include)
	assert.False(t, Classify("anywhere/deep/page.html", cfg).Include)
}

func TestClassifyCustomExtensionSets(t *testing.T) {
	cfg := NewConfig(nil, nil, true, []string{".PDF"}, []string{".TMP"})
	assert.True(t, Classify("docs/report.pdf", cfg).Include, "configured sets are matched case-insensitively")
	assert.Equal(t, ReasonSkippedExtension, Classify("docs/report.tmp", cfg).Reason)
	assert.Equal(t, ReasonUnlistedExtension, Classify("docs/report.png", cfg).Reason)
}
