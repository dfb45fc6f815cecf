// Package filter decides which object keys a run operates on. All
// predicates are pure and case-insensitive; the selector never performs
// I/O and never fails.
package filter

import "strings"

// Default extension sets, mirroring what the tool is meant for: long-cache
// image assets in, frequently-edited web assets out.
var (
	DefaultAllowedExtensions = []string{
		".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".ico",
		".svg", ".tiff", ".tif", ".avif", ".heic", ".heif",
	}
	DefaultSkippedExtensions = []string{
		".html", ".htm", ".css", ".js", ".json", ".xml", ".txt",
	}
)

// Reason classifies why a key was excluded from a run.
type Reason string

const (
	ReasonDirectoryMarker   Reason = "directory marker"
	ReasonFolderMismatch    Reason = "does not match folder filter"
	ReasonFileMismatch      Reason = "does not match file filter"
	ReasonNoExtension       Reason = "no extension"
	ReasonSkippedExtension  Reason = "skipped extension"
	ReasonUnlistedExtension Reason = "extension not in allowed list"
)

// Decision is the outcome of classifying a single key.
type Decision struct {
	Include bool
	Reason  Reason // set only when Include is false
}

// Config is the immutable selection configuration for one run.
type Config struct {
	FolderPrefixes  []string
	FilePatterns    []string
	ExtensionFilter bool

	allowed map[string]struct{}
	skipped map[string]struct{}
}

// NewConfig builds a Config. Empty allowed/skipped slices fall back to the
// defaults when the extension filter is enabled.
func NewConfig(folders, files []string, extensionFilter bool, allowed, skipped []string) Config {
	cfg := Config{
		FolderPrefixes:  folders,
		FilePatterns:    files,
		ExtensionFilter: extensionFilter,
	}
	if extensionFilter {
		if len(allowed) == 0 {
			allowed = DefaultAllowedExtensions
		}
		if len(skipped) == 0 {
			skipped = DefaultSkippedExtensions
		}
		cfg.allowed = toSet(allowed)
		cfg.skipped = toSet(skipped)
	}
	return cfg
}

func toSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = struct{}{}
	}
	return set
}

// MatchesFolder reports whether key starts with any of the prefixes,
// ignoring case. An empty prefix list matches everything.
func MatchesFolder(key string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	lower := strings.ToLower(key)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// MatchesFile reports whether the final path segment of key contains any
// of the patterns, ignoring case. An empty pattern list matches everything.
func MatchesFile(key string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	name := strings.ToLower(baseName(key))
	for _, p := range patterns {
		if strings.Contains(name, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// Ext returns the lower-cased extension (including the dot) of the final
// path segment, or "" when the segment has none.
func Ext(key string) string {
	name := baseName(key)
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i:])
}

func baseName(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}

// Classify applies the selection rules in order. The first rule that
// excludes the key determines the reported reason.
func Classify(key string, cfg Config) Decision {
	if strings.TrimSpace(key) == "" || strings.HasSuffix(key, "/") {
		return Decision{Reason: ReasonDirectoryMarker}
	}
	if len(cfg.FolderPrefixes) > 0 && !MatchesFolder(key, cfg.FolderPrefixes) {
		return Decision{Reason: ReasonFolderMismatch}
	}
	if len(cfg.FilePatterns) > 0 && !MatchesFile(key, cfg.FilePatterns) {
		return Decision{Reason: ReasonFileMismatch}
	}
	if cfg.ExtensionFilter {
		ext := Ext(key)
		if ext == "" {
			return Decision{Reason: ReasonNoExtension}
		}
		if _, ok := cfg.skipped[ext]; ok {
			return Decision{Reason: ReasonSkippedExtension}
		}
		if _, ok := cfg.allowed[ext]; !ok {
			return Decision{Reason: ReasonUnlistedExtension}
		}
	}
	return Decision{Include: true}
}
