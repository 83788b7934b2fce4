package powersum

var (
	Version   = "v0.0.0-in-progress"
	GitCommit = "unknown"
)

// LibraryVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func LibraryVersion() string {
	return Version
}

// BuildCommit returns the commit the binary was built from, if recorded.
func BuildCommit() string {
	return GitCommit
}
