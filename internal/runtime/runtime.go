package runtime

// Build variables, set with -ldflags "-X".
var (
	Version   string
	GitCommit string
)

// VersionString returns "Version (commit: GitCommit)" with placeholders for
// unset values.
func VersionString() string {
	v, c := Version, GitCommit
	if v == "" {
		v = "dev"
	}
	if c == "" {
		c = "unknown"
	}
	return v + " (commit: " + c + ")"
}
