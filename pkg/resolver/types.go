package resolver

// Outputs are the values emitted for downstream workflow steps. CurrentVersion
// and LatestReleaseTag stay empty when the repository has no release yet.
type Outputs struct {
	LatestReleaseTag string
	CurrentVersion   string
	NewVersion       string
	NewMajorVersion  string
}
