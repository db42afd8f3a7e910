package discovery

// Candidate is a directory considered while guessing the assignments
// repository.
type Candidate struct {
	Path   string // Absolute directory path
	Reason string // Where the candidate came from, for the log
}
