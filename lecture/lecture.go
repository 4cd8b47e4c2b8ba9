// Package lecture holds the shared domain model: immutable lecture records
// as fetched from a provider, their parsed meeting times, and the mutable
// schedule entries built from them.
package lecture

// Lecture is one record of a reference dataset. Records are created by a
// fetch and never mutated afterwards, so every consumer can share the same
// backing data without copying.
type Lecture struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Grade    int    `json:"grade"`
	Credits  string `json:"credits"`
	Major    string `json:"major"`
	Schedule string `json:"schedule"` // provider descriptor, e.g. "월1,2/수3,4"
}
