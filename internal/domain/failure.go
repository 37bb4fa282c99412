package domain

// TestFailure represents a failed test with its parsed error details
type TestFailure struct {
	TestName   string
	FilePath   string
	Message    string
	StackTrace []string
	File       string
	Line       int
	Column     int
	Resolved   bool // Toggled in the failure viewer
}
