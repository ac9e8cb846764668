package pipeline

import "fmt"

// FormatImage renders a successful generation as a markdown image reference.
func FormatImage(url string) string {
	return fmt.Sprintf("![image](%s)", url)
}

// FormatError renders a failure as a single plain-text line. The underlying
// message is kept verbatim.
func FormatError(err error) string {
	return fmt.Sprintf("Error: %s", err)
}
