package preflight

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// exists reports whether path can be stat'ed. Directories count.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CheckEnvFile fails with ErrMissingFile when the environment file is absent.
func CheckEnvFile(path, display string) error {
	if !exists(path) {
		return newCheckError(ErrMissingFile, fmt.Sprintf("%s file not found", display), nil)
	}
	return nil
}

// CheckRequiredVars reads the environment file and fails with
// ErrMissingVariable listing every required name that has no non-empty
// assignment.
func CheckRequiredVars(path, display string, required []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newCheckError(ErrMissingFile, fmt.Sprintf("%s file could not be read", display), err)
	}

	missing := MissingVars(string(data), required)
	if len(missing) > 0 {
		return &CheckError{
			Kind:    ErrMissingVariable,
			Message: "Missing required environment variables:",
			Missing: missing,
		}
	}
	return nil
}

// MissingVars returns, in order, the names in required that have no line of
// the form NAME=<at least one character> in content.
func MissingVars(content string, required []string) []string {
	content = normalizeLineEndings(content)

	var missing []string
	for _, name := range required {
		pattern := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(name) + `=.+`)
		if !pattern.MatchString(content) {
			missing = append(missing, name)
		}
	}
	return missing
}

// normalizeLineEndings converts CRLF and lone CR to LF so "NAME=\r" is empty.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// CheckClaudeConfig validates the Claude configuration at path. found is
// false when the file is absent, which is not an error.
func CheckClaudeConfig(path string) (found bool, err error) {
	if !exists(path) {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return true, newCheckError(ErrParse, fmt.Sprintf("Invalid Claude config JSON: %v", err), err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return true, newCheckError(ErrParse, fmt.Sprintf("Invalid Claude config JSON: %v", err), err)
	}
	if doc == nil {
		return true, newCheckError(ErrParse, "Invalid Claude config JSON: document is null", nil)
	}

	obj, ok := doc.(map[string]interface{})
	if !ok || !truthy(obj["mcpServers"]) {
		return true, newCheckError(ErrInvalidShape, "Invalid Claude config: missing mcpServers", nil)
	}
	return true, nil
}

// truthy treats null, false, 0 and "" as absent.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// CheckPrompt fails with ErrMissingFile when the system prompt is absent.
func CheckPrompt(path string) error {
	if !exists(path) {
		return newCheckError(ErrMissingFile, "System prompt not found", nil)
	}
	return nil
}

// isCheckError reports whether err carries a check failure kind.
func isCheckError(err error) (*CheckError, bool) {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
