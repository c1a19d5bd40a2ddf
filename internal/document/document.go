// Package document validates uploaded evidence metadata before the audited
// attach operation proceeds. File contents are handled by the storage
// collaborator and never seen here.
package document

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// MaxFileSize is the largest accepted upload, in bytes (10 MiB).
const MaxFileSize int64 = 10 * 1024 * 1024

// Rule names a single validation check.
type Rule string

const (
	RuleFileName  Rule = "file_name"
	RuleFileSize  Rule = "file_size"
	RuleMimeType  Rule = "mime_type"
	RuleExtension Rule = "extension"
)

// Violation is one failed rule.
type Violation struct {
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// Result lists every violated rule, not just the first.
type Result struct {
	IsValid bool        `json:"is_valid"`
	Errors  []Violation `json:"errors"`
}

// Messages flattens violations for error envelopes.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, v := range r.Errors {
		out = append(out, v.Message)
	}
	return out
}

// allowedTypes maps each accepted MIME type to the file extensions consistent with it.
var allowedTypes = map[string][]string{
	"application/pdf": {"pdf"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {"docx"},
	"application/msword": {"doc"},
	"image/jpeg":         {"jpg", "jpeg"},
	"image/png":          {"png"},
	"image/gif":          {"gif"},
}

// Validate checks name, size, declared type and extension/type consistency.
// All checks run independently.
func Validate(fileName string, fileSize int64, mimeType string) Result {
	violations := []Violation{}

	name := strings.TrimSpace(fileName)
	if name == "" {
		violations = append(violations, Violation{RuleFileName, "file name is required"})
	}

	if fileSize <= 0 {
		violations = append(violations, Violation{RuleFileSize, "file is empty"})
	} else if fileSize > MaxFileSize {
		violations = append(violations, Violation{RuleFileSize,
			fmt.Sprintf("file size %d bytes exceeds the maximum of %d bytes", fileSize, MaxFileSize)})
	}

	mime := strings.ToLower(strings.TrimSpace(mimeType))
	extensions, known := allowedTypes[mime]
	if !known {
		violations = append(violations, Violation{RuleMimeType,
			fmt.Sprintf("file type %q is not allowed", mimeType)})
	}

	// Consistency is only checkable for a known type and a present name.
	if known && name != "" {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
		if !slices.Contains(extensions, ext) {
			violations = append(violations, Violation{RuleExtension,
				fmt.Sprintf("extension %q does not match declared type %s", ext, mime)})
		}
	}

	return Result{IsValid: len(violations) == 0, Errors: violations}
}
