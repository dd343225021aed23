package policy

import (
	"fmt"
	"strings"
)

// Check identifies which validation step rejected a download request.
type Check string

const (
	CheckOrigin            Check = "untrusted origin"
	CheckURLExtension      Check = "disallowed url extension"
	CheckFilename          Check = "unsafe filename"
	CheckFilenameExtension Check = "disallowed filename extension"
)

// ValidationError reports the first check that failed for a request. The
// checks run in a fixed order, so the same input always yields the same kind.
type ValidationError struct {
	Check  Check
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Check, e.Detail)
}

// IsSafeFilename reports whether name is usable as a bare artifact file
// name: only alphanumerics, '-', '_' and '.', no ".." substring and no path
// separators. The empty string is unsafe, it cannot form an artifact path.
func IsSafeFilename(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	if strings.Contains(name, "..") {
		return false
	}
	// The character check already excludes separators; kept explicit so the
	// invariant does not depend on the allowed set above.
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return true
}

// ValidateDownloadRequest gates a download before any I/O happens. Four
// checks run in order: trusted URL prefix, URL path extension (query string
// stripped), filename safety, filename extension. The first failure is
// reported.
func (p *Policy) ValidateDownloadRequest(url, filename string) error {
	if !p.trustedOrigin(url) {
		return &ValidationError{Check: CheckOrigin, Detail: fmt.Sprintf("url %q does not match any trusted prefix", url)}
	}
	urlPath, _, _ := strings.Cut(url, "?")
	if !p.allowedExtension(urlPath) {
		return &ValidationError{Check: CheckURLExtension, Detail: fmt.Sprintf("url path %q does not end in an allowed extension", urlPath)}
	}
	if !IsSafeFilename(filename) {
		return &ValidationError{Check: CheckFilename, Detail: fmt.Sprintf("filename %q contains disallowed characters or path elements", filename)}
	}
	if !p.allowedExtension(filename) {
		return &ValidationError{Check: CheckFilenameExtension, Detail: fmt.Sprintf("filename %q does not end in an allowed extension", filename)}
	}
	return nil
}

func (p *Policy) trustedOrigin(url string) bool {
	for _, prefix := range p.TrustedURLPrefixes {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return false
}

func (p *Policy) allowedExtension(s string) bool {
	for _, ext := range p.AllowedExtensions {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}
	return false
}
