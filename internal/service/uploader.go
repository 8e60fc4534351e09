package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
)

// FileUploader stores an uploaded artifact and returns its public URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// DefaultSubmissionFilename names submissions whose original filename is unknown.
const DefaultSubmissionFilename = "assignment.pdf"

// SubmissionPath scopes a stored submission under one folder per assignment,
// keyed by student, so resubmissions land side by side in storage.
func SubmissionPath(assignmentID, studentID uint, filename string) string {
	if filename == "" {
		filename = DefaultSubmissionFilename
	}
	return fmt.Sprintf("assignments/%d/students/%d/%s", assignmentID, studentID, filename)
}

// DownloadURL derives the forced-download variant of a file URL by appending a
// content-disposition hint carrying the encoded original filename. Spaces are
// encoded as %20, not +, so the hint survives strict query parsers.
func DownloadURL(fileURL, filename string) string {
	if fileURL == "" {
		return ""
	}
	if filename == "" {
		filename = DefaultSubmissionFilename
	}
	return fileURL + "?fl_attachment=" + strings.ReplaceAll(url.QueryEscape(filename), "+", "%20")
}

// parseDate accepts RFC 3339 timestamps and plain calendar dates.
func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
