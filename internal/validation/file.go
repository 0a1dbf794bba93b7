package validation

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for file uploads.
// Extensions maps each accepted extension to the content types that
// http.DetectContentType may report for it.
type FileConstraints struct {
	Extensions map[string][]string
	MaxSize    int64
}

// StudyMaterialConstraints accepts the formats the upload screen offers.
// Legacy .doc files have no magic number DetectContentType knows about.
var StudyMaterialConstraints = FileConstraints{
	Extensions: map[string][]string{
		".pdf":  {"application/pdf"},
		".txt":  {"text/plain"},
		".md":   {"text/plain"},
		".doc":  {"application/octet-stream"},
		".docx": {"application/zip", "application/octet-stream"},
	},
	MaxSize: 20 << 20, // 20MB
}

// ValidateFile checks a multipart upload against one or more constraint
// sets and returns the detected content type.
// If multiple constraints are provided, the file must match at least one.
func ValidateFile(header *multipart.FileHeader, constraints ...FileConstraints) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", Errorf("failed to open file")
	}
	defer func() { _ = file.Close() }()

	// http.DetectContentType reads max 512 bytes to determine MIME type
	buffer := make([]byte, 512)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", Errorf("failed to read file")
	}

	return ValidateContent(header.Filename, header.Size, buffer[:n], constraints...)
}

// ValidateContent validates a file by name, size and leading bytes.
func ValidateContent(filename string, size int64, head []byte, constraints ...FileConstraints) (string, error) {
	if len(constraints) == 0 {
		return "", Errorf("no file constraints provided")
	}

	var lastErr error
	for _, c := range constraints {
		detected, err := validateAgainst(filename, size, head, c)
		if err == nil {
			return detected, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func validateAgainst(filename string, size int64, head []byte, c FileConstraints) (string, error) {
	if size <= 0 {
		return "", Errorf("file is empty")
	}
	if size > c.MaxSize {
		return "", Errorf("file too large: maximum size is %d MB", c.MaxSize/(1<<20))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	allowed, ok := c.Extensions[ext]
	if !ok {
		return "", Errorf("invalid file extension: %q", ext)
	}

	// Detected from content, so a renamed binary is still rejected
	detected, _, err := mime.ParseMediaType(http.DetectContentType(head))
	if err != nil {
		detected = "application/octet-stream"
	}
	for _, a := range allowed {
		if a == detected {
			return contentTypeFor(ext, detected), nil
		}
	}
	return "", Errorf("invalid file type (detected: %s)", detected)
}

// contentTypeFor prefers the registered type for the extension when the
// sniffed one is generic.
func contentTypeFor(ext, detected string) string {
	if detected == "application/octet-stream" || detected == "application/zip" || detected == "text/plain" {
		switch ext {
		case ".md":
			return "text/markdown"
		case ".doc":
			return "application/msword"
		case ".docx":
			return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		}
	}
	return detected
}
