package resume

import (
	"path/filepath"
	"strings"
)

// fileTypes maps an allowed resume extension to its content type. Lookup is a
// pure function so validation stays independent of the storage backend.
var fileTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ContentTypeFor returns the content type for an allowed resume file name.
// The second result is false for any extension outside the whitelist.
func ContentTypeFor(fileName string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(fileName))
	ct, ok := fileTypes[ext]
	return ct, ok
}
