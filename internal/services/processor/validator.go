package processor

import "strings"

var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
}

// IsSupported reports whether filename has a .jpg or .jpeg extension, in
// any case. File content is not inspected.
func IsSupported(filename string) bool {
	return supportedExtensions[strings.ToLower(ext(filename))]
}
