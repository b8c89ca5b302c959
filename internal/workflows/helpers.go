package workflows

import "os"

// fileExistsCheck reports whether path exists and is a regular file.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
