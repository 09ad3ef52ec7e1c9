package file

import "os"

// Exists returns true if a file exists at the given path and false otherwise.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
