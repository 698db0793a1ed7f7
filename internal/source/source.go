// Package source reads compiler input from a required file path.
package source

import "os"

// Read reads the UTF-8 source text at path.
func Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
