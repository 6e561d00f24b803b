package cmd

import (
	"os"
	"strings"
)

func openTablesFile(path string) (*os.File, error) {
	return os.Open(path)
}

func isYAMLPath(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
