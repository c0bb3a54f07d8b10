package docload

import (
	"fmt"
	"os"
	"strings"
)

// loadText reads a plain-text document line by line.
func loadText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text document: %w", err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return cleanLines(strings.Split(text, "\n")), nil
}
