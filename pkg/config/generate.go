package config

import (
	"strings"
)

// GenerateConfigContent returns the default configuration with every value
// commented out, suitable as a starting point for a user config file.
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultContent())
}

// commentOutConfigValues comments out every assignment, keeping comments,
// blank lines and section headers. Lines inside a multi-line string are
// commented as well.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inMultiline := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inMultiline {
			result = append(result, "# "+line)
			if strings.Count(line, `"""`)%2 == 1 {
				inMultiline = false
			}
			continue
		}

		switch {
		case trimmed == "":
			result = append(result, line)
		case strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
			if strings.Count(line, `"""`)%2 == 1 {
				inMultiline = true
			}
		}
	}

	return strings.Join(result, "\n")
}
