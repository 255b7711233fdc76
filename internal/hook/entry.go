package hook

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// ParseEntry splits an entry command shell-style. Comments and newlines end
// words the way sh does.
func ParseEntry(entry string) ([]string, error) {
	if strings.TrimSpace(entry) == "" {
		return []string{}, nil
	}
	return shlex.Split(entry)
}

// splitEntry separates leading VAR=value assignments from the command words.
func splitEntry(entry string) (assign, argv []string, err error) {
	words, err := ParseEntry(entry)
	if err != nil {
		return nil, nil, err
	}
	for i, w := range words {
		if !isAssignment(w) {
			return words[:i], words[i:], nil
		}
	}
	return words, nil, nil
}

func isAssignment(word string) bool {
	name, _, ok := strings.Cut(word, "=")
	return ok && name != "" && !strings.ContainsAny(name, "/ ")
}

// Executable returns the program an entry command starts, skipping
// leading VAR=value assignments.
func Executable(entry string) (string, error) {
	_, argv, err := splitEntry(entry)
	if err != nil {
		return "", err
	}
	if len(argv) == 0 {
		return "", fmt.Errorf("entry %q has no command", entry)
	}
	return argv[0], nil
}
