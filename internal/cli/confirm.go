package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// promptYesNo prints prompt and reads a single line from stdin.
// Anything other than y/yes counts as no.
func promptYesNo(prompt string) bool {
	fmt.Print(prompt)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
