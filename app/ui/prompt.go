package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var stdin = bufio.NewReader(os.Stdin)

// PromptString asks for a line of input and returns it trimmed.
func PromptString(label string) string {
	fmt.Print(infoStyle.Render(label) + " ")
	line, err := stdin.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// Confirm asks a yes/no question; empty input selects the default.
func Confirm(question string, defaultYes bool) bool {
	suffix := " [o/N]"
	if defaultYes {
		suffix = " [O/n]"
	}
	answer := strings.ToLower(PromptString(question + suffix))
	if answer == "" {
		return defaultYes
	}
	return answer == "o" || answer == "y" || answer == "oui" || answer == "yes"
}

// SelectOption shows a numbered menu and returns the chosen index, or -1
// when the operator skips (empty input).
func SelectOption(label string, options []string) int {
	fmt.Println(infoStyle.Render(label))
	for i, opt := range options {
		fmt.Printf("  %2d. %s\n", i+1, opt)
	}
	answer := PromptString("Choix (vide pour passer):")
	if answer == "" {
		return -1
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(options) {
		Warning("choix invalide: %s", answer)
		return -1
	}
	return n - 1
}
