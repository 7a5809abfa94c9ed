// Package ui provides the terminal presentation layer: lipgloss styles,
// a spinner wrapper for long-running steps, table rendering and simple
// stdin prompts. It holds no pipeline logic.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	headerCellStyle = lipgloss.NewStyle().Bold(true)
)

// Banner prints the application banner.
func Banner(title string) {
	fmt.Println(bannerStyle.Render(title))
}

// Box prints text inside a rounded box.
func Box(text string) {
	fmt.Println(boxStyle.Render(text))
}

// Success prints a green check line.
func Success(format string, args ...any) {
	fmt.Println(successStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Warning prints a yellow warning line.
func Warning(format string, args ...any) {
	fmt.Println(warningStyle.Render("! " + fmt.Sprintf(format, args...)))
}

// Error prints a red error line.
func Error(format string, args ...any) {
	fmt.Println(errorStyle.Render("✗ " + fmt.Sprintf(format, args...)))
}

// Info prints a cyan info line.
func Info(format string, args ...any) {
	fmt.Println(infoStyle.Render("• " + fmt.Sprintf(format, args...)))
}
