package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header            *lipgloss.Style
	HeaderDetail      *lipgloss.Style
	ColumnTitle       *lipgloss.Style
	Directory         *lipgloss.Style
	File              *lipgloss.Style
	Symlink           *lipgloss.Style
	Hidden            *lipgloss.Style
	SelectedItem      *lipgloss.Style
	Marked            *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	TaskLabel         *lipgloss.Style
	TaskDone          *lipgloss.Style
	Footer            *lipgloss.Style
	Prompt            *lipgloss.Style
	PromptText        *lipgloss.Style
	PromptPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
	ProgressStart     string
	ProgressEnd       string
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	HeaderDetail: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	ColumnTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true).Underline(true),
	),
	Directory: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	File: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Symlink: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("37")).Italic(true),
	),
	Hidden: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Marked: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	TaskLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	TaskDone: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PromptText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	PromptPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	ProgressStart: "#5A56E0",
	ProgressEnd:   "#EE6FF8",
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
