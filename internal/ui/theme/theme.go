package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Muted blues with a warm accent for warnings.
var (
	Primary   = lipgloss.Color("#60A5FA") // Sky
	Secondary = lipgloss.Color("#2DD4BF") // Teal
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#4ADE80") // Green
	Error     = lipgloss.Color("#F87171") // Red
	Text      = lipgloss.Color("#E5E7EB") // Gray 200
	TextDim   = lipgloss.Color("#9CA3AF") // Gray 400
	BgCard    = lipgloss.Color("#1F2937") // Gray 800
	Border    = lipgloss.Color("#374151") // Gray 700
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Prompt = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	Explanation = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Card frames a block of content such as a question.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)
