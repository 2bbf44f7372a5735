package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/ui/theme"
)

const titleFull = ` ██╗      █████╗ ███████╗██╗  ██╗ ██████╗ ███╗   ██╗
 ██║     ██╔══██╗██╔════╝██║  ██║██╔═══██╗████╗  ██║
 ██║     ███████║███████╗███████║██║   ██║██╔██╗ ██║
 ██║     ██╔══██║╚════██║██╔══██║██║   ██║██║╚██╗██║
 ███████╗██║  ██║███████║██║  ██║╚██████╔╝██║ ╚████║
 ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═══╝`

const titleCompact = "L · A · S · H · O · N   לשון"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	return max(20, min(60, frameWidth-6))
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar shows the streak, today's tasks, and the best survival run.
func renderStatsBar(st progress.State, cw int, compact bool) string {
	streakStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	taskStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	done, all := st.CompletedCount(), len(st.Tasks)
	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			streakStyle.Render(fmt.Sprintf("🔥%d", st.Streak)),
			taskStyle.Render(fmt.Sprintf("✓%d/%d", done, all)),
			bestStyle.Render(fmt.Sprintf("♥%d", st.BestSurvival)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			streakStyle.Render("🔥 "+strings.ToUpper(progress.StreakLabel(st.Streak))),
			taskStyle.Render(fmt.Sprintf("✓ %d/%d TASKS", done, all)),
			bestStyle.Render(fmt.Sprintf("♥ BEST %d", st.BestSurvival)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderArcadeMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Highlight).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	// Two columns keep eight buttons on screen.
	var left, right []string
	for i, label := range items {
		btn := normalBtn.Render(label)
		if i == selected {
			btn = selectedBtn.Render("▸ " + label)
		}
		if i%2 == 0 {
			left = append(left, btn)
		} else {
			right = append(right, btn)
		}
	}
	block := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(left, "\n"), " ", strings.Join(right, "\n"))

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderArcadeMenuCompact renders menu items as plain lines for small
// terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderTutorBanner notes that explanations need an LLM key.
func renderTutorBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to enable the tutor (see lashon --help)")
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderCabinetFrame wraps content in a double-border frame, centered in
// the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
