package tui

import (
	"fmt"
	"strings"

	"taskboard/internal/client"

	"github.com/charmbracelet/lipgloss"
)

const columnWidth = 28

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	cardStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	focusedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	draggedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	pendingStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#999999"))
	columnStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1).
			Width(columnWidth)
)

func (a *App) View() string {
	var body, hint string
	switch a.state {
	case stateBoard:
		body = a.renderBoard()
		hint = "h/l list · j/k card · space pick up · a add card · L add list · r reload · b boards · q quit"
		if _, dragging := a.view.Dragging(); dragging {
			hint = "h/l choose list · enter drop · esc cancel"
		}
	default:
		body = a.picker.View()
		if a.loading {
			body = "Loading boards..."
		}
		hint = "enter open · n new board · r reload · q quit"
	}

	sections := []string{body}
	if a.inputs != inputNone {
		sections = append(sections, a.input.View())
		hint = "enter save · esc cancel"
	}
	sections = append(sections, hintStyle.Render(hint))
	if a.statusMsg != "" {
		sections = append(sections, statusStyle.Render(a.statusMsg))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderBoard() string {
	header := titleStyle.Render(a.board.Name)
	lists := a.view.Lists()
	if len(lists) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, statusStyle.Render("No lists yet. Press L to add one."))
	}

	draggedID, dragging := a.view.Dragging()
	pending := map[string]bool{}
	for _, m := range a.view.Pending() {
		pending[m.CardID] = true
	}

	columns := make([]string, len(lists))
	for i, l := range lists {
		style := columnStyle
		switch {
		case dragging && i == a.dropTarget:
			style = style.BorderForeground(lipgloss.Color("#F7B801"))
		case !dragging && i == a.focusList:
			style = style.BorderForeground(lipgloss.Color("#5B8DEF"))
		}
		columns[i] = style.Render(a.renderList(l, i, draggedID, pending))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, columns...))
}

func (a *App) renderList(l client.List, idx int, draggedID string, pending map[string]bool) string {
	cards := a.view.Cards(l.ID)
	lines := []string{titleStyle.Render(fmt.Sprintf("%s (%d)", l.Name, len(cards)))}
	if len(cards) == 0 {
		lines = append(lines, statusStyle.Render("empty"))
	}
	for i, c := range cards {
		text := truncate(c.Content, columnWidth-4)
		switch {
		case c.ID == draggedID:
			lines = append(lines, draggedStyle.Render("◆ "+text))
		case pending[c.ID]:
			lines = append(lines, pendingStyle.Render("… "+text))
		case idx == a.focusList && i == a.focusCard:
			lines = append(lines, focusedStyle.Render("› "+text))
		default:
			lines = append(lines, cardStyle.Render("  "+text))
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
