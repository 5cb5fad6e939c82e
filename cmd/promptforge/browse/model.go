// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"
	"github.com/muesli/termenv"

	"github.com/promptforge-foundation/promptforge/lib/collection"
	"github.com/promptforge-foundation/promptforge/lib/prompt"
	"github.com/promptforge-foundation/promptforge/lib/tui"
)

type entryKind int

const (
	kindTemplate entryKind = iota
	kindList
)

// entry is one browsable prompt.
type entry struct {
	Name string
	Kind entryKind
}

// item is an entry that passed the current filter, with its fuzzy
// match score and the matched rune positions for highlighting.
type item struct {
	Entry     entry
	Score     int
	Positions []int
}

// Model is the bubbletea model for the prompt browser: a filter
// input, a scrolling prompt list, and a preview pane, with language
// cycling across the collection's languages.
type Model struct {
	coll    *collection.Collection
	entries []entry
	items   []item

	filter textinput.Model
	slab   *util.Slab

	cursor int
	offset int

	langs     []prompt.LangCode
	langIndex int

	width  int
	height int

	theme    tui.Theme
	renderer *lipgloss.Renderer

	// Selected holds the rendered source of the prompt chosen with
	// enter; the command prints it to stdout after the program
	// exits. Empty when the browser was quit without selecting.
	Selected string
}

// NewModel builds a browser over a loaded collection. The initial
// language is the collection's default.
func NewModel(coll *collection.Collection) Model {
	input := textinput.New()
	input.Placeholder = "type / to filter"
	input.Prompt = "/ "
	input.CharLimit = 128

	model := Model{
		coll:     coll,
		filter:   input,
		slab:     tui.NewSlab(),
		langs:    append([]prompt.LangCode{prompt.DefaultLang}, nonDefault(coll.Langs())...),
		theme:    tui.DefaultTheme,
		renderer: lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256)),
		width:    80,
		height:   24,
	}
	for _, name := range coll.TemplateNames() {
		model.entries = append(model.entries, entry{Name: name, Kind: kindTemplate})
	}
	for _, name := range coll.ListNames() {
		model.entries = append(model.entries, entry{Name: name, Kind: kindList})
	}
	model.refilter()
	return model
}

// nonDefault strips the default language marker so it appears exactly
// once, at the front of the cycle.
func nonDefault(langs []prompt.LangCode) []prompt.LangCode {
	var out []prompt.LangCode
	for _, lang := range langs {
		if lang != prompt.DefaultLang {
			out = append(out, lang)
		}
	}
	return out
}

func (m Model) Init() tea.Cmd { return nil }

// Lang returns the language currently selected by cycling.
func (m Model) Lang() prompt.LangCode { return m.langs[m.langIndex] }

// refilter recomputes the visible items from the filter text. With an
// empty filter every entry is shown in collection order; otherwise
// entries are fuzzy-matched and sorted by descending score.
func (m *Model) refilter() {
	query := []rune(m.filter.Value())
	m.items = m.items[:0]
	for _, e := range m.entries {
		if len(query) == 0 {
			m.items = append(m.items, item{Entry: e})
			continue
		}
		result := tui.FuzzyMatch(e.Name, query, m.slab)
		if result.Score <= 0 {
			continue
		}
		m.items = append(m.items, item{Entry: e, Score: result.Score, Positions: result.Positions})
	}
	if len(query) > 0 {
		// Stable by construction: ties keep collection order.
		for i := 1; i < len(m.items); i++ {
			for j := i; j > 0 && m.items[j].Score > m.items[j-1].Score; j-- {
				m.items[j], m.items[j-1] = m.items[j-1], m.items[j]
			}
		}
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
	m.offset = min(m.offset, m.cursor)
}

func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		return m, nil

	case tea.KeyMsg:
		if m.filter.Focused() {
			return m.updateFilterFocus(message)
		}
		return m.updateListFocus(message)
	}
	return m, nil
}

// updateFilterFocus routes keys while the filter input is focused.
func (m Model) updateFilterFocus(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		m.filter.SetValue("")
		m.filter.Blur()
		m.refilter()
		return m, nil
	case tea.KeyEnter:
		m.filter.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyUp, tea.KeyDown:
		m.moveCursor(message.Type == tea.KeyDown)
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(message)
	m.refilter()
	return m, cmd
}

// updateListFocus routes keys while the list has focus.
func (m Model) updateListFocus(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.filter.Focus()
		return m, textinput.Blink
	case "up", "k":
		m.moveCursor(false)
		return m, nil
	case "down", "j":
		m.moveCursor(true)
		return m, nil
	case "g":
		m.cursor, m.offset = 0, 0
		return m, nil
	case "G":
		m.cursor = max(0, len(m.items)-1)
		return m, nil
	case "l":
		m.langIndex = (m.langIndex + 1) % len(m.langs)
		return m, nil
	case "enter":
		if m.cursor < len(m.items) {
			m.Selected = m.previewSource(m.items[m.cursor].Entry)
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) moveCursor(down bool) {
	if down {
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	} else if m.cursor > 0 {
		m.cursor--
	}
}

// previewSource resolves the raw source of an entry for the current
// language, falling back per the collection's fallback mode.
func (m Model) previewSource(e entry) string {
	if e.Kind == kindList {
		list, err := m.coll.List(e.Name, m.Lang())
		if err != nil {
			return err.Error()
		}
		return list.String()
	}
	template, err := m.coll.Template(e.Name, m.Lang())
	if err != nil {
		return err.Error()
	}
	return template.Source()
}

// listHeight is the number of list rows that fit on screen, leaving
// room for the header, the filter line, and the help line.
func (m Model) listHeight() int {
	return max(1, m.height-4)
}

func (m Model) View() string {
	renderer := m.renderer
	listWidth := m.width * 2 / 5
	previewWidth := m.width - listWidth - 3

	var b strings.Builder
	b.WriteString(m.headerView(renderer))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n")

	listLines := m.listView(renderer, listWidth)
	previewLines := m.previewView(renderer, previewWidth)
	rows := m.listHeight()
	for i := range rows {
		var left, right string
		if i < len(listLines) {
			left = listLines[i]
		}
		if i < len(previewLines) {
			right = previewLines[i]
		}
		b.WriteString(ansi.Truncate(left, listWidth, "…"))
		b.WriteString(strings.Repeat(" ", max(0, listWidth-ansi.StringWidth(left))))
		b.WriteString(" │ ")
		b.WriteString(ansi.Truncate(right, previewWidth, "…"))
		b.WriteString("\n")
	}

	help := renderer.NewStyle().Foreground(m.theme.HelpText).
		Render("enter select · / filter · l language · q quit")
	b.WriteString(help)
	return b.String()
}

func (m Model) headerView(renderer *lipgloss.Renderer) string {
	header := renderer.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true).
		Render(fmt.Sprintf("promptforge browse — %d prompts", len(m.items)))
	lang := renderer.NewStyle().Foreground(m.theme.LangTag).
		Render(fmt.Sprintf("[%s]", m.Lang()))
	return header + " " + lang
}

// listView renders the visible window of the item list, scrolling to
// keep the cursor in view.
func (m Model) listView(renderer *lipgloss.Renderer, width int) []string {
	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}

	badgeStyle := map[entryKind]lipgloss.Style{
		kindTemplate: renderer.NewStyle().Foreground(m.theme.TemplateBadge),
		kindList:     renderer.NewStyle().Foreground(m.theme.ListBadge),
	}
	badgeText := map[entryKind]string{kindTemplate: "tmpl", kindList: "list"}
	matchStyle := renderer.NewStyle().Background(m.theme.MatchBackground)
	selectedStyle := renderer.NewStyle().
		Background(m.theme.SelectedBackground).
		Foreground(m.theme.SelectedForeground)

	var lines []string
	for i := m.offset; i < len(m.items) && i < m.offset+rows; i++ {
		it := m.items[i]
		name := highlightPositions(it.Entry.Name, it.Positions, matchStyle)
		line := fmt.Sprintf(" %s %s", badgeStyle[it.Entry.Kind].Render(badgeText[it.Entry.Kind]), name)
		if i == m.cursor {
			line = selectedStyle.Render("▸") + line[1:]
		}
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}
	if len(m.items) == 0 {
		lines = append(lines, renderer.NewStyle().Foreground(m.theme.FaintText).Render(" no matches"))
	}
	return lines
}

// highlightPositions styles the runes of name at the fuzzy-matched
// positions.
func highlightPositions(name string, positions []int, style lipgloss.Style) string {
	if len(positions) == 0 {
		return name
	}
	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}
	var b strings.Builder
	for i, r := range []rune(name) {
		if matched[i] {
			b.WriteString(style.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// previewView renders the selected entry's source with placeholder
// highlighting, soft-wrapped to the pane width.
func (m Model) previewView(renderer *lipgloss.Renderer, width int) []string {
	if m.cursor >= len(m.items) {
		return nil
	}
	source := m.previewSource(m.items[m.cursor].Entry)
	highlighted := tui.HighlightPlaceholders(source, m.theme, renderer)
	wrapped := ansi.Wordwrap(highlighted, width, "")
	return strings.Split(wrapped, "\n")
}
