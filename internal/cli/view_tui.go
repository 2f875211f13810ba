package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wasim-s-creator/sdlc-demo/internal/diffscan"
	"github.com/wasim-s-creator/sdlc-demo/internal/report"
	"github.com/wasim-s-creator/sdlc-demo/internal/store"
)

func findingTitle(f diffscan.Finding) string {
	switch f.Kind {
	case diffscan.KindFunctionAdded:
		return fmt.Sprintf("Function added: %s (%s)", f.Name, f.Path)
	case diffscan.KindFunctionRemoved:
		return fmt.Sprintf("Function removed: %s (%s)", f.Name, f.Path)
	case diffscan.KindClassAdded:
		return fmt.Sprintf("Class added: %s (%s)", f.Name, f.Path)
	case diffscan.KindTodoMarker:
		return fmt.Sprintf("TODO/FIXME: %s", f.Text)
	case diffscan.KindBinaryFileChanged:
		return fmt.Sprintf("Binary changed: %s", f.Path)
	case diffscan.KindLargeFile:
		return fmt.Sprintf("Large file: %s (%d bytes)", f.Path, f.Size)
	case diffscan.KindPossibleSecret:
		return fmt.Sprintf("Possible secret: %s", f.Text)
	case diffscan.KindMissingTests:
		return "Source changed without test changes"
	default:
		return string(f.Kind)
	}
}

type findingItem struct {
	finding diffscan.Finding
}

func (i findingItem) Title() string {
	return findingTitle(i.finding)
}

func (i findingItem) Description() string {
	return string(i.finding.Kind)
}

func (i findingItem) FilterValue() string {
	return strings.ToLower(findingTitle(i.finding))
}

type viewModel struct {
	header      string
	allFindings []diffscan.Finding
	list        list.Model
	search      textinput.Model
	query       string
	width       int
	height      int
}

func newViewModel(run store.Run, payload report.Payload) viewModel {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	listModel := list.New([]list.Item{}, delegate, 0, 0)
	listModel.Title = "Findings"
	listModel.SetShowStatusBar(false)
	listModel.SetShowHelp(false)
	listModel.SetFilteringEnabled(false)

	search := textinput.New()
	search.Placeholder = "type to filter"
	search.Prompt = "Filter: "
	search.Focus()

	m := viewModel{
		header:      fmt.Sprintf("Run #%d — %s @ %s", run.ID, run.Branch, run.ShortSHA),
		allFindings: payload.Findings,
		list:        listModel,
		search:      search,
	}
	m.applyFilter()
	return m
}

func (m *viewModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	filtered := make([]list.Item, 0, len(m.allFindings))
	for _, finding := range m.allFindings {
		item := findingItem{finding: finding}
		if query == "" || strings.Contains(item.FilterValue(), query) {
			filtered = append(filtered, item)
		}
	}
	m.list.SetItems(filtered)
	if len(filtered) > 0 {
		m.list.Select(0)
	}
	m.query = m.search.Value()
}

func (m viewModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		listHeight := msg.Height - headerHeight - footerHeight - 2
		if listHeight < 4 {
			listHeight = 4
		}
		m.list.SetSize(msg.Width, listHeight)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.query {
		m.applyFilter()
	}
	var listCmd tea.Cmd
	m.list, listCmd = m.list.Update(msg)
	return m, tea.Batch(cmd, listCmd)
}

func (m viewModel) View() string {
	content := m.list.View()
	if len(m.list.Items()) == 0 {
		content = "No findings match your filter."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.search.View(), content, m.footerView())
}

func (m viewModel) headerView() string {
	return lipgloss.NewStyle().Bold(true).Render(m.header)
}

func (m viewModel) footerView() string {
	return "Type to filter • ↑/↓ to move • q to quit"
}

func runViewTUI(run store.Run, payload report.Payload) error {
	model := newViewModel(run, payload)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
