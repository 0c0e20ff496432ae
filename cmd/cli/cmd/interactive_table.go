package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	cliapi "invoice-matching/internal/cli"
	"invoice-matching/internal/database"
	"invoice-matching/internal/matching"
)

// KeyMap represents the key bindings for the review table
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Reload  key.Binding
	Confirm key.Binding
	Reject  key.Binding
	Delete  key.Binding
	Details key.Binding
	Help    key.Binding
	Quit    key.Binding
	Yes     key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "confirm top match"),
		),
		Reject: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reject"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// pendingAction identifies what the y/N dialog is about to do
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingConfirm
	pendingDelete
)

// ReviewTable is the interactive model for reviewing match candidates
type ReviewTable struct {
	table       table.Model
	analyses    []database.Analysis
	client      *cliapi.Client
	keys        KeyMap
	loading     bool
	spinner     spinner.Model
	err         error
	message     string
	showHelp    bool
	showDetails bool
	quitting    bool
	config      *cliapi.Config
	useColor    bool
	pending     pendingAction
	pendingID   int
	pendingRef  int
}

// NewReviewTable creates a new review table over the given analyses
func NewReviewTable(analyses []database.Analysis, client *cliapi.Client, config *cliapi.Config) *ReviewTable {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Supplier", Width: 25},
		{Title: "Invoice", Width: 15},
		{Title: "Top Match", Width: 10},
		{Title: "Conf", Width: 6},
		{Title: "Status", Width: 18},
		{Title: "Created", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(analysesToRows(analyses)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Determine if colors should be used
	useColor := !config.NoColor && isatty.IsTerminal(os.Stdout.Fd())

	if useColor {
		styles := table.DefaultStyles()
		styles.Header = styles.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(false)
		styles.Selected = styles.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(styles)
	}

	return &ReviewTable{
		table:    t,
		analyses: analyses,
		client:   client,
		keys:     DefaultKeyMap(),
		spinner:  s,
		config:   config,
		useColor: useColor,
	}
}

// Init initializes the review table
func (m ReviewTable) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m ReviewTable) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Handle the y/N dialog first
		if m.pending != pendingNone {
			switch {
			case key.Matches(msg, m.keys.Yes):
				return m.runPendingAction()
			case key.Matches(msg, m.keys.Cancel):
				m.pending = pendingNone
				m.pendingID = 0
				m.pendingRef = 0
				m.message = "Cancelled"
				return m, nil
			}
			// Don't process other keys while the dialog is open
			return m, nil
		}

		if m.showDetails {
			switch {
			case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Details):
				m.showDetails = false
				m.message = ""
				return m, nil
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			return m.handleReload()

		case key.Matches(msg, m.keys.Up):
			m.table, cmd = m.table.Update(msg)
			return m, cmd

		case key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd

		case key.Matches(msg, m.keys.Details):
			return m.handleDetails()

		case key.Matches(msg, m.keys.Confirm):
			return m.handleConfirm()

		case key.Matches(msg, m.keys.Reject):
			return m.handleReject()

		case key.Matches(msg, m.keys.Delete):
			return m.handleDelete()
		}

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		return m, nil

	case confirmCompleteMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.message = fmt.Sprintf("Error confirming analysis: %v", msg.err)
		} else {
			m = m.replaceAnalysis(msg.analysis)
			m.message = fmt.Sprintf("Analysis %d confirmed against job %d", msg.analysis.ID, msg.jobRef)
		}
		return m, nil

	case rejectCompleteMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.message = fmt.Sprintf("Error rejecting analysis: %v", msg.err)
		} else {
			return m.handleReload()
		}
		return m, nil

	case deleteCompleteMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.message = fmt.Sprintf("Error deleting analysis: %v", msg.err)
		} else {
			m = m.removeAnalysis(msg.analysisID)
			m.message = "Analysis deleted"
		}
		return m, nil

	case reloadCompleteMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.message = fmt.Sprintf("Error reloading analyses: %v", msg.err)
		} else {
			m.analyses = msg.analyses
			m.table.SetRows(analysesToRows(m.analyses))
			m.message = fmt.Sprintf("Loaded %d analyses", len(m.analyses))
			m.err = nil
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the review table
func (m ReviewTable) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	if m.showHelp {
		b.WriteString(m.helpView())
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(fmt.Sprintf("%s Working...\n", m.spinner.View()))
	}

	if m.showDetails {
		b.WriteString(m.detailsView())
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.pending != pendingNone {
		var prompt string
		switch m.pending {
		case pendingConfirm:
			prompt = fmt.Sprintf("Confirm analysis %d against job %d? (y/N): ", m.pendingID, m.pendingRef)
		case pendingDelete:
			prompt = fmt.Sprintf("Delete analysis %d? (y/N): ", m.pendingID)
		}
		if m.useColor {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Render(prompt))
		} else {
			b.WriteString(prompt)
		}
		b.WriteString("\n")
	}

	if m.message != "" {
		if m.err != nil {
			if m.useColor {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.message))
			} else {
				b.WriteString(m.message)
			}
		} else {
			if m.useColor {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render(m.message))
			} else {
				b.WriteString(m.message)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())

	return b.String()
}

// helpView returns the help view
func (m ReviewTable) helpView() string {
	help := strings.Builder{}
	help.WriteString("Help:\n")
	help.WriteString("  ↑/k         - Move up\n")
	help.WriteString("  ↓/j         - Move down\n")
	help.WriteString("  enter       - View extracted entities and candidates\n")
	help.WriteString("  c           - Confirm the top match candidate\n")
	help.WriteString("  x           - Reject (clear confirmation)\n")
	help.WriteString("  d           - Delete analysis\n")
	help.WriteString("  r           - Reload from server\n")
	help.WriteString("  ?           - Toggle help\n")
	help.WriteString("  q/ctrl+c    - Quit\n")
	return help.String()
}

// statusLine returns the status line
func (m ReviewTable) statusLine() string {
	if m.showDetails {
		return "Details View | Press enter/esc to return to the list"
	}

	if len(m.analyses) == 0 {
		return "No analyses found"
	}

	selected := m.table.Cursor()
	total := len(m.analyses)
	return fmt.Sprintf("Analysis %d of %d | Press ? for help", selected+1, total)
}

// detailsView renders the extracted entities and candidates of the selection
func (m ReviewTable) detailsView() string {
	analysis, ok := m.selectedAnalysis()
	if !ok {
		return "Nothing selected.\n"
	}

	var b strings.Builder

	title := fmt.Sprintf("Analysis %d", analysis.ID)
	if m.useColor {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Render(title))
	} else {
		b.WriteString(title)
	}
	b.WriteString("\n\n")

	result := decodeStoredResult(analysis)
	if result == nil {
		b.WriteString("Stored result could not be decoded.\n")
		return b.String()
	}

	if result.Extracted.SupplierName != "" {
		b.WriteString(fmt.Sprintf("Supplier: %s\n", result.Extracted.SupplierName))
	}
	if result.Extracted.CustomerName != "" {
		b.WriteString(fmt.Sprintf("Customer: %s\n", result.Extracted.CustomerName))
	}
	if len(result.Extracted.InvoiceNumbers) > 0 {
		b.WriteString(fmt.Sprintf("Invoice Numbers: %s\n", strings.Join(result.Extracted.InvoiceNumbers, ", ")))
	}
	if len(result.Extracted.ContainerNumbers) > 0 {
		b.WriteString(fmt.Sprintf("Containers: %s\n", strings.Join(result.Extracted.ContainerNumbers, ", ")))
	}
	if result.IsCreditNote {
		b.WriteString("Credit note: yes\n")
	}
	b.WriteString("\n")

	if len(result.Matches) == 0 {
		b.WriteString("No match candidates.\n")
		return b.String()
	}

	for i, match := range result.Matches {
		line := fmt.Sprintf("%d. Job %d (%s) confidence %.2f", i+1, match.JobRef, match.JobType, match.Confidence)
		if match.CustomerName != "" {
			line += " - " + match.CustomerName
		}
		b.WriteString(line)
		b.WriteString("\n")
		for _, field := range match.MatchedFields {
			b.WriteString(fmt.Sprintf("     %s = %s (%.2f)\n", field.Field, field.Value, field.Score))
		}
	}

	return b.String()
}

// confirmCompleteMsg is sent when a confirm operation completes
type confirmCompleteMsg struct {
	analysis *database.Analysis
	jobRef   int
	err      error
}

// rejectCompleteMsg is sent when a reject operation completes
type rejectCompleteMsg struct {
	analysisID int
	err        error
}

// deleteCompleteMsg is sent when a delete operation completes
type deleteCompleteMsg struct {
	analysisID int
	err        error
}

// reloadCompleteMsg is sent when the analysis list has been refetched
type reloadCompleteMsg struct {
	analyses []database.Analysis
	err      error
}

// handleReload refetches the analysis list from the server
func (m ReviewTable) handleReload() (ReviewTable, tea.Cmd) {
	m.loading = true
	m.message = ""
	m.err = nil

	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			analyses, err := m.client.GetAnalyses()
			return reloadCompleteMsg{analyses: analyses, err: err}
		},
	)
}

// handleDetails toggles the details view for the selection
func (m ReviewTable) handleDetails() (ReviewTable, tea.Cmd) {
	if _, ok := m.selectedAnalysis(); !ok {
		m.message = "Nothing selected"
		return m, nil
	}

	m.showDetails = true
	m.message = ""
	return m, nil
}

// handleConfirm opens the confirmation dialog for the top match candidate
func (m ReviewTable) handleConfirm() (ReviewTable, tea.Cmd) {
	analysis, ok := m.selectedAnalysis()
	if !ok {
		m.message = "Nothing selected"
		return m, nil
	}

	result := decodeStoredResult(analysis)
	if result == nil || len(result.Matches) == 0 {
		m.message = "No match candidate to confirm"
		return m, nil
	}

	m.pending = pendingConfirm
	m.pendingID = analysis.ID
	m.pendingRef = result.Matches[0].JobRef
	m.message = ""
	m.err = nil

	return m, nil
}

// handleReject clears the confirmation of the selection
func (m ReviewTable) handleReject() (ReviewTable, tea.Cmd) {
	analysis, ok := m.selectedAnalysis()
	if !ok {
		m.message = "Nothing selected"
		return m, nil
	}
	if analysis.ConfirmedJobRef == nil {
		m.message = "Analysis is not confirmed"
		return m, nil
	}

	m.loading = true
	m.message = ""
	m.err = nil

	id := analysis.ID
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			err := m.client.RejectAnalysis(id)
			return rejectCompleteMsg{analysisID: id, err: err}
		},
	)
}

// handleDelete opens the delete dialog for the selection
func (m ReviewTable) handleDelete() (ReviewTable, tea.Cmd) {
	analysis, ok := m.selectedAnalysis()
	if !ok {
		m.message = "Nothing selected"
		return m, nil
	}

	m.pending = pendingDelete
	m.pendingID = analysis.ID
	m.message = ""
	m.err = nil

	return m, nil
}

// runPendingAction executes the action behind the y/N dialog
func (m ReviewTable) runPendingAction() (ReviewTable, tea.Cmd) {
	action := m.pending
	id := m.pendingID
	jobRef := m.pendingRef

	m.pending = pendingNone
	m.pendingID = 0
	m.pendingRef = 0
	m.loading = true
	m.message = ""
	m.err = nil

	switch action {
	case pendingConfirm:
		return m, tea.Batch(
			m.spinner.Tick,
			func() tea.Msg {
				analysis, err := m.client.ConfirmAnalysis(id, jobRef)
				return confirmCompleteMsg{analysis: analysis, jobRef: jobRef, err: err}
			},
		)
	case pendingDelete:
		return m, tea.Batch(
			m.spinner.Tick,
			func() tea.Msg {
				err := m.client.DeleteAnalysis(id)
				return deleteCompleteMsg{analysisID: id, err: err}
			},
		)
	}

	m.loading = false
	return m, nil
}

// selectedAnalysis returns the analysis under the cursor
func (m ReviewTable) selectedAnalysis() (*database.Analysis, bool) {
	if len(m.analyses) == 0 {
		return nil, false
	}
	selected := m.table.Cursor()
	if selected < 0 || selected >= len(m.analyses) {
		return nil, false
	}
	return &m.analyses[selected], true
}

// replaceAnalysis swaps an updated analysis into the table
func (m ReviewTable) replaceAnalysis(analysis *database.Analysis) ReviewTable {
	if analysis == nil {
		return m
	}
	for i := range m.analyses {
		if m.analyses[i].ID == analysis.ID {
			m.analyses[i] = *analysis
			break
		}
	}
	m.table.SetRows(analysesToRows(m.analyses))
	return m
}

// removeAnalysis removes an analysis from the table after deletion
func (m ReviewTable) removeAnalysis(analysisID int) ReviewTable {
	newAnalyses := make([]database.Analysis, 0, len(m.analyses))
	for _, analysis := range m.analyses {
		if analysis.ID != analysisID {
			newAnalyses = append(newAnalyses, analysis)
		}
	}
	m.analyses = newAnalyses
	m.table.SetRows(analysesToRows(m.analyses))
	return m
}

// analysesToRows converts analyses to table rows
func analysesToRows(analyses []database.Analysis) []table.Row {
	rows := make([]table.Row, len(analyses))
	for i := range analyses {
		analysis := &analyses[i]
		result := decodeStoredResult(analysis)

		supplier, invoiceNo := "", ""
		topMatch, confidence := "-", "-"
		if result != nil {
			supplier = result.Extracted.SupplierName
			if len(result.Extracted.InvoiceNumbers) > 0 {
				invoiceNo = result.Extracted.InvoiceNumbers[0]
			}
			if len(result.Matches) > 0 {
				topMatch = strconv.Itoa(result.Matches[0].JobRef)
				confidence = fmt.Sprintf("%.2f", result.Matches[0].Confidence)
			}
		}

		status := "unconfirmed"
		if analysis.ConfirmedJobRef != nil {
			status = fmt.Sprintf("confirmed (%d)", *analysis.ConfirmedJobRef)
		}

		rows[i] = table.Row{
			strconv.Itoa(analysis.ID),
			supplier,
			invoiceNo,
			topMatch,
			confidence,
			status,
			analysis.CreatedAt.Format("2006-01-02"),
		}
	}
	return rows
}

// decodeStoredResult decodes the stored engine output, or nil if unreadable
func decodeStoredResult(analysis *database.Analysis) *matching.InvoiceAnalysis {
	if len(analysis.Result) == 0 {
		return nil
	}
	var result matching.InvoiceAnalysis
	if err := json.Unmarshal(analysis.Result, &result); err != nil {
		return nil
	}
	return &result
}

// runReviewTable runs the interactive review table
func runReviewTable(analyses []database.Analysis, client *cliapi.Client, config *cliapi.Config) error {
	p := tea.NewProgram(NewReviewTable(analyses, client, config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
