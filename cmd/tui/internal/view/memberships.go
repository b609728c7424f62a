package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/clinicdesk/internal/membership"
	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

type membershipState int

const (
	membershipStateBrowse membershipState = iota
	membershipStateTreatment
)

type treatmentInputs struct {
	Name      string
	Units     string
	UnitPrice string
}

type MembershipsModel struct {
	CommonModel
	membershipService *membership.Service

	state       membershipState
	table       table.Model
	memberships []*membership.Membership
	form        *huh.Form
	in          *treatmentInputs

	loading bool
	err     error
	status  string
}

func NewMembershipsModel(svc *membership.Service) MembershipsModel {
	columns := []table.Column{
		{Title: "EMR", Width: 12},
		{Title: "Patient", Width: 22},
		{Title: "Package", Width: 20},
		{Title: "Amount", Width: 10},
		{Title: "Consumed", Width: 10},
		{Title: "Remaining", Width: 10},
		{Title: "Util %", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return MembershipsModel{
		membershipService: svc,
		table:             t,
		loading:           true,
	}
}

func (m MembershipsModel) Title() string { return "Memberships" }

func (m MembershipsModel) ShortHelp() string {
	if m.state == membershipStateTreatment {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | t: add treatment | r: refresh"
}

func (m MembershipsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m MembershipsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadMembershipsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.memberships = msg.memberships
		m.refreshTable()

		return m, nil

	case treatmentSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			b := msg.membership.Balance()
			m.status = fmt.Sprintf("Treatment added to %s, remaining %s", msg.membership.EMRNumber, FormatAmount(b.Remaining))
		}

		m.state = membershipStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == membershipStateTreatment {
		return m.updateTreatment(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "t":
			return m.enterTreatmentMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m MembershipsModel) selected() *membership.Membership {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.memberships) {
		return nil
	}

	return m.memberships[idx]
}

func (m MembershipsModel) enterTreatmentMode() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.in = &treatmentInputs{Units: "1"}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Treatment").
				Value(&m.in.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("treatment cannot be empty")
					}

					return nil
				}),
			huh.NewInput().
				Title("Units").
				Value(&m.in.Units).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 1 {
						return fmt.Errorf("units must be a whole number above zero")
					}

					return nil
				}),
			huh.NewInput().
				Title("Unit price").
				Placeholder("0.00").
				Value(&m.in.UnitPrice),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = membershipStateTreatment
	m.table.Blur()

	return m, m.form.Init()
}

func (m MembershipsModel) updateTreatment(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = membershipStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.addTreatmentCmd()
}

func (m MembershipsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading memberships...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if mem := m.selected(); mem != nil {
		b := mem.Balance()
		line := fmt.Sprintf("Transferred in %s | out %s", FormatAmount(b.TransferredIn), FormatAmount(b.TransferredOut))
		if b.Shortfall.IsPositive() {
			line += errorStyle.Render(fmt.Sprintf(" | overdrawn by %s", FormatAmount(b.Shortfall)))
		}

		content = lipgloss.JoinVertical(lipgloss.Left, content, faintStyle.Render(line))
	}

	if m.state == membershipStateTreatment && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(fmt.Sprintf("Add Treatment\n\nEMR: %s\n\n%s", m.selected().EMRNumber, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *MembershipsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.memberships))
	for _, mem := range m.memberships {
		b := mem.Balance()
		rows = append(rows, table.Row{
			mem.EMRNumber,
			mem.PatientName,
			mem.PackageName,
			FormatAmount(b.PackageAmount),
			FormatAmount(b.Consumed),
			FormatAmount(b.Remaining),
			FormatAmount(b.Utilization),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadMembershipsMsg struct {
	memberships []*membership.Membership
	err         error
}

func (m MembershipsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		list, err := m.membershipService.List(ctx)

		return loadMembershipsMsg{memberships: list, err: err}
	}
}

type treatmentSavedMsg struct {
	membership *membership.Membership
	err        error
}

func (m MembershipsModel) addTreatmentCmd() tea.Cmd {
	mem := m.selected()
	if mem == nil {
		return nil
	}

	units, _ := strconv.Atoi(strings.TrimSpace(m.in.Units))
	params := membership.TreatmentParams{
		TreatmentName: m.in.Name,
		UnitCount:     units,
		UnitPrice:     money.ParseField(m.in.UnitPrice).Decimal(),
	}
	emr := mem.EMRNumber

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.membershipService.AddTreatment(ctx, emr, params)

		return treatmentSavedMsg{membership: updated, err: err}
	}
}
