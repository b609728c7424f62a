package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/clinicdesk/internal/billing"
)

// ClaimsModel steps through cancelled claims one at a time so the desk can
// check each cancellation reason.
type ClaimsModel struct {
	CommonModel
	billingService *billing.Service

	queue   []*billing.Invoice
	index   int
	status  string
	loading bool
}

func NewClaimsModel(svc *billing.Service) ClaimsModel {
	return ClaimsModel{
		billingService: svc,
		status:         "Loading cancelled claims...",
		loading:        true,
	}
}

func (m ClaimsModel) Title() string { return "Review Cancelled Claims" }

func (m ClaimsModel) ShortHelp() string {
	if len(m.queue) == 0 {
		return "Esc: back to menu"
	}

	return "Esc: back | ←/p: previous | →/n: next"
}

func (m ClaimsModel) Init() tea.Cmd {
	return m.loadClaimsCmd()
}

func (m ClaimsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadClaimsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading claims: %v", msg.err)
			break
		}

		m.queue = msg.invoices
		m.index = 0

		if len(m.queue) == 0 {
			m.status = "No cancelled claims."
			break
		}

		m.setProgress()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "right", "n":
			if m.index < len(m.queue)-1 {
				m.index++
				m.setProgress()
			}
		case "left", "p":
			if m.index > 0 {
				m.index--
				m.setProgress()
			}
		}
	}

	return m, nil
}

func (m *ClaimsModel) setProgress() {
	m.status = fmt.Sprintf("Reviewing %d/%d", m.index+1, len(m.queue))
}

// Current returns the claim on screen, or nil when the queue is empty.
func (m ClaimsModel) Current() *billing.Invoice {
	if m.index < 0 || m.index >= len(m.queue) {
		return nil
	}

	return m.queue[m.index]
}

func (m ClaimsModel) View() string {
	inv := m.Current()
	if m.loading || inv == nil {
		return lipgloss.NewStyle().Padding(1).Render(m.status)
	}

	cancelled := "-"
	if inv.CancelledAt != nil {
		cancelled = FormatDate(*inv.CancelledAt)
	}

	reason := inv.CancelReason
	if reason == "" {
		reason = faintStyle.Render("(no reason given)")
	}

	info := fmt.Sprintf(
		"EMR:       %s\nPatient:   %s\nItem:      %s (%s)\nAmount:    %s\nPaid:      %s\nCreated:   %s\nCancelled: %s\n\nReason:\n%s",
		inv.EMRNumber,
		inv.PatientName,
		inv.ItemName,
		inv.Kind,
		FormatAmount(inv.Amount),
		FormatAmount(inv.Paid),
		FormatDate(inv.CreatedAt),
		cancelled,
		errorStyle.Render(reason),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, accentStyle.Render(m.status), "", info),
	)
}

type loadClaimsMsg struct {
	invoices []*billing.Invoice
	err      error
}

func (m ClaimsModel) loadClaimsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.billingService.ListCancelled(ctx)

		return loadClaimsMsg{invoices: invoices, err: err}
	}
}
