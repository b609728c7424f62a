package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/billing"
	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
)

// calcInputs holds the values bound to the form. It lives behind a pointer so
// the bindings survive the model being copied on every update.
type calcInputs struct {
	EMRNumber     string
	PatientName   string
	Kind          billing.Kind
	ItemName      string
	Amount        string
	Paid          string
	ManualAdvance bool
	Advance       string
	Insurance     billing.Insurance
	InsuranceType billing.InsuranceType
	AdvanceGiven  string
	CoPayPercent  string
	UseStored     bool
}

func (in *calcInputs) payment() billing.PaymentParams {
	return billing.PaymentParams{
		Amount:             money.ParseField(in.Amount),
		Paid:               money.ParseField(in.Paid),
		Advance:            money.ParseField(in.Advance),
		ManualAdvance:      in.ManualAdvance,
		Insurance:          in.Insurance,
		InsuranceType:      in.InsuranceType,
		AdvanceGivenAmount: money.ParseField(in.AdvanceGiven),
		CoPayPercent:       money.ParseField(in.CoPayPercent),
	}
}

func (in *calcInputs) previewForm(storedAdvance *decimal.Decimal) billing.Form {
	p := in.payment()

	f := billing.Form{
		Amount:             p.Amount,
		Paid:               p.Paid,
		Advance:            p.Advance,
		ManualAdvance:      p.ManualAdvance,
		Insurance:          p.Insurance,
		InsuranceType:      p.InsuranceType,
		AdvanceGivenAmount: p.AdvanceGivenAmount,
		CoPayPercent:       p.CoPayPercent,
	}

	if in.UseStored {
		f.AdvanceBase = storedAdvance
	}

	return f
}

type calcState int

const (
	calcStateEdit calcState = iota
	calcStateSaving
	calcStateResult
)

// CalculatorModel registers a patient payment while showing the derived
// figures as the form is filled in.
type CalculatorModel struct {
	CommonModel
	billingService *billing.Service

	state   calcState
	in      *calcInputs
	form    *huh.Form
	derived billing.Derived

	// stored is the EMR's advance balance, loaded with ctrl+a.
	stored    *decimal.Decimal
	storedEMR string

	status string
	err    error
}

func NewCalculatorModel(svc *billing.Service) CalculatorModel {
	in := &calcInputs{
		Kind:          billing.KindService,
		Insurance:     billing.InsuranceNo,
		InsuranceType: billing.InsuranceTypePaid,
	}

	m := CalculatorModel{
		billingService: svc,
		in:             in,
		form:           newCalculatorForm(in),
	}
	m.derived = svc.Preview(in.previewForm(nil))

	return m
}

func decimalInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("0.00").
		Value(value)
}

func newCalculatorForm(in *calcInputs) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("EMR number").
				Value(&in.EMRNumber).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("emr number is required")
					}

					return nil
				}),
			huh.NewInput().Title("Patient name").Value(&in.PatientName),
			huh.NewSelect[billing.Kind]().
				Title("Billed for").
				Options(
					huh.NewOption("Service", billing.KindService),
					huh.NewOption("Treatment", billing.KindTreatment),
					huh.NewOption("Package", billing.KindPackage),
				).
				Value(&in.Kind),
			huh.NewInput().Title("Item").Value(&in.ItemName),
		),
		huh.NewGroup(
			decimalInput("Amount", &in.Amount),
			decimalInput("Paid", &in.Paid),
			huh.NewConfirm().Title("Enter advance manually?").Value(&in.ManualAdvance),
			decimalInput("Advance", &in.Advance),
			huh.NewConfirm().Title("Draw from stored advance?").Value(&in.UseStored),
		),
		huh.NewGroup(
			huh.NewSelect[billing.Insurance]().
				Title("Insurance").
				Options(
					huh.NewOption("No", billing.InsuranceNo),
					huh.NewOption("Yes", billing.InsuranceYes),
				).
				Value(&in.Insurance),
			huh.NewSelect[billing.InsuranceType]().
				Title("Insurance type").
				Options(
					huh.NewOption("Paid", billing.InsuranceTypePaid),
					huh.NewOption("Advance", billing.InsuranceTypeAdvance),
				).
				Value(&in.InsuranceType),
			decimalInput("Advance given by insurer", &in.AdvanceGiven),
			decimalInput("Co-pay %", &in.CoPayPercent),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m CalculatorModel) Title() string { return "Patient Registration" }

func (m CalculatorModel) ShortHelp() string {
	if m.state == calcStateResult {
		return "Esc: back | n: new registration"
	}

	return "Tab/Enter: next field | ctrl+a: load stored advance | Esc: back"
}

func (m CalculatorModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storedAdvanceMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not load stored advance: %v", msg.err)
			return m, nil
		}

		m.stored = nil
		m.storedEMR = msg.emr
		m.status = fmt.Sprintf("No stored advance for %s", msg.emr)

		if msg.balance.IsPositive() {
			m.stored = &msg.balance
			m.status = fmt.Sprintf("Stored advance for %s: %s", msg.emr, FormatAmount(msg.balance))
		}

		m.derived = m.billingService.Preview(m.in.previewForm(m.stored))

		return m, nil

	case registerResultMsg:
		m.state = calcStateResult
		m.err = msg.err

		if msg.err == nil {
			m.status = fmt.Sprintf("Registered %s: pending %s, need to pay %s",
				msg.invoice.EMRNumber, FormatAmount(msg.invoice.Pending), FormatAmount(msg.invoice.NeedToPay))
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "ctrl+a":
			if m.state == calcStateEdit {
				return m, m.loadStoredAdvanceCmd()
			}
		case "n":
			if m.state == calcStateResult {
				next := NewCalculatorModel(m.billingService)
				return next, next.Init()
			}
		}
	}

	if m.state != calcStateEdit {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	// A stored balance only applies to the EMR it was loaded for.
	if m.stored != nil && strings.TrimSpace(m.in.EMRNumber) != m.storedEMR {
		m.stored = nil
	}

	m.derived = m.billingService.Preview(m.in.previewForm(m.stored))

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = calcStateSaving

	return m, m.registerCmd()
}

func (m CalculatorModel) View() string {
	if m.state == calcStateSaving {
		return lipgloss.NewStyle().Padding(2).Render("Saving registration...")
	}

	if m.state == calcStateResult {
		msg := successStyle.Render(m.status)
		if m.err != nil {
			msg = errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
		}

		return lipgloss.NewStyle().Padding(2).Render(msg)
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(36).
		Render(m.derivedView())

	content := lipgloss.JoinHorizontal(lipgloss.Top, m.form.View(), "  ", panel)

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m CalculatorModel) derivedView() string {
	d := m.derived

	amount := FormatAmount(d.Amount)
	if d.AmountOverridden {
		amount += accentStyle.Render(" (insurer co-pay)")
	}

	rows := []string{
		fmt.Sprintf("Mode:         %s", d.Mode),
		fmt.Sprintf("Amount:       %s", amount),
		fmt.Sprintf("Paid:         %s", FormatAmount(d.Paid)),
		fmt.Sprintf("Advance:      %s", FormatAmount(d.Advance)),
		fmt.Sprintf("Pending:      %s", FormatAmount(d.Pending)),
		fmt.Sprintf("Need to pay:  %s", accentStyle.Render(FormatAmount(d.NeedToPay))),
	}

	if m.in.UseStored && m.stored != nil {
		rows = append(rows,
			fmt.Sprintf("From advance: %s", FormatAmount(d.UsedFromAdvance)),
			fmt.Sprintf("Remaining:    %s", FormatAmount(d.RemainingAdvance)),
		)
	}

	return lipgloss.NewStyle().Bold(true).Render("Derived") + "\n\n" + strings.Join(rows, "\n")
}

// Messages

type storedAdvanceMsg struct {
	emr     string
	balance decimal.Decimal
	err     error
}

func (m CalculatorModel) loadStoredAdvanceCmd() tea.Cmd {
	emr := strings.TrimSpace(m.in.EMRNumber)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		balance, err := m.billingService.AdvanceBalance(ctx, emr)

		return storedAdvanceMsg{emr: emr, balance: balance, err: err}
	}
}

type registerResultMsg struct {
	invoice *billing.Invoice
	err     error
}

func (m CalculatorModel) registerCmd() tea.Cmd {
	params := billing.RegisterParams{
		EMRNumber:        m.in.EMRNumber,
		PatientName:      m.in.PatientName,
		Kind:             m.in.Kind,
		ItemName:         m.in.ItemName,
		Payment:          m.in.payment(),
		UseStoredAdvance: m.in.UseStored,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.billingService.Register(ctx, params)

		return registerResultMsg{invoice: inv, err: err}
	}
}
