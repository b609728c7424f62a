package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/clinicdesk/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/clinicdesk/internal/billing"
	billingStore "github.com/MrJamesThe3rd/clinicdesk/internal/billing/store"
	"github.com/MrJamesThe3rd/clinicdesk/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/clinicdesk/internal/catalog/store"
	"github.com/MrJamesThe3rd/clinicdesk/internal/config"
	"github.com/MrJamesThe3rd/clinicdesk/internal/database"
	"github.com/MrJamesThe3rd/clinicdesk/internal/export"
	"github.com/MrJamesThe3rd/clinicdesk/internal/importer"
	"github.com/MrJamesThe3rd/clinicdesk/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/clinicdesk/internal/matching/store"
	"github.com/MrJamesThe3rd/clinicdesk/internal/membership"
	membershipStore "github.com/MrJamesThe3rd/clinicdesk/internal/membership/store"
	"github.com/MrJamesThe3rd/clinicdesk/internal/pettycash"
	pettyCashStore "github.com/MrJamesThe3rd/clinicdesk/internal/pettycash/store"
)

type model struct {
	billingService    *billing.Service
	membershipService *membership.Service
	exportService     *export.Service

	currentView View

	calculatorView  view.CalculatorModel
	membershipsView view.MembershipsModel
	importView      view.ImportModel
	exportView      view.ExportModel
	claimsView      view.ClaimsModel
}

type View int

const (
	ViewMenu        View = 0
	ViewCalculator  View = 1
	ViewMemberships View = 2
	ViewImport      View = 3
	ViewExport      View = 4
	ViewClaims      View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	billingSvc := billing.NewService(billingStore.New(db))
	membershipSvc := membership.NewService(membershipStore.New(db))
	catalogSvc := catalog.NewService(catalogStore.New(db))
	matchSvc := matching.NewService(matchingStore.New(db))
	impSvc := importer.NewService()
	expSvc := export.NewService(pettycash.NewService(pettyCashStore.New(db)), cfg.Receipts.Token, cfg.Receipts.Timeout)

	return model{
		billingService:    billingSvc,
		membershipService: membershipSvc,
		exportService:     expSvc,
		currentView:       ViewMenu,
		calculatorView:    view.NewCalculatorModel(billingSvc),
		membershipsView:   view.NewMembershipsModel(membershipSvc),
		importView:        view.NewImportModel(catalogSvc, impSvc, matchSvc),
		exportView:        view.NewExportModel(expSvc),
		claimsView:        view.NewClaimsModel(billingSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCalculator
				m.calculatorView = view.NewCalculatorModel(m.billingService)

				return m, m.calculatorView.Init()
			case "2":
				m.currentView = ViewMemberships
				m.membershipsView = view.NewMembershipsModel(m.membershipService)

				return m, m.membershipsView.Init()
			case "3":
				m.currentView = ViewImport
				return m, m.importView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			case "5":
				m.currentView = ViewClaims
				m.claimsView = view.NewClaimsModel(m.billingService)

				return m, m.claimsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewCalculator:
		var newModel tea.Model
		newModel, cmd = m.calculatorView.Update(msg)
		m.calculatorView = newModel.(view.CalculatorModel)
	case ViewMemberships:
		var newModel tea.Model
		newModel, cmd = m.membershipsView.Update(msg)
		m.membershipsView = newModel.(view.MembershipsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewClaims:
		var newModel tea.Model
		newModel, cmd = m.claimsView.Update(msg)
		m.claimsView = newModel.(view.ClaimsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Clinic Desk\n\n" +
				"1. Register Patient Payment\n" +
				"2. Memberships\n" +
				"3. Import Price List\n" +
				"4. Export Petty Cash Receipts\n" +
				"5. Review Cancelled Claims\n\n" +
				"q. Quit",
		)
	case ViewCalculator:
		return view.Frame(m.calculatorView)
	case ViewMemberships:
		return view.Frame(m.membershipsView)
	case ViewImport:
		return view.Frame(m.importView)
	case ViewExport:
		return view.Frame(m.exportView)
	case ViewClaims:
		return view.Frame(m.claimsView)
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
