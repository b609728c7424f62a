package export_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/clinicdesk/internal/export"
	"github.com/MrJamesThe3rd/clinicdesk/internal/pettycash"
)

func TestService_Export(t *testing.T) {
	var gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		switch r.URL.Path {
		case "/named.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="receipt 42.pdf"`)
			w.Write([]byte("named receipt"))
		case "/unnamed":
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("unnamed receipt"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	id := uuid.MustParse("6f1c2a7e-0000-4000-8000-000000000000")

	named := &pettycash.Entry{ID: uuid.New(), Kind: pettycash.KindExpense, Amount: decimal.NewFromInt(12), Category: "Supplies", Date: date, ReceiptURL: ts.URL + "/named.pdf"}
	unnamed := &pettycash.Entry{ID: id, Kind: pettycash.KindExpense, Amount: decimal.NewFromInt(5), Category: "Courier fee", Date: date, ReceiptURL: ts.URL + "/unnamed"}
	bare := &pettycash.Entry{ID: uuid.New(), Kind: pettycash.KindFund, Amount: decimal.NewFromInt(500), Date: date}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pettycash.NewMockRepository(ctrl)
	repo.EXPECT().ListEntries(gomock.Any(), gomock.Any()).Return([]*pettycash.Entry{named, unnamed, bare}, nil)

	svc := export.NewService(pettycash.NewService(repo), "secret", time.Second)

	dir := t.TempDir()

	items, err := svc.Export(context.Background(), pettycash.ListFilter{}, dir)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Bearer secret", gotAuth)

	assert.Equal(t, "receipt_42.pdf", filepath.Base(items[0].FilePath))
	content, err := os.ReadFile(items[0].FilePath)
	require.NoError(t, err)
	assert.Equal(t, "named receipt", string(content))

	assert.Equal(t, "20260302_Courier_fee_6f1c2a7e.pdf", filepath.Base(items[1].FilePath))
	assert.Empty(t, items[2].FilePath)
}

func TestService_Export_MissingReceipt(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	repo := pettycash.NewMockRepository(ctrl)
	repo.EXPECT().ListEntries(gomock.Any(), gomock.Any()).Return([]*pettycash.Entry{
		{
			ID:          uuid.MustParse("0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"),
			Kind:        pettycash.KindExpense,
			Amount:      decimal.RequireFromString("12.5"),
			Description: "Courier fee",
			ReceiptURL:  ts.URL + "/gone",
			Date:        date,
		},
	}, nil)

	svc := export.NewService(pettycash.NewService(repo), "", time.Second)

	items, err := svc.Export(context.Background(), pettycash.ListFilter{}, t.TempDir())
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Empty(t, items[0].FilePath)
	assert.Contains(t, svc.GenerateSummary(items), "No receipt")
}

func TestService_GenerateSummary(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	items := []export.Item{
		{
			Entry:    &pettycash.Entry{Kind: pettycash.KindExpense, Amount: decimal.RequireFromString("12.5"), Description: "Printer paper", Date: date},
			FilePath: "/tmp/receipt.pdf",
		},
		{
			Entry: &pettycash.Entry{Kind: pettycash.KindFund, Amount: decimal.NewFromInt(500), Category: "Top-up", Date: date},
		},
	}

	body := (&export.Service{}).GenerateSummary(items)

	assert.Contains(t, body, "* 2026-03-02 | Printer paper | -12.50 | receipt.pdf")
	assert.Contains(t, body, "* 2026-03-02 | Top-up | +500.00 | No receipt")
}
