package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/clinicdesk/internal/money"
	"github.com/MrJamesThe3rd/clinicdesk/internal/pettycash"
)

// Item links an exported petty cash entry to its downloaded receipt.
type Item struct {
	Entry    *pettycash.Entry
	FilePath string
}

// Service bundles petty cash entries and their receipts for the accountant.
type Service struct {
	entries  *pettycash.Service
	client   *http.Client
	apiToken string
}

func NewService(entries *pettycash.Service, apiToken string, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Service{
		entries:  entries,
		client:   &http.Client{Timeout: timeout},
		apiToken: apiToken,
	}
}

// Export downloads the receipts of the entries matching filter into outputDir.
// Entries without a receipt, or whose receipt could not be downloaded, are
// returned with an empty FilePath.
func (s *Service) Export(ctx context.Context, filter pettycash.ListFilter, outputDir string) ([]Item, error) {
	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(entries))

	for _, e := range entries {
		item := Item{Entry: e}

		if e.ReceiptURL != "" {
			path, err := s.downloadReceipt(ctx, e, outputDir)
			switch {
			case ctx.Err() != nil:
				return nil, fmt.Errorf("downloading receipt for entry %s: %w", e.ID, ctx.Err())
			case err != nil:
				slog.Warn("receipt download failed", "entry", e.ID, "error", err)
			default:
				item.FilePath = path
			}
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *Service) downloadReceipt(ctx context.Context, e *pettycash.Entry, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.ReceiptURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	if s.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, e.ReceiptURL)
	}

	path := filepath.Join(dir, receiptFilename(resp, e))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

// receiptFilename prefers the server supplied name, then falls back to
// YYYYMMDD_category_shortid.ext.
func receiptFilename(resp *http.Response, e *pettycash.Entry) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return strings.ReplaceAll(filepath.Base(name), " ", "_")
			}
		}
	}

	ext := ".pdf"

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
			ext = exts[0]
		}
	}

	label := e.Category
	if label == "" {
		label = e.Description
	}

	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, label)

	return fmt.Sprintf("%s_%s_%s%s", e.Date.Format("20060102"), safe, e.ID.String()[:8], ext)
}

// GenerateSummary renders one line per item for the accountant's email.
func (s *Service) GenerateSummary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		e := item.Entry

		sign := "-"
		if e.Kind == pettycash.KindFund {
			sign = "+"
		}

		desc := e.Description
		if desc == "" {
			desc = e.Category
		}

		receipt := "No receipt"
		if item.FilePath != "" {
			receipt = filepath.Base(item.FilePath)
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n", e.Date.Format(time.DateOnly), desc, sign, money.Format(e.Amount), receipt)
	}

	return sb.String()
}
