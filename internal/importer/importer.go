package importer

import (
	"io"

	"github.com/MrJamesThe3rd/clinicdesk/internal/catalog"
)

// Format names a supported spreadsheet export.
type Format string

const (
	FormatPriceList Format = "pricelist"
)

type Importer interface {
	Parse(r io.Reader) ([]catalog.CreateParams, error)
}
