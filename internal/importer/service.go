package importer

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/MrJamesThe3rd/clinicdesk/internal/catalog"
	"github.com/MrJamesThe3rd/clinicdesk/internal/importer/pricelist"
)

var ErrUnknownFormat = errors.New("unknown import format")

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatPriceList: pricelist.NewParser(),
		},
	}
}

// Formats lists the registered formats in name order.
func (s *Service) Formats() []Format {
	formats := make([]Format, 0, len(s.importers))
	for f := range s.importers {
		formats = append(formats, f)
	}

	slices.Sort(formats)

	return formats
}

// Import parses r with the importer registered for format. An empty format
// selects the price list importer.
func (s *Service) Import(format Format, r io.Reader) ([]catalog.CreateParams, error) {
	if format == "" {
		format = FormatPriceList
	}

	importer, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return importer.Parse(r)
}
