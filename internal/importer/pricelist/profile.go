package pricelist

import "github.com/MrJamesThe3rd/clinicdesk/internal/catalog"

// Profile describes the column layout of a price list export. Header names
// are compared case-insensitively.
type Profile struct {
	Name        string
	NameCol     string
	KindCol     string // optional
	PriceCol    string
	ActiveCol   string // optional
	DefaultKind catalog.Kind
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.NameCol, p.PriceCol}
	if p.KindCol != "" {
		cols = append(cols, p.KindCol)
	}

	return cols
}

// profiles is the ordered list of layouts tried during auto-detection.
// More specific profiles come first.
var profiles = []Profile{
	{
		Name:        "catalog",
		NameCol:     "name",
		KindCol:     "kind",
		PriceCol:    "unit price",
		ActiveCol:   "active",
		DefaultKind: catalog.KindService,
	},
	{
		Name:        "simple",
		NameCol:     "name",
		KindCol:     "kind",
		PriceCol:    "price",
		ActiveCol:   "active",
		DefaultKind: catalog.KindService,
	},
	{
		Name:        "price list",
		NameCol:     "name",
		KindCol:     "type",
		PriceCol:    "price",
		ActiveCol:   "status",
		DefaultKind: catalog.KindService,
	},
	{
		Name:        "rate card",
		NameCol:     "treatment",
		KindCol:     "category",
		PriceCol:    "rate",
		DefaultKind: catalog.KindTreatment,
	},
	{
		Name:        "treatments",
		NameCol:     "treatment",
		PriceCol:    "price",
		DefaultKind: catalog.KindTreatment,
	},
	{
		Name:        "services",
		NameCol:     "service",
		PriceCol:    "amount",
		DefaultKind: catalog.KindService,
	},
	{
		Name:        "untyped",
		NameCol:     "name",
		PriceCol:    "price",
		ActiveCol:   "active",
		DefaultKind: catalog.KindService,
	},
}

// positional is used when the file has no recognisable header:
// name, kind, price and an optional active flag, in that order.
var positional = Profile{
	Name:        "positional",
	NameCol:     "0",
	KindCol:     "1",
	PriceCol:    "2",
	ActiveCol:   "3",
	DefaultKind: catalog.KindService,
}
