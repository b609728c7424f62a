package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/clinicdesk/internal/catalog"
	"github.com/MrJamesThe3rd/clinicdesk/internal/http/auth"
	"github.com/MrJamesThe3rd/clinicdesk/internal/importer"
	"github.com/MrJamesThe3rd/clinicdesk/internal/matching"
	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

const (
	module = "billing"
	sub    = "Treatment"
)

type Handler struct {
	importSvc  *importer.Service
	catalogSvc *catalog.Service
	matchSvc   *matching.Service
	gate       *auth.Gate
}

func NewHandler(importSvc *importer.Service, catalogSvc *catalog.Service, matchSvc *matching.Service, gate *auth.Gate) *Handler {
	return &Handler{
		importSvc:  importSvc,
		catalogSvc: catalogSvc,
		matchSvc:   matchSvc,
		gate:       gate,
	}
}

func (h *Handler) Routes(r chi.Router) {
	create := h.gate.Require(module, sub, permission.ActionCreate)

	r.With(create).Post("/", h.importCSV)
	r.With(create).Post("/confirm", h.confirmImport)
	r.With(h.gate.Require(module, sub, permission.ActionRead)).Get("/formats", h.formats)
}

func (h *Handler) formats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string][]importer.Format{"formats": h.importSvc.Formats()}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type itemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Kind      catalog.Kind    `json:"kind"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

type importSuccessResponse struct {
	Imported int               `json:"imported"`
	Items    []itemResponse    `json:"items"`
	Repeated []createParamsDTO `json:"repeated,omitempty"`
}

type createParamsDTO struct {
	Name      string          `json:"name"`
	Kind      catalog.Kind    `json:"kind"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Active    bool            `json:"active"`
}

type conflictDTO struct {
	Incoming createParamsDTO `json:"incoming"`
	Existing itemResponse    `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
	Repeated  []createParamsDTO `json:"repeated,omitempty"`
}

type overwriteDTO struct {
	ID uuid.UUID `json:"id"`
	createParamsDTO
}

// confirmRequest carries the reviewed rows: Params are created, Overwrite
// rows replace the existing item with the given ID.
type confirmRequest struct {
	Params    []createParamsDTO `json:"params"`
	Overwrite []overwriteDTO    `json:"overwrite,omitempty"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(importer.Format(r.FormValue("format")), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for i, p := range params {
		suggested, err := h.matchSvc.Suggest(r.Context(), p.Name)
		if err != nil {
			slog.Warn("item name suggestion failed", "name", p.Name, "error", err)
			continue
		}

		if suggested == "" {
			continue
		}

		params[i].Name = suggested
	}

	result, err := h.catalogSvc.ImportBatch(r.Context(), params)
	if err != nil {
		writeImportError(w, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       toParamsDTOs(result.New),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
			Repeated:  toParamsDTOs(result.Repeated),
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toItemResponse(c.Existing),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	resp := toSuccessResponse(result.Imported)
	resp.Repeated = toParamsDTOs(result.Repeated)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]catalog.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, fromParamsDTO(p))
	}

	items, err := h.catalogSvc.CreateBatch(r.Context(), params)
	if err != nil {
		writeImportError(w, err)
		return
	}

	if len(req.Overwrite) > 0 {
		conflicts := make([]catalog.Conflict, 0, len(req.Overwrite))
		for _, o := range req.Overwrite {
			conflicts = append(conflicts, catalog.Conflict{
				Incoming: fromParamsDTO(o.createParamsDTO),
				Existing: &catalog.Item{ID: o.ID},
			})
		}

		updated, err := h.catalogSvc.Overwrite(r.Context(), conflicts)
		if err != nil {
			writeImportError(w, err)
			return
		}

		items = append(items, updated...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(items)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeImportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidItem):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, catalog.ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toSuccessResponse(items []*catalog.Item) importSuccessResponse {
	responses := make([]itemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toItemResponse(item))
	}

	return importSuccessResponse{
		Imported: len(items),
		Items:    responses,
	}
}

func toItemResponse(item *catalog.Item) itemResponse {
	return itemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Kind:      item.Kind,
		UnitPrice: item.UnitPrice,
		Active:    item.Active,
		CreatedAt: item.CreatedAt,
	}
}

func toParamsDTO(p catalog.CreateParams) createParamsDTO {
	return createParamsDTO{
		Name:      p.Name,
		Kind:      p.Kind,
		UnitPrice: p.UnitPrice,
		Active:    p.Active,
	}
}

func fromParamsDTO(p createParamsDTO) catalog.CreateParams {
	return catalog.CreateParams{
		Name:      p.Name,
		Kind:      p.Kind,
		UnitPrice: p.UnitPrice,
		Active:    p.Active,
	}
}

func toParamsDTOs(params []catalog.CreateParams) []createParamsDTO {
	dtos := make([]createParamsDTO, 0, len(params))
	for _, p := range params {
		dtos = append(dtos, toParamsDTO(p))
	}

	return dtos
}
