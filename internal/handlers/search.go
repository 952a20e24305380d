package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/halcyonlabs/userdir/internal/models"
	httpx "github.com/halcyonlabs/userdir/pkg/http"
)

// SearchHandler handles the user search endpoint.
type SearchHandler struct {
	service UserCrudService
}

func NewSearchHandler(service UserCrudService) *SearchHandler {
	return &SearchHandler{service: service}
}

// FieldsTemplate is the query-by-example template: non-empty fields narrow
// the match, empty fields are wildcards.
type FieldsTemplate struct {
	ID      string `json:"id,omitempty"`
	Profile string `json:"profile,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// SearchRequest is the request body for the search endpoint. Page and size
// fall back to 0 and the default page size when omitted.
type SearchRequest struct {
	Fields FieldsTemplate `json:"fields"`
	Page   *int           `json:"page,omitempty" validate:"omitempty,gte=0"`
	Size   *int           `json:"size,omitempty" validate:"omitempty,gte=1,lte=30"`
	Asc    []string       `json:"asc,omitempty"`
	Desc   []string       `json:"desc,omitempty"`
}

// SearchResponse is a page of matching users with passwords redacted.
type SearchResponse struct {
	TotalPages int             `json:"totalPages"`
	Number     int             `json:"number"`
	Content    []*UserResponse `json:"content"`
}

// SearchUsers runs a paginated query-by-example search.
//
// POST /api/users
func (h *SearchHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		httpx.WriteBadRequest(w, err.Error())
		return
	}

	builder := models.NewFilterBuilder().
		Fields(models.User{
			ID:      req.Fields.ID,
			Profile: req.Fields.Profile,
			Name:    req.Fields.Name,
			Email:   req.Fields.Email,
			Address: req.Fields.Address,
			Phone:   req.Fields.Phone,
		}).
		Asc(req.Asc...).
		Desc(req.Desc...)
	if req.Page != nil {
		builder.Page(*req.Page)
	}
	if req.Size != nil {
		builder.Size(*req.Size)
	}

	filter, err := builder.Build()
	if err != nil {
		httpx.WriteBadRequest(w, err.Error())
		return
	}

	page, err := h.service.FindUsers(r.Context(), filter).Await(r.Context())
	if err != nil {
		writeOperationError(w, err)
		return
	}

	resp := &SearchResponse{
		TotalPages: page.TotalPages,
		Number:     page.Number,
		Content:    make([]*UserResponse, len(page.Content)),
	}
	for i := range page.Content {
		resp.Content[i] = userModelToResponse(&page.Content[i])
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
