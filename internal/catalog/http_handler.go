package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"biblio/internal/httpx"
	"biblio/internal/platform/opac"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Search handles GET /v1/catalog/search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := strings.TrimSpace(query.Get("q"))
	if q == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Query parameter q is required", nil)
		return
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	opts := opac.SearchOptions{
		Limit:     pageSize,
		Page:      page,
		Language:  query.Get("language"),
		SortOrder: query.Get("sort"),
	}
	if err := opts.Validate(); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid search options", validationDetails(err))
		return
	}

	result, err := h.svc.Search(r.Context(), q, opts)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, result.Records, map[string]any{
		"page":      page,
		"page_size": pageSize,
		"total":     result.Total,
	})
}

// GetRecord handles GET /v1/catalog/records/{id}
func (h *HTTPHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Record id is required", nil)
		return
	}

	detail, err := h.svc.GetDetail(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, detail, nil)
}

// writeUpstreamError maps pipeline failures to responses. Only structural
// and transport failures surface; per-field irregularities never reach here.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, opac.ErrRecordNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Record not found in catalog", nil)
	case errors.Is(err, ErrInvalidResponseShape), errors.Is(err, opac.ErrUnavailable):
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "Catalog data could not be loaded", nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

func validationDetails(err error) []httpx.ErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]httpx.ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		var message string
		switch fe.Tag() {
		case "min":
			message = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", fe.Field())
		}
		details = append(details, httpx.ErrorDetail{Field: fe.Field(), Message: message})
	}
	return details
}
