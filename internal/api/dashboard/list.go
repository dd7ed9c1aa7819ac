package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/videra/data-server/internal/api/schema"
	"github.com/videra/data-server/internal/api/validation"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/storage"
)

var errConflict = &schema.Error{
	Type:    "generic.conflict",
	Message: "A resource with the same ID already exists.",
	Details: map[string]any{},
}

// listing bundles everything a list endpoint needs to answer a paginated request
type listing[T any] struct {
	defaults pagination.Defaults
	schema   pagination.Schema[T]
	checks   map[string]validation.FilterCheck
	list     func(ctx context.Context, query pagination.Query) (*pagination.Page[T], error)
}

// writeList validates the pagination query of the request, retrieves the requested page and writes it
func writeList[T any](service *Service, writer http.ResponseWriter, request *http.Request, listing listing[T]) {
	query, validationErrs := validation.QueryPagination(request, listing.defaults, listing.schema, service.Config.APIMaxPageLimit, listing.checks)
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	page, err := listing.list(request.Context(), query)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, http.StatusOK, schema.BuildListResponse(page))
}

// writeStorageError writes the response matching an error returned by a storage write
func (service *Service) writeStorageError(writer http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrDuplicateID) {
		service.writer.WriteErrors(writer, http.StatusConflict, errConflict)
		return
	}
	service.writer.WriteInternalError(writer, err)
}

func checkWith[T any](parse func(string) (T, error)) validation.FilterCheck {
	return func(value string) error {
		_, err := parse(value)
		return err
	}
}
