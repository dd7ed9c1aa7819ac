package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/videra/data-server/internal/api/schema"
	"github.com/videra/data-server/internal/api/validation"
	"github.com/videra/data-server/internal/user"
)

// EndpointGetUsers handles the 'GET /v1/admin/users?page={number?:1}&limit={number?:20}&sortBy={string?:createdAt}&sortOrder={string?:desc}&search={string?}&plan={string?}&status={string?}' endpoint
func (service *Service) EndpointGetUsers(writer http.ResponseWriter, request *http.Request) {
	writeList(service, writer, request, listing[*user.User]{
		defaults: user.Defaults,
		schema:   user.Schema,
		checks: map[string]validation.FilterCheck{
			user.FilterPlan:   checkWith(user.ParsePlan),
			user.FilterStatus: checkWith(user.ParseStatus),
		},
		list: service.Storage.Users().List,
	})
}

// EndpointGetUser handles the 'GET /v1/admin/users/{id}' endpoint
func (service *Service) EndpointGetUser(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	obj, err := service.Storage.Users().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteNotFound(writer)
		return
	}

	service.writer.WriteData(writer, http.StatusOK, obj)
}

type endpointEditUserRequestPayload struct {
	Plan   *string `json:"plan" enum:"free,pro"`
	Status *string `json:"status" enum:"active,inactive,suspended"`
}

// EndpointEditUser handles the 'PATCH /v1/admin/users/{id}' endpoint
func (service *Service) EndpointEditUser(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	// Retrieve the old user
	obj, err := service.Storage.Users().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteNotFound(writer)
		return
	}

	// Unmarshal and validate the request body
	payload, validationErrs, err := schema.UnmarshalBody[endpointEditUserRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	// Construct the update action
	update := &user.Update{}
	if payload.Plan != nil {
		plan := user.Plan(*payload.Plan)
		update.Plan = &plan
	}
	if payload.Status != nil {
		status := user.Status(*payload.Status)
		update.Status = &status
	}

	// Update the user and return the new one
	newObj, err := service.Storage.Users().Update(request.Context(), obj.ID, update)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if newObj == nil {
		service.writer.WriteNotFound(writer)
		return
	}
	service.writer.WriteData(writer, http.StatusOK, newObj)
}
