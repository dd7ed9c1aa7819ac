package dashboard

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/videra/data-server/internal/api/schema"
	"github.com/videra/data-server/internal/api/validation"
	"github.com/videra/data-server/internal/content"
)

// EndpointGetContentItems handles the 'GET /v1/content?page={number?:1}&limit={number?:20}&sortBy={string?:publishedAt}&sortOrder={string?:desc}&search={string?}&platform={string?}&status={string?}&performance={string?}' endpoint
func (service *Service) EndpointGetContentItems(writer http.ResponseWriter, request *http.Request) {
	writeList(service, writer, request, listing[*content.Item]{
		defaults: content.Defaults,
		schema:   content.Schema,
		checks: map[string]validation.FilterCheck{
			content.FilterStatus:      checkWith(content.ParseStatus),
			content.FilterPerformance: checkWith(content.ParsePerformance),
		},
		list: service.Storage.Content().List,
	})
}

// EndpointGetContentItem handles the 'GET /v1/content/{id}' endpoint
func (service *Service) EndpointGetContentItem(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	obj, err := service.Storage.Content().GetByID(request.Context(), id)
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

type endpointCreateContentItemRequestPayload struct {
	Title          *string    `json:"title" required:"true"`
	Platform       *string    `json:"platform" required:"true"`
	PublishedAt    *time.Time `json:"publishedAt"`
	Views          *int64     `json:"views" min:"0"`
	Likes          *int64     `json:"likes" min:"0"`
	Shares         *int64     `json:"shares" min:"0"`
	Comments       *int64     `json:"comments" min:"0"`
	Thumbnail      *string    `json:"thumbnail"`
	Status         *string    `json:"status" enum:"published,scheduled,draft,failed"`
	Performance    *string    `json:"performance" enum:"viral,good,average"`
	EngagementRate *float64   `json:"engagementRate"`
}

// EndpointCreateContentItem handles the 'POST /v1/content' endpoint
func (service *Service) EndpointCreateContentItem(writer http.ResponseWriter, request *http.Request) {
	// Unmarshal and validate the request body
	payload, validationErrs, err := schema.UnmarshalBody[endpointCreateContentItemRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	// Construct the create action
	create := &content.Create{
		Title:    *payload.Title,
		Platform: *payload.Platform,
	}
	if payload.PublishedAt != nil {
		create.PublishedAt = *payload.PublishedAt
	}
	create.Views = valueOrZero(payload.Views)
	create.Likes = valueOrZero(payload.Likes)
	create.Shares = valueOrZero(payload.Shares)
	create.Comments = valueOrZero(payload.Comments)
	create.Thumbnail = valueOrZero(payload.Thumbnail)
	create.Status = content.Status(valueOrZero(payload.Status))
	create.Performance = content.Performance(valueOrZero(payload.Performance))
	create.EngagementRate = valueOrZero(payload.EngagementRate)
	if err := create.Validate(); err != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, schema.ErrInvalidValue("body", err))
		return
	}

	// Create the content item and return it
	obj, err := service.Storage.Content().Create(request.Context(), create)
	if err != nil {
		service.writeStorageError(writer, err)
		return
	}
	service.writer.WriteData(writer, http.StatusCreated, obj)
}

type endpointEditContentItemRequestPayload struct {
	Title          *string    `json:"title"`
	Platform       *string    `json:"platform"`
	PublishedAt    *time.Time `json:"publishedAt"`
	Views          *int64     `json:"views" min:"0"`
	Likes          *int64     `json:"likes" min:"0"`
	Shares         *int64     `json:"shares" min:"0"`
	Comments       *int64     `json:"comments" min:"0"`
	Thumbnail      *string    `json:"thumbnail"`
	Status         *string    `json:"status" enum:"published,scheduled,draft,failed"`
	Performance    *string    `json:"performance" enum:"viral,good,average"`
	EngagementRate *float64   `json:"engagementRate"`
}

// EndpointEditContentItem handles the 'PUT /v1/content/{id}' endpoint
func (service *Service) EndpointEditContentItem(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	// Retrieve the old content item
	obj, err := service.Storage.Content().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteNotFound(writer)
		return
	}

	// Unmarshal and validate the request body
	payload, validationErrs, err := schema.UnmarshalBody[endpointEditContentItemRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	// Construct the update action
	update := &content.Update{
		Title:          payload.Title,
		Platform:       payload.Platform,
		PublishedAt:    payload.PublishedAt,
		Views:          payload.Views,
		Likes:          payload.Likes,
		Shares:         payload.Shares,
		Comments:       payload.Comments,
		Thumbnail:      payload.Thumbnail,
		EngagementRate: payload.EngagementRate,
	}
	if payload.Status != nil {
		status := content.Status(*payload.Status)
		update.Status = &status
	}
	if payload.Performance != nil {
		performance := content.Performance(*payload.Performance)
		update.Performance = &performance
	}
	if err := update.Validate(); err != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, schema.ErrInvalidValue("body", err))
		return
	}

	// Update the content item and return the new one
	newObj, err := service.Storage.Content().Update(request.Context(), obj.ID, update)
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

// EndpointDeleteContentItem handles the 'DELETE /v1/content/{id}' endpoint
func (service *Service) EndpointDeleteContentItem(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	obj, err := service.Storage.Content().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if obj == nil {
		service.writer.WriteNotFound(writer)
		return
	}

	if err := service.Storage.Content().Delete(request.Context(), obj.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

func valueOrZero[T any](val *T) T {
	if val == nil {
		var zero T
		return zero
	}
	return *val
}
