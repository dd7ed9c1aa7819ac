package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/videra/data-server/internal/trend"
)

// EndpointGetTopics handles the 'GET /v1/trends?page={number?:1}&limit={number?:12}&sortBy={string?:viralScore}&sortOrder={string?:desc}&search={string?}&platform={string?}&timeframe={string?}&category={string?}' endpoint
func (service *Service) EndpointGetTopics(writer http.ResponseWriter, request *http.Request) {
	writeList(service, writer, request, listing[*trend.Topic]{
		defaults: trend.Defaults,
		schema:   trend.Schema,
		list:     service.Storage.Trends().List,
	})
}

// EndpointGetTopic handles the 'GET /v1/trends/{id}' endpoint
func (service *Service) EndpointGetTopic(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	obj, err := service.Storage.Trends().GetByID(request.Context(), id)
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
