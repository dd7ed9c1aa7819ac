package dashboard

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/videra/data-server/internal/analytics"
	"github.com/videra/data-server/internal/api/schema"
	"github.com/videra/data-server/internal/api/validation"
	"github.com/videra/data-server/internal/pagination"
)

var periodValues = func() []string {
	values := make([]string, 0, len(analytics.Periods))
	for _, period := range analytics.Periods {
		values = append(values, string(period))
	}
	return values
}()

// EndpointGetDataPoints handles the 'GET /v1/analytics?page={number?:1}&limit={number?:50}&sortBy={string?:date}&sortOrder={string?:desc}&platform={string?}&startDate={date?}&endDate={date?}&contentId={string?}' endpoint
func (service *Service) EndpointGetDataPoints(writer http.ResponseWriter, request *http.Request) {
	writeList(service, writer, request, listing[*analytics.DataPoint]{
		defaults: analytics.Defaults,
		schema:   analytics.Schema,
		checks: map[string]validation.FilterCheck{
			analytics.FilterStartDate: checkWith(analytics.ParseDate),
			analytics.FilterEndDate:   checkWith(analytics.ParseDate),
		},
		list: service.Storage.Analytics().List,
	})
}

// EndpointGetSummary handles the 'GET /v1/analytics/summary?period={string?:30d}&platform={string?}' endpoint
func (service *Service) EndpointGetSummary(writer http.ResponseWriter, request *http.Request) {
	period, validationErr := validation.QueryEnum(request, "period", string(analytics.DefaultPeriod), periodValues)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	points, err := service.platformPoints(request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	summary, err := analytics.Summarize(points, analytics.Period(period))
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteData(writer, http.StatusOK, summary)
}

// EndpointGetChart handles the 'GET /v1/analytics/charts/{type}?period={string?:30d}&platform={string?}' endpoint
func (service *Service) EndpointGetChart(writer http.ResponseWriter, request *http.Request) {
	var validationErrs []*schema.Error

	chartType, err := analytics.ParseChartType(chi.URLParam(request, "type"))
	if err != nil {
		validationErrs = append(validationErrs, schema.ErrInvalidValue("type", err))
	}

	period, validationErr := validation.QueryEnum(request, "period", string(analytics.DefaultPeriod), periodValues)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	points, err := service.platformPoints(request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	series, err := analytics.Chart(points, chartType, analytics.Period(period))
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteData(writer, http.StatusOK, series)
}

// platformPoints retrieves every data point, restricted to the platform given in the query if any
func (service *Service) platformPoints(request *http.Request) ([]*analytics.DataPoint, error) {
	points, err := service.Storage.Analytics().Range(request.Context(), "", "")
	if err != nil {
		return nil, err
	}

	platform := strings.TrimSpace(request.URL.Query().Get(analytics.FilterPlatform))
	if platform == "" || strings.EqualFold(platform, pagination.FilterAll) {
		return points, nil
	}
	filtered := make([]*analytics.DataPoint, 0, len(points))
	for _, point := range points {
		if point.Platform == platform {
			filtered = append(filtered, point)
		}
	}
	return filtered, nil
}
