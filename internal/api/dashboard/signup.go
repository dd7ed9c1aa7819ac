package dashboard

import "net/http"

// EndpointGetSignupEligibility handles the 'GET /v1/signup/eligibility' endpoint.
// The IP address is taken from the forwarding headers if present and from the connection otherwise.
func (service *Service) EndpointGetSignupEligibility(writer http.ResponseWriter, request *http.Request) {
	result := service.signup.Check(request.Context(), clientIP(request))
	service.writer.WriteData(writer, http.StatusOK, result)
}
