package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/service"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/utils"
)

// statusFor maps an engine error to the HTTP status returned to the caller.
func statusFor(err error) int {
	errorType, ok := service.TypeOf(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch {
	case errorType == service.ValidationError:
		return http.StatusBadRequest
	case errorType == service.NotFoundError:
		return http.StatusNotFound
	case errorType == service.ConflictError:
		return http.StatusConflict
	case errorType.IsInvalidState():
		return http.StatusUnprocessableEntity
	case errorType == service.ProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes it as a message response.
func writeError(w http.ResponseWriter, req *http.Request, action string, err error) {
	status := statusFor(err)
	data := log.Data{"status": status}
	if errorType, ok := service.TypeOf(err); ok {
		data["service_response_type"] = errorType.String()
	}
	log.ErrorR(req, fmt.Errorf("error %s: [%v]", action, err), data)

	utils.WriteMessageWithStatus(w, req, err.Error(), status)
}

// decodeBody reads the JSON body of req into dest. An empty body is only
// accepted when optional is set.
func decodeBody(req *http.Request, dest interface{}, optional bool) error {
	if req.Body == nil || req.Body == http.NoBody {
		if optional {
			return nil
		}
		return fmt.Errorf("request body empty")
	}

	err := json.NewDecoder(req.Body).Decode(dest)
	if errors.Is(err, io.EOF) && optional {
		return nil
	}
	if err != nil {
		return fmt.Errorf("request body invalid: [%v]", err)
	}
	return nil
}

func writeBadRequest(w http.ResponseWriter, req *http.Request, err error) {
	log.ErrorR(req, err)
	utils.WriteMessageWithStatus(w, req, err.Error(), http.StatusBadRequest)
}
