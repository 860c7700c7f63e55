package handlers

import (
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/utils"
	"github.com/gorilla/mux"
)

// HandleCreatePaymentSession opens a payment session against a collection
func HandleCreatePaymentSession(w http.ResponseWriter, req *http.Request) {
	var incoming models.CreatePaymentSessionRequest
	if err := decodeBody(req, &incoming, false); err != nil {
		writeBadRequest(w, req, err)
		return
	}
	collectionID := mux.Vars(req)["collection_id"]

	session, err := sessionService.CreatePaymentSession(req.Context(), collectionID, incoming)
	if err != nil {
		writeError(w, req, "creating payment session", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, session, http.StatusCreated)
	log.InfoR(req, "Successful POST request for new payment session", log.Data{"payment_collection_id": collectionID, "payment_session_id": session.ID})
}

// HandleUpdatePaymentSession refreshes a payment session with its provider
func HandleUpdatePaymentSession(w http.ResponseWriter, req *http.Request) {
	var incoming models.UpdatePaymentSessionRequest
	if err := decodeBody(req, &incoming, false); err != nil {
		writeBadRequest(w, req, err)
		return
	}
	incoming.ID = mux.Vars(req)["session_id"]

	session, err := sessionService.UpdatePaymentSession(req.Context(), incoming)
	if err != nil {
		writeError(w, req, "updating payment session", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, session, http.StatusOK)
}

// HandleDeletePaymentSession removes an unauthorized payment session
func HandleDeletePaymentSession(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["session_id"]

	if err := sessionService.DeletePaymentSession(req.Context(), id); err != nil {
		writeError(w, req, "deleting payment session", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.InfoR(req, "Successful DELETE request for payment session", log.Data{"payment_session_id": id})
}

// HandleAuthorizePaymentSession authorizes a payment session and returns the
// resulting payment. The body, when present, is passed to the provider as the
// authorization context.
func HandleAuthorizePaymentSession(w http.ResponseWriter, req *http.Request) {
	var authContext map[string]interface{}
	if err := decodeBody(req, &authContext, true); err != nil {
		writeBadRequest(w, req, err)
		return
	}
	id := mux.Vars(req)["session_id"]

	payment, err := sessionService.AuthorizePaymentSession(req.Context(), id, authContext)
	if err != nil {
		writeError(w, req, "authorizing payment session", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, payment, http.StatusOK)
	log.InfoR(req, "Successful POST request to authorize payment session", log.Data{"payment_session_id": id, "payment_id": payment.ID})
}
