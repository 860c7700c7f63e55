package handlers

import (
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/utils"
	"github.com/gorilla/mux"
)

// HandleGetPayment retrieves a payment with its captures and refunds
func HandleGetPayment(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["payment_id"]

	payment, err := paymentService.RetrievePayment(req.Context(), id)
	if err != nil {
		writeError(w, req, "getting payment", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, payment, http.StatusOK)
}

// HandleUpdatePayment updates the references held on a payment
func HandleUpdatePayment(w http.ResponseWriter, req *http.Request) {
	var incoming models.UpdatePaymentRequest
	if err := decodeBody(req, &incoming, false); err != nil {
		writeBadRequest(w, req, err)
		return
	}
	incoming.ID = mux.Vars(req)["payment_id"]

	payment, err := paymentService.UpdatePayment(req.Context(), incoming)
	if err != nil {
		writeError(w, req, "updating payment", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, payment, http.StatusOK)
}

// HandleCapturePayment captures funds against a payment. Without a body the
// remaining authorized amount is captured.
func HandleCapturePayment(w http.ResponseWriter, req *http.Request) {
	var incoming models.CapturePaymentRequest
	if err := decodeBody(req, &incoming, true); err != nil {
		writeBadRequest(w, req, err)
		return
	}
	incoming.PaymentID = mux.Vars(req)["payment_id"]

	payment, err := paymentService.CapturePayment(req.Context(), incoming)
	if err != nil {
		writeError(w, req, "capturing payment", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, payment, http.StatusOK)
	log.InfoR(req, "Successful POST request to capture payment", log.Data{"payment_id": payment.ID, "captured_amount": payment.CapturedAmount.String()})
}

// HandleRefundPayment refunds captured funds. Without a body the remaining
// captured amount is refunded.
func HandleRefundPayment(w http.ResponseWriter, req *http.Request) {
	var incoming models.RefundPaymentRequest
	if err := decodeBody(req, &incoming, true); err != nil {
		writeBadRequest(w, req, err)
		return
	}
	incoming.PaymentID = mux.Vars(req)["payment_id"]

	payment, err := paymentService.RefundPayment(req.Context(), incoming)
	if err != nil {
		writeError(w, req, "refunding payment", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, payment, http.StatusCreated)
	log.InfoR(req, "Successful POST request for new refund", log.Data{"payment_id": payment.ID, "refunded_amount": payment.RefundedAmount.String(), "status": http.StatusCreated})
}

// HandleCancelPayment cancels an uncaptured payment
func HandleCancelPayment(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["payment_id"]

	payment, err := paymentService.CancelPayment(req.Context(), id)
	if err != nil {
		writeError(w, req, "canceling payment", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, payment, http.StatusOK)
	log.InfoR(req, "Successful POST request to cancel payment", log.Data{"payment_id": id})
}
