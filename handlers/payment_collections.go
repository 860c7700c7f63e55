package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/utils"
	"github.com/gorilla/mux"
)

const defaultListLimit = 20

// ListPaymentCollectionsResponse is one page of a collection listing
type ListPaymentCollectionsResponse struct {
	PaymentCollections []models.PaymentCollection `json:"payment_collections"`
	Count              int64                      `json:"count"`
	Offset             int64                      `json:"offset"`
	Limit              int64                      `json:"limit"`
}

// HandleCreatePaymentCollection creates a payment collection
func HandleCreatePaymentCollection(w http.ResponseWriter, req *http.Request) {
	var incoming models.CreatePaymentCollectionRequest
	if err := decodeBody(req, &incoming, false); err != nil {
		writeBadRequest(w, req, err)
		return
	}

	collections, err := collectionService.CreatePaymentCollections(req.Context(), incoming)
	if err != nil {
		writeError(w, req, "creating payment collection", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, collections[0], http.StatusCreated)
	log.InfoR(req, "Successful POST request for new payment collection", log.Data{"payment_collection_id": collections[0].ID, "status": http.StatusCreated})
}

// HandleListPaymentCollections lists payment collections. Filters are given
// as comma separated query parameters.
func HandleListPaymentCollections(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()

	findConfig, err := findConfigFromQuery(req)
	if err != nil {
		writeBadRequest(w, req, err)
		return
	}
	if findConfig.Take == 0 {
		findConfig.Take = defaultListLimit
	}

	filter := models.FilterablePaymentCollectionProps{
		ID:           splitQuery(query.Get("id")),
		RegionID:     splitQuery(query.Get("region_id")),
		CurrencyCode: splitQuery(query.Get("currency_code")),
	}
	for _, s := range splitQuery(query.Get("status")) {
		filter.Status = append(filter.Status, models.PaymentCollectionStatus(s))
	}

	collections, count, err := collectionService.ListAndCountPaymentCollections(req.Context(), filter, findConfig)
	if err != nil {
		writeError(w, req, "listing payment collections", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, ListPaymentCollectionsResponse{
		PaymentCollections: collections,
		Count:              count,
		Offset:             findConfig.Skip,
		Limit:              findConfig.Take,
	}, http.StatusOK)
}

// HandleGetPaymentCollection retrieves a payment collection. The expand
// query parameter names the child sets to include.
func HandleGetPaymentCollection(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["collection_id"]

	findConfig, err := findConfigFromQuery(req)
	if err != nil {
		writeBadRequest(w, req, err)
		return
	}

	collection, err := collectionService.RetrievePaymentCollection(req.Context(), id, findConfig)
	if err != nil {
		writeError(w, req, "getting payment collection", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, collection, http.StatusOK)
}

// HandleUpdatePaymentCollection applies a partial update to a payment collection
func HandleUpdatePaymentCollection(w http.ResponseWriter, req *http.Request) {
	var incoming models.UpdatePaymentCollectionRequest
	if err := decodeBody(req, &incoming, false); err != nil {
		writeBadRequest(w, req, err)
		return
	}
	incoming.ID = mux.Vars(req)["collection_id"]

	collections, err := collectionService.UpdatePaymentCollections(req.Context(), incoming)
	if err != nil {
		writeError(w, req, "updating payment collection", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, collections[0], http.StatusOK)
	log.InfoR(req, "Successful POST request to update payment collection", log.Data{"payment_collection_id": incoming.ID})
}

// HandleDeletePaymentCollection deletes a payment collection
func HandleDeletePaymentCollection(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["collection_id"]

	if err := collectionService.DeletePaymentCollections(req.Context(), []string{id}); err != nil {
		writeError(w, req, "deleting payment collection", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.InfoR(req, "Successful DELETE request for payment collection", log.Data{"payment_collection_id": id})
}

// HandleCompletePaymentCollection marks a payment collection completed
func HandleCompletePaymentCollection(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["collection_id"]

	collections, err := collectionService.CompletePaymentCollections(req.Context(), id)
	if err != nil {
		writeError(w, req, "completing payment collection", err)
		return
	}

	utils.WriteJSONWithStatus(w, req, collections[0], http.StatusOK)
	log.InfoR(req, "Successful POST request to complete payment collection", log.Data{"payment_collection_id": id})
}

// HandleListPayments lists the payments of a payment collection
func HandleListPayments(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["collection_id"]

	payments, err := paymentService.ListPayments(req.Context(), id)
	if err != nil {
		writeError(w, req, "listing payments", err)
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}

	utils.WriteJSONWithStatus(w, req, payments, http.StatusOK)
}

func findConfigFromQuery(req *http.Request) (models.FindConfig, error) {
	query := req.URL.Query()
	findConfig := models.FindConfig{Relations: splitQuery(query.Get("expand"))}

	var err error
	if offset := query.Get("offset"); offset != "" {
		if findConfig.Skip, err = strconv.ParseInt(offset, 10, 64); err != nil || findConfig.Skip < 0 {
			return findConfig, fmt.Errorf("invalid offset: %s", offset)
		}
	}
	if limit := query.Get("limit"); limit != "" {
		if findConfig.Take, err = strconv.ParseInt(limit, 10, 64); err != nil || findConfig.Take < 0 {
			return findConfig, fmt.Errorf("invalid limit: %s", limit)
		}
	}
	return findConfig, nil
}

func splitQuery(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
