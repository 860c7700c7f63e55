package handlers

import (
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/interceptors"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/service"
	"github.com/gorilla/mux"
)

var collectionService *service.PaymentCollectionService
var sessionService *service.PaymentSessionService
var paymentService *service.PaymentService

// Register defines the route mappings for the main router and it's subrouters
func Register(mainRouter *mux.Router, collections *service.PaymentCollectionService, sessions *service.PaymentSessionService, payments *service.PaymentService) {
	collectionService = collections
	sessionService = sessions
	paymentService = payments

	mainRouter.HandleFunc("/healthcheck", healthCheck).Methods("GET").Name("get-healthcheck")

	collectionsRouter := mainRouter.PathPrefix("/payment-collections").Subrouter()
	collectionsRouter.HandleFunc("", HandleCreatePaymentCollection).Methods("POST").Name("create-payment-collection")
	collectionsRouter.HandleFunc("", HandleListPaymentCollections).Methods("GET").Name("list-payment-collections")
	collectionsRouter.HandleFunc("/{collection_id}", HandleGetPaymentCollection).Methods("GET").Name("get-payment-collection")
	collectionsRouter.HandleFunc("/{collection_id}", HandleUpdatePaymentCollection).Methods("POST").Name("update-payment-collection")
	collectionsRouter.HandleFunc("/{collection_id}", HandleDeletePaymentCollection).Methods("DELETE").Name("delete-payment-collection")
	collectionsRouter.HandleFunc("/{collection_id}/complete", HandleCompletePaymentCollection).Methods("POST").Name("complete-payment-collection")
	collectionsRouter.HandleFunc("/{collection_id}/sessions", HandleCreatePaymentSession).Methods("POST").Name("create-payment-session")
	collectionsRouter.HandleFunc("/{collection_id}/payments", HandleListPayments).Methods("GET").Name("list-payments")

	sessionsRouter := mainRouter.PathPrefix("/payment-sessions/{session_id}").Subrouter()
	sessionsRouter.HandleFunc("", HandleUpdatePaymentSession).Methods("POST").Name("update-payment-session")
	sessionsRouter.HandleFunc("", HandleDeletePaymentSession).Methods("DELETE").Name("delete-payment-session")
	sessionsRouter.HandleFunc("/authorize", HandleAuthorizePaymentSession).Methods("POST").Name("authorize-payment-session")

	paymentsRouter := mainRouter.PathPrefix("/payments/{payment_id}").Subrouter()
	paymentsRouter.HandleFunc("", HandleGetPayment).Methods("GET").Name("get-payment")
	paymentsRouter.HandleFunc("", HandleUpdatePayment).Methods("POST").Name("update-payment")
	paymentsRouter.HandleFunc("/capture", HandleCapturePayment).Methods("POST").Name("capture-payment")
	paymentsRouter.HandleFunc("/refunds", HandleRefundPayment).Methods("POST").Name("refund-payment")
	paymentsRouter.HandleFunc("/cancel", HandleCancelPayment).Methods("POST").Name("cancel-payment")

	// Set middleware for subrouters
	collectionsRouter.Use(log.Handler, interceptors.RequestIDIntercept)
	sessionsRouter.Use(log.Handler, interceptors.RequestIDIntercept)
	paymentsRouter.Use(log.Handler, interceptors.RequestIDIntercept)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
