package transformers

import (
	"fmt"

	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/money"
)

// PaymentCollectionTransformer transforms payment collections between rest and database models
type PaymentCollectionTransformer struct{}

// TransformToDB transforms a payment collection into its database document.
// The status is written as a query projection only.
func (pt PaymentCollectionTransformer) TransformToDB(rest models.PaymentCollection) models.PaymentCollectionDB {
	rest.RecomputeTotals()

	dbResource := models.PaymentCollectionDB{
		ID:               rest.ID,
		Version:          rest.Version,
		CurrencyCode:     rest.CurrencyCode,
		Amount:           rest.Amount.String(),
		RawAmount:        rest.Amount.Raw(),
		RegionID:         rest.RegionID,
		Status:           string(rest.Status),
		Metadata:         rest.Metadata,
		PaymentProviders: rest.PaymentProviders,
		CompletedAt:      rest.CompletedAt,
		CreatedAt:        rest.CreatedAt,
		UpdatedAt:        rest.UpdatedAt,
		PaymentSessions:  make([]models.PaymentSessionDB, 0, len(rest.PaymentSessions)),
		Payments:         make([]models.PaymentDB, 0, len(rest.Payments)),
	}

	for _, s := range rest.PaymentSessions {
		dbResource.PaymentSessions = append(dbResource.PaymentSessions, models.PaymentSessionDB{
			ID:           s.ID,
			ProviderID:   s.ProviderID,
			CurrencyCode: s.CurrencyCode,
			Amount:       s.Amount.String(),
			RawAmount:    s.Amount.Raw(),
			Status:       string(s.Status),
			Data:         s.Data,
			Context:      s.Context,
			AuthorizedAt: s.AuthorizedAt,
			PaymentID:    s.PaymentID,
			CreatedAt:    s.CreatedAt,
			UpdatedAt:    s.UpdatedAt,
		})
	}

	for _, p := range rest.Payments {
		dbPayment := models.PaymentDB{
			ID:                  p.ID,
			PaymentSessionID:    p.PaymentSessionID,
			ProviderID:          p.ProviderID,
			CurrencyCode:        p.CurrencyCode,
			Amount:              p.Amount.String(),
			RawAmount:           p.Amount.Raw(),
			AuthorizedAmount:    p.AuthorizedAmount.String(),
			RawAuthorizedAmount: p.AuthorizedAmount.Raw(),
			Data:                p.Data,
			CartID:              p.CartID,
			OrderID:             p.OrderID,
			OrderEditID:         p.OrderEditID,
			CustomerID:          p.CustomerID,
			CapturedAt:          p.CapturedAt,
			CanceledAt:          p.CanceledAt,
			CreatedAt:           p.CreatedAt,
			UpdatedAt:           p.UpdatedAt,
			Captures:            make([]models.LedgerEntryDB, 0, len(p.Captures)),
			Refunds:             make([]models.LedgerEntryDB, 0, len(p.Refunds)),
		}
		for _, c := range p.Captures {
			dbPayment.Captures = append(dbPayment.Captures, ledgerEntryToDB(c, c.CreatedBy, nil))
		}
		for _, r := range p.Refunds {
			dbPayment.Refunds = append(dbPayment.Refunds, ledgerEntryToDB(r, r.CreatedBy, r.Note))
		}
		dbResource.Payments = append(dbResource.Payments, dbPayment)
	}

	return dbResource
}

// TransformToRest transforms a database document into a payment collection
// and derives every total from the stored ledgers.
func (pt PaymentCollectionTransformer) TransformToRest(dbResource models.PaymentCollectionDB) (models.PaymentCollection, error) {
	amount, err := readAmount(dbResource.Amount, dbResource.RawAmount)
	if err != nil {
		return models.PaymentCollection{}, fmt.Errorf("error reading amount of payment collection [%s]: [%v]", dbResource.ID, err)
	}

	rest := models.PaymentCollection{
		ID:               dbResource.ID,
		Version:          dbResource.Version,
		CurrencyCode:     dbResource.CurrencyCode,
		Amount:           amount,
		RawAmount:        amount.Raw(),
		RegionID:         dbResource.RegionID,
		Metadata:         dbResource.Metadata,
		PaymentProviders: dbResource.PaymentProviders,
		CompletedAt:      dbResource.CompletedAt,
		CreatedAt:        dbResource.CreatedAt,
		UpdatedAt:        dbResource.UpdatedAt,
		PaymentSessions:  make([]models.PaymentSession, 0, len(dbResource.PaymentSessions)),
		Payments:         make([]models.Payment, 0, len(dbResource.Payments)),
	}
	if rest.PaymentProviders == nil {
		rest.PaymentProviders = []string{}
	}

	for _, s := range dbResource.PaymentSessions {
		sessionAmount, err := readAmount(s.Amount, s.RawAmount)
		if err != nil {
			return models.PaymentCollection{}, fmt.Errorf("error reading amount of payment session [%s]: [%v]", s.ID, err)
		}
		rest.PaymentSessions = append(rest.PaymentSessions, models.PaymentSession{
			ID:                  s.ID,
			PaymentCollectionID: dbResource.ID,
			ProviderID:          s.ProviderID,
			CurrencyCode:        s.CurrencyCode,
			Amount:              sessionAmount,
			RawAmount:           sessionAmount.Raw(),
			Status:              models.PaymentSessionStatus(s.Status),
			Data:                emptyIfNil(s.Data),
			Context:             emptyIfNil(s.Context),
			AuthorizedAt:        s.AuthorizedAt,
			PaymentID:           s.PaymentID,
			CreatedAt:           s.CreatedAt,
			UpdatedAt:           s.UpdatedAt,
		})
	}

	for _, p := range dbResource.Payments {
		payment, err := paymentToRest(dbResource.ID, p)
		if err != nil {
			return models.PaymentCollection{}, err
		}
		rest.Payments = append(rest.Payments, payment)
	}

	rest.RecomputeTotals()
	return rest, nil
}

func paymentToRest(collectionID string, p models.PaymentDB) (models.Payment, error) {
	amount, err := readAmount(p.Amount, p.RawAmount)
	if err != nil {
		return models.Payment{}, fmt.Errorf("error reading amount of payment [%s]: [%v]", p.ID, err)
	}
	authorized, err := readAmount(p.AuthorizedAmount, p.RawAuthorizedAmount)
	if err != nil {
		return models.Payment{}, fmt.Errorf("error reading authorized amount of payment [%s]: [%v]", p.ID, err)
	}

	payment := models.Payment{
		ID:                  p.ID,
		PaymentCollectionID: collectionID,
		PaymentSessionID:    p.PaymentSessionID,
		ProviderID:          p.ProviderID,
		CurrencyCode:        p.CurrencyCode,
		Amount:              amount,
		RawAmount:           amount.Raw(),
		AuthorizedAmount:    authorized,
		RawAuthorizedAmount: authorized.Raw(),
		Data:                emptyIfNil(p.Data),
		CartID:              p.CartID,
		OrderID:             p.OrderID,
		OrderEditID:         p.OrderEditID,
		CustomerID:          p.CustomerID,
		CapturedAt:          p.CapturedAt,
		CanceledAt:          p.CanceledAt,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
		Captures:            make([]models.Capture, 0, len(p.Captures)),
		Refunds:             make([]models.Refund, 0, len(p.Refunds)),
	}

	for _, e := range p.Captures {
		entryAmount, err := readAmount(e.Amount, e.RawAmount)
		if err != nil {
			return models.Payment{}, fmt.Errorf("error reading amount of capture [%s]: [%v]", e.ID, err)
		}
		payment.Captures = append(payment.Captures, models.Capture{
			ID:        e.ID,
			PaymentID: p.ID,
			Amount:    entryAmount,
			RawAmount: entryAmount.Raw(),
			CreatedBy: e.CreatedBy,
			CreatedAt: e.CreatedAt,
		})
	}
	for _, e := range p.Refunds {
		entryAmount, err := readAmount(e.Amount, e.RawAmount)
		if err != nil {
			return models.Payment{}, fmt.Errorf("error reading amount of refund [%s]: [%v]", e.ID, err)
		}
		payment.Refunds = append(payment.Refunds, models.Refund{
			ID:        e.ID,
			PaymentID: p.ID,
			Amount:    entryAmount,
			RawAmount: entryAmount.Raw(),
			CreatedBy: e.CreatedBy,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}

	payment.RecomputeTotals()
	return payment, nil
}

func ledgerEntryToDB(entry models.LedgerEntry, createdBy, note *string) models.LedgerEntryDB {
	return models.LedgerEntryDB{
		ID:        entry.EntryID(),
		Kind:      string(entry.Kind()),
		Amount:    entry.EntryAmount().String(),
		RawAmount: entry.EntryAmount().Raw(),
		CreatedBy: createdBy,
		Note:      note,
		CreatedAt: entry.EntryCreatedAt(),
	}
}

// readAmount prefers the lossless raw value and falls back to the decimal
// string for documents written without one.
func readAmount(amount string, raw money.RawValue) (money.BigNumber, error) {
	if raw.Value != "" {
		return money.NewFromRaw(raw)
	}
	return money.NewFromString(amount)
}

func emptyIfNil(data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return map[string]interface{}{}
	}
	return data
}
