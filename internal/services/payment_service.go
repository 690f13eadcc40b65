package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/asifkarim/blooddrop-backend/internal/models"
	"github.com/asifkarim/blooddrop-backend/internal/payments"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidAmount rejects a donation that does not convert to a positive
// whole number of minor currency units.
var ErrInvalidAmount = errors.New("invalid donation amount")

const (
	checkoutCurrency    = "usd"
	checkoutProductName = "Blood Donation Fund"
	paidStatus          = "paid"
)

type PaymentService struct {
	db         *gorm.DB
	checkout   payments.Client
	siteDomain string
}

func NewPaymentService(db *gorm.DB, checkout payments.Client, siteDomain string) *PaymentService {
	return &PaymentService{db: db, checkout: checkout, siteDomain: siteDomain}
}

// CreateCheckout opens a hosted checkout session for the given donation and
// returns its URL. Amounts are major currency units and must round to a
// positive whole number of cents. The epsilon absorbs float64 noise from
// two-decimal inputs (19.99*100 is 1998.999...).
func (s *PaymentService) CreateCheckout(ctx context.Context, donateAmount float64, donorEmail, donorName string) (string, error) {
	minor := math.Round(donateAmount * 100)
	if minor <= 0 || math.Abs(donateAmount*100-minor) > 1e-6 {
		return "", ErrInvalidAmount
	}

	if donorName == "" {
		donorName = "Anonymous"
	}

	session, err := s.checkout.CreateCheckoutSession(ctx, payments.CheckoutParams{
		AmountMinor:   int64(minor),
		Currency:      checkoutCurrency,
		ProductName:   checkoutProductName,
		CustomerEmail: donorEmail,
		DonorName:     donorName,
		SuccessURL:    s.siteDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.siteDomain + "/payment-cancelled",
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return session.URL, nil
}

// ReconcileResult reports what Reconcile did for a session.
type ReconcileResult struct {
	// Payment is set when a record exists for the session, whether this call
	// created it or an earlier one did.
	Payment *models.Payment
	// Created is true only for the call that actually inserted the record.
	Created bool
	// PaymentStatus is the provider's status for sessions that are not paid.
	PaymentStatus string
}

// Reconcile turns a completed checkout session into a Payment record exactly
// once. The insert ignores conflicts on the transaction id, so concurrent
// calls for the same session agree on a single record.
func (s *PaymentService) Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	session, err := s.checkout.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("retrieve session: %w", err)
	}

	transactionID := session.PaymentIntent

	if transactionID != "" {
		var existing models.Payment
		err := s.db.Where("transaction_id = ?", transactionID).First(&existing).Error
		if err == nil {
			return &ReconcileResult{Payment: &existing, PaymentStatus: existing.PaymentStatus}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check existing payment: %w", err)
		}
	}

	if session.PaymentStatus != paidStatus {
		return &ReconcileResult{PaymentStatus: session.PaymentStatus}, nil
	}

	payment := models.Payment{
		ID:            uuid.New(),
		TransactionID: transactionID,
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      session.Currency,
		DonorEmail:    session.CustomerEmail,
		PaymentStatus: session.PaymentStatus,
		PaidAt:        time.Now(),
	}

	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoNothing: true,
	}).Create(&payment)
	if result.Error != nil {
		return nil, fmt.Errorf("record payment: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Lost the race: a concurrent reconciliation inserted first.
		var existing models.Payment
		if err := s.db.Where("transaction_id = ?", transactionID).First(&existing).Error; err != nil {
			return nil, fmt.Errorf("load winning payment: %w", err)
		}
		return &ReconcileResult{Payment: &existing, PaymentStatus: existing.PaymentStatus}, nil
	}

	return &ReconcileResult{Payment: &payment, Created: true, PaymentStatus: payment.PaymentStatus}, nil
}
