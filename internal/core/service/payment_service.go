package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
	"github.com/linkroom/linkroom-api/internal/metrics"
)

type PaymentService struct {
	accounts      ports.AccountRepository
	organisations ports.OrganisationRepository
	plans         ports.PlanRepository
	settlements   ports.SettlementRepository
	provider      ports.PaymentProvider
	logger        zerolog.Logger
}

func NewPaymentService(
	accounts ports.AccountRepository,
	organisations ports.OrganisationRepository,
	plans ports.PlanRepository,
	settlements ports.SettlementRepository,
	provider ports.PaymentProvider,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		accounts:      accounts,
		organisations: organisations,
		plans:         plans,
		settlements:   settlements,
		provider:      provider,
		logger:        logger,
	}
}

// CreatePayment initiates a transaction with the external processor and
// records a pending settlement keyed by the processor reference. Nothing is
// persisted when the processor call fails, so no dangling pending state can
// exist for a transaction the processor never saw.
func (s *PaymentService) CreatePayment(ctx context.Context, input ports.CreatePaymentInput) (*ports.CreatePaymentResult, error) {
	if input.ActorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if input.OrgID == "" || input.PlanID == "" {
		return nil, fmt.Errorf("%w: org id and plan id are required", domain.ErrInvalidArgument)
	}

	org, err := s.organisations.FindByID(ctx, input.OrgID)
	if err != nil {
		return nil, err
	}
	if org.OwnerUserID != input.ActorID {
		return nil, domain.ErrPermissionDenied
	}

	plan, err := s.plans.FindByID(ctx, input.PlanID)
	if err != nil {
		return nil, err
	}

	userID := input.UserID
	if userID == "" {
		userID = input.ActorID
	}
	account, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	currency := plan.Currency
	if currency == "" {
		currency = "ZAR"
	}

	start := time.Now()
	tx, err := s.provider.InitializeTransaction(ctx, ports.InitializeTransactionInput{
		Email:    account.Email,
		Amount:   plan.Price * 100, // processor expects minor units
		Currency: currency,
		Metadata: ports.TransactionMetadata{
			OrgID:    org.ID,
			PlanID:   plan.ID,
			UserID:   account.ID,
			PlanName: plan.Name,
		},
	})
	metrics.ProviderRequestDuration.WithLabelValues("initialize").Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Error().Err(err).Str("org_id", org.ID).Str("plan_id", plan.ID).Msg("payment initialization failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentProvider, err)
	}

	now := time.Now().UTC()
	settlement := &domain.Settlement{
		OrgID:       org.ID,
		UserID:      account.ID,
		PlanID:      plan.ID,
		PlanType:    plan.Type,
		Status:      domain.SettlementPending,
		PaystackRef: tx.Reference,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.settlements.CreatePending(ctx, settlement); err != nil {
		return nil, err
	}

	metrics.PaymentsInitiatedTotal.Inc()
	s.logger.Info().Str("reference", tx.Reference).Str("org_id", org.ID).Str("plan_id", plan.ID).Msg("payment initiated")

	return &ports.CreatePaymentResult{
		AuthorizationURL: tx.AuthorizationURL,
		AccessCode:       tx.AccessCode,
		Reference:        tx.Reference,
	}, nil
}

// VerifyPayment fetches the authoritative transaction outcome and activates
// the matching pending settlement. It is safe to call repeatedly for the
// same reference: the first success performs the pending → active
// transition and any entitlement grant; replays re-derive the same state.
func (s *PaymentService) VerifyPayment(ctx context.Context, input ports.VerifyPaymentInput) (*ports.VerifyPaymentResult, error) {
	if input.ActorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if input.Reference == "" {
		return nil, fmt.Errorf("%w: reference is required", domain.ErrInvalidArgument)
	}

	start := time.Now()
	status, err := s.provider.VerifyTransaction(ctx, input.Reference)
	metrics.ProviderRequestDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Error().Err(err).Str("reference", input.Reference).Msg("payment verification request failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentProvider, err)
	}

	if !status.Success() {
		metrics.PaymentsVerifiedTotal.WithLabelValues("failed").Inc()
		s.logger.Warn().Str("reference", input.Reference).Str("status", status.Status).Msg("payment not successful")
		return nil, domain.ErrPaymentNotSuccessful
	}

	// A reference this system never initiated has no settlement row.
	settlement, err := s.settlements.FindByReference(ctx, input.Reference)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.FindByID(ctx, settlement.PlanID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	upd := ports.SettlementActivation{
		LastPaymentStatus: status.Status,
		StartedAt:         now,
		UpdatedAt:         now,
	}
	if plan.Type == domain.PlanTypeSubscription && plan.DurationMonths > 0 {
		expires := now.AddDate(0, plan.DurationMonths, 0)
		upd.ExpiresAt = &expires
	}
	if plan.JobCredits > 0 {
		upd.RemainingJobCredits = plan.JobCredits
	}

	activated, err := s.settlements.Activate(ctx, input.Reference, upd)
	if err != nil {
		return nil, err
	}

	if activated && plan.JobCredits > 0 {
		// Grant credits exactly once, on the call that won the transition.
		if err := s.accounts.GrantTokens(ctx, settlement.UserID, plan.JobCredits); err != nil {
			s.logger.Error().Err(err).Str("reference", input.Reference).Str("user_id", settlement.UserID).Msg("credit grant failed after activation")
			return nil, err
		}
	}

	result := "activated"
	if !activated {
		result = "replayed"
	}
	metrics.PaymentsVerifiedTotal.WithLabelValues(result).Inc()

	settlement, err = s.settlements.FindByReference(ctx, input.Reference)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("reference", input.Reference).Bool("activated", activated).Str("plan_id", plan.ID).Msg("payment verified")
	return &ports.VerifyPaymentResult{Success: true, Settlement: settlement}, nil
}
