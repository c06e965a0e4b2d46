package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"readgrid-backend/internal/domains/subscription/gateway/wayforpay"
	"readgrid-backend/internal/domains/subscription/model"
	"readgrid-backend/internal/domains/subscription/repository"
	"readgrid-backend/pkg/logger"
)

// SubscriptionService handles the premium purchase flow and the
// subscription lifecycle.
type SubscriptionService interface {
	// CreatePayment builds the signed checkout payload for the chosen
	// plan.
	CreatePayment(ctx context.Context, userID uuid.UUID, req *model.CreatePaymentRequest) (*wayforpay.CheckoutRequest, error)

	// HandleCallback processes a gateway notification. The gateway
	// always gets an acknowledgement: accept after processing, decline
	// when the signature does not check out.
	HandleCallback(ctx context.Context, cb *wayforpay.Callback) (*wayforpay.CallbackResponse, error)

	// DemoActivate grants the plan without going through the gateway.
	DemoActivate(ctx context.Context, userID uuid.UUID, req *model.CreatePaymentRequest) (*model.Status, error)

	// Cancel clears the premium fields; errors when no subscription is
	// active.
	Cancel(ctx context.Context, userID uuid.UUID) error
}

type subscriptionService struct {
	repo   repository.SubscriptionRepository
	client *wayforpay.Client
	env    string
}

func NewSubscriptionService(
	repo repository.SubscriptionRepository,
	client *wayforpay.Client,
	env string,
) SubscriptionService {
	return &subscriptionService{
		repo:   repo,
		client: client,
		env:    env,
	}
}

func (s *subscriptionService) CreatePayment(
	ctx context.Context,
	userID uuid.UUID,
	req *model.CreatePaymentRequest,
) (*wayforpay.CheckoutRequest, error) {
	plan, ok := model.PlanByName(req.Plan)
	if !ok {
		return nil, model.NewInvalidPlanError()
	}

	now := time.Now()
	checkout := s.client.BuildCheckout(
		model.FormatOrderReference(userID, now),
		plan.ProductName,
		plan.Price,
		now,
	)

	logger.Info("Payment created", map[string]interface{}{
		"user_id":         userID.String(),
		"plan":            plan.Name,
		"order_reference": checkout.OrderReference,
	})

	return checkout, nil
}

func (s *subscriptionService) HandleCallback(
	ctx context.Context,
	cb *wayforpay.Callback,
) (*wayforpay.CallbackResponse, error) {
	// Development skips signature verification so the flow can be
	// exercised without merchant credentials.
	if s.env != "development" && !s.client.VerifyCallback(cb) {
		logger.Error("Callback signature mismatch", model.ErrInvalidSignature)
		return s.client.BuildResponse(cb.OrderReference, wayforpay.ResponseDecline, time.Now()), nil
	}

	if cb.TransactionStatus == wayforpay.StatusApproved {
		userID, err := model.ParseOrderReference(cb.OrderReference)
		if err != nil {
			logger.Error("Unparseable order reference", err)
			return s.client.BuildResponse(cb.OrderReference, wayforpay.ResponseDecline, time.Now()), nil
		}

		plan := model.PlanByAmount(cb.Amount)
		until := time.Now().Add(plan.Duration)
		if err := s.repo.Activate(ctx, userID, until); err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				return s.client.BuildResponse(cb.OrderReference, wayforpay.ResponseDecline, time.Now()), nil
			}
			return nil, fmt.Errorf("failed to activate premium: %w", err)
		}

		logger.Info("Premium activated", map[string]interface{}{
			"user_id":       userID.String(),
			"plan":          plan.Name,
			"premium_until": until.Format(time.RFC3339),
		})
	}

	return s.client.BuildResponse(cb.OrderReference, wayforpay.ResponseAccept, time.Now()), nil
}

func (s *subscriptionService) DemoActivate(
	ctx context.Context,
	userID uuid.UUID,
	req *model.CreatePaymentRequest,
) (*model.Status, error) {
	plan, ok := model.PlanByName(req.Plan)
	if !ok {
		return nil, model.NewInvalidPlanError()
	}

	until := time.Now().Add(plan.Duration)
	if err := s.repo.Activate(ctx, userID, until); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to activate premium: %w", err)
	}

	logger.Info("Premium demo-activated", map[string]interface{}{
		"user_id": userID.String(),
		"plan":    plan.Name,
	})

	return &model.Status{IsPremium: true, PremiumUntil: &until}, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, userID uuid.UUID) error {
	status, err := s.repo.GetStatus(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.NewUserNotFoundError()
		}
		return fmt.Errorf("failed to get subscription status: %w", err)
	}

	if !status.IsPremium {
		return model.NewNoActiveSubscriptionError()
	}

	if err := s.repo.Clear(ctx, userID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.NewUserNotFoundError()
		}
		return fmt.Errorf("failed to clear premium: %w", err)
	}

	logger.Info("Subscription cancelled", map[string]interface{}{
		"user_id": userID.String(),
	})

	return nil
}
