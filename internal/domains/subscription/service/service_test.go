package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readgrid-backend/internal/domains/subscription/gateway/wayforpay"
	"readgrid-backend/internal/domains/subscription/model"
)

type fakeSubscriptionRepository struct {
	statuses map[uuid.UUID]*model.Status
}

func newFakeSubRepo() *fakeSubscriptionRepository {
	return &fakeSubscriptionRepository{statuses: make(map[uuid.UUID]*model.Status)}
}

func (f *fakeSubscriptionRepository) addUser() uuid.UUID {
	id := uuid.New()
	f.statuses[id] = &model.Status{}
	return id
}

func (f *fakeSubscriptionRepository) GetStatus(_ context.Context, userID uuid.UUID) (*model.Status, error) {
	s, ok := f.statuses[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSubscriptionRepository) Activate(_ context.Context, userID uuid.UUID, until time.Time) error {
	s, ok := f.statuses[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	s.IsPremium = true
	s.PremiumUntil = &until
	return nil
}

func (f *fakeSubscriptionRepository) Clear(_ context.Context, userID uuid.UUID) error {
	s, ok := f.statuses[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	s.IsPremium = false
	s.PremiumUntil = nil
	return nil
}

const testSecret = "test-secret-key"

func newTestSubscriptionService(t *testing.T, env string) (*fakeSubscriptionRepository, SubscriptionService) {
	t.Helper()
	repo := newFakeSubRepo()
	client, err := wayforpay.NewClient(&wayforpay.Config{
		MerchantAccount: "test_merch_n1",
		MerchantDomain:  "readgrid.com",
		SecretKey:       testSecret,
	})
	require.NoError(t, err)
	return repo, NewSubscriptionService(repo, client, env)
}

func assertSubCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var subErr *model.SubscriptionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, code, subErr.Code)
}

func signedCallback(orderReference string, amount int64, status string) *wayforpay.Callback {
	cb := &wayforpay.Callback{
		MerchantAccount:   "test_merch_n1",
		OrderReference:    orderReference,
		Amount:            decimal.NewFromInt(amount),
		Currency:          "UAH",
		AuthCode:          "123456",
		CardPan:           "41****1111",
		TransactionStatus: status,
		ReasonCode:        "1100",
	}
	cb.MerchantSignature = wayforpay.CallbackSignature(testSecret, cb)
	return cb
}

func TestCreatePayment(t *testing.T) {
	repo, svc := newTestSubscriptionService(t, "production")
	userID := repo.addUser()

	checkout, err := svc.CreatePayment(context.Background(), userID, &model.CreatePaymentRequest{Plan: model.PlanMonthly})
	require.NoError(t, err)

	assert.Equal(t, "99", checkout.Amount.String())
	assert.Equal(t, "UAH", checkout.Currency)
	assert.NotEmpty(t, checkout.MerchantSignature)

	parsed, err := model.ParseOrderReference(checkout.OrderReference)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)

	yearly, err := svc.CreatePayment(context.Background(), userID, &model.CreatePaymentRequest{Plan: model.PlanYearly})
	require.NoError(t, err)
	assert.Equal(t, "999", yearly.Amount.String())
}

func TestHandleCallback_ApprovedActivates(t *testing.T) {
	repo, svc := newTestSubscriptionService(t, "production")
	userID := repo.addUser()
	ref := model.FormatOrderReference(userID, time.Now())

	ack, err := svc.HandleCallback(context.Background(), signedCallback(ref, 99, wayforpay.StatusApproved))
	require.NoError(t, err)
	assert.Equal(t, wayforpay.ResponseAccept, ack.Status)

	status := repo.statuses[userID]
	require.True(t, status.IsPremium)
	require.NotNil(t, status.PremiumUntil)

	// Monthly amount buys 30 days.
	expected := time.Now().Add(30 * 24 * time.Hour)
	assert.WithinDuration(t, expected, *status.PremiumUntil, time.Minute)
}

func TestHandleCallback_YearlyAmount(t *testing.T) {
	repo, svc := newTestSubscriptionService(t, "production")
	userID := repo.addUser()
	ref := model.FormatOrderReference(userID, time.Now())

	_, err := svc.HandleCallback(context.Background(), signedCallback(ref, 999, wayforpay.StatusApproved))
	require.NoError(t, err)

	expected := time.Now().Add(365 * 24 * time.Hour)
	assert.WithinDuration(t, expected, *repo.statuses[userID].PremiumUntil, time.Minute)
}

func TestHandleCallback_BadSignatureDeclines(t *testing.T) {
	repo, svc := newTestSubscriptionService(t, "production")
	userID := repo.addUser()
	ref := model.FormatOrderReference(userID, time.Now())

	cb := signedCallback(ref, 99, wayforpay.StatusApproved)
	cb.MerchantSignature = "not-a-signature"

	ack, err := svc.HandleCallback(context.Background(), cb)
	require.NoError(t, err)
	assert.Equal(t, wayforpay.ResponseDecline, ack.Status)
	assert.False(t, repo.statuses[userID].IsPremium)
}

func TestHandleCallback_DevelopmentSkipsVerification(t *testing.T) {
	repo, svc := newTestSubscriptionService(t, "development")
	userID := repo.addUser()
	ref := model.FormatOrderReference(userID, time.Now())

	cb := signedCallback(ref, 99, wayforpay.StatusApproved)
	cb.MerchantSignature = ""

	ack, err := svc.HandleCallback(context.Background(), cb)
	require.NoError(t, err)
	assert.Equal(t, wayforpay.ResponseAccept, ack.Status)
	assert.True(t, repo.statuses[userID].IsPremium)
}

func TestHandleCallback_DeclinedDoesNotActivate(t *testing.T) {
	repo, svc := newTestSubscriptionService(t, "production")
	userID := repo.addUser()
	ref := model.FormatOrderReference(userID, time.Now())

	ack, err := svc.HandleCallback(context.Background(), signedCallback(ref, 99, wayforpay.StatusDeclined))
	require.NoError(t, err)
	// Processed and acknowledged, but nothing activated.
	assert.Equal(t, wayforpay.ResponseAccept, ack.Status)
	assert.False(t, repo.statuses[userID].IsPremium)
}

func TestDemoActivate(t *testing.T) {
	repo, svc := newTestSubscriptionService(t, "development")
	userID := repo.addUser()

	status, err := svc.DemoActivate(context.Background(), userID, &model.CreatePaymentRequest{Plan: model.PlanYearly})
	require.NoError(t, err)
	assert.True(t, status.IsPremium)
	assert.True(t, repo.statuses[userID].IsPremium)
}

func TestCancel(t *testing.T) {
	repo, svc := newTestSubscriptionService(t, "production")
	userID := repo.addUser()

	// Nothing to cancel yet.
	err := svc.Cancel(context.Background(), userID)
	assertSubCode(t, err, model.ErrCodeNoActiveSubscription)

	_, err = svc.DemoActivate(context.Background(), userID, &model.CreatePaymentRequest{Plan: model.PlanMonthly})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), userID))
	assert.False(t, repo.statuses[userID].IsPremium)
	assert.Nil(t, repo.statuses[userID].PremiumUntil)
}

func TestParseOrderReference(t *testing.T) {
	userID := uuid.New()
	ref := model.FormatOrderReference(userID, time.Now())

	parsed, err := model.ParseOrderReference(ref)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)

	for _, bad := range []string{"", "premium_", "order_abc_123", "premium_not-a-uuid_123", "premium_" + userID.String() + "_notms"} {
		_, err := model.ParseOrderReference(bad)
		assert.Error(t, err, bad)
	}
}
