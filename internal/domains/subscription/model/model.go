package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Plan names
const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// Plan is a purchasable premium tier.
type Plan struct {
	Name        string
	ProductName string
	Price       decimal.Decimal
	Duration    time.Duration
}

var (
	monthlyPlan = Plan{
		Name:        PlanMonthly,
		ProductName: "ReadGrid Premium (1 month)",
		Price:       decimal.NewFromInt(99),
		Duration:    30 * 24 * time.Hour,
	}
	yearlyPlan = Plan{
		Name:        PlanYearly,
		ProductName: "ReadGrid Premium (1 year)",
		Price:       decimal.NewFromInt(999),
		Duration:    365 * 24 * time.Hour,
	}
)

// PlanByName resolves a plan; ok is false for unknown names.
func PlanByName(name string) (Plan, bool) {
	switch name {
	case PlanMonthly:
		return monthlyPlan, true
	case PlanYearly:
		return yearlyPlan, true
	}
	return Plan{}, false
}

// PlanByAmount resolves the plan from a paid amount: the yearly price
// or more buys a year, anything else a month.
func PlanByAmount(amount decimal.Decimal) Plan {
	if amount.GreaterThanOrEqual(yearlyPlan.Price) {
		return yearlyPlan
	}
	return monthlyPlan
}

// =====================================================
// ORDER REFERENCES
// =====================================================

const orderReferencePrefix = "premium"

// FormatOrderReference builds the gateway order id carrying the paying
// user: premium_<userID>_<unix ms>.
func FormatOrderReference(userID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d", orderReferencePrefix, userID, now.UnixMilli())
}

// ParseOrderReference recovers the user from an order reference.
func ParseOrderReference(ref string) (uuid.UUID, error) {
	parts := strings.Split(ref, "_")
	if len(parts) != 3 || parts[0] != orderReferencePrefix {
		return uuid.Nil, fmt.Errorf("malformed order reference %q", ref)
	}
	if _, err := strconv.ParseInt(parts[2], 10, 64); err != nil {
		return uuid.Nil, fmt.Errorf("malformed order reference %q", ref)
	}
	userID, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed order reference %q: %w", ref, err)
	}
	return userID, nil
}

// =====================================================
// DTOs
// =====================================================

type CreatePaymentRequest struct {
	Plan string `json:"plan"`
}

func (r CreatePaymentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Plan,
			validation.Required.Error("plan is required"),
			validation.In(PlanMonthly, PlanYearly).Error("plan must be monthly or yearly"),
		),
	)
}

// Status is the subscription view of an account.
type Status struct {
	IsPremium    bool       `json:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`
}
