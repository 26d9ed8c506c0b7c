package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/lodge/pkg/validate"
)

type address struct {
	Name string `json:"name" validate:"notblank"`
	Zip  string `json:"zip"  validate:"required"`
}

type checkoutInput struct {
	Email    string          `json:"email"    validate:"required,email"`
	Amount   decimal.Decimal `json:"amount"   validate:"gt=0"`
	Method   string          `json:"method"   validate:"required,oneof=wallet card crypto"`
	CardNo   string          `json:"card_no"  validate:"required_if=Method card"`
	Shipping address        `json:"shipping"`
	Items    []string        `json:"items"    validate:"min=1"`
}

func valid() checkoutInput {
	return checkoutInput{
		Email:    "buyer@example.com",
		Amount:   decimal.RequireFromString("12.50"),
		Method:   "wallet",
		Shipping: address{Name: "Ada", Zip: "10001"},
		Items:    []string{"p1"},
	}
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(valid())
	assert.False(t, validate.HasErrors(errs), "unexpected errors: %v", errs)
}

func TestRequiredAndFormat(t *testing.T) {
	in := valid()
	in.Email = "not-an-email"
	in.Method = "paypal"

	errs := validate.Struct(in)
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
	assert.Equal(t, "The method must be one of: wallet, card, crypto.", errs["method"])
}

func TestNestedFieldsUseJSONPath(t *testing.T) {
	in := valid()
	in.Shipping = address{Name: "   "}

	errs := validate.Struct(in)
	assert.Contains(t, errs, "shipping.name")
	assert.Contains(t, errs, "shipping.zip")
}

func TestDecimalComparedAsNumber(t *testing.T) {
	in := valid()
	in.Amount = decimal.Zero
	errs := validate.Struct(in)
	assert.Equal(t, "The amount must be greater than 0.", errs["amount"])

	in.Amount = decimal.RequireFromString("0.01")
	assert.NotContains(t, validate.Struct(in), "amount")
}

func TestRequiredIf(t *testing.T) {
	in := valid()
	in.Method = "card"
	assert.Contains(t, validate.Struct(in), "card_no")

	in.CardNo = "4242424242424242"
	assert.NotContains(t, validate.Struct(in), "card_no")
}

func TestEmptySliceFailsMin(t *testing.T) {
	in := valid()
	in.Items = nil
	assert.Equal(t, "The items must contain at least 1 item(s).", validate.Struct(in)["items"])
}
