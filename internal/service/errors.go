package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmailTaken         = errors.New("email is already registered")

	ErrProductUnavailable    = errors.New("product is not available")
	ErrVariantNotFound       = errors.New("product has no such variant")
	ErrMixedSellers          = errors.New("order items must belong to a single seller")
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
	ErrManualPaymentRequired = errors.New("mobile banking orders require manual payment details")
	ErrInvalidApprovalStatus = errors.New("approval status must be published or rejected")
)
