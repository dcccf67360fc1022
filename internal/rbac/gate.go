// Package rbac is the single authorization table for the storefront.
// Every mutating operation consults Can instead of deciding per
// endpoint what a role may do.
package rbac

import (
	"errors"

	"go-storefront-api/internal/model"
)

var (
	ErrForbidden   = errors.New("forbidden")
	ErrUnknownRole = errors.New("unknown role")
)

type Action string

const (
	ActionCreateOrder     Action = "order:create"
	ActionViewOrder       Action = "order:view"
	ActionTransitionOrder Action = "order:transition"
	ActionCreateProduct   Action = "product:create"
	ActionEditProduct     Action = "product:edit"
	ActionDeleteProduct   Action = "product:delete"
	ActionApproveProduct  Action = "product:approve"
	ActionViewDashboard   Action = "dashboard:view"
)

// Resource exposes the ownership fields authorization needs. A nil
// resource means the action targets nothing yet (e.g. creating).
type Resource interface {
	OwnerSellerEmail() string
	OwnerCustomerEmail() string
}

// Can reports whether the actor may perform the action on the resource.
// Admins may do anything. Sellers are confined to resources they own
// and may never approve products. Customers may only place orders and
// view orders addressed to their own email. Unknown roles are denied
// outright (fail-closed).
func Can(actor model.Actor, action Action, res Resource) bool {
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleSeller:
		return sellerCan(actor, action, res)
	case model.RoleCustomer:
		return customerCan(actor, action, res)
	default:
		return false
	}
}

// Check is Can with a typed error: ErrUnknownRole for roles outside the
// table, ErrForbidden otherwise. Neither is ever downgraded to a
// default permission.
func Check(actor model.Actor, action Action, res Resource) error {
	switch actor.Role {
	case model.RoleAdmin, model.RoleSeller, model.RoleCustomer:
	default:
		return ErrUnknownRole
	}
	if !Can(actor, action, res) {
		return ErrForbidden
	}
	return nil
}

func sellerCan(actor model.Actor, action Action, res Resource) bool {
	switch action {
	case ActionApproveProduct:
		return false
	case ActionCreateProduct, ActionCreateOrder, ActionViewDashboard:
		return true
	case ActionEditProduct, ActionDeleteProduct, ActionViewOrder, ActionTransitionOrder:
		return res != nil && res.OwnerSellerEmail() == actor.Email
	default:
		return false
	}
}

func customerCan(actor model.Actor, action Action, res Resource) bool {
	switch action {
	case ActionCreateOrder:
		return true
	case ActionViewOrder, ActionTransitionOrder:
		return res != nil && res.OwnerCustomerEmail() == actor.Email
	default:
		return false
	}
}
