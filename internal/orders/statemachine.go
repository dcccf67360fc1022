// Package orders models the order lifecycle as an explicit transition
// table. Any status change outside the table is rejected, no matter who
// asks; arbitrary status strings never reach the store.
package orders

import (
	"errors"
	"time"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/rbac"
)

var ErrIllegalTransition = errors.New("illegal order status transition")

type pair struct {
	from, to model.OrderStatus
}

// transitions maps each legal (from, to) pair to the roles that may
// drive it. Ownership (seller owns the order, customer placed it) is
// checked separately through the rbac gate. Customers appear only on
// pending -> cancelled: a buyer may back out before processing starts.
var transitions = map[pair][]model.Role{
	{model.OrderPending, model.OrderProcessing}:   {model.RoleSeller, model.RoleAdmin},
	{model.OrderPending, model.OrderCancelled}:    {model.RoleSeller, model.RoleAdmin, model.RoleCustomer},
	{model.OrderProcessing, model.OrderShipped}:   {model.RoleSeller, model.RoleAdmin},
	{model.OrderProcessing, model.OrderCancelled}: {model.RoleSeller, model.RoleAdmin},
	{model.OrderShipped, model.OrderDelivered}:    {model.RoleSeller, model.RoleAdmin},
}

// CanTransition reports whether (from, to) is in the table at all,
// independent of any actor.
func CanTransition(from, to model.OrderStatus) bool {
	_, ok := transitions[pair{from, to}]
	return ok
}

// Transition moves the order to the target status on behalf of actor.
//
// The pair is checked first: a (from, to) combination outside the table
// is ErrIllegalTransition for every actor. For legal pairs the actor
// must both pass the rbac gate (ownership) and hold a role listed for
// that pair; otherwise rbac.ErrForbidden (or rbac.ErrUnknownRole)
// propagates. On success the order's status and UpdatedAt are set.
//
// Restocking on a transition to cancelled is the order service's
// required side effect, not performed here.
func Transition(o *model.Order, to model.OrderStatus, actor model.Actor) error {
	roles, ok := transitions[pair{o.Status, to}]
	if !ok {
		return ErrIllegalTransition
	}
	if err := rbac.Check(actor, rbac.ActionTransitionOrder, o); err != nil {
		return err
	}
	allowed := false
	for _, r := range roles {
		if r == actor.Role {
			allowed = true
			break
		}
	}
	if !allowed {
		return rbac.ErrForbidden
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return nil
}

// Terminal reports whether no transition leaves the status.
func Terminal(s model.OrderStatus) bool {
	for p := range transitions {
		if p.from == s {
			return false
		}
	}
	return true
}

// Statuses lists every status the lifecycle knows, in flow order.
func Statuses() []model.OrderStatus {
	return []model.OrderStatus{
		model.OrderPending,
		model.OrderProcessing,
		model.OrderShipped,
		model.OrderDelivered,
		model.OrderCancelled,
	}
}
