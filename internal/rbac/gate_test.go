package rbac

import (
	"errors"
	"testing"

	"go-storefront-api/internal/model"
)

func product(seller string) *model.Product {
	return &model.Product{SellerEmail: seller}
}

func order(seller, customer string) *model.Order {
	o := &model.Order{SellerEmail: seller}
	o.CustomerInfo.Email = customer
	return o
}

func TestCan(t *testing.T) {
	admin := model.Actor{Email: "admin@shop.test", Role: model.RoleAdmin}
	seller := model.Actor{Email: "seller@shop.test", Role: model.RoleSeller}
	customer := model.Actor{Email: "buyer@shop.test", Role: model.RoleCustomer}

	cases := []struct {
		name   string
		actor  model.Actor
		action Action
		res    Resource
		want   bool
	}{
		{"admin can approve any product", admin, ActionApproveProduct, product("seller@shop.test"), true},
		{"admin can transition any order", admin, ActionTransitionOrder, order("x@shop.test", "y@shop.test"), true},
		{"seller edits own product", seller, ActionEditProduct, product("seller@shop.test"), true},
		{"seller cannot edit foreign product", seller, ActionEditProduct, product("other@shop.test"), false},
		{"seller cannot approve even own product", seller, ActionApproveProduct, product("seller@shop.test"), false},
		{"seller views own order", seller, ActionViewOrder, order("seller@shop.test", "buyer@shop.test"), true},
		{"seller cannot transition foreign order", seller, ActionTransitionOrder, order("other@shop.test", "buyer@shop.test"), false},
		{"seller sees dashboard", seller, ActionViewDashboard, nil, true},
		{"customer creates order", customer, ActionCreateOrder, nil, true},
		{"customer views own order", customer, ActionViewOrder, order("seller@shop.test", "buyer@shop.test"), true},
		{"customer cannot view foreign order", customer, ActionViewOrder, order("seller@shop.test", "other@shop.test"), false},
		{"customer has no product actions", customer, ActionCreateProduct, nil, false},
		{"customer has no dashboard", customer, ActionViewDashboard, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Can(tc.actor, tc.action, tc.res); got != tc.want {
				t.Fatalf("Can(%s, %s) = %v, want %v", tc.actor.Role, tc.action, got, tc.want)
			}
		})
	}
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	ghost := model.Actor{Email: "ghost@shop.test", Role: "superuser"}
	actions := []Action{
		ActionCreateOrder, ActionViewOrder, ActionTransitionOrder,
		ActionCreateProduct, ActionEditProduct, ActionDeleteProduct,
		ActionApproveProduct, ActionViewDashboard,
	}
	for _, a := range actions {
		if Can(ghost, a, nil) {
			t.Fatalf("unknown role must be denied action %s", a)
		}
	}
	if err := Check(ghost, ActionCreateOrder, nil); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestCheckForbidden(t *testing.T) {
	customer := model.Actor{Email: "buyer@shop.test", Role: model.RoleCustomer}
	err := Check(customer, ActionEditProduct, product("seller@shop.test"))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
