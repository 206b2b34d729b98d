package authz_test

import (
	"testing"

	"github.com/phone-directory-api/internal/authz"
	"github.com/phone-directory-api/internal/domain"
)

func TestAuthorize_Unauthenticated(t *testing.T) {
	for _, action := range []authz.Action{authz.ActionView, authz.ActionCreate, authz.ActionUpdate, authz.ActionDelete} {
		for _, kind := range []authz.Kind{authz.KindOrganization, authz.KindDepartment, authz.KindEmployee, authz.KindSettings} {
			if authz.Authorize(nil, action, authz.Target{Kind: kind}) {
				t.Errorf("nil actor must be denied %s on %s", action, kind)
			}
		}
	}
}

func TestAuthorize_AdminAllowsEverything(t *testing.T) {
	admin := authz.Admin{}
	for _, action := range []authz.Action{authz.ActionView, authz.ActionCreate, authz.ActionUpdate, authz.ActionDelete} {
		for _, kind := range []authz.Kind{authz.KindOrganization, authz.KindDepartment, authz.KindEmployee, authz.KindSettings} {
			if !authz.Authorize(admin, action, authz.Target{Kind: kind}) {
				t.Errorf("admin must be allowed %s on %s", action, kind)
			}
		}
	}
}

func TestAuthorize_ViewAllowedForAllAuthenticated(t *testing.T) {
	actors := []authz.Actor{
		authz.Admin{},
		authz.NewDepartmentHead([]string{"d1"}),
		authz.NewDepartmentHead(nil),
		authz.Member{EmployeeID: "e1"},
		authz.Member{},
	}
	for _, actor := range actors {
		for _, kind := range []authz.Kind{authz.KindOrganization, authz.KindDepartment, authz.KindEmployee, authz.KindSettings} {
			if !authz.Authorize(actor, authz.ActionView, authz.Target{Kind: kind}) {
				t.Errorf("%T must be allowed to view %s", actor, kind)
			}
		}
	}
}

func TestAuthorize_DepartmentHead(t *testing.T) {
	head := authz.NewDepartmentHead([]string{"d1", "d2"})

	tests := []struct {
		name   string
		action authz.Action
		target authz.Target
		want   bool
	}{
		{"update employee in own department", authz.ActionUpdate, authz.Target{Kind: authz.KindEmployee, EmployeeID: "e1", DepartmentID: "d1"}, true},
		{"create employee in own department", authz.ActionCreate, authz.Target{Kind: authz.KindEmployee, DepartmentID: "d2"}, true},
		{"delete employee in own department", authz.ActionDelete, authz.Target{Kind: authz.KindEmployee, EmployeeID: "e1", DepartmentID: "d1"}, true},
		{"update employee in foreign department", authz.ActionUpdate, authz.Target{Kind: authz.KindEmployee, EmployeeID: "e1", DepartmentID: "d3"}, false},
		{"update employee without department", authz.ActionUpdate, authz.Target{Kind: authz.KindEmployee, EmployeeID: "e1"}, false},
		{"create organization", authz.ActionCreate, authz.Target{Kind: authz.KindOrganization}, false},
		{"delete department", authz.ActionDelete, authz.Target{Kind: authz.KindDepartment}, false},
		{"update settings", authz.ActionUpdate, authz.Target{Kind: authz.KindSettings}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.Authorize(head, tt.action, tt.target); got != tt.want {
				t.Errorf("Authorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Пустой перечень отделов у руководителя означает отсутствие доступа
func TestAuthorize_DepartmentHeadEmptyAccess(t *testing.T) {
	head := authz.NewDepartmentHead(nil)
	target := authz.Target{Kind: authz.KindEmployee, EmployeeID: "e1", DepartmentID: "d1"}

	for _, action := range []authz.Action{authz.ActionCreate, authz.ActionUpdate, authz.ActionDelete} {
		if authz.Authorize(head, action, target) {
			t.Errorf("head without department access must be denied %s", action)
		}
	}
}

func TestAuthorize_Member(t *testing.T) {
	member := authz.Member{EmployeeID: "e1"}

	tests := []struct {
		name   string
		action authz.Action
		target authz.Target
		want   bool
	}{
		{"update own record", authz.ActionUpdate, authz.Target{Kind: authz.KindEmployee, EmployeeID: "e1", DepartmentID: "d1"}, true},
		{"update foreign record", authz.ActionUpdate, authz.Target{Kind: authz.KindEmployee, EmployeeID: "e2", DepartmentID: "d1"}, false},
		{"create employee", authz.ActionCreate, authz.Target{Kind: authz.KindEmployee, DepartmentID: "d1"}, false},
		{"delete own record", authz.ActionDelete, authz.Target{Kind: authz.KindEmployee, EmployeeID: "e1"}, false},
		{"update organization", authz.ActionUpdate, authz.Target{Kind: authz.KindOrganization}, false},
		{"update settings", authz.ActionUpdate, authz.Target{Kind: authz.KindSettings}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.Authorize(member, tt.action, tt.target); got != tt.want {
				t.Errorf("Authorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Участник без связанной карточки сотрудника не может редактировать ничего
func TestAuthorize_MemberWithoutEmployeeLink(t *testing.T) {
	member := authz.Member{}
	target := authz.Target{Kind: authz.KindEmployee, EmployeeID: "", DepartmentID: "d1"}

	if authz.Authorize(member, authz.ActionUpdate, target) {
		t.Error("member without employee link must not update records with empty id")
	}
}

func TestActorForUser(t *testing.T) {
	employeeID := "e7"

	tests := []struct {
		name string
		user *domain.User
		want authz.Actor
	}{
		{"nil user", nil, nil},
		{"admin", &domain.User{Role: domain.RoleAdmin}, authz.Admin{}},
		{"unknown role", &domain.User{Role: "superuser"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := authz.ActorForUser(tt.user)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ActorForUser() = %v, want %v", got, tt.want)
			}
		})
	}

	head := authz.ActorForUser(&domain.User{Role: domain.RoleDepartmentHead, DepartmentAccess: []string{"d1"}})
	if !authz.Authorize(head, authz.ActionUpdate, authz.Target{Kind: authz.KindEmployee, EmployeeID: "x", DepartmentID: "d1"}) {
		t.Error("department head built from user must keep department access")
	}

	member := authz.ActorForUser(&domain.User{Role: domain.RoleUser, EmployeeID: &employeeID})
	if !authz.Authorize(member, authz.ActionUpdate, authz.Target{Kind: authz.KindEmployee, EmployeeID: employeeID}) {
		t.Error("member built from user must carry the linked employee id")
	}
}

func TestAuthorizeEmployee(t *testing.T) {
	dept := "d1"
	emp := &domain.Employee{ID: "e1", DepartmentID: &dept}

	head := authz.NewDepartmentHead([]string{"d1"})
	if !authz.AuthorizeEmployee(head, authz.ActionUpdate, emp) {
		t.Error("head must update employee of an accessible department")
	}

	orphan := &domain.Employee{ID: "e2"}
	if authz.AuthorizeEmployee(head, authz.ActionUpdate, orphan) {
		t.Error("head must not update employee without department")
	}

	member := authz.Member{EmployeeID: "e1"}
	if !authz.AuthorizeEmployee(member, authz.ActionUpdate, emp) {
		t.Error("member must update own employee record")
	}
}
