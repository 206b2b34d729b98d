// Package authz содержит чистую политику доступа справочника.
// Решение принимается только по значению актора и цели, без обращения
// к транспорту или базе данных.
package authz

import "github.com/phone-directory-api/internal/domain"

// Action — действие над сущностью
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Kind — вид целевой сущности
type Kind string

const (
	KindOrganization Kind = "organization"
	KindDepartment   Kind = "department"
	KindEmployee     Kind = "employee"
	KindSettings     Kind = "settings"
)

// Target описывает цель проверки. Для сотрудников заполняются EmployeeID
// и DepartmentID (пустой DepartmentID — сотрудник без отдела).
type Target struct {
	Kind         Kind
	EmployeeID   string
	DepartmentID string
}

// Actor — роль вместе с её областью действия. Запечатанный набор вариантов:
// Admin, DepartmentHead, Member. nil означает неаутентифицированный запрос.
type Actor interface {
	isActor()
}

// Admin может всё
type Admin struct{}

func (Admin) isActor() {}

// DepartmentHead управляет сотрудниками только своих отделов.
// Пустое множество Departments означает отсутствие доступа, а не полный доступ.
type DepartmentHead struct {
	Departments map[string]struct{}
}

func (DepartmentHead) isActor() {}

// Member может редактировать только собственную карточку сотрудника
type Member struct {
	EmployeeID string
}

func (Member) isActor() {}

// NewDepartmentHead собирает актора из списка идентификаторов отделов
func NewDepartmentHead(departmentIDs []string) DepartmentHead {
	set := make(map[string]struct{}, len(departmentIDs))
	for _, id := range departmentIDs {
		set[id] = struct{}{}
	}
	return DepartmentHead{Departments: set}
}

// ActorForUser строит актора из учётной записи
func ActorForUser(u *domain.User) Actor {
	if u == nil {
		return nil
	}
	switch u.Role {
	case domain.RoleAdmin:
		return Admin{}
	case domain.RoleDepartmentHead:
		return NewDepartmentHead(u.DepartmentAccess)
	case domain.RoleUser:
		var employeeID string
		if u.EmployeeID != nil {
			employeeID = *u.EmployeeID
		}
		return Member{EmployeeID: employeeID}
	}
	return nil
}

// Authorize возвращает true, если актору разрешено действие над целью.
// Чтение разрешено любому аутентифицированному актору; изменения
// структурных сущностей и настроек доступны только администратору.
func Authorize(actor Actor, action Action, target Target) bool {
	if actor == nil {
		return false
	}
	if action == ActionView {
		return true
	}

	switch a := actor.(type) {
	case Admin:
		return true
	case DepartmentHead:
		if target.Kind != KindEmployee {
			return false
		}
		if target.DepartmentID == "" {
			return false
		}
		_, ok := a.Departments[target.DepartmentID]
		return ok
	case Member:
		if target.Kind != KindEmployee || action != ActionUpdate {
			return false
		}
		return a.EmployeeID != "" && a.EmployeeID == target.EmployeeID
	}
	return false
}

// AuthorizeEmployee — проверка над конкретным сотрудником
func AuthorizeEmployee(actor Actor, action Action, emp *domain.Employee) bool {
	target := Target{Kind: KindEmployee}
	if emp != nil {
		target.EmployeeID = emp.ID
		if emp.DepartmentID != nil {
			target.DepartmentID = *emp.DepartmentID
		}
	}
	return Authorize(actor, action, target)
}
