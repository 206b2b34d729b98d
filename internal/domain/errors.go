package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrUserNotFound         = errors.New("user not found")

	// ErrOrganizationNotEmpty: удаление организации отклоняется, пока на неё
	// ссылаются отделы или сотрудники. Каскад должен быть явным действием
	// вызывающей стороны.
	ErrOrganizationNotEmpty = errors.New("organization still has departments or employees")

	// ErrDepartmentOrganizationMismatch: отдел сотрудника должен принадлежать
	// той же организации, что указана у сотрудника.
	ErrDepartmentOrganizationMismatch = errors.New("department belongs to a different organization")

	// ErrInvalidReference: внешний ключ записываемой сущности не указывает
	// на существующую строку.
	ErrInvalidReference = errors.New("referenced entity does not exist")

	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not permitted for this actor")
)
