package dto

// LoginRequest - запрос на вход
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=200"`
}

// LoginResponse - выданный токен и данные учётной записи
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse - учётная запись без секретов
type UserResponse struct {
	ID               string   `json:"id"`
	Username         string   `json:"username"`
	Role             string   `json:"role"`
	DepartmentAccess []string `json:"department_access,omitempty"`
	EmployeeID       *string  `json:"employee_id,omitempty"`
}

// ChangePasswordRequest - смена пароля текущим пользователем
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=200"`
}

// OrganizationRequest - создание и полная замена организации
type OrganizationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=300"`
	Type        string `json:"type" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// DepartmentRequest - создание и полная замена отдела
type DepartmentRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=300"`
	OrganizationID string `json:"organization_id" validate:"required"`
}

// EmployeeRequest - создание и полная замена сотрудника.
// Телефоны и адрес - свободный текст, формат не навязывается.
type EmployeeRequest struct {
	FirstName      string  `json:"first_name" validate:"required,min=1,max=200"`
	LastName       string  `json:"last_name" validate:"required,min=1,max=200"`
	MiddleName     string  `json:"middle_name" validate:"omitempty,max=200"`
	Position       string  `json:"position" validate:"required,min=1,max=300"`
	Email          string  `json:"email" validate:"omitempty,email,max=200"`
	WorkPhone      string  `json:"work_phone" validate:"omitempty,max=50"`
	MobilePhone    string  `json:"mobile_phone" validate:"omitempty,max=50"`
	InternalPhone  string  `json:"internal_phone" validate:"omitempty,max=50"`
	Street         string  `json:"street" validate:"omitempty,max=300"`
	Building       string  `json:"building" validate:"omitempty,max=50"`
	Office         string  `json:"office" validate:"omitempty,max=50"`
	OrganizationID string  `json:"organization_id" validate:"required"`
	DepartmentID   *string `json:"department_id" validate:"omitempty"`
}

// EmployeeFilter - параметры выборки сотрудников.
// Все заданные условия применяются одновременно.
type EmployeeFilter struct {
	OrganizationID string
	DepartmentID   string
	Search         string
}

// UpdateSettingsRequest - частичное обновление настроек.
// Незаполненные поля сохраняют прежние значения.
type UpdateSettingsRequest struct {
	Ministries          *[]string `json:"ministries" validate:"omitempty,dive,min=1,max=300"`
	NotificationDays    *[]int    `json:"notification_days" validate:"omitempty,dive,min=1,max=31"`
	EnableNotifications *bool     `json:"enable_notifications"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
