package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization представляет организацию справочника
type Organization struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(300);not null"`
	Type        string    `json:"type,omitempty" gorm:"type:varchar(200)"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	Departments []Department `json:"departments,omitempty" gorm:"foreignKey:OrganizationID"`
	Employees   []Employee   `json:"employees,omitempty" gorm:"foreignKey:OrganizationID"`

	// Счётчики заполняются репозиторием при чтении
	DepartmentCount int `json:"department_count,omitempty" gorm:"-"`
	EmployeeCount   int `json:"employee_count,omitempty" gorm:"-"`
}

// TableName задаёт имя таблицы для GORM
func (Organization) TableName() string {
	return "organizations"
}

// BeforeCreate присваивает идентификатор перед вставкой
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Department представляет отдел внутри организации
type Department struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name           string    `json:"name" gorm:"type:varchar(300);not null"`
	OrganizationID string    `json:"organization_id" gorm:"type:varchar(36);not null;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Employees    []Employee    `json:"employees,omitempty" gorm:"foreignKey:DepartmentID"`

	// Счётчик заполняется репозиторием при чтении
	EmployeeCount int `json:"employee_count,omitempty" gorm:"-"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "departments"
}

// BeforeCreate присваивает идентификатор перед вставкой
func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Employee представляет сотрудника справочника.
// DepartmentID может отсутствовать: сотрудник числится в организации
// без привязки к конкретному отделу.
type Employee struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FirstName      string    `json:"first_name" gorm:"type:varchar(200);not null"`
	LastName       string    `json:"last_name" gorm:"type:varchar(200);not null;index"`
	MiddleName     string    `json:"middle_name,omitempty" gorm:"type:varchar(200)"`
	Position       string    `json:"position" gorm:"type:varchar(300);not null"`
	Email          string    `json:"email,omitempty" gorm:"type:varchar(200)"`
	WorkPhone      string    `json:"work_phone,omitempty" gorm:"type:varchar(50)"`
	MobilePhone    string    `json:"mobile_phone,omitempty" gorm:"type:varchar(50)"`
	InternalPhone  string    `json:"internal_phone,omitempty" gorm:"type:varchar(50)"`
	Street         string    `json:"street,omitempty" gorm:"type:varchar(300)"`
	Building       string    `json:"building,omitempty" gorm:"type:varchar(50)"`
	Office         string    `json:"office,omitempty" gorm:"type:varchar(50)"`
	OrganizationID string    `json:"organization_id" gorm:"type:varchar(36);not null;index"`
	DepartmentID   *string   `json:"department_id" gorm:"type:varchar(36);index"`
	LastUpdated    time.Time `json:"last_updated"`
	NeedsUpdate    bool      `json:"needs_update"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Department   *Department   `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// BeforeCreate присваивает идентификатор перед вставкой
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.LastUpdated.IsZero() {
		e.LastUpdated = time.Now()
	}
	return nil
}

// Роли пользователей системы
const (
	RoleAdmin          = "admin"
	RoleDepartmentHead = "department_head"
	RoleUser           = "user"
)

// User представляет учётную запись. Хранится только bcrypt-хэш пароля.
// DepartmentAccess имеет смысл только для роли department_head.
type User struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username         string    `json:"username" gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash     string    `json:"-" gorm:"type:varchar(200);not null"`
	Role             string    `json:"role" gorm:"type:varchar(50);not null"`
	DepartmentAccess []string  `json:"department_access,omitempty" gorm:"serializer:json;type:text"`
	EmployeeID       *string   `json:"employee_id,omitempty" gorm:"type:varchar(36)"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate присваивает идентификатор перед вставкой
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SettingsID — идентификатор единственной строки настроек
const SettingsID = 1

// SystemSettings — общесистемные настройки справочника.
// В базе существует не более одной строки с ID = SettingsID.
type SystemSettings struct {
	ID                  int       `json:"id" gorm:"primaryKey"`
	Ministries          []string  `json:"ministries" gorm:"serializer:json;type:text"`
	NotificationDays    []int     `json:"notification_days" gorm:"serializer:json;type:text"`
	EnableNotifications bool      `json:"enable_notifications"`
	UpdatedAt           time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (SystemSettings) TableName() string {
	return "system_settings"
}
