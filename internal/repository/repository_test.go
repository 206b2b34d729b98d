package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/phone-directory-api/internal/domain"
	"github.com/phone-directory-api/internal/dto"
	"github.com/phone-directory-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB поднимает изолированную sqlite-базу со схемой справочника
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&domain.Organization{},
		&domain.Department{},
		&domain.Employee{},
		&domain.User{},
		&domain.SystemSettings{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createOrganization(t *testing.T, repo repository.OrganizationRepository, name string) *domain.Organization {
	t.Helper()
	org := &domain.Organization{Name: name}
	if err := repo.Create(context.Background(), org); err != nil {
		t.Fatalf("failed to create organization: %v", err)
	}
	return org
}

func createDepartment(t *testing.T, repo repository.DepartmentRepository, name, orgID string) *domain.Department {
	t.Helper()
	dept := &domain.Department{Name: name, OrganizationID: orgID}
	if err := repo.Create(context.Background(), dept); err != nil {
		t.Fatalf("failed to create department: %v", err)
	}
	return dept
}

func TestOrganizationRepository_DeleteRejectsWhenReferenced(t *testing.T) {
	db := newTestDB(t)
	orgRepo := repository.NewOrganizationRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	ctx := context.Background()

	org := createOrganization(t, orgRepo, "Администрация города")
	createDepartment(t, deptRepo, "Отдел кадров", org.ID)

	err := orgRepo.Delete(ctx, org.ID)
	if !errors.Is(err, domain.ErrOrganizationNotEmpty) {
		t.Fatalf("expected ErrOrganizationNotEmpty, got %v", err)
	}

	// После удаления отдела организация удаляется
	var dept domain.Department
	if err := db.First(&dept, "organization_id = ?", org.ID).Error; err != nil {
		t.Fatalf("failed to load department: %v", err)
	}
	if err := deptRepo.Delete(ctx, dept.ID); err != nil {
		t.Fatalf("failed to delete department: %v", err)
	}
	if err := orgRepo.Delete(ctx, org.ID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}

	if _, err := orgRepo.GetByID(ctx, org.ID); !errors.Is(err, domain.ErrOrganizationNotFound) {
		t.Errorf("expected ErrOrganizationNotFound after delete, got %v", err)
	}
}

func TestOrganizationRepository_CountsFollowRelations(t *testing.T) {
	db := newTestDB(t)
	orgRepo := repository.NewOrganizationRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	org := createOrganization(t, orgRepo, "Министерство транспорта")
	dept := createDepartment(t, deptRepo, "Отдел эксплуатации", org.ID)
	createDepartment(t, deptRepo, "Плановый отдел", org.ID)

	emp := &domain.Employee{
		FirstName:      "Олег",
		LastName:       "Козлов",
		Position:       "Диспетчер",
		OrganizationID: org.ID,
		DepartmentID:   &dept.ID,
	}
	if err := empRepo.Create(ctx, emp); err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}

	got, err := orgRepo.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("failed to load organization: %v", err)
	}
	if got.DepartmentCount != 2 {
		t.Errorf("expected department_count 2, got %d", got.DepartmentCount)
	}
	if got.EmployeeCount != 1 {
		t.Errorf("expected employee_count 1, got %d", got.EmployeeCount)
	}

	depts, err := deptRepo.List(ctx, org.ID)
	if err != nil {
		t.Fatalf("failed to list departments: %v", err)
	}
	for _, d := range depts {
		want := 0
		if d.ID == dept.ID {
			want = 1
		}
		if d.EmployeeCount != want {
			t.Errorf("department %q: expected employee_count %d, got %d", d.Name, want, d.EmployeeCount)
		}
	}
}

func TestDepartmentRepository_DeleteClearsEmployees(t *testing.T) {
	db := newTestDB(t)
	orgRepo := repository.NewOrganizationRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	org := createOrganization(t, orgRepo, "Департамент цифрового развития")
	dept := createDepartment(t, deptRepo, "IT отдел", org.ID)

	emp := &domain.Employee{
		FirstName:      "Иван",
		LastName:       "Петров",
		Position:       "Инженер",
		OrganizationID: org.ID,
		DepartmentID:   &dept.ID,
	}
	if err := empRepo.Create(ctx, emp); err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}

	if err := deptRepo.Delete(ctx, dept.ID); err != nil {
		t.Fatalf("failed to delete department: %v", err)
	}

	// Сотрудник не удалён, отдел снят
	got, err := empRepo.GetByID(ctx, emp.ID)
	if err != nil {
		t.Fatalf("employee must survive department delete: %v", err)
	}
	if got.DepartmentID != nil {
		t.Errorf("expected department_id cleared, got %v", *got.DepartmentID)
	}

	if _, err := deptRepo.GetByID(ctx, dept.ID); !errors.Is(err, domain.ErrDepartmentNotFound) {
		t.Errorf("expected ErrDepartmentNotFound, got %v", err)
	}
}

func TestEmployeeRepository_ListOrdering(t *testing.T) {
	db := newTestDB(t)
	orgRepo := repository.NewOrganizationRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	org := createOrganization(t, orgRepo, "Организация")
	for _, e := range []struct{ first, last string }{
		{"Борис", "Смирнов"},
		{"Анна", "Иванова"},
		{"Пётр", "Иванов"},
		{"Алексей", "Иванов"},
	} {
		emp := &domain.Employee{FirstName: e.first, LastName: e.last, Position: "Специалист", OrganizationID: org.ID}
		if err := empRepo.Create(ctx, emp); err != nil {
			t.Fatalf("failed to create employee: %v", err)
		}
	}

	employees, err := empRepo.List(ctx, &dto.EmployeeFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(employees) != 4 {
		t.Fatalf("expected 4 employees, got %d", len(employees))
	}

	wantOrder := []string{"Алексей Иванов", "Пётр Иванов", "Анна Иванова", "Борис Смирнов"}
	for i, want := range wantOrder {
		got := employees[i].FirstName + " " + employees[i].LastName
		if got != want {
			t.Errorf("position %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestEmployeeRepository_ListFiltersAreConjunctive(t *testing.T) {
	db := newTestDB(t)
	orgRepo := repository.NewOrganizationRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	org1 := createOrganization(t, orgRepo, "Организация 1")
	org2 := createOrganization(t, orgRepo, "Организация 2")
	dept1 := createDepartment(t, deptRepo, "Отдел 1", org1.ID)
	dept2 := createDepartment(t, deptRepo, "Отдел 2", org1.ID)

	seed := []domain.Employee{
		{FirstName: "Иван", LastName: "Петров", Position: "Инженер", OrganizationID: org1.ID, DepartmentID: &dept2.ID},
		{FirstName: "Олег", LastName: "Кузнецов", Position: "Инженер", OrganizationID: org1.ID, DepartmentID: &dept1.ID},
		{FirstName: "Мария", LastName: "Петрова", Position: "Бухгалтер", OrganizationID: org2.ID},
	}
	for i := range seed {
		if err := empRepo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("failed to create employee: %v", err)
		}
	}

	employees, err := empRepo.List(ctx, &dto.EmployeeFilter{OrganizationID: org1.ID, DepartmentID: dept2.ID})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(employees) != 1 {
		t.Fatalf("expected exactly 1 employee, got %d", len(employees))
	}
	if employees[0].LastName != "Петров" {
		t.Errorf("expected Петров, got %s", employees[0].LastName)
	}
	if employees[0].Organization == nil || employees[0].Department == nil {
		t.Error("expected organization and department resolved on read")
	}
}

// Поиск нечувствителен к регистру и для кириллицы
func TestEmployeeRepository_SearchCaseInsensitiveCyrillic(t *testing.T) {
	db := newTestDB(t)
	orgRepo := repository.NewOrganizationRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	org := createOrganization(t, orgRepo, "Организация")
	seed := []domain.Employee{
		{FirstName: "Иван", LastName: "Петров", Position: "Инженер", OrganizationID: org.ID},
		{FirstName: "Олег", LastName: "Сидоров", Position: "Аналитик", OrganizationID: org.ID},
	}
	for i := range seed {
		if err := empRepo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("failed to create employee: %v", err)
		}
	}

	employees, err := empRepo.List(ctx, &dto.EmployeeFilter{Search: "петров"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(employees) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(employees))
	}
	if employees[0].LastName != "Петров" {
		t.Errorf("expected Петров, got %s", employees[0].LastName)
	}
}

// Поиск идёт по имени, фамилии, отчеству, должности и почте как OR-условиям
func TestEmployeeRepository_SearchMatchesAnyField(t *testing.T) {
	db := newTestDB(t)
	orgRepo := repository.NewOrganizationRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	org := createOrganization(t, orgRepo, "Организация")
	seed := []domain.Employee{
		{FirstName: "Иван", LastName: "Петров", MiddleName: "Сергеевич", Position: "Инженер", Email: "petrov@example.com", OrganizationID: org.ID},
		{FirstName: "Олег", LastName: "Сидоров", Position: "Главный инженер", OrganizationID: org.ID},
		{FirstName: "Мария", LastName: "Кузнецова", Position: "Бухгалтер", OrganizationID: org.ID},
	}
	for i := range seed {
		if err := empRepo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("failed to create employee: %v", err)
		}
	}

	tests := []struct {
		search string
		want   int
	}{
		{"инженер", 2},
		{"сергеевич", 1},
		{"PETROV", 1},
		{"кузнецова", 1},
		{"нет такого", 0},
	}
	for _, tt := range tests {
		employees, err := empRepo.List(ctx, &dto.EmployeeFilter{Search: tt.search})
		if err != nil {
			t.Fatalf("List(%q) failed: %v", tt.search, err)
		}
		if len(employees) != tt.want {
			t.Errorf("search %q: expected %d matches, got %d", tt.search, tt.want, len(employees))
		}
	}
}

func TestSettingsRepository_LazyCreateDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSettingsRepository(db)
	ctx := context.Background()

	settings, err := repo.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if !settings.EnableNotifications {
		t.Error("expected notifications enabled by default")
	}
	if len(settings.Ministries) != 0 || len(settings.NotificationDays) != 0 {
		t.Error("expected empty lists by default")
	}

	// Повторное чтение не создаёт вторую строку
	if _, err := repo.GetOrCreate(ctx); err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	var count int64
	if err := db.Model(&domain.SystemSettings{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected single settings row, got %d", count)
	}
}

func TestSettingsRepository_ConcurrentFirstRead(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSettingsRepository(db)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.GetOrCreate(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("concurrent GetOrCreate %d failed: %v", i, err)
		}
	}

	var count int64
	if err := db.Model(&domain.SystemSettings{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected single settings row after concurrent reads, got %d", count)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Username: "admin", PasswordHash: "x", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	err := repo.Create(ctx, &domain.User{Username: "admin", PasswordHash: "y", Role: domain.RoleUser})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}
}
