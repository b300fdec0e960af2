package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/utils/validation"
)

// setupIntegrationDB opens a connection to the test database and migrates
// the schema. The test is skipped unless RUN_INTEGRATION_TESTS=true.
func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	for _, v := range []string{"DB_HOST", "DB_USER_NAME", "DB_PASSWORD", "DB_NAME", "DB_PORT"} {
		if os.Getenv(v) == "" {
			t.Fatalf("missing required environment variable: %s", v)
		}
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER_NAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Institution{},
		&model.Department{},
		&model.Class{},
		&model.Student{},
		&model.Staff{},
		&model.Admin{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

// expectKind asserts a service error of the given kind and message.
func expectKind(t *testing.T, err error, kind Kind, message string) {
	t.Helper()
	svcErr, ok := AsError(err)
	if !ok {
		t.Fatalf("got %v, want service error %q", err, message)
	}
	if svcErr.Kind != kind || svcErr.Message != message {
		t.Fatalf("got kind=%d message=%q, want kind=%d message=%q",
			svcErr.Kind, svcErr.Message, kind, message)
	}
}

func TestHierarchyLifecycle(t *testing.T) {
	db := setupIntegrationDB(t)
	ctx := context.Background()
	v := validation.NewValidator()

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	institutions := NewInstitutionService(db, v)
	departments := NewDepartmentService(db, v)
	classes := NewClassService(db)
	students := NewStudentService(db)
	staffs := NewStaffService(db, v)

	var created struct {
		institutionIDs []string
		departmentIDs  []string
		classIDs       []string
		studentIDs     []string
		staffIDs       []string
	}
	defer func() {
		db.Where("id IN ?", created.studentIDs).Delete(&model.Student{})
		db.Where("id IN ?", created.staffIDs).Delete(&model.Staff{})
		db.Where("id IN ?", created.classIDs).Delete(&model.Class{})
		db.Where("id IN ?", created.departmentIDs).Delete(&model.Department{})
		db.Where("id IN ?", created.institutionIDs).Delete(&model.Institution{})
	}()

	collegeInput := InstitutionInput{
		Name:    "Lifecycle College " + suffix,
		Type:    model.InstitutionTypeCollege,
		Address: "1 Test Lane",
		ContactDetails: model.ContactDetails{
			InchargePerson: "Tester",
			MobileNumber:   "9876543210",
		},
	}

	college, err := institutions.Create(ctx, collegeInput)
	if err != nil {
		t.Fatalf("create college: %v", err)
	}
	created.institutionIDs = append(created.institutionIDs, college.ID)

	// Duplicate name among live institutions is rejected.
	_, err = institutions.Create(ctx, collegeInput)
	expectKind(t, err, KindConflict, "Institution name already exists")

	schoolInput := collegeInput
	schoolInput.Name = "Lifecycle School " + suffix
	schoolInput.Type = model.InstitutionTypeSchool

	school, err := institutions.Create(ctx, schoolInput)
	if err != nil {
		t.Fatalf("create school: %v", err)
	}
	created.institutionIDs = append(created.institutionIDs, school.ID)

	// Departments exist only under colleges.
	dept, err := departments.Create(ctx, "Computer Science", college.ID)
	if err != nil {
		t.Fatalf("create department: %v", err)
	}
	created.departmentIDs = append(created.departmentIDs, dept.ID)

	_, err = departments.Create(ctx, "Science", school.ID)
	expectKind(t, err, KindInvalidArgument, "Departments can only be created for colleges")

	_, err = departments.Create(ctx, "Computer Science", college.ID)
	expectKind(t, err, KindConflict, "Department name already exists in this institution")

	// College classes need a department; school classes must not have one.
	_, err = classes.Create(ctx, ClassInput{
		Grade:         "FY",
		Section:       "A",
		InstitutionID: college.ID,
	})
	expectKind(t, err, KindInvalidArgument, "departmentId is required for colleges")

	collegeClass, err := classes.Create(ctx, ClassInput{
		Grade:         "FY",
		Section:       "A",
		InstitutionID: college.ID,
		DepartmentID:  &dept.ID,
	})
	if err != nil {
		t.Fatalf("create college class: %v", err)
	}
	created.classIDs = append(created.classIDs, collegeClass.ID)

	_, err = classes.Create(ctx, ClassInput{
		Grade:         "fy",
		Section:       "a",
		InstitutionID: college.ID,
		DepartmentID:  &dept.ID,
	})
	expectKind(t, err, KindConflict, "Class name already exists in this institution or department")

	_, err = classes.Create(ctx, ClassInput{
		Grade:         "5",
		Section:       "B",
		InstitutionID: school.ID,
		DepartmentID:  &dept.ID,
	})
	expectKind(t, err, KindInvalidArgument, "departmentId should not be provided for schools")

	schoolClass, err := classes.Create(ctx, ClassInput{
		Grade:         "5",
		Section:       "B",
		InstitutionID: school.ID,
	})
	if err != nil {
		t.Fatalf("create school class: %v", err)
	}
	created.classIDs = append(created.classIDs, schoolClass.ID)

	// Students inherit the institution from their class.
	student, err := students.Create(ctx, "Asha Verma", collegeClass.ID)
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	created.studentIDs = append(created.studentIDs, student.ID)
	if student.InstitutionID != college.ID {
		t.Errorf("student institution = %s, want %s", student.InstitutionID, college.ID)
	}

	// Staff creation registers the id on the institution.
	staff, err := staffs.Create(ctx, "K. Rao", "k.rao."+suffix+"@example.com", "teaching", college.ID)
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	created.staffIDs = append(created.staffIDs, staff.ID)

	_, err = staffs.Create(ctx, "Duplicate", "k.rao."+suffix+"@example.com", "teaching", college.ID)
	expectKind(t, err, KindConflict, "Email already exists")

	refreshed, err := institutions.GetByID(ctx, college.ID)
	if err != nil {
		t.Fatalf("reload institution: %v", err)
	}
	found := false
	for _, id := range refreshed.StaffIDs {
		if id == staff.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("staff id %s not registered on institution", staff.ID)
	}

	// Toggle flips the stored active flag.
	toggled, err := classes.ToggleActive(ctx, collegeClass.ID)
	if err != nil {
		t.Fatalf("toggle class: %v", err)
	}
	if toggled.IsActive {
		t.Error("class still active after toggle")
	}

	// Soft delete hides the row from reads but keeps it in the table.
	if err := institutions.SoftDelete(ctx, school.ID); err != nil {
		t.Fatalf("soft delete school: %v", err)
	}
	_, err = institutions.GetByID(ctx, school.ID)
	expectKind(t, err, KindNotFound, "Institution not found")

	var raw model.Institution
	if err := db.First(&raw, "id = ?", school.ID).Error; err != nil {
		t.Fatalf("soft-deleted row missing from table: %v", err)
	}
	if !raw.IsDeleted || raw.IsActive {
		t.Errorf("soft-deleted row flags: isDeleted=%v isActive=%v", raw.IsDeleted, raw.IsActive)
	}

	// The released name is usable again.
	reuse, err := institutions.Create(ctx, schoolInput)
	if err != nil {
		t.Fatalf("recreate with released name: %v", err)
	}
	created.institutionIDs = append(created.institutionIDs, reuse.ID)
}

func TestStudentListPagination(t *testing.T) {
	db := setupIntegrationDB(t)
	ctx := context.Background()
	v := validation.NewValidator()

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	institutions := NewInstitutionService(db, v)
	classes := NewClassService(db)
	students := NewStudentService(db)

	var institutionIDs, classIDs, studentIDs []string
	defer func() {
		db.Where("id IN ?", studentIDs).Delete(&model.Student{})
		db.Where("id IN ?", classIDs).Delete(&model.Class{})
		db.Where("id IN ?", institutionIDs).Delete(&model.Institution{})
	}()

	school, err := institutions.Create(ctx, InstitutionInput{
		Name:    "Pagination School " + suffix,
		Type:    model.InstitutionTypeSchool,
		Address: "3 Test Lane",
		ContactDetails: model.ContactDetails{
			InchargePerson: "Tester",
			MobileNumber:   "9876543210",
		},
	})
	if err != nil {
		t.Fatalf("create school: %v", err)
	}
	institutionIDs = append(institutionIDs, school.ID)

	class, err := classes.Create(ctx, ClassInput{
		Grade:         "7",
		Section:       "C",
		InstitutionID: school.ID,
	})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	classIDs = append(classIDs, class.ID)

	for i := 0; i < 25; i++ {
		student, err := students.Create(ctx, fmt.Sprintf("Pupil %s %02d", suffix, i), class.ID)
		if err != nil {
			t.Fatalf("create student %d: %v", i, err)
		}
		studentIDs = append(studentIDs, student.ID)
	}

	// 25 rows at 10 per page: page 2 is full, page 3 holds the rest.
	page2, total, err := students.List(ctx, StudentListParams{
		ListParams: ListParams{Page: 2, Limit: 10, Search: suffix},
		ClassID:    class.ID,
	})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if total != 25 {
		t.Errorf("total = %d, want 25", total)
	}
	if len(page2) != 10 {
		t.Errorf("page 2 has %d items, want 10", len(page2))
	}

	page3, _, err := students.List(ctx, StudentListParams{
		ListParams: ListParams{Page: 3, Limit: 10, Search: suffix},
		ClassID:    class.ID,
	})
	if err != nil {
		t.Fatalf("list page 3: %v", err)
	}
	if len(page3) != 5 {
		t.Errorf("page 3 has %d items, want 5", len(page3))
	}

	// Name ordering makes the pages disjoint and stable.
	if len(page2) > 0 && len(page3) > 0 && page3[0].Name <= page2[len(page2)-1].Name {
		t.Errorf("page 3 starts at %q, before end of page 2 %q", page3[0].Name, page2[len(page2)-1].Name)
	}
}

func TestAdminLifecycle(t *testing.T) {
	db := setupIntegrationDB(t)
	ctx := context.Background()
	v := validation.NewValidator()

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	institutions := NewInstitutionService(db, v)
	admins := NewAdminService(db, v)

	var institutionIDs, adminIDs []string
	defer func() {
		db.Where("id IN ?", adminIDs).Delete(&model.Admin{})
		db.Where("id IN ?", institutionIDs).Delete(&model.Institution{})
	}()

	inst, err := institutions.Create(ctx, InstitutionInput{
		Name:    "Admin College " + suffix,
		Type:    model.InstitutionTypeCollege,
		Address: "2 Test Lane",
		ContactDetails: model.ContactDetails{
			InchargePerson: "Tester",
			MobileNumber:   "9876543210",
		},
	})
	if err != nil {
		t.Fatalf("create institution: %v", err)
	}
	institutionIDs = append(institutionIDs, inst.ID)

	email := "admin." + suffix + "@example.com"
	mobile := fmt.Sprintf("9%09d", time.Now().UnixNano()%1000000000)

	admin, err := admins.Register(ctx, AdminInput{
		Email:         email,
		MobileNumber:  mobile,
		Password:      "strongpassword",
		Name:          "Lifecycle Admin",
		Role:          model.RoleAdmin,
		InstitutionID: &inst.ID,
	})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	adminIDs = append(adminIDs, admin.ID)

	_, err = admins.Register(ctx, AdminInput{
		Email:         email,
		MobileNumber:  "9123456789",
		Password:      "strongpassword",
		Name:          "Duplicate",
		Role:          model.RoleAdmin,
		InstitutionID: &inst.ID,
	})
	expectKind(t, err, KindConflict, "Email already exists")

	// Login paths: unknown email, wrong password, inactive account.
	if _, err := admins.Login(ctx, email, "strongpassword", "127.0.0.1", "go-test"); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = admins.Login(ctx, "nobody."+suffix+"@example.com", "strongpassword", "127.0.0.1", "go-test")
	expectKind(t, err, KindUnauthorized, "Email not found")

	_, err = admins.Login(ctx, email, "wrong-password", "127.0.0.1", "go-test")
	expectKind(t, err, KindUnauthorized, "Invalid password")

	if _, err := admins.ToggleActive(ctx, admin.ID); err != nil {
		t.Fatalf("toggle admin: %v", err)
	}
	_, err = admins.Login(ctx, email, "strongpassword", "127.0.0.1", "go-test")
	expectKind(t, err, KindForbidden, "Account is inactive")

	// Deleting an admin scrubs the identity so email and mobile can be
	// reused by a new account.
	if err := admins.SoftDelete(ctx, admin.ID); err != nil {
		t.Fatalf("soft delete admin: %v", err)
	}

	var raw model.Admin
	if err := db.First(&raw, "id = ?", admin.ID).Error; err != nil {
		t.Fatalf("soft-deleted admin missing from table: %v", err)
	}
	if !raw.IsDeleted {
		t.Error("admin not flagged deleted")
	}
	if raw.Email == email {
		t.Error("deleted admin email not anonymized")
	}
	if raw.MobileNumber == mobile {
		t.Error("deleted admin mobile not anonymized")
	}

	reuse, err := admins.Register(ctx, AdminInput{
		Email:         email,
		MobileNumber:  mobile,
		Password:      "strongpassword",
		Name:          "Reused Identity",
		Role:          model.RoleAdmin,
		InstitutionID: &inst.ID,
	})
	if err != nil {
		t.Fatalf("re-register with released identity: %v", err)
	}
	adminIDs = append(adminIDs, reuse.ID)
}
