package services

import (
	"context"
	"testing"

	"github.com/creoleap/api/utils/validation"
)

// The id format guards run before any query, so a service with a nil
// database is enough to exercise them. A malformed path id reads as a
// missing row; a malformed reference id in a body is a bad argument.

const goodUUID = "0198c1a2-7f3e-7000-8000-000000000099"

func TestMalformedPathIDsReadAsNotFound(t *testing.T) {
	ctx := context.Background()
	v := validation.NewValidator()
	badID := "not-a-uuid"

	institutions := NewInstitutionService(nil, v)
	_, err := institutions.GetByID(ctx, badID)
	expectKind(t, err, KindNotFound, "Institution not found")
	_, err = institutions.ToggleActive(ctx, badID)
	expectKind(t, err, KindNotFound, "Institution not found")
	expectKind(t, institutions.SoftDelete(ctx, badID), KindNotFound, "Institution not found")

	departments := NewDepartmentService(nil, v)
	_, err = departments.GetByID(ctx, badID)
	expectKind(t, err, KindNotFound, "Department not found")
	_, err = departments.Update(ctx, badID, "Physics", goodUUID)
	expectKind(t, err, KindNotFound, "Department not found")
	expectKind(t, departments.SoftDelete(ctx, badID), KindNotFound, "Department not found")

	classes := NewClassService(nil)
	_, err = classes.GetByID(ctx, badID)
	expectKind(t, err, KindNotFound, "Class not found")
	_, err = classes.Update(ctx, badID, ClassInput{Grade: "10", Section: "A", InstitutionID: goodUUID})
	expectKind(t, err, KindNotFound, "Class not found")
	expectKind(t, classes.SoftDelete(ctx, badID), KindNotFound, "Class not found")

	students := NewStudentService(nil)
	_, err = students.GetByID(ctx, badID)
	expectKind(t, err, KindNotFound, "Student not found")
	_, err = students.Update(ctx, badID, "Asha", goodUUID)
	expectKind(t, err, KindNotFound, "Student not found")
	expectKind(t, students.SoftDelete(ctx, badID), KindNotFound, "Student not found")

	staffs := NewStaffService(nil, v)
	_, err = staffs.GetByID(ctx, badID)
	expectKind(t, err, KindNotFound, "Staff not found")
	_, err = staffs.Update(ctx, badID, StaffInput{})
	expectKind(t, err, KindNotFound, "Staff not found")
	expectKind(t, staffs.SoftDelete(ctx, badID), KindNotFound, "Staff not found")

	admins := NewAdminService(nil, v)
	_, err = admins.GetByID(ctx, badID)
	expectKind(t, err, KindNotFound, "Admin not found")
	_, err = admins.Update(ctx, badID, AdminUpdateInput{})
	expectKind(t, err, KindNotFound, "Admin not found")
	expectKind(t, admins.SoftDelete(ctx, badID), KindNotFound, "Admin not found")
}

func TestMalformedReferenceIDsAreRejected(t *testing.T) {
	ctx := context.Background()
	v := validation.NewValidator()

	classes := NewClassService(nil)
	_, err := classes.Create(ctx, ClassInput{Grade: "10", Section: "A", InstitutionID: "not-a-uuid"})
	expectKind(t, err, KindInvalidArgument, "Invalid institutionId format")
	_, err = classes.Create(ctx, ClassInput{
		Grade: "10", Section: "A",
		InstitutionID: goodUUID,
		DepartmentID:  strPtr("not-a-uuid"),
	})
	expectKind(t, err, KindInvalidArgument, "Invalid departmentId format")

	students := NewStudentService(nil)
	_, err = students.Create(ctx, "Asha", "not-a-uuid")
	expectKind(t, err, KindInvalidArgument, "Invalid classId format")
	_, err = students.Update(ctx, goodUUID, "Asha", "not-a-uuid")
	expectKind(t, err, KindInvalidArgument, "Invalid classId format")

	staffs := NewStaffService(nil, v)
	_, err = staffs.Create(ctx, "K. Rao", "rao@example.com", "teaching", "not-a-uuid")
	expectKind(t, err, KindInvalidArgument, "Invalid institutionId format")
	_, err = staffs.Create(ctx, "K. Rao", "rao-at-example", "teaching", goodUUID)
	expectKind(t, err, KindInvalidArgument, "Invalid email format")
	_, err = staffs.Update(ctx, goodUUID, StaffInput{Email: "rao-at-example"})
	expectKind(t, err, KindInvalidArgument, "Invalid email format")
	_, err = staffs.Update(ctx, goodUUID, StaffInput{InstitutionID: "not-a-uuid"})
	expectKind(t, err, KindInvalidArgument, "Invalid institutionId format")

	admins := NewAdminService(nil, v)
	_, err = admins.Update(ctx, goodUUID, AdminUpdateInput{Email: strPtr("admin-at-example")})
	expectKind(t, err, KindInvalidArgument, "Invalid email format")
	_, err = admins.Update(ctx, goodUUID, AdminUpdateInput{InstitutionID: strPtr("not-a-uuid")})
	expectKind(t, err, KindInvalidArgument, "Invalid institutionId format")
}
