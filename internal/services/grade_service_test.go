package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/school-portal/portal-service/internal/events"
	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/validator"
)

func newGradeServiceForTest(repo *fakeRepository) (GradeService, *events.MockPublisher) {
	publisher := events.NewMockPublisher()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewGradeService(repo, publisher, logger, validator.New())
	return svc, publisher
}

func TestGetStudentGradesOwnership(t *testing.T) {
	repo := newFakeRepository()
	repo.submission.grades[7] = []*models.GradeView{
		{AssignmentID: 1, Title: "Essay 1", Grade: strPtr("A")},
	}
	svc, _ := newGradeServiceForTest(repo)

	views, err := svc.GetStudentGrades(context.Background(), 7, 7)
	if err != nil {
		t.Fatalf("own grades should be visible: %v", err)
	}
	if len(views) != 1 || views[0].Title != "Essay 1" {
		t.Errorf("unexpected grade rows: %+v", views)
	}

	_, err = svc.GetStudentGrades(context.Background(), 7, 8)
	var authzErr *AuthorizationError
	if !errors.As(err, &authzErr) {
		t.Errorf("viewing another student's grades should be forbidden, got %T (%v)", err, err)
	}
}

func TestSubmitGradeUpserts(t *testing.T) {
	repo := newFakeRepository()
	repo.assignment.assignments[1] = &models.Assignment{ID: 1, ClassID: 1, Title: "Essay 1"}
	svc, publisher := newGradeServiceForTest(repo)

	first, created, err := svc.SubmitGrade(context.Background(), &SubmitGradeRequest{
		AssignmentID: 1,
		StudentID:    7,
		Grade:        "B",
	})
	if err != nil {
		t.Fatalf("first grade failed: %v", err)
	}
	if !created {
		t.Error("first grade should report an insert")
	}
	if first.Grade == nil || *first.Grade != "B" || first.GradedAt == nil {
		t.Errorf("unexpected submission: %+v", first)
	}
	firstID := first.ID
	firstGradedAt := *first.GradedAt

	second, created, err := svc.SubmitGrade(context.Background(), &SubmitGradeRequest{
		AssignmentID: 1,
		StudentID:    7,
		Grade:        "A",
		Feedback:     strPtr("much improved"),
	})
	if err != nil {
		t.Fatalf("re-grade failed: %v", err)
	}
	if created {
		t.Error("re-grade should report an update, not an insert")
	}
	if second.ID != firstID {
		t.Errorf("re-grading should update the same row: %d vs %d", second.ID, firstID)
	}
	if *second.Grade != "A" || second.Feedback == nil || *second.Feedback != "much improved" {
		t.Errorf("re-grade did not stick: %+v", second)
	}
	if second.GradedAt.Before(firstGradedAt) {
		t.Error("graded_at should be refreshed on update")
	}
	if len(repo.submission.submissions) != 1 {
		t.Errorf("expected a single stored submission, got %d", len(repo.submission.submissions))
	}

	if got := len(publisher.GetPublishedEvents()); got != 2 {
		t.Errorf("expected 2 grade events, got %d", got)
	}
}

func TestSubmitGradeRequiresAssignment(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := newGradeServiceForTest(repo)

	_, _, err := svc.SubmitGrade(context.Background(), &SubmitGradeRequest{
		AssignmentID: 42,
		StudentID:    7,
		Grade:        "A",
	})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("unexpected error type: %T (%v)", err, err)
	}
}

func strPtr(s string) *string { return &s }
