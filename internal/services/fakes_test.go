package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/repositories"
)

// In-memory fakes backing the service tests. Only the methods a test path
// touches are meaningfully implemented; everything else returns zero values.

type fakeUserRepo struct {
	nextID uint
	users  map[string]*models.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[string]*models.User{}}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, repositories.ErrRecordNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserRepo) FindInvitation(ctx context.Context, email string, role models.UserRole) (*models.User, error) {
	u, ok := f.users[email]
	if !ok || u.Role != role || u.IsActive() {
		return nil, repositories.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) HasActiveAccount(ctx context.Context, email string) (bool, error) {
	u, ok := f.users[email]
	return ok && u.IsActive(), nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.Email]; ok {
		return repositories.ErrDuplicateEmail
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) AttachCredential(ctx context.Context, email string, hash string) error {
	u, ok := f.users[email]
	if !ok || u.IsActive() {
		return repositories.ErrAlreadyActive
	}
	u.PasswordHash = &hash
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	for email, u := range f.users {
		if u.ID == id {
			delete(f.users, email)
			return nil
		}
	}
	return repositories.ErrRecordNotFound
}

// invite seeds an invitation directly, bypassing the service layer.
func (f *fakeUserRepo) invite(email string, role models.UserRole) *models.User {
	u := &models.User{ID: f.nextID, Email: email, Role: role, CreatedAt: time.Now()}
	f.nextID++
	f.users[email] = u
	return u
}

// activate seeds an active account with the given bcrypt hash.
func (f *fakeUserRepo) activate(email string, role models.UserRole, password string) *models.User {
	hashBytes, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	hash := string(hashBytes)
	u := &models.User{ID: f.nextID, Email: email, Role: role, PasswordHash: &hash, CreatedAt: time.Now()}
	f.nextID++
	f.users[email] = u
	return u
}

type fakeSubmissionRepo struct {
	nextID      uint
	submissions []*models.Submission
	grades      map[uint][]*models.GradeView // keyed by student id
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{nextID: 1, grades: map[uint][]*models.GradeView{}}
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	submission.ID = f.nextID
	f.nextID++
	f.submissions = append(f.submissions, submission)
	return nil
}

func (f *fakeSubmissionRepo) Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	return nil
}

func (f *fakeSubmissionRepo) GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID, studentID uint) (*models.Submission, error) {
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			return s, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (f *fakeSubmissionRepo) ListGradesByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.GradeView, error) {
	return f.grades[studentID], nil
}

func (f *fakeSubmissionRepo) ListByClass(ctx context.Context, tx *gorm.DB, classID uint) ([]*models.Submission, error) {
	return f.submissions, nil
}

type fakeAssignmentRepo struct {
	assignments map[uint]*models.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: map[uint]*models.Assignment{}}
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	assignment.ID = uint(len(f.assignments) + 1)
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error) {
	if a, ok := f.assignments[id]; ok {
		return a, nil
	}
	return nil, repositories.ErrRecordNotFound
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeAssignmentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(f.assignments, id)
	return nil
}

func (f *fakeAssignmentRepo) ListByClass(ctx context.Context, tx *gorm.DB, classID uint) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, a := range f.assignments {
		if a.ClassID == classID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeClassRepo struct {
	classes map[uint]*models.Class
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{classes: map[uint]*models.Class{}}
}

func (f *fakeClassRepo) Create(ctx context.Context, tx *gorm.DB, class *models.Class) error {
	class.ID = uint(len(f.classes) + 1)
	f.classes[class.ID] = class
	return nil
}

func (f *fakeClassRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Class, error) {
	if c, ok := f.classes[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrRecordNotFound
}

func (f *fakeClassRepo) Update(ctx context.Context, tx *gorm.DB, class *models.Class) error {
	f.classes[class.ID] = class
	return nil
}

func (f *fakeClassRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(f.classes, id)
	return nil
}

func (f *fakeClassRepo) List(ctx context.Context, tx *gorm.DB) ([]*models.ClassView, error) {
	var out []*models.ClassView
	for _, c := range f.classes {
		out = append(out, &models.ClassView{ID: c.ID, Name: c.Name, TeacherID: c.TeacherID})
	}
	return out, nil
}

// fakeRepository aggregates the fakes behind the Repository interface.
type fakeRepository struct {
	user       *fakeUserRepo
	class      *fakeClassRepo
	assignment *fakeAssignmentRepo
	submission *fakeSubmissionRepo
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		user:       newFakeUserRepo(),
		class:      newFakeClassRepo(),
		assignment: newFakeAssignmentRepo(),
		submission: newFakeSubmissionRepo(),
	}
}

func (f *fakeRepository) User() repositories.UserRepository             { return f.user }
func (f *fakeRepository) Class() repositories.ClassRepository           { return f.class }
func (f *fakeRepository) Assignment() repositories.AssignmentRepository { return f.assignment }
func (f *fakeRepository) Submission() repositories.SubmissionRepository { return f.submission }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }
