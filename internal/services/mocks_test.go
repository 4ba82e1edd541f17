package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
)

// mockRepository bundles the per-entity mocks behind the aggregate interface.
type mockRepository struct {
	students *mockStudentRepo
	users    *mockUserRepo
	batches  *mockBatchRepo
	packages *mockPackageRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		students: new(mockStudentRepo),
		users:    new(mockUserRepo),
		batches:  new(mockBatchRepo),
		packages: new(mockPackageRepo),
	}
}

func (m *mockRepository) Student() repositories.StudentRepository { return m.students }
func (m *mockRepository) User() repositories.UserRepository       { return m.users }
func (m *mockRepository) Batch() repositories.BatchRepository     { return m.batches }
func (m *mockRepository) Package() repositories.PackageRepository { return m.packages }

type mockStudentRepo struct {
	mock.Mock
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *mockStudentRepo) GetByID(ctx context.Context, id string) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *mockStudentRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStudentRepo) List(ctx context.Context, filters repositories.StudentFilters) ([]models.Student, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]models.Student), args.Get(1).(int64), args.Error(2)
}

func (m *mockStudentRepo) GetByMentor(ctx context.Context, mentorID string) ([]models.Student, error) {
	args := m.Called(ctx, mentorID)
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *mockStudentRepo) GetByCoordinator(ctx context.Context, coordinatorID string) ([]models.Student, error) {
	args := m.Called(ctx, coordinatorID)
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *mockStudentRepo) GetAll(ctx context.Context) ([]models.Student, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *mockStudentRepo) ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]models.User, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) GetMentorsByCoordinator(ctx context.Context, coordinatorID string) ([]models.User, error) {
	args := m.Called(ctx, coordinatorID)
	return args.Get(0).([]models.User), args.Error(1)
}

type mockBatchRepo struct {
	mock.Mock
}

func (m *mockBatchRepo) Create(ctx context.Context, batch *models.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *mockBatchRepo) GetByID(ctx context.Context, id uint) (*models.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Batch), args.Error(1)
}

func (m *mockBatchRepo) Update(ctx context.Context, batch *models.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *mockBatchRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBatchRepo) List(ctx context.Context, filters repositories.BatchFilters) ([]models.Batch, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]models.Batch), args.Get(1).(int64), args.Error(2)
}

type mockPackageRepo struct {
	mock.Mock
}

func (m *mockPackageRepo) Create(ctx context.Context, pkg *models.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *mockPackageRepo) GetByID(ctx context.Context, id uint) (*models.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Package), args.Error(1)
}

func (m *mockPackageRepo) Update(ctx context.Context, pkg *models.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *mockPackageRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPackageRepo) List(ctx context.Context, filters repositories.PackageFilters) ([]models.Package, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]models.Package), args.Get(1).(int64), args.Error(2)
}
