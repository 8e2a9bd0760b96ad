package repositories

import (
	"testing"
	"time"

	"finflow/internal/database"
	"finflow/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositorySuite) newUser() *models.User {
	return &models.User{
		Username:     gofakeit.Username(),
		Email:        gofakeit.Email(),
		PasswordHash: "hashed_password",
		Role:         models.RolePersonal,
	}
}

func (s *UserRepositorySuite) TestCreateAndGetByID() {
	user := s.newUser()
	s.NoError(s.repo.Create(user))
	s.NotEqual(uuid.Nil, user.ID)

	got, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal(user.Email, got.Email)
	s.Equal(models.RolePersonal, got.Role)
}

func (s *UserRepositorySuite) TestCreate_DuplicateEmail() {
	user := s.newUser()
	s.NoError(s.repo.Create(user))

	dupe := s.newUser()
	dupe.Email = user.Email
	s.Error(s.repo.Create(dupe))
}

func (s *UserRepositorySuite) TestGetByEmail() {
	user := s.newUser()
	s.NoError(s.repo.Create(user))

	got, err := s.repo.GetByEmail(user.Email)
	s.NoError(err)
	s.Equal(user.ID, got.ID)

	_, err = s.repo.GetByEmail("nobody@example.com")
	s.Equal(ErrUserNotFound, err)
}

func (s *UserRepositorySuite) TestGetByUsername() {
	user := s.newUser()
	s.NoError(s.repo.Create(user))

	got, err := s.repo.GetByUsername(user.Username)
	s.NoError(err)
	s.Equal(user.ID, got.ID)

	_, err = s.repo.GetByUsername("nobody")
	s.Equal(ErrUserNotFound, err)
}

func (s *UserRepositorySuite) TestUpdate() {
	user := s.newUser()
	s.NoError(s.repo.Create(user))

	now := time.Now()
	user.LastLoginAt = &now
	s.NoError(s.repo.Update(user))

	got, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.NotNil(got.LastLoginAt)
}

func (s *UserRepositorySuite) TestUpdateFailedLoginAttempts() {
	user := s.newUser()
	s.NoError(s.repo.Create(user))

	now := time.Now()
	user.FailedLoginAttempts = 5
	user.LockedAt = &now
	s.NoError(s.repo.UpdateFailedLoginAttempts(user))

	got, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal(5, got.FailedLoginAttempts)
	s.True(got.IsLocked())
}

func (s *UserRepositorySuite) TestUpdateFailedLoginAttempts_UnknownUser() {
	user := s.newUser()
	user.ID = uuid.New()
	user.FailedLoginAttempts = 1

	s.Equal(ErrUserNotFound, s.repo.UpdateFailedLoginAttempts(user))
}

func (s *UserRepositorySuite) TestResetFailedLoginAttempts() {
	user := s.newUser()
	s.NoError(s.repo.Create(user))

	now := time.Now()
	user.FailedLoginAttempts = 5
	user.LockedAt = &now
	s.NoError(s.repo.UpdateFailedLoginAttempts(user))

	s.NoError(s.repo.ResetFailedLoginAttempts(user.ID))

	got, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal(0, got.FailedLoginAttempts)
	s.Nil(got.LockedAt)
	s.False(got.IsLocked())
}
