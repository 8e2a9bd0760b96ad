package repositories

import (
	"testing"
	"time"

	"finflow/internal/database"
	"finflow/internal/models"

	"github.com/stretchr/testify/suite"
)

func TestBlacklistedTokenRepository(t *testing.T) {
	suite.Run(t, new(BlacklistedTokenRepositorySuite))
}

type BlacklistedTokenRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo BlacklistedTokenRepositoryInterface
	user *models.User
}

func (s *BlacklistedTokenRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewBlacklistedTokenRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "user@example.com")
}

func (s *BlacklistedTokenRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *BlacklistedTokenRepositorySuite) TestCreateAndGetByJTI() {
	token := &models.BlacklistedToken{
		JTI:       "jti-1",
		UserID:    s.user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.NoError(s.repo.Create(token))
	s.False(token.BlacklistedAt.IsZero())

	got, err := s.repo.GetByJTI("jti-1")
	s.NoError(err)
	s.Equal(s.user.ID, got.UserID)

	_, err = s.repo.GetByJTI("unknown")
	s.Equal(ErrBlacklistedTokenNotFound, err)
}

func (s *BlacklistedTokenRepositorySuite) TestCreate_DuplicateJTI() {
	token := &models.BlacklistedToken{
		JTI:       "jti-1",
		UserID:    s.user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.NoError(s.repo.Create(token))

	dupe := &models.BlacklistedToken{
		JTI:       "jti-1",
		UserID:    s.user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.Error(s.repo.Create(dupe))
}

func (s *BlacklistedTokenRepositorySuite) TestDeleteExpired() {
	s.NoError(s.repo.Create(&models.BlacklistedToken{
		JTI:       "stale",
		UserID:    s.user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	s.NoError(s.repo.Create(&models.BlacklistedToken{
		JTI:       "fresh",
		UserID:    s.user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	deleted, err := s.repo.DeleteExpired()
	s.NoError(err)
	s.Equal(int64(1), deleted)

	_, err = s.repo.GetByJTI("stale")
	s.Equal(ErrBlacklistedTokenNotFound, err)

	_, err = s.repo.GetByJTI("fresh")
	s.NoError(err)
}
