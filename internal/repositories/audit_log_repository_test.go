package repositories

import (
	"testing"
	"time"

	"finflow/internal/database"
	"finflow/internal/models"

	"github.com/stretchr/testify/suite"
)

func TestAuditLogRepository(t *testing.T) {
	suite.Run(t, new(AuditLogRepositorySuite))
}

type AuditLogRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo AuditLogRepositoryInterface
	user *models.User
}

func (s *AuditLogRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAuditLogRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "user@example.com")
}

func (s *AuditLogRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *AuditLogRepositorySuite) TestCreateWithMetadata() {
	log := &models.AuditLog{
		UserID:    &s.user.ID,
		Action:    models.AuditActionLogin,
		IPAddress: "192.0.2.1",
		UserAgent: "test-agent",
	}
	log.SetMetadata("email", s.user.Email)

	s.NoError(s.repo.Create(log))

	logs, total, err := s.repo.GetByUserID(s.user.ID, 0, 10)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(logs, 1)
	s.Equal(models.AuditActionLogin, logs[0].Action)
	s.Equal(s.user.Email, logs[0].Metadata["email"])
}

func (s *AuditLogRepositorySuite) TestGetByUserID_NewestFirstWithPagination() {
	base := time.Now().Add(-time.Hour)
	actions := []string{
		models.AuditActionRegister,
		models.AuditActionLogin,
		models.AuditActionLogout,
	}
	for i, action := range actions {
		s.NoError(s.repo.Create(&models.AuditLog{
			UserID:    &s.user.ID,
			Action:    action,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	logs, total, err := s.repo.GetByUserID(s.user.ID, 0, 2)
	s.NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(logs, 2)
	s.Equal(models.AuditActionLogout, logs[0].Action)
	s.Equal(models.AuditActionLogin, logs[1].Action)

	logs, _, err = s.repo.GetByUserID(s.user.ID, 2, 2)
	s.NoError(err)
	s.Require().Len(logs, 1)
	s.Equal(models.AuditActionRegister, logs[0].Action)
}

func (s *AuditLogRepositorySuite) TestGetByUserID_ScopedToUser() {
	s.NoError(s.repo.Create(&models.AuditLog{
		UserID: &s.user.ID,
		Action: models.AuditActionLogin,
	}))

	other := database.CreateTestUser(s.T(), s.db, "other@example.com")
	logs, total, err := s.repo.GetByUserID(other.ID, 0, 10)
	s.NoError(err)
	s.Equal(int64(0), total)
	s.Empty(logs)
}
