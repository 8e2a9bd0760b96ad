package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type PasswordServiceTestSuite struct {
	suite.Suite
	service PasswordServiceInterface
}

func (s *PasswordServiceTestSuite) SetupTest() {
	s.service = NewPasswordService()
}

func TestPasswordServiceSuite(t *testing.T) {
	suite.Run(t, new(PasswordServiceTestSuite))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_Valid() {
	s.NoError(s.service.ValidatePassword("SecurePass123"))
	s.NoError(s.service.ValidatePassword("abcdefg1"))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_Empty() {
	s.Equal(ErrPasswordEmpty, s.service.ValidatePassword(""))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooShort() {
	s.Equal(ErrPasswordTooShort, s.service.ValidatePassword("abc1"))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooLong() {
	password := strings.Repeat("a", 72) + "1"
	s.Equal(ErrPasswordTooLong, s.service.ValidatePassword(password))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_NoLetter() {
	s.Equal(ErrPasswordNoLetter, s.service.ValidatePassword("12345678"))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_NoNumber() {
	s.Equal(ErrPasswordNoNumber, s.service.ValidatePassword("abcdefgh"))
}

func (s *PasswordServiceTestSuite) TestHashPassword_Success() {
	password := "SecurePass123"

	hash, err := s.service.HashPassword(password)
	s.NoError(err)
	s.NotEmpty(hash)
	s.NotEqual(password, hash)
	s.True(strings.HasPrefix(hash, "$2a$"))
}

func (s *PasswordServiceTestSuite) TestHashPassword_RejectsWeakPassword() {
	hash, err := s.service.HashPassword("short1")
	s.Error(err)
	s.Empty(hash)
}

func (s *PasswordServiceTestSuite) TestHashPassword_UniqueSalts() {
	password := "SecurePass123"

	hash1, err := s.service.HashPassword(password)
	s.Require().NoError(err)
	hash2, err := s.service.HashPassword(password)
	s.Require().NoError(err)

	s.NotEqual(hash1, hash2)
}

func (s *PasswordServiceTestSuite) TestComparePassword() {
	password := "SecurePass123"

	hash, err := s.service.HashPassword(password)
	s.Require().NoError(err)

	s.True(s.service.ComparePassword(password, hash))
	s.False(s.service.ComparePassword("WrongPass123", hash))
	s.False(s.service.ComparePassword(password, "not_a_hash"))
}
