//go:build integration
// +build integration

package repository

import (
	"sync"
	"testing"
	"time"

	"astralis-ops-backend/internal/database/models"
	apperrors "astralis-ops-backend/internal/errors"
	"astralis-ops-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// PasswordResetTokenRepositoryTestSuite tests the PasswordResetTokenRepository
type PasswordResetTokenRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *PasswordResetTokenRepository
	orgFactory    *testutils.OrganizationFactory
	userFactory   *testutils.UserFactory
	tokenFactory  *testutils.PasswordResetTokenFactory
}

// SetupSuite runs before all tests in the suite
func (suite *PasswordResetTokenRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewPasswordResetTokenRepository(suite.baseTestSuite.DB)
	suite.orgFactory = testutils.NewOrganizationFactory()
	suite.userFactory = testutils.NewUserFactory()
	suite.tokenFactory = testutils.NewPasswordResetTokenFactory()
}

// TearDownSuite runs after all tests in the suite
func (suite *PasswordResetTokenRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *PasswordResetTokenRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *PasswordResetTokenRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *PasswordResetTokenRepositoryTestSuite) createUser() *models.User {
	org := suite.orgFactory.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(org).Error)
	user := suite.userFactory.Create(org.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(user).Error)
	return user
}

func (suite *PasswordResetTokenRepositoryTestSuite) userPasswordHash(user *models.User) string {
	var reloaded models.User
	suite.NoError(suite.baseTestSuite.DB.First(&reloaded, "id = ?", user.ID).Error)
	return reloaded.PasswordHash
}

// TestCreateAndGetByToken tests storing and retrieving a token
func (suite *PasswordResetTokenRepositoryTestSuite) TestCreateAndGetByToken() {
	user := suite.createUser()
	token := suite.tokenFactory.Create(user.ID)

	err := suite.repo.Create(token)
	suite.NoError(err)

	retrieved, err := suite.repo.GetByToken(token.Token)
	suite.NoError(err)
	suite.Equal(token.ID, retrieved.ID)
	suite.Equal(user.ID, retrieved.UserID)
	suite.False(retrieved.Used)
}

// TestGetByTokenNotFound tests retrieving an unknown token
func (suite *PasswordResetTokenRepositoryTestSuite) TestGetByTokenNotFound() {
	retrieved, err := suite.repo.GetByToken("no-such-token")

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(retrieved)
}

// TestConsume tests that a valid token updates the password and is marked used
func (suite *PasswordResetTokenRepositoryTestSuite) TestConsume() {
	user := suite.createUser()
	token := suite.tokenFactory.Create(user.ID)
	suite.NoError(suite.repo.Create(token))

	err := suite.repo.Consume(token.Token, "new-hash", time.Now())
	suite.NoError(err)

	suite.Equal("new-hash", suite.userPasswordHash(user))

	reloaded, err := suite.repo.GetByToken(token.Token)
	suite.NoError(err)
	suite.True(reloaded.Used)
}

// TestConsumeTwice tests that a token succeeds at most once
func (suite *PasswordResetTokenRepositoryTestSuite) TestConsumeTwice() {
	user := suite.createUser()
	token := suite.tokenFactory.Create(user.ID)
	suite.NoError(suite.repo.Create(token))

	suite.NoError(suite.repo.Consume(token.Token, "first-hash", time.Now()))

	err := suite.repo.Consume(token.Token, "second-hash", time.Now())
	suite.ErrorIs(err, apperrors.ErrInvalidResetToken)

	// The password stays at the value set by the first consume
	suite.Equal("first-hash", suite.userPasswordHash(user))
}

// TestConsumeExpired tests that an expired token leaves the password untouched
func (suite *PasswordResetTokenRepositoryTestSuite) TestConsumeExpired() {
	user := suite.createUser()
	originalHash := user.PasswordHash
	token := suite.tokenFactory.Expired(user.ID)
	suite.NoError(suite.repo.Create(token))

	err := suite.repo.Consume(token.Token, "new-hash", time.Now())

	suite.ErrorIs(err, apperrors.ErrResetTokenExpired)
	suite.Equal(originalHash, suite.userPasswordHash(user))

	reloaded, err := suite.repo.GetByToken(token.Token)
	suite.NoError(err)
	suite.False(reloaded.Used)
}

// TestConsumeUnknown tests that an unknown token is rejected
func (suite *PasswordResetTokenRepositoryTestSuite) TestConsumeUnknown() {
	err := suite.repo.Consume("no-such-token", "new-hash", time.Now())
	suite.ErrorIs(err, apperrors.ErrInvalidResetToken)
}

// TestConsumeUsedIndistinguishableFromUnknown tests that a used token yields
// the same error as an unknown one
func (suite *PasswordResetTokenRepositoryTestSuite) TestConsumeUsedIndistinguishableFromUnknown() {
	user := suite.createUser()
	token := suite.tokenFactory.Used(user.ID)
	suite.NoError(suite.repo.Create(token))

	usedErr := suite.repo.Consume(token.Token, "new-hash", time.Now())
	unknownErr := suite.repo.Consume("no-such-token", "new-hash", time.Now())

	suite.ErrorIs(usedErr, apperrors.ErrInvalidResetToken)
	suite.Equal(unknownErr, usedErr)
}

// TestConsumeRetiresSiblingTokens tests that a successful reset marks the
// user's other outstanding tokens used
func (suite *PasswordResetTokenRepositoryTestSuite) TestConsumeRetiresSiblingTokens() {
	user := suite.createUser()
	first := suite.tokenFactory.Create(user.ID)
	second := suite.tokenFactory.Create(user.ID)
	suite.NoError(suite.repo.Create(first))
	suite.NoError(suite.repo.Create(second))

	suite.NoError(suite.repo.Consume(first.Token, "new-hash", time.Now()))

	err := suite.repo.Consume(second.Token, "other-hash", time.Now())
	suite.ErrorIs(err, apperrors.ErrInvalidResetToken)

	tokens, err := suite.repo.GetByUserID(user.ID)
	suite.NoError(err)
	suite.Len(tokens, 2)
	for _, t := range tokens {
		suite.True(t.Used)
	}
}

// TestConsumeConcurrent tests that under concurrent attempts exactly one wins
func (suite *PasswordResetTokenRepositoryTestSuite) TestConsumeConcurrent() {
	user := suite.createUser()
	token := suite.tokenFactory.Create(user.ID)
	suite.NoError(suite.repo.Create(token))

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = suite.repo.Consume(token.Token, "new-hash", time.Now())
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			suite.ErrorIs(err, apperrors.ErrInvalidResetToken)
		}
	}
	suite.Equal(1, successes)
}

// TestDeleteExpiredOrUsed tests the sweep removes dead tokens and keeps live ones
func (suite *PasswordResetTokenRepositoryTestSuite) TestDeleteExpiredOrUsed() {
	user := suite.createUser()
	live := suite.tokenFactory.Create(user.ID)
	expired := suite.tokenFactory.Expired(user.ID)
	used := suite.tokenFactory.Used(user.ID)
	suite.NoError(suite.repo.Create(live))
	suite.NoError(suite.repo.Create(expired))
	suite.NoError(suite.repo.Create(used))

	removed, err := suite.repo.DeleteExpiredOrUsed(time.Now())
	suite.NoError(err)
	suite.Equal(int64(2), removed)

	tokens, err := suite.repo.GetByUserID(user.ID)
	suite.NoError(err)
	suite.Len(tokens, 1)
	suite.Equal(live.ID, tokens[0].ID)
}

// TestDeleteExpiredOrUsedEmpty tests sweeping with nothing to remove
func (suite *PasswordResetTokenRepositoryTestSuite) TestDeleteExpiredOrUsedEmpty() {
	removed, err := suite.repo.DeleteExpiredOrUsed(time.Now())
	suite.NoError(err)
	suite.Equal(int64(0), removed)
}

// TestPasswordResetTokenRepositoryTestSuite runs the test suite
func TestPasswordResetTokenRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PasswordResetTokenRepositoryTestSuite))
}
