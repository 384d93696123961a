package service_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"astralis-ops-backend/internal/auth"
	"astralis-ops-backend/internal/database/models"
	apperrors "astralis-ops-backend/internal/errors"
	"astralis-ops-backend/internal/mocks"
	"astralis-ops-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockUserRepo  *mocks.MockUserRepositoryInterface
	mockTokenRepo *mocks.MockPasswordResetTokenRepositoryInterface
	mockOrgRepo   *mocks.MockOrganizationRepositoryInterface
	mockMailer    *mocks.MockMailer
	authService   *service.AuthService
	validator     *validator.Validate
}

// SetupTest sets up the test suite
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockTokenRepo = mocks.NewMockPasswordResetTokenRepositoryInterface(suite.ctrl)
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.mockMailer = mocks.NewMockMailer(suite.ctrl)
	suite.validator = validator.New()

	tokens, err := auth.NewService("test-secret", "astralis-test", time.Hour)
	require.NoError(suite.T(), err)

	suite.authService = service.NewAuthService(
		suite.mockUserRepo,
		suite.mockTokenRepo,
		suite.mockOrgRepo,
		tokens,
		suite.mockMailer,
		suite.validator,
		time.Hour,
		"https://astralis.example/reset-password",
	)
}

// TearDownTest cleans up after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AuthServiceTestSuite) newUser(password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(suite.T(), err)

	return &models.User{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: uuid.New(),
		Email:          "jordan@astralis.example",
		PasswordHash:   string(hash),
		FirstName:      "Jordan",
		LastName:       "Reyes",
		Role:           models.UserRoleStaff,
	}
}

// TestSignup tests creating an account
func (suite *AuthServiceTestSuite) TestSignup() {
	orgID := uuid.New()
	req := &service.SignupRequest{
		Email:          "new@astralis.example",
		Password:       "correct-horse-battery",
		FirstName:      "New",
		LastName:       "User",
		OrganizationID: orgID,
	}

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(&models.Organization{BaseModel: models.BaseModel{ID: orgID}}, nil).
		Times(1)

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockUserRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(user *models.User) error {
			assert.Equal(suite.T(), orgID, user.OrganizationID)
			assert.Equal(suite.T(), models.UserRoleStaff, user.Role)
			assert.NotEqual(suite.T(), req.Password, user.PasswordHash)
			assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)))
			return nil
		}).
		Times(1)

	response, err := suite.authService.Signup(req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.NotEmpty(suite.T(), response.Token)
	assert.Equal(suite.T(), req.Email, response.User.Email)
	assert.Equal(suite.T(), orgID, response.User.OrganizationID)
}

// TestSignupClientRoleIgnored tests that a role supplied in the signup
// payload is discarded and the account is created as staff
func (suite *AuthServiceTestSuite) TestSignupClientRoleIgnored() {
	orgID := uuid.New()
	payload := fmt.Sprintf(
		`{"email":"new@astralis.example","password":"correct-horse-battery","first_name":"New","last_name":"User","organization_id":"%s","role":"admin"}`,
		orgID,
	)

	var req service.SignupRequest
	require.NoError(suite.T(), json.Unmarshal([]byte(payload), &req))

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(&models.Organization{BaseModel: models.BaseModel{ID: orgID}}, nil).
		Times(1)

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockUserRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(user *models.User) error {
			assert.Equal(suite.T(), models.UserRoleStaff, user.Role)
			return nil
		}).
		Times(1)

	response, err := suite.authService.Signup(&req)

	assert.NoError(suite.T(), err)
	require.NotNil(suite.T(), response)
	assert.Equal(suite.T(), string(models.UserRoleStaff), response.User.Role)
}

// TestSignupDuplicateEmail tests signup with an email that is already registered
func (suite *AuthServiceTestSuite) TestSignupDuplicateEmail() {
	orgID := uuid.New()
	req := &service.SignupRequest{
		Email:          "taken@astralis.example",
		Password:       "correct-horse-battery",
		FirstName:      "New",
		LastName:       "User",
		OrganizationID: orgID,
	}

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(&models.Organization{BaseModel: models.BaseModel{ID: orgID}}, nil).
		Times(1)

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(&models.User{BaseModel: models.BaseModel{ID: uuid.New()}}, nil).
		Times(1)

	response, err := suite.authService.Signup(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserExists)
}

// TestSignupOrganizationNotFound tests signup against an unknown organization
func (suite *AuthServiceTestSuite) TestSignupOrganizationNotFound() {
	req := &service.SignupRequest{
		Email:          "new@astralis.example",
		Password:       "correct-horse-battery",
		FirstName:      "New",
		LastName:       "User",
		OrganizationID: uuid.New(),
	}

	suite.mockOrgRepo.EXPECT().
		GetByID(req.OrganizationID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.authService.Signup(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrOrganizationNotFound)
}

// TestLogin tests signing in with valid credentials
func (suite *AuthServiceTestSuite) TestLogin() {
	user := suite.newUser("correct-horse-battery")

	suite.mockUserRepo.EXPECT().
		GetByEmail(user.Email).
		Return(user, nil).
		Times(1)

	response, err := suite.authService.Login(&service.LoginRequest{
		Email:    user.Email,
		Password: "correct-horse-battery",
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.NotEmpty(suite.T(), response.Token)
	assert.Equal(suite.T(), user.Email, response.User.Email)
}

// TestLoginWrongPassword tests signing in with a wrong password
func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	user := suite.newUser("correct-horse-battery")

	suite.mockUserRepo.EXPECT().
		GetByEmail(user.Email).
		Return(user, nil).
		Times(1)

	response, err := suite.authService.Login(&service.LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

// TestLoginUnknownEmail tests signing in with an unregistered email
func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	suite.mockUserRepo.EXPECT().
		GetByEmail("nobody@astralis.example").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.authService.Login(&service.LoginRequest{
		Email:    "nobody@astralis.example",
		Password: "whatever-password",
	})

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

// TestRequestPasswordReset tests issuing a reset token for a known email
func (suite *AuthServiceTestSuite) TestRequestPasswordReset() {
	user := suite.newUser("correct-horse-battery")

	suite.mockUserRepo.EXPECT().
		GetByEmail(user.Email).
		Return(user, nil).
		Times(1)

	var issuedToken string
	before := time.Now()
	suite.mockTokenRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(token *models.PasswordResetToken) error {
			issuedToken = token.Token
			assert.Equal(suite.T(), user.ID, token.UserID)
			assert.Len(suite.T(), token.Token, 64)
			assert.False(suite.T(), token.Used)
			assert.WithinDuration(suite.T(), before.Add(time.Hour), token.ExpiresAt, 5*time.Second)
			return nil
		}).
		Times(1)

	suite.mockMailer.EXPECT().
		SendHTML([]string{user.Email}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(to []string, subject, htmlBody string) error {
			assert.Contains(suite.T(), htmlBody, issuedToken)
			assert.Contains(suite.T(), htmlBody, "https://astralis.example/reset-password?token=")
			return nil
		}).
		Times(1)

	response, err := suite.authService.RequestPasswordReset(&service.ForgotPasswordRequest{Email: user.Email})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.NotEmpty(suite.T(), response.Message)
}

// TestRequestPasswordResetUnknownEmail tests that an unregistered email yields
// the same response as a registered one and issues no token
func (suite *AuthServiceTestSuite) TestRequestPasswordResetUnknownEmail() {
	knownUser := suite.newUser("correct-horse-battery")

	suite.mockUserRepo.EXPECT().
		GetByEmail(knownUser.Email).
		Return(knownUser, nil).
		Times(1)
	suite.mockTokenRepo.EXPECT().
		Create(gomock.Any()).
		Return(nil).
		Times(1)
	suite.mockMailer.EXPECT().
		SendHTML(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	knownResponse, err := suite.authService.RequestPasswordReset(&service.ForgotPasswordRequest{Email: knownUser.Email})
	require.NoError(suite.T(), err)

	suite.mockUserRepo.EXPECT().
		GetByEmail("nobody@astralis.example").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	unknownResponse, err := suite.authService.RequestPasswordReset(&service.ForgotPasswordRequest{Email: "nobody@astralis.example"})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), unknownResponse)
	assert.Equal(suite.T(), knownResponse.Message, unknownResponse.Message)
}

// TestRequestPasswordResetMailerError tests that a failed email delivery is surfaced
func (suite *AuthServiceTestSuite) TestRequestPasswordResetMailerError() {
	user := suite.newUser("correct-horse-battery")

	suite.mockUserRepo.EXPECT().
		GetByEmail(user.Email).
		Return(user, nil).
		Times(1)
	suite.mockTokenRepo.EXPECT().
		Create(gomock.Any()).
		Return(nil).
		Times(1)
	suite.mockMailer.EXPECT().
		SendHTML(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("smtp connection refused")).
		Times(1)

	response, err := suite.authService.RequestPasswordReset(&service.ForgotPasswordRequest{Email: user.Email})

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.Contains(suite.T(), err.Error(), "failed to send reset email")
}

// TestResetPassword tests consuming a valid token
func (suite *AuthServiceTestSuite) TestResetPassword() {
	token := strings.Repeat("ab", 32)

	suite.mockTokenRepo.EXPECT().
		Consume(token, gomock.Any(), gomock.Any()).
		DoAndReturn(func(tok, newPasswordHash string, now time.Time) error {
			assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(newPasswordHash), []byte("brand-new-password")))
			assert.WithinDuration(suite.T(), time.Now(), now, 5*time.Second)
			return nil
		}).
		Times(1)

	err := suite.authService.ResetPassword(&service.ResetPasswordRequest{
		Token:    token,
		Password: "brand-new-password",
	})

	assert.NoError(suite.T(), err)
}

// TestResetPasswordInvalidToken tests consuming an unknown or already-used token
func (suite *AuthServiceTestSuite) TestResetPasswordInvalidToken() {
	suite.mockTokenRepo.EXPECT().
		Consume(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperrors.ErrInvalidResetToken).
		Times(1)

	err := suite.authService.ResetPassword(&service.ResetPasswordRequest{
		Token:    "no-such-token",
		Password: "brand-new-password",
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidResetToken)
}

// TestResetPasswordExpiredToken tests consuming an expired token
func (suite *AuthServiceTestSuite) TestResetPasswordExpiredToken() {
	suite.mockTokenRepo.EXPECT().
		Consume(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperrors.ErrResetTokenExpired).
		Times(1)

	err := suite.authService.ResetPassword(&service.ResetPasswordRequest{
		Token:    strings.Repeat("cd", 32),
		Password: "brand-new-password",
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrResetTokenExpired)
}

// TestResetPasswordValidationError tests that a too-short password never reaches the repository
func (suite *AuthServiceTestSuite) TestResetPasswordValidationError() {
	err := suite.authService.ResetPassword(&service.ResetPasswordRequest{
		Token:    strings.Repeat("ef", 32),
		Password: "short",
	})

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "validation failed")
}

// TestSweepResetTokens tests the expired-or-used sweep
func (suite *AuthServiceTestSuite) TestSweepResetTokens() {
	suite.mockTokenRepo.EXPECT().
		DeleteExpiredOrUsed(gomock.Any()).
		Return(int64(3), nil).
		Times(1)

	removed, err := suite.authService.SweepResetTokens()

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), removed)
}

// TestAuthServiceTestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
