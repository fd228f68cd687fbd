package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shixiaoya/materials/internal/auth"
	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/model"
	rpsMocks "github.com/shixiaoya/materials/internal/repository/mocks"
	trxMocks "github.com/shixiaoya/materials/pkg/db/transactor/mocks"
)

const (
	jwtAlgoEd25519 = "EdDSA"
	jwtIssuerClaim = "test-issuer"
	jwtTimeToLive  = 3 * time.Minute
)

const (
	refreshTokenMaxCount   = 2
	refreshTokenTimeToLive = 720 * time.Hour
)

var testAuthCtx = context.Background()
var testNow = time.Now().UTC()
var testPassword = "secret_password"
var testFingerprint = "87c37298-2f3d-40a1-9438-f45d2d819206"

type authServiceTestSuite struct {
	suite.Suite
	authSvc         AuthService
	transactorMock  *trxMocks.Transactor
	userRpsMock     *rpsMocks.UserRepository
	rfrTokenRpsMock *rpsMocks.RefreshTokenRepository
	jwtIssuer       *auth.JwtIssuer
	rfrTokenIssuer  *auth.RefreshTokenIssuer
	testUser        *model.User
	testRfrToken    *model.RefreshToken
}

func (s *authServiceTestSuite) SetupSuite() {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err, "failed to generate signing key")

	s.jwtIssuer = auth.NewJwtIssuer(jwtIssuerClaim, jwt.GetSigningMethod(jwtAlgoEd25519), jwtTimeToLive, privateKey)
	s.rfrTokenIssuer = auth.NewRefreshTokenIssuer(refreshTokenMaxCount, refreshTokenTimeToLive)

	hash, err := auth.GeneratePasswordHash(testPassword)
	s.Require().NoError(err, "failed to hash test password")

	s.testUser = &model.User{
		ID:           "bdf2f837-75f6-462a-b9ec-5dfb2e8f8792",
		Username:     "admin",
		Role:         model.RoleAdmin,
		PasswordHash: hash,
		IsActive:     true,
	}

	s.testRfrToken = &model.RefreshToken{
		ID:          "1165dfc0-2dd0-4bea-ac69-4462f1cacacf",
		UserID:      s.testUser.ID,
		Fingerprint: testFingerprint,
		ExpiresIn:   int(refreshTokenTimeToLive.Seconds()),
		CreatedAt:   testNow,
	}
}

func (s *authServiceTestSuite) SetupTest() {
	t := s.T()
	s.transactorMock = trxMocks.NewTransactor(t)
	s.userRpsMock = rpsMocks.NewUserRepository(t)
	s.rfrTokenRpsMock = rpsMocks.NewRefreshTokenRepository(t)
	s.authSvc = NewAuthService(s.jwtIssuer, s.rfrTokenIssuer, s.userRpsMock, s.rfrTokenRpsMock, s.transactorMock)
}

func (s *authServiceTestSuite) passThroughTransactor() {
	s.transactorMock.On(
		"WithinTransaction",
		testAuthCtx,
		mock.AnythingOfType("func(context.Context) error"),
	).Return(func(ctx context.Context, txFunc func(ctx context.Context) error) error {
		return txFunc(ctx)
	})
}

func (s *authServiceTestSuite) TestLoginUnknownUsername() {
	s.userRpsMock.On("FindByUsername", testAuthCtx, "ghost").Return(nil, nil).Once()

	s.T().Log("login with unregistered username")
	{
		_, err := s.authSvc.Login(testAuthCtx, Login{Username: "ghost", Password: testPassword, At: testNow})
		s.Assert().IsType(&apperrors.UnauthorizedErr{}, err, "unknown user must be unauthorized")
	}
}

func (s *authServiceTestSuite) TestLoginWrongPassword() {
	s.userRpsMock.On("FindByUsername", testAuthCtx, s.testUser.Username).Return(s.testUser, nil).Once()

	s.T().Log("login with wrong password")
	{
		_, err := s.authSvc.Login(testAuthCtx, Login{Username: s.testUser.Username, Password: "wrong", At: testNow})
		s.Assert().IsType(&apperrors.UnauthorizedErr{}, err, "wrong password must be unauthorized")
	}
}

func (s *authServiceTestSuite) TestSuccessfulLogin() {
	s.passThroughTransactor()

	s.userRpsMock.On("FindByUsername", testAuthCtx, s.testUser.Username).Return(s.testUser, nil).Once()
	s.rfrTokenRpsMock.On("FindTokensByUserID", testAuthCtx, s.testUser.ID).Return([]model.RefreshToken{}, nil).Once()
	s.rfrTokenRpsMock.On("Create", testAuthCtx, mock.AnythingOfType("model.RefreshToken")).Return(nil).Once()
	s.userRpsMock.On("UpdateLastLogin", testAuthCtx, s.testUser.ID, testNow).Return(nil).Once()

	s.T().Log("valid credentials issue both tokens")
	{
		session, err := s.authSvc.Login(testAuthCtx, Login{
			Username:    s.testUser.Username,
			Password:    testPassword,
			Fingerprint: testFingerprint,
			At:          testNow,
		})
		s.Require().NoError(err, "no error must be raised")
		s.Assert().NotEmpty(session.Token.Signed, "jwt must be signed")
		s.Assert().Equal(testFingerprint, session.RefreshToken.Fingerprint)
		s.Assert().Equal(s.testUser.ID, session.RefreshToken.UserID)
	}
}

func (s *authServiceTestSuite) TestLoginPrunesTokensAtMaxCount() {
	s.passThroughTransactor()

	issued := []model.RefreshToken{*s.testRfrToken, *s.testRfrToken}

	s.userRpsMock.On("FindByUsername", testAuthCtx, s.testUser.Username).Return(s.testUser, nil).Once()
	s.rfrTokenRpsMock.On("FindTokensByUserID", testAuthCtx, s.testUser.ID).Return(issued, nil).Once()
	s.rfrTokenRpsMock.On("DeleteByUserID", testAuthCtx, s.testUser.ID).Return(nil).Once()
	s.rfrTokenRpsMock.On("Create", testAuthCtx, mock.AnythingOfType("model.RefreshToken")).Return(nil).Once()
	s.userRpsMock.On("UpdateLastLogin", testAuthCtx, s.testUser.ID, testNow).Return(nil).Once()

	s.T().Log("reaching max token count drops all sessions before issuing a new one")
	{
		_, err := s.authSvc.Login(testAuthCtx, Login{
			Username:    s.testUser.Username,
			Password:    testPassword,
			Fingerprint: testFingerprint,
			At:          testNow,
		})
		s.Assert().NoError(err, "no error must be raised")
	}
}

func (s *authServiceTestSuite) TestRefreshUnknownToken() {
	s.rfrTokenRpsMock.On("FindByID", testAuthCtx, "missing").Return(nil, nil).Once()

	s.T().Log("refresh with non-existent token")
	{
		_, err := s.authSvc.Refresh(testAuthCtx, Refresh{Token: "missing", Fingerprint: testFingerprint, At: testNow})
		s.Assert().IsType(&apperrors.UnauthorizedErr{}, err)
	}
}

func (s *authServiceTestSuite) TestRefreshFingerprintMismatchDropsToken() {
	s.rfrTokenRpsMock.On("FindByID", testAuthCtx, s.testRfrToken.ID).Return(s.testRfrToken, nil).Once()
	s.rfrTokenRpsMock.On("DeleteByID", testAuthCtx, s.testRfrToken.ID).Return(nil).Once()

	s.T().Log("stolen token with foreign fingerprint is dropped and rejected")
	{
		_, err := s.authSvc.Refresh(testAuthCtx, Refresh{
			Token:       s.testRfrToken.ID,
			Fingerprint: "different-device",
			At:          testNow,
		})
		s.Assert().IsType(&apperrors.UnauthorizedErr{}, err)
		s.rfrTokenRpsMock.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	}
}

func (s *authServiceTestSuite) TestSuccessfulRefreshRotatesToken() {
	s.rfrTokenRpsMock.On("FindByID", testAuthCtx, s.testRfrToken.ID).Return(s.testRfrToken, nil).Once()
	s.rfrTokenRpsMock.On("DeleteByID", testAuthCtx, s.testRfrToken.ID).Return(nil).Once()
	s.userRpsMock.On("FindByID", testAuthCtx, s.testUser.ID).Return(s.testUser, nil).Once()
	s.rfrTokenRpsMock.On("Create", testAuthCtx, mock.AnythingOfType("model.RefreshToken")).Return(nil).Once()

	s.T().Log("valid refresh issues a new token pair")
	{
		session, err := s.authSvc.Refresh(testAuthCtx, Refresh{
			Token:       s.testRfrToken.ID,
			Fingerprint: testFingerprint,
			At:          testNow,
		})
		s.Require().NoError(err, "no error must be raised")
		s.Assert().NotEqual(s.testRfrToken.ID, session.RefreshToken.ID, "refresh token must be rotated")
	}
}

func (s *authServiceTestSuite) TestChangePasswordWrongCurrent() {
	s.userRpsMock.On("FindByID", testAuthCtx, s.testUser.ID).Return(s.testUser, nil).Once()

	s.T().Log("password change with wrong current password")
	{
		err := s.authSvc.ChangePassword(testAuthCtx, s.testUser.ID, "wrong", "new_password")
		s.Assert().IsType(&apperrors.BusinessErr{}, err)
	}
}

func (s *authServiceTestSuite) TestChangePasswordInvalidatesSessions() {
	s.passThroughTransactor()

	s.userRpsMock.On("FindByID", testAuthCtx, s.testUser.ID).Return(s.testUser, nil).Once()
	s.userRpsMock.On("UpdatePasswordHash", testAuthCtx, s.testUser.ID, mock.AnythingOfType("string")).Return(nil).Once()
	s.rfrTokenRpsMock.On("DeleteByUserID", testAuthCtx, s.testUser.ID).Return(nil).Once()

	s.T().Log("successful password change drops every refresh token")
	{
		err := s.authSvc.ChangePassword(testAuthCtx, s.testUser.ID, testPassword, "new_password")
		s.Assert().NoError(err, "no error must be raised")
	}
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(authServiceTestSuite))
}
