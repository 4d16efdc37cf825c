package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"lawconnect/internal/entity"
	"lawconnect/internal/repository"
	"lawconnect/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

// AccountService owns the registration, verification and credential
// workflows. Registration creates the identity, its profile and the
// verification token in one transaction; the emails that follow are sent
// after commit and never roll the registration back.
type AccountService struct {
	store repository.Store

	emailSender  EmailSender
	certificates CertificateStore
	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	clock        Clock
	logger       logrus.FieldLogger
	config       Config
}

func NewAccountService(
	store repository.Store,
	emailSender EmailSender,
	certificates CertificateStore,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	clock Clock,
	logger logrus.FieldLogger,
	config Config,
) *AccountService {
	return &AccountService{
		store:        store,
		emailSender:  emailSender,
		certificates: certificates,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		clock:        clock,
		logger:       logger,
		config:       config,
	}
}

func (s *AccountService) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*entity.User, error) {
	username := utils.NormalizeUsername(input.Username)
	email := utils.NormalizeEmail(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}
	if input.Password != input.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	existing, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Kind:         entity.AccountKindCustomer,
		IsActive:     false,
	}

	var rawToken string
	err = s.store.Atomic(ctx, func(tx repository.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return translateCreateUserError(err)
		}
		if err := tx.CustomerProfiles().Create(ctx, &entity.CustomerProfile{UserID: user.ID}); err != nil {
			return err
		}
		rawToken, err = s.issueVerificationToken(ctx, tx, user.ID, entity.TokenPurposeEmailVerify)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.sendVerificationEmail(ctx, user, rawToken)
	s.audit(ctx, &user.ID, nil, entity.AuditCustomerRegistered, map[string]any{"username": user.Username})
	return user, nil
}

func (s *AccountService) RegisterLawyer(ctx context.Context, input RegisterLawyerInput) (*entity.User, error) {
	username := utils.NormalizeUsername(input.Username)
	email := utils.NormalizeEmail(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}
	if input.Password != input.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	if strings.TrimSpace(input.Specialty) == "" || strings.TrimSpace(input.BarNumber) == "" {
		return nil, ErrInvalidInput
	}
	if input.YearsExperience < 0 {
		return nil, ErrInvalidInput
	}
	if input.Certificate == nil {
		return nil, ErrInvalidInput
	}

	existing, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	certificateURL, err := s.uploadCertificate(ctx, input.CertificateName, input.Certificate)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Kind:         entity.AccountKindLawyer,
		IsActive:     false,
	}
	profile := &entity.LawyerProfile{
		Specialty:       strings.TrimSpace(input.Specialty),
		YearsExperience: input.YearsExperience,
		BarNumber:       strings.TrimSpace(input.BarNumber),
		CertificateURL:  certificateURL,
		Approved:        false,
	}

	var rawToken string
	err = s.store.Atomic(ctx, func(tx repository.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return translateCreateUserError(err)
		}
		profile.UserID = user.ID
		if err := tx.LawyerProfiles().Create(ctx, profile); err != nil {
			return err
		}
		rawToken, err = s.issueVerificationToken(ctx, tx, user.ID, entity.TokenPurposeEmailVerify)
		return err
	})
	if err != nil {
		return nil, err
	}
	user.LawyerProfile = profile

	s.sendVerificationEmail(ctx, user, rawToken)
	s.notifyAdminLawyerSignup(ctx, user, profile)
	s.audit(ctx, &user.ID, nil, entity.AuditLawyerRegistered, map[string]any{
		"username":  user.Username,
		"specialty": profile.Specialty,
	})
	return user, nil
}

// VerifyEmail consumes a verification link token. Activation and token
// deletion commit together, so a token can never outlive the activation it
// proves and a second presentation reads as never-issued.
func (s *AccountService) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalidToken
	}

	verification, err := s.store.VerificationTokens().FindByHash(ctx, utils.HashToken(token), entity.TokenPurposeEmailVerify)
	if err != nil {
		return nil, err
	}
	if verification == nil {
		return nil, ErrInvalidToken
	}

	err = s.store.Atomic(ctx, func(tx repository.Store) error {
		if err := tx.Users().Activate(ctx, verification.UserID); err != nil {
			return err
		}
		return tx.VerificationTokens().Delete(ctx, verification.ID)
	})
	if err != nil {
		return nil, err
	}

	user, err := s.store.Users().FindByID(ctx, verification.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	s.audit(ctx, &user.ID, nil, entity.AuditEmailVerified, nil)
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := utils.NormalizeUsername(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		s.audit(ctx, nil, input.IPAddress, entity.AuditLoginFailed, map[string]any{"username": username})
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		s.audit(ctx, &user.ID, input.IPAddress, entity.AuditLoginFailed, map[string]any{"username": username})
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrEmailNotVerified
	}

	result, err := s.createSession(ctx, user, input.IPAddress, input.UserAgent)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, &user.ID, input.IPAddress, entity.AuditLoginSuccess, nil)
	return result, nil
}

func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.store.Sessions().FindByTokenHash(ctx, utils.HashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidToken
	}

	user, err := s.store.Users().FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	newRefreshToken, newRefreshHash, newRefreshExpiry, err := s.buildRefreshToken()
	if err != nil {
		return nil, err
	}

	if err := s.store.Sessions().RotateToken(ctx, session.ID, newRefreshHash, newRefreshExpiry); err != nil {
		return nil, err
	}

	accessToken, expiresIn, err := s.accessTokens.IssueAccessToken(*user, session.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:      accessToken,
		ExpiresIn:        int64(expiresIn.Seconds()),
		RefreshToken:     newRefreshToken,
		RefreshExpiresIn: int64(newRefreshExpiry.Sub(s.now()).Seconds()),
	}, nil
}

func (s *AccountService) Logout(ctx context.Context, sessionID uuid.UUID, userID *uuid.UUID, ipAddress *string) error {
	if err := s.store.Sessions().Revoke(ctx, sessionID); err != nil {
		return err
	}
	s.audit(ctx, userID, ipAddress, entity.AuditLogout, nil)
	return nil
}

func (s *AccountService) LogoutAll(ctx context.Context, userID uuid.UUID, ipAddress *string) error {
	if err := s.store.Sessions().RevokeAllByUser(ctx, userID); err != nil {
		return err
	}
	s.audit(ctx, &userID, ipAddress, entity.AuditLogout, map[string]any{"scope": "all"})
	return nil
}

// RequestPasswordReset is a silent no-op for unknown or unverified accounts
// so the endpoint does not leak which emails exist.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidInput
	}

	user, err := s.store.Users().FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return nil
	}

	var rawToken string
	err = s.store.Atomic(ctx, func(tx repository.Store) error {
		rawToken, err = s.issueVerificationToken(ctx, tx, user.ID, entity.TokenPurposePasswordReset)
		return err
	})
	if err != nil {
		return err
	}

	if s.emailSender != nil {
		if err := s.emailSender.SendPasswordResetEmail(ctx, user.Email, rawToken); err != nil {
			return err
		}
	}
	return nil
}

func (s *AccountService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(newPassword) == "" {
		return ErrInvalidInput
	}

	verification, err := s.store.VerificationTokens().FindByHash(ctx, utils.HashToken(token), entity.TokenPurposePasswordReset)
	if err != nil {
		return err
	}
	if verification == nil {
		return ErrInvalidToken
	}
	if s.now().After(verification.CreatedAt.Add(s.resetTokenTTL())) {
		return ErrInvalidToken
	}

	user, err := s.store.Users().FindByID(ctx, verification.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	err = s.store.Atomic(ctx, func(tx repository.Store) error {
		if err := tx.Users().Update(ctx, user); err != nil {
			return err
		}
		return tx.VerificationTokens().Delete(ctx, verification.ID)
	})
	if err != nil {
		return err
	}

	_ = s.store.Sessions().RevokeAllByUser(ctx, user.ID)
	s.audit(ctx, &user.ID, nil, entity.AuditPasswordReset, nil)
	return nil
}

func (s *AccountService) UpdateCustomerSettings(ctx context.Context, userID uuid.UUID, input UpdateCustomerSettingsInput) (*entity.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Kind != entity.AccountKindCustomer {
		return nil, ErrNotAuthorized
	}

	if err := s.applyAccountSettings(ctx, user, input.Username, input.Email, input.NewPassword); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) UpdateLawyerSettings(ctx context.Context, userID uuid.UUID, input UpdateLawyerSettingsInput) (*entity.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Kind != entity.AccountKindLawyer {
		return nil, ErrNotAuthorized
	}

	profile, err := s.store.LawyerProfiles().FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotAuthorized
	}

	if specialty := strings.TrimSpace(input.Specialty); specialty != "" {
		profile.Specialty = specialty
	}
	if input.YearsExperience != nil {
		if *input.YearsExperience < 0 {
			return nil, ErrInvalidInput
		}
		profile.YearsExperience = *input.YearsExperience
	}
	if barNumber := strings.TrimSpace(input.BarNumber); barNumber != "" {
		profile.BarNumber = barNumber
	}
	if input.Certificate != nil {
		certificateURL, err := s.uploadCertificate(ctx, input.CertificateName, input.Certificate)
		if err != nil {
			return nil, err
		}
		profile.CertificateURL = certificateURL
	}

	if err := s.store.LawyerProfiles().Update(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.applyAccountSettings(ctx, user, input.Username, input.Email, input.NewPassword); err != nil {
		return nil, err
	}
	user.LawyerProfile = profile
	return user, nil
}

func (s *AccountService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Kind == entity.AccountKindLawyer {
		user.LawyerProfile, err = s.store.LawyerProfiles().FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	return user, nil
}

// ListApprovedLawyers backs the public lawyer directory. Approval gates
// visibility here and nowhere else.
func (s *AccountService) ListApprovedLawyers(ctx context.Context, limit int) ([]entity.LawyerProfile, error) {
	return s.store.LawyerProfiles().ListApproved(ctx, limit)
}

func (s *AccountService) applyAccountSettings(ctx context.Context, user *entity.User, username, email, newPassword string) error {
	if username = utils.NormalizeUsername(username); username != "" {
		user.Username = username
	}
	if email = utils.NormalizeEmail(email); email != "" {
		user.Email = email
	}
	passwordChanged := false
	if newPassword != "" {
		hash, err := s.passwordHash.Hash(newPassword)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		passwordChanged = true
	}

	if err := s.store.Users().Update(ctx, user); err != nil {
		return translateCreateUserError(err)
	}
	if passwordChanged {
		_ = s.store.Sessions().RevokeAllByUser(ctx, user.ID)
	}
	return nil
}

func (s *AccountService) createSession(ctx context.Context, user *entity.User, ipAddress *string, userAgent *string) (*LoginResult, error) {
	refreshToken, refreshHash, refreshExpiry, err := s.buildRefreshToken()
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		UserID:    user.ID,
		TokenHash: refreshHash,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ExpiresAt: refreshExpiry,
	}
	if err := s.store.Sessions().Create(ctx, session); err != nil {
		return nil, err
	}

	accessToken, expiresIn, err := s.accessTokens.IssueAccessToken(*user, session.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:      accessToken,
		ExpiresIn:        int64(expiresIn.Seconds()),
		RefreshToken:     refreshToken,
		RefreshExpiresIn: int64(refreshExpiry.Sub(s.now()).Seconds()),
	}, nil
}

func (s *AccountService) issueVerificationToken(
	ctx context.Context,
	tx repository.Store,
	userID uuid.UUID,
	purpose entity.TokenPurpose,
) (string, error) {
	rawToken, err := utils.GenerateRandomToken(32)
	if err != nil {
		return "", err
	}

	verification := &entity.VerificationToken{
		UserID:    userID,
		TokenHash: utils.HashToken(rawToken),
		Purpose:   purpose,
	}
	if err := tx.VerificationTokens().Create(ctx, verification); err != nil {
		return "", err
	}
	return rawToken, nil
}

func (s *AccountService) uploadCertificate(ctx context.Context, filename string, file io.Reader) (string, error) {
	if s.certificates == nil {
		return "", nil
	}
	return s.certificates.Upload(ctx, filename, file)
}

func (s *AccountService) sendVerificationEmail(ctx context.Context, user *entity.User, rawToken string) {
	if s.emailSender == nil {
		return
	}
	if err := s.emailSender.SendVerificationEmail(ctx, user.Email, rawToken); err != nil {
		s.log().WithError(err).WithField("user_id", user.ID).Warn("verification email failed")
	}
}

func (s *AccountService) notifyAdminLawyerSignup(ctx context.Context, user *entity.User, profile *entity.LawyerProfile) {
	if s.emailSender == nil || s.config.AdminReviewEmail == "" {
		return
	}
	notice := LawyerSignupNotice{
		Username:        user.Username,
		Email:           user.Email,
		Specialty:       profile.Specialty,
		YearsExperience: profile.YearsExperience,
		BarNumber:       profile.BarNumber,
		CertificateURL:  profile.CertificateURL,
	}
	if err := s.emailSender.SendLawyerSignupNotice(ctx, s.config.AdminReviewEmail, notice); err != nil {
		s.log().WithError(err).WithField("user_id", user.ID).Warn("lawyer signup notice failed")
	}
}

func (s *AccountService) audit(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.AuditAction,
	metadata map[string]any,
) {
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return
		}
		payload = datatypes.JSON(bytes)
	}

	log := &entity.AuditLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	}
	if err := s.store.AuditLogs().Log(ctx, log); err != nil {
		s.log().WithError(err).Warn("audit log write failed")
	}
}

func (s *AccountService) log() logrus.FieldLogger {
	if s.logger == nil {
		return logrus.StandardLogger()
	}
	return s.logger
}

func (s *AccountService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *AccountService) buildRefreshToken() (string, string, time.Time, error) {
	rawToken, err := utils.GenerateRandomToken(48)
	if err != nil {
		return "", "", time.Time{}, err
	}
	expiresAt := s.now().Add(s.refreshTokenTTL())
	return rawToken, utils.HashToken(rawToken), expiresAt, nil
}

func (s *AccountService) refreshTokenTTL() time.Duration {
	if s.config.RefreshTokenTTL > 0 {
		return s.config.RefreshTokenTTL
	}
	return 30 * 24 * time.Hour
}

func (s *AccountService) resetTokenTTL() time.Duration {
	if s.config.ResetTokenTTL > 0 {
		return s.config.ResetTokenTTL
	}
	return 30 * time.Minute
}

func translateCreateUserError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUsernameTaken
	}
	return err
}
