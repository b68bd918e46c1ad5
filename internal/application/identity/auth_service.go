package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linkbio/backend/internal/domain/identity"
	"github.com/linkbio/backend/internal/domain/linkbio"
	"github.com/linkbio/backend/internal/domain/shared"
	"github.com/linkbio/backend/internal/infrastructure/auth"
)

// AuthService handles account registration and session lifecycle
type AuthService struct {
	accountRepo identity.AccountRepository
	profileRepo linkbio.ProfileRepository
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	accountRepo identity.AccountRepository,
	profileRepo linkbio.ProfileRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		jwtService:  jwtService,
		blacklist:   blacklist,
		logger:      logger,
	}
}

// Signup registers a new account and seeds its profile.
//
// The username check runs against the normalized form, so "Jane_Doe" and
// "janedoe" collide. A profile insert failure after the account is created
// is logged and swallowed: the account exists, and the profile is created
// lazily on first dashboard load.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	s.logger.Info("Signup attempt", zap.String("email", input.Email))

	if input.Email == "" || input.Password == "" || input.Username == "" || input.DisplayName == "" {
		return nil, shared.NewDomainError("MISSING_FIELDS", "All fields are required")
	}

	taken, err := s.profileRepo.IsUsernameTaken(ctx, input.Username, uuid.Nil)
	if err != nil {
		s.logger.Error("Failed to check username availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if taken {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username already taken")
	}

	exists, err := s.accountRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "Email already registered")
	}

	account, err := identity.NewAccount(input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if err == shared.ErrAlreadyExists {
			return nil, shared.NewDomainError("EMAIL_TAKEN", "Email already registered")
		}
		s.logger.Error("Failed to create account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	profile, err := linkbio.NewProfile(account.ID, input.Username, input.DisplayName)
	if err != nil {
		s.logger.Warn("Profile validation failed after account creation",
			zap.String("user_id", account.ID.String()),
			zap.Error(err))
	} else if err := s.profileRepo.Create(ctx, profile); err != nil {
		// The account already exists at this point, so the signup still
		// succeeds; the dashboard creates a minimal profile on first load.
		s.logger.Error("Failed to create profile during signup",
			zap.String("user_id", account.ID.String()),
			zap.Error(err))
	}

	s.logger.Info("Account registered",
		zap.String("user_id", account.ID.String()),
		zap.String("email", account.Email))

	return &SignupResult{
		User: AccountInfo{
			ID:        account.ID,
			Email:     account.Email,
			CreatedAt: account.CreatedAt,
		},
	}, nil
}

// Signin authenticates an account and issues a session token
func (s *AuthService) Signin(ctx context.Context, input SigninInput) (*SigninResult, error) {
	s.logger.Info("Signin attempt", zap.String("email", input.Email))

	if input.Email == "" || input.Password == "" {
		return nil, shared.NewDomainError("MISSING_FIELDS", "Email and password are required")
	}

	account, err := s.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Account not found during signin", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")
	}

	if !account.IsActive() {
		s.logger.Warn("Signin attempt for deactivated account", zap.String("user_id", account.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !account.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")
	}

	token, err := s.jwtService.GenerateSessionToken(account.ID, account.Email)
	if err != nil {
		s.logger.Error("Failed to generate session token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create session")
	}

	account.RecordLogin()
	if err := s.accountRepo.Update(ctx, account); err != nil {
		// Not fatal, the session is already issued
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("Account signed in", zap.String("user_id", account.ID.String()))

	return &SigninResult{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		User: AccountInfo{
			ID:        account.ID,
			Email:     account.Email,
			CreatedAt: account.CreatedAt,
		},
	}, nil
}

// Signout revokes the session token for the remainder of its lifetime
func (s *AuthService) Signout(ctx context.Context, input SignoutInput) error {
	s.logger.Info("Signout", zap.String("user_id", input.UserID.String()))

	if input.TokenJTI == "" || input.TokenTTL <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
		s.logger.Error("Failed to blacklist session token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to sign out")
	}
	return nil
}
