package services

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"log"
	"sync"
	"time"

	"agrisoil-backend/internal/config"
	"agrisoil-backend/internal/models"
	"agrisoil-backend/internal/repository"
	"agrisoil-backend/utils"

	"github.com/redis/go-redis/v9"
)

const (
	userCacheTTL     = 15 * time.Minute
	otpTTL           = 10 * time.Minute
	loginAttemptTTL  = 15 * time.Minute
	maxLoginAttempts = 10
)

type IAuthService interface {
	Register(req models.RegisterRequest) (*models.User, error)
	Login(email, password string) (*models.User, string, error)
	GetUserByID(userID string) (*models.User, error)
	UpdateProfile(userID string, req models.UpdateProfileRequest) (*models.User, error)
	GetAllUsers(limit, offset int) ([]*models.User, error)
	ToggleAdmin(userID, actingUserID string) (*models.User, error)
	DeleteUser(userID, actingUserID string) error
	ForgotPassword(email string) error
	VerifyOTP(email, otp string) error
	ResetPassword(email, otp, newPassword string) error
	FindOrCreateOAuthUser(email, name, provider string) (*models.User, string, error)
}

type AuthService struct {
	userRepo     repository.IUserRepository
	jwtService   *JWTService
	emailService IEmailService
	cfg          *config.AppConfig
	redisClient  *redis.Client

	// fallback attempt counters for when Redis is unavailable
	globalLoginAttempt map[string]int
	mu                 *sync.Mutex
}

func NewAuthService(userRepo repository.IUserRepository, jwtService *JWTService, emailService IEmailService, cfg *config.AppConfig, redisClient *redis.Client) IAuthService {
	return &AuthService{
		userRepo:           userRepo,
		jwtService:         jwtService,
		emailService:       emailService,
		cfg:                cfg,
		redisClient:        redisClient,
		globalLoginAttempt: make(map[string]int),
		mu:                 &sync.Mutex{},
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.User, error) {
	if ok, err := utils.ValidateEmail(req.Email); !ok {
		return nil, fmt.Errorf("invalid email: %s", err)
	}

	if existing, _ := s.userRepo.GetUserByEmail(req.Email); existing != nil {
		return nil, fmt.Errorf("email already registered")
	}
	if existing, _ := s.userRepo.GetUserByUsername(req.Username); existing != nil {
		return nil, fmt.Errorf("username already taken")
	}

	user := &models.User{
		UserID:   "UC-" + utils.GenerateRandomStringWithLength(8),
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		IsActive: true,
	}
	if req.FullName != "" {
		user.FullName = &req.FullName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = &req.PhoneNumber
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		log.Printf("failed to register user %s: %v", req.Email, err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	// Try cache first, then database
	user := s.getCachedUserByEmail(email)
	if user == nil {
		var err error
		user, err = s.userRepo.GetUserByEmail(email)
		if err != nil {
			log.Printf("user searching failed: %s \n", err)
			return nil, "", fmt.Errorf("email or password incorrect")
		}
		// Cache the user for future requests
		s.cacheUser(user)
	}

	if !s.userRepo.CheckPasswordHash(password, user.Password) {
		attemptCount := s.incrementLoginAttempts(user.UserID)

		if attemptCount%5 == 0 {
			log.Printf("Suspicious login activity detected for user %s: %d attempts", user.UserID, attemptCount)
		}
		if attemptCount >= maxLoginAttempts {
			log.Printf("account %s blocked due to too many failed login attempts", user.UserID)
			return nil, "", fmt.Errorf("too many failed login attempts, try again later")
		}
		return nil, "", fmt.Errorf("email or password incorrect")
	}

	if !user.IsActive {
		return nil, "", fmt.Errorf("account deactivated, contact support")
	}

	token, err := s.jwtService.GenerateNewToken(user.UserID, user.Email, user.IsAdmin)
	if err != nil {
		log.Println("error generating token: ", err)
		return nil, "", fmt.Errorf("error generating token: %s", err)
	}

	s.resetLoginAttempts(user.UserID)

	return user, token, nil
}

func (s *AuthService) GetUserByID(userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(userID)
}

// UpdateProfile lets a user change their own username, full name and
// phone number. Email changes are not supported because the email is
// the login identity.
func (s *AuthService) UpdateProfile(userID string, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if existing, _ := s.userRepo.GetUserByUsername(*req.Username); existing != nil {
			return nil, fmt.Errorf("username already taken")
		}
		user.Username = *req.Username
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}

	if err := s.userRepo.UpdateUser(user); err != nil {
		return nil, err
	}
	s.invalidateUserCache(user.Email)
	return user, nil
}

func (s *AuthService) GetAllUsers(limit, offset int) ([]*models.User, error) {
	return s.userRepo.GetAllUsers(limit, offset)
}

func (s *AuthService) ToggleAdmin(userID, actingUserID string) (*models.User, error) {
	if userID == actingUserID {
		return nil, fmt.Errorf("cannot change your own admin privileges")
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetAdmin(userID, !user.IsAdmin); err != nil {
		return nil, err
	}
	user.IsAdmin = !user.IsAdmin
	s.invalidateUserCache(user.Email)

	return user, nil
}

func (s *AuthService) DeleteUser(userID, actingUserID string) error {
	if userID == actingUserID {
		return fmt.Errorf("cannot delete your own account")
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(userID); err != nil {
		return err
	}
	s.invalidateUserCache(user.Email)

	return nil
}

// ForgotPassword issues a reset OTP. The caller always gets a nil
// error for an unknown email so addresses cannot be probed.
func (s *AuthService) ForgotPassword(email string) error {
	if s.redisClient == nil {
		return fmt.Errorf("password reset is temporarily unavailable")
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		log.Printf("password reset requested for unknown email %s", email)
		return nil
	}

	otp := utils.GenerateNumericOTP(6)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.redisClient.Set(ctx, otpKey(email), otp, otpTTL).Err(); err != nil {
		log.Printf("failed to store OTP for %s: %v", email, err)
		return fmt.Errorf("failed to issue reset code")
	}

	go func() {
		if err := s.emailService.SendPasswordResetOTP(user.Email, user.Username, otp); err != nil {
			log.Printf("failed to deliver OTP email to %s: %v", user.Email, err)
		}
	}()

	return nil
}

func (s *AuthService) VerifyOTP(email, otp string) error {
	if s.redisClient == nil {
		return fmt.Errorf("password reset is temporarily unavailable")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stored, err := s.redisClient.Get(ctx, otpKey(email)).Result()
	if err != nil {
		return fmt.Errorf("invalid or expired OTP")
	}
	if stored != otp {
		return fmt.Errorf("invalid or expired OTP")
	}
	return nil
}

func (s *AuthService) ResetPassword(email, otp, newPassword string) error {
	if err := s.VerifyOTP(email, otp); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("invalid or expired OTP")
	}

	if err := s.userRepo.UpdatePassword(user.UserID, newPassword); err != nil {
		log.Printf("failed to reset password for %s: %v", email, err)
		return fmt.Errorf("failed to reset password")
	}

	if s.redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.redisClient.Del(ctx, otpKey(email))
	}
	s.invalidateUserCache(email)

	return nil
}

// FindOrCreateOAuthUser resolves a social login to a local account,
// creating one with a random password on first sight, and issues a
// token.
func (s *AuthService) FindOrCreateOAuthUser(email, name, provider string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		username := fmt.Sprintf("%s_%s", provider, utils.GenerateRandomStringWithLength(8))
		user = &models.User{
			UserID:        "UC-" + utils.GenerateRandomStringWithLength(8),
			Email:         email,
			Username:      username,
			Password:      utils.GenerateRandomStringWithLength(32),
			IsActive:      true,
			OAuthProvider: &provider,
		}
		if name != "" {
			user.FullName = &name
		}
		if err := s.userRepo.CreateUser(user); err != nil {
			log.Printf("failed to create oauth user %s: %v", email, err)
			return nil, "", fmt.Errorf("failed to create account: %w", err)
		}
	}

	if !user.IsActive {
		return nil, "", fmt.Errorf("account deactivated, contact support")
	}

	token, err := s.jwtService.GenerateNewToken(user.UserID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("error generating token: %s", err)
	}

	return user, token, nil
}

// ============================================================================
// USER CACHE (Redis, gob encoded)
// ============================================================================

func userCacheKey(email string) string {
	return "user:email:" + email
}

func otpKey(email string) string {
	return "otp:" + email
}

func loginAttemptKey(userID string) string {
	return "login_attempts:" + userID
}

func (s *AuthService) cacheUser(user *models.User) {
	if s.redisClient == nil || user == nil {
		return
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(user); err != nil {
		log.Printf("failed to encode user for cache: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.redisClient.Set(ctx, userCacheKey(user.Email), buf.Bytes(), userCacheTTL).Err(); err != nil {
		log.Printf("failed to cache user %s: %v", user.UserID, err)
	}
}

func (s *AuthService) getCachedUserByEmail(email string) *models.User {
	if s.redisClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.redisClient.Get(ctx, userCacheKey(email)).Bytes()
	if err != nil {
		return nil
	}

	var user models.User
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&user); err != nil {
		log.Printf("failed to decode cached user: %v", err)
		return nil
	}
	return &user
}

func (s *AuthService) invalidateUserCache(email string) {
	if s.redisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.redisClient.Del(ctx, userCacheKey(email))
}

func (s *AuthService) incrementLoginAttempts(userID string) int {
	if s.redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		count, err := s.redisClient.Incr(ctx, loginAttemptKey(userID)).Result()
		if err == nil {
			s.redisClient.Expire(ctx, loginAttemptKey(userID), loginAttemptTTL)
			return int(count)
		}
		log.Printf("redis attempt counter failed, falling back to memory: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalLoginAttempt[userID]++
	return s.globalLoginAttempt[userID]
}

func (s *AuthService) resetLoginAttempts(userID string) {
	if s.redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.redisClient.Del(ctx, loginAttemptKey(userID))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.globalLoginAttempt, userID)
}
