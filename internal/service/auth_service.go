package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/pkg/jwt"
	"go-restaurant-api/pkg/mailer"
	"go-restaurant-api/pkg/validator"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("an account with this email already exists")
	ErrNotVerified        = errors.New("email address has not been verified")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrAlreadyVerified    = errors.New("email address is already verified")
	ErrInvalidOTP         = errors.New("invalid verification code")
	ErrOTPExpired         = errors.New("verification code has expired")
	ErrUserNotFound       = errors.New("user not found")
)

const otpTTL = 5 * time.Minute

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type StaffLoginResponse struct {
	Token    string                 `json:"token"`
	Employee model.EmployeeResponse `json:"employee"`
}

type AuthService interface {
	Register(user *model.User, password string) error
	VerifyEmail(email, code string) error
	ResendVerification(email string) error
	Login(email, password string) (*LoginResponse, error)
	ForgotPassword(email string) error
	ResetPassword(email, code, newPassword string) error

	StaffLogin(email, password string) (*StaffLoginResponse, error)
	StaffForgotPassword(email string) error
	StaffResetPassword(email, code, newPassword string) error
}

type authService struct {
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
	mail         mailer.Mailer
}

func NewAuthService(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository, mail mailer.Mailer) AuthService {
	return &authService{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		mail:         mail,
	}
}

// Register creates an unverified customer account and mails a verification
// code. Login is refused until the code is confirmed.
func (s *authService) Register(user *model.User, password string) error {
	if errs := validator.ValidateStruct(user); len(errs) > 0 {
		return validationError(errs)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	if existing, _ := s.userRepo.FindByEmail(user.Email); existing != nil {
		return ErrEmailExists
	}

	if err := user.SetPassword(password); err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(otpTTL)
	user.Verified = false
	user.OTPCode = code
	user.OTPExpiresAt = &expiry

	if err := s.userRepo.Create(user); err != nil {
		return err
	}

	if err := s.mail.SendOTP(user.Email, user.Name, code, "email verification"); err != nil {
		// The account exists; the customer can request a fresh code.
		log.Error().Err(err).Str("email", user.Email).Msg("verification mail failed")
	}
	return nil
}

// VerifyEmail accepts the code only before expiry and only on exact match;
// the code is consumed on success so a second attempt fails.
func (s *authService) VerifyEmail(email, code string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	if err := checkOTP(user.OTPCode, user.OTPExpiresAt, code); err != nil {
		return err
	}

	user.Verified = true
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	return s.userRepo.ClearOTP(user.ID)
}

// ResendVerification issues a fresh code for an account that never completed
// email verification, replacing whatever code is still on file.
func (s *authService) ResendVerification(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	if user.Verified {
		return ErrAlreadyVerified
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.userRepo.SetOTP(user.ID, code, time.Now().Add(otpTTL)); err != nil {
		return err
	}
	return s.mail.SendOTP(user.Email, user.Name, code, "email verification")
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, ErrNotVerified
	}

	token, err := jwt.GenerateToken(user.ID, jwt.ActorCustomer, user.Email, user.Name, "", false)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.userRepo.SetOTP(user.ID, code, time.Now().Add(otpTTL)); err != nil {
		return err
	}
	return s.mail.SendOTP(user.Email, user.Name, code, "password reset")
}

func (s *authService) ResetPassword(email, code, newPassword string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	if err := checkOTP(user.OTPCode, user.OTPExpiresAt, code); err != nil {
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	return s.userRepo.ClearOTP(user.ID)
}

func (s *authService) StaffLogin(email, password string) (*StaffLoginResponse, error) {
	employee, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !employee.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !employee.IsActive {
		return nil, ErrAccountInactive
	}

	token, err := jwt.GenerateToken(employee.ID, jwt.ActorStaff, employee.Email, employee.Name, employee.Role, employee.IsAdmin)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &StaffLoginResponse{Token: token, Employee: employee.ToResponse()}, nil
}

func (s *authService) StaffForgotPassword(email string) error {
	employee, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.employeeRepo.SetOTP(employee.ID, code, time.Now().Add(otpTTL)); err != nil {
		return err
	}
	return s.mail.SendOTP(employee.Email, employee.Name, code, "password reset")
}

func (s *authService) StaffResetPassword(email, code, newPassword string) error {
	employee, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	if err := checkOTP(employee.OTPCode, employee.OTPExpiresAt, code); err != nil {
		return err
	}

	if err := employee.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.employeeRepo.Update(employee); err != nil {
		return err
	}
	return s.employeeRepo.ClearOTP(employee.ID)
}

func checkOTP(stored string, expiresAt *time.Time, submitted string) error {
	if stored == "" || submitted == "" || stored != submitted {
		return ErrInvalidOTP
	}
	if expiresAt == nil || time.Now().After(*expiresAt) {
		return ErrOTPExpired
	}
	return nil
}

// generateOTP returns a 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
