package service

import (
	"testing"
	"time"

	"go-restaurant-api/internal/model"

	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (AuthService, *fakeMailer, *testEnv) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	env := newEnv(t)
	mail := &fakeMailer{}
	svc := NewAuthService(env.userRepo, env.employeeRepo, mail)
	return svc, mail, env
}

func registerCustomer(t *testing.T, svc AuthService, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:  "New Customer",
		Email: email,
		Phone: "01700000001",
	}
	require.NoError(t, svc.Register(user, "secret123"))
	return user
}

func TestRegisterAndVerifyEmail(t *testing.T) {
	svc, mail, _ := newAuthService(t)
	registerCustomer(t, svc, "new@example.com")

	// Unverified accounts cannot log in.
	_, err := svc.Login("new@example.com", "secret123")
	require.ErrorIs(t, err, ErrNotVerified)

	code := mail.last().code
	require.Len(t, code, 6)
	require.NoError(t, svc.VerifyEmail("new@example.com", code))

	resp, err := svc.Login("new@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "new@example.com", resp.User.Email)
}

func TestVerifyEmailWrongCode(t *testing.T) {
	svc, _, _ := newAuthService(t)
	registerCustomer(t, svc, "wrong@example.com")

	err := svc.VerifyEmail("wrong@example.com", "000000")
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	svc, mail, env := newAuthService(t)
	registerCustomer(t, svc, "late@example.com")

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, env.db.Model(&model.User{}).
		Where("email = ?", "late@example.com").
		Update("otp_expires_at", expired).Error)

	err := svc.VerifyEmail("late@example.com", mail.last().code)
	require.ErrorIs(t, err, ErrOTPExpired)
}

func TestVerificationCodeIsSingleUse(t *testing.T) {
	svc, mail, _ := newAuthService(t)
	registerCustomer(t, svc, "once@example.com")

	code := mail.last().code
	require.NoError(t, svc.VerifyEmail("once@example.com", code))

	err := svc.VerifyEmail("once@example.com", code)
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)
	registerCustomer(t, svc, "dup@example.com")

	dup := &model.User{Name: "Second", Email: "dup@example.com"}
	require.ErrorIs(t, svc.Register(dup, "secret456"), ErrEmailExists)
}

func TestRegisterSurvivesMailOutage(t *testing.T) {
	svc, mail, _ := newAuthService(t)
	mail.fail = true

	// Account creation succeeds; the customer can request a fresh code later.
	registerCustomer(t, svc, "offline@example.com")
}

func TestResendVerification(t *testing.T) {
	svc, mail, _ := newAuthService(t)
	mail.fail = true
	registerCustomer(t, svc, "resend@example.com")

	// The original mail never arrived; a resend issues a working code.
	mail.fail = false
	require.NoError(t, svc.ResendVerification("resend@example.com"))
	code := mail.last().code
	require.Len(t, code, 6)
	require.Equal(t, "email verification", mail.last().purpose)

	require.NoError(t, svc.VerifyEmail("resend@example.com", code))

	require.ErrorIs(t, svc.ResendVerification("resend@example.com"), ErrAlreadyVerified)
	require.ErrorIs(t, svc.ResendVerification("ghost@example.com"), ErrUserNotFound)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, mail, env := newAuthService(t)
	seedUser(t, env.db, "reset@example.com")

	require.NoError(t, svc.ForgotPassword("reset@example.com"))
	code := mail.last().code
	require.Equal(t, "password reset", mail.last().purpose)

	require.NoError(t, svc.ResetPassword("reset@example.com", code, "newsecret1"))

	_, err := svc.Login("reset@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := svc.Login("reset@example.com", "newsecret1")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
}

func TestStaffLogin(t *testing.T) {
	svc, _, env := newAuthService(t)

	employee := &model.Employee{
		Name:     "Floor Manager",
		Email:    "manager@example.com",
		Role:     model.RoleManager,
		IsActive: true,
	}
	require.NoError(t, employee.SetPassword("staffpass"))
	require.NoError(t, env.db.Create(employee).Error)

	resp, err := svc.StaffLogin("manager@example.com", "staffpass")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, model.RoleManager, resp.Employee.Role)
}

func TestStaffLoginInactiveAccount(t *testing.T) {
	svc, _, env := newAuthService(t)

	employee := &model.Employee{
		Name:     "Former Employee",
		Email:    "gone@example.com",
		Role:     model.RoleEmployee,
		IsActive: false,
	}
	require.NoError(t, employee.SetPassword("staffpass"))
	require.NoError(t, env.db.Create(employee).Error)

	_, err := svc.StaffLogin("gone@example.com", "staffpass")
	require.ErrorIs(t, err, ErrAccountInactive)
}
