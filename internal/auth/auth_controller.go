package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wpras/golfku/config"
	"github.com/wpras/golfku/internal/middleware"
	"github.com/wpras/golfku/internal/user"
	"github.com/wpras/golfku/pkg/mailer"
	"github.com/wpras/golfku/pkg/token"
	"github.com/wpras/golfku/pkg/utils"
)

const (
	otpCooldownMinutes = 1 // Minimum wait between two codes for the same purpose
	otpExpiryMinutes   = 5 // OTP expiry time
	minPasswordLength  = 8
)

var errOTPCooldown = errors.New("otp cooldown active")

type AuthController struct {
	repo   AuthRepository
	config *config.Config
	mailer *mailer.Mailer
}

func NewAuthController(repo AuthRepository, cfg *config.Config, m *mailer.Mailer) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
		mailer: m,
	}
}

// validatePassword enforces the password policy and names the violated
// rule, unlike binding tags which only report the tag name.
func validatePassword(password string) string {
	if len(password) < minPasswordLength {
		return "Password must be at least 8 characters long"
	}
	hasLetter := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return "Password must contain at least one letter"
	}
	if !hasDigit {
		return "Password must contain at least one number"
	}
	return ""
}

// issueOTP generates a fresh code for (email, purpose), invalidating any
// prior unused one, and hands it to the mailer. errOTPCooldown is
// returned when the previous code is too recent.
func (ac *AuthController) issueOTP(email, purpose string) error {
	if latest, err := ac.repo.LatestOTP(email, purpose); err == nil {
		if time.Since(latest.CreatedAt) < otpCooldownMinutes*time.Minute {
			return errOTPCooldown
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	otp := &OTP{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(otpExpiryMinutes * time.Minute),
	}
	if err := ac.repo.IssueOTP(otp); err != nil {
		return err
	}

	ac.deliverOTP(email, purpose, code)
	return nil
}

func (ac *AuthController) deliverOTP(email, purpose, code string) {
	if !ac.mailer.Configured() {
		log.Printf("SMTP not configured, OTP for %s (%s): %s", email, purpose, code)
		return
	}
	if err := ac.mailer.SendOTP(email, code, purpose); err != nil {
		log.Printf("Failed to send OTP email to %s: %v", email, err)
	}
}

func (ac *AuthController) tokenResponse(c *gin.Context, u *user.User) {
	accessToken, err := token.GenerateJWT(u.ID, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}
	c.JSON(http.StatusOK, AuthResponse{
		AccessToken: accessToken,
		User:        FilterUserRecord(u),
	})
}

// @Summary      Register a new user
// @Description  Create an unverified account and email a 6-digit verification code. Re-registering an unverified email overwrites the credentials and resends a code.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "Registration details"
// @Success      200   {object} map[string]string "Verification code sent"
// @Failure      400   {object} map[string]string "Validation error"
// @Failure      409   {object} map[string]string "Email already registered and verified"
// @Failure      429   {object} map[string]string "Code requested too soon"
// @Failure      500   {object} map[string]string "Internal server error"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if msg := validatePassword(req.Password); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	email := strings.ToLower(req.Email)

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	existing, err := ac.repo.GetUserByEmail(email)
	switch {
	case err == nil && existing.Verified:
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	case err == nil:
		// Unverified account: overwrite credentials and resend the code.
		existing.Name = req.Name
		existing.Phone = req.Phone
		existing.Password = hashedPassword
		if err := ac.repo.UpdateUser(existing); err != nil {
			log.Printf("Overwriting unverified user %s failed: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User creation failed"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		newUser := &user.User{
			Name:     req.Name,
			Email:    email,
			Password: hashedPassword,
			Phone:    req.Phone,
		}
		if err := ac.repo.CreateUser(newUser); err != nil {
			log.Printf("CreateUser failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User creation failed"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := ac.issueOTP(email, PurposeVerify); err != nil {
		if errors.Is(err, errOTPCooldown) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait a minute before requesting a new code"})
			return
		}
		log.Printf("Issuing verify OTP for %s failed: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent to your email"})
}

// @Summary      Verify registration
// @Description  Confirm the emailed verification code, mark the account verified and return a session token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  VerifyOTPRequest  true  "Email and code"
// @Success      200  {object} AuthResponse "Account verified"
// @Failure      400  {object} map[string]string "Invalid input"
// @Failure      401  {object} map[string]string "Invalid or expired code"
// @Failure      500  {object} map[string]string "Internal server error"
// @Router       /auth/verify-register [post]
func (ac *AuthController) VerifyRegister(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	email := strings.ToLower(req.Email)

	ok, err := ac.repo.ConsumeOTP(email, PurposeVerify, req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}

	u, err := ac.repo.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	u.Verified = true
	if err := ac.repo.UpdateUser(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify account"})
		return
	}

	ac.tokenResponse(c, u)
}

// @Summary      Login
// @Description  Check credentials and email a login code. The session is established by verify-login.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200  {object} map[string]string "Login code sent"
// @Failure      400  {object} map[string]string "Invalid input"
// @Failure      401  {object} map[string]string "Invalid credentials or unverified account"
// @Failure      429  {object} map[string]string "Code requested too soon"
// @Failure      500  {object} map[string]string "Internal server error"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	email := strings.ToLower(req.Email)

	u, err := ac.repo.GetUserByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Burn a hash comparison so response timing does not reveal
		// whether the account exists.
		utils.DummyCompare(req.Password)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	ok, upgraded, err := ParsePasswordHash(u.Password).VerifyAndMaybeUpgrade(req.Password)
	if err != nil {
		log.Printf("Password upgrade for %s failed: %v", email, err)
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if upgraded != "" {
		u.Password = upgraded
		if err := ac.repo.UpdateUser(u); err != nil {
			log.Printf("Rewriting legacy hash for %s failed: %v", email, err)
		}
	}

	if !u.Verified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not verified"})
		return
	}

	if err := ac.issueOTP(email, PurposeLogin); err != nil {
		if errors.Is(err, errOTPCooldown) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait a minute before requesting a new code"})
			return
		}
		log.Printf("Issuing login OTP for %s failed: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send login code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login code sent to your email"})
}

// @Summary      Verify login
// @Description  Confirm the emailed login code and return a session token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  VerifyOTPRequest  true  "Email and code"
// @Success      200  {object} AuthResponse "Login successful"
// @Failure      400  {object} map[string]string "Invalid input"
// @Failure      401  {object} map[string]string "Invalid or expired code"
// @Failure      500  {object} map[string]string "Internal server error"
// @Router       /auth/verify-login [post]
func (ac *AuthController) VerifyLogin(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	email := strings.ToLower(req.Email)

	ok, err := ac.repo.ConsumeOTP(email, PurposeLogin, req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}

	u, err := ac.repo.GetUserByEmail(email)
	if err != nil || !u.Verified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not verified"})
		return
	}

	ac.tokenResponse(c, u)
}

// @Summary      Request password reset
// @Description  Email a reset code. The response is the same whether or not the email is registered.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  ForgotPasswordRequest  true  "Account email"
// @Success      200  {object} map[string]string "Reset code sent if the account exists"
// @Failure      400  {object} map[string]string "Invalid input"
// @Router       /auth/forgot-password [post]
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	email := strings.ToLower(req.Email)

	// The response must not reveal whether the account exists, so every
	// failure here is logged and swallowed, including the cooldown.
	if _, err := ac.repo.GetUserByEmail(email); err == nil {
		if err := ac.issueOTP(email, PurposeReset); err != nil && !errors.Is(err, errOTPCooldown) {
			log.Printf("Issuing reset OTP for %s failed: %v", email, err)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Reset lookup for %s failed: %v", email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "If that email is registered, a reset code has been sent"})
}

// @Summary      Verify password reset
// @Description  Confirm the emailed reset code and return a short-lived reset token for the reset-password call.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  VerifyOTPRequest  true  "Email and code"
// @Success      200  {object} map[string]string "Reset token"
// @Failure      400  {object} map[string]string "Invalid input"
// @Failure      401  {object} map[string]string "Invalid or expired code"
// @Failure      500  {object} map[string]string "Internal server error"
// @Router       /auth/verify-reset [post]
func (ac *AuthController) VerifyReset(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	email := strings.ToLower(req.Email)

	ok, err := ac.repo.ConsumeOTP(email, PurposeReset, req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}

	u, err := ac.repo.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}

	resetToken := utils.GenerateRandomToken(32)
	resetExpires := time.Now().Add(time.Duration(ac.config.JWT.ResetTokenExpiryMinutes) * time.Minute)
	u.ResetToken = resetToken
	u.ResetExpires = &resetExpires
	if err := ac.repo.UpdateUser(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare password reset"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reset_token": resetToken})
}

// @Summary      Reset password
// @Description  Set a new password using the reset token from verify-reset. The token is single use.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  ResetPasswordRequest  true  "Email, reset token and new password"
// @Success      200  {object} map[string]string "Password reset"
// @Failure      400  {object} map[string]string "Validation error"
// @Failure      401  {object} map[string]string "Invalid or expired reset token"
// @Failure      500  {object} map[string]string "Internal server error"
// @Router       /auth/reset-password [post]
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if msg := validatePassword(req.Password); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	email := strings.ToLower(req.Email)

	u, err := ac.repo.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired reset token"})
		return
	}
	if u.ResetToken == "" || u.ResetToken != req.ResetToken ||
		u.ResetExpires == nil || !u.ResetExpires.After(time.Now()) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	u.Password = hashedPassword
	u.ResetToken = ""
	u.ResetExpires = nil
	if err := ac.repo.UpdateUser(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// @Summary      Get profile
// @Description  Return the authenticated user's profile.
// @Tags         Auth
// @Produce      json
// @Success      200  {object} UserResponse
// @Failure      401  {object} map[string]string "Unauthorized"
// @Failure      404  {object} map[string]string "User not found"
// @Router       /auth/me [get]
// @Security     Bearer
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, FilterUserRecord(u))
}

// @Summary      Update profile
// @Description  Update the authenticated user's profile fields. Only provided fields change.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        profile  body  UpdateProfileRequest  true  "Fields to update"
// @Success      200  {object} UserResponse
// @Failure      400  {object} map[string]string "Invalid input"
// @Failure      401  {object} map[string]string "Unauthorized"
// @Failure      404  {object} map[string]string "User not found"
// @Failure      500  {object} map[string]string "Internal server error"
// @Router       /auth/me [put]
// @Security     Bearer
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.HandicapIndex != nil {
		u.HandicapIndex = req.HandicapIndex
	}
	if req.HomeCourse != nil {
		u.HomeCourse = *req.HomeCourse
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		u.AvatarURL = *req.AvatarURL
	}
	if req.City != nil {
		u.City = *req.City
	}
	if req.Stats != nil {
		u.Stats = *req.Stats
	}

	if err := ac.repo.UpdateUser(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, FilterUserRecord(u))
}
