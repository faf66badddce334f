package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wpras/golfku/config"
	"github.com/wpras/golfku/internal/user"
	"github.com/wpras/golfku/pkg/utils"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&user.User{}, &OTP{}))

	cfg := &config.Config{}
	cfg.App.AuthRateLimit = "100-M"
	cfg.JWT.AccessTokenSecret = "test-secret"
	cfg.JWT.AccessTokenExpiryMinutes = 60
	cfg.JWT.ResetTokenExpiryMinutes = 15

	r := gin.New()
	RegisterAuthRoutes(r.Group("/api"), db, cfg)
	return r, db
}

func doJSON(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func unusedOTPCode(t *testing.T, db *gorm.DB, email, purpose string) string {
	t.Helper()
	var otp OTP
	err := db.Where("email = ? AND purpose = ? AND used = ?", email, purpose, false).
		Order("created_at DESC").First(&otp).Error
	require.NoError(t, err, "expected an unused %s code for %s", purpose, email)
	return otp.Code
}

func wrongCodeFor(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	r, db := setupAuthTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Budi Santoso",
		"email":    "budi@example.com",
		"password": "fairway88",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	code := unusedOTPCode(t, db, "budi@example.com", PurposeVerify)
	require.Len(t, code, 6)

	w = doJSON(r, http.MethodPost, "/api/auth/verify-register", gin.H{
		"email": "budi@example.com",
		"otp":   code,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var verifyResp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verifyResp))
	assert.NotEmpty(t, verifyResp.AccessToken)
	assert.True(t, verifyResp.User.Verified)

	var u user.User
	require.NoError(t, db.Where("email = ?", "budi@example.com").First(&u).Error)
	assert.True(t, u.Verified)

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "budi@example.com",
		"password": "fairway88",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	loginCode := unusedOTPCode(t, db, "budi@example.com", PurposeLogin)
	w = doJSON(r, http.MethodPost, "/api/auth/verify-login", gin.H{
		"email": "budi@example.com",
		"otp":   loginCode,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loginResp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.AccessToken)

	w = doJSON(r, http.MethodGet, "/api/auth/me", nil, loginResp.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "budi@example.com")
}

func TestRegisterPasswordPolicy(t *testing.T) {
	r, _ := setupAuthTest(t)

	tests := []struct {
		password string
		wantMsg  string
	}{
		{"abc1", "Password must be at least 8 characters long"},
		{"12345678", "Password must contain at least one letter"},
		{"fairways", "Password must contain at least one number"},
	}
	for _, tt := range tests {
		w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
			"name":     "Budi",
			"email":    "budi@example.com",
			"password": tt.password,
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), tt.wantMsg)
	}
}

func TestRegisterVerifiedEmailRejected(t *testing.T) {
	r, db := setupAuthTest(t)

	hashed, err := utils.HashPassword("fairway88")
	require.NoError(t, err)
	require.NoError(t, db.Create(&user.User{
		Name: "Budi", Email: "budi@example.com", Password: hashed, Verified: true,
	}).Error)

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Impostor",
		"email":    "budi@example.com",
		"password": "other1234",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestRegisterUnverifiedOverwritesAndReissues(t *testing.T) {
	r, db := setupAuthTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Budi",
		"email":    "budi@example.com",
		"password": "fairway88",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	firstCode := unusedOTPCode(t, db, "budi@example.com", PurposeVerify)

	// Age the first code past the reissue cooldown.
	require.NoError(t, db.Model(&OTP{}).
		Where("email = ?", "budi@example.com").
		Update("created_at", time.Now().Add(-2*time.Minute)).Error)

	w = doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Budi S.",
		"email":    "budi@example.com",
		"password": "newpass99",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	secondCode := unusedOTPCode(t, db, "budi@example.com", PurposeVerify)
	require.NotEqual(t, "", secondCode)

	// The first code was invalidated by the reissue.
	if firstCode != secondCode {
		w = doJSON(r, http.MethodPost, "/api/auth/verify-register", gin.H{
			"email": "budi@example.com",
			"otp":   firstCode,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// Credentials were overwritten.
	var u user.User
	require.NoError(t, db.Where("email = ?", "budi@example.com").First(&u).Error)
	assert.Equal(t, "Budi S.", u.Name)
	assert.True(t, utils.CheckPassword(u.Password, "newpass99"))
	assert.False(t, utils.CheckPassword(u.Password, "fairway88"))

	w = doJSON(r, http.MethodPost, "/api/auth/verify-register", gin.H{
		"email": "budi@example.com",
		"otp":   secondCode,
	}, "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRegisterCooldown(t *testing.T) {
	r, _ := setupAuthTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Budi",
		"email":    "budi@example.com",
		"password": "fairway88",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Budi",
		"email":    "budi@example.com",
		"password": "fairway88",
	}, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestVerifyRejectsWrongExpiredAndReplayedCodes(t *testing.T) {
	r, db := setupAuthTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Budi",
		"email":    "budi@example.com",
		"password": "fairway88",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	code := unusedOTPCode(t, db, "budi@example.com", PurposeVerify)

	// Wrong code
	w = doJSON(r, http.MethodPost, "/api/auth/verify-register", gin.H{
		"email": "budi@example.com",
		"otp":   wrongCodeFor(code),
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired code")

	// Right code succeeds once
	w = doJSON(r, http.MethodPost, "/api/auth/verify-register", gin.H{
		"email": "budi@example.com",
		"otp":   code,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	// Replay is rejected
	w = doJSON(r, http.MethodPost, "/api/auth/verify-register", gin.H{
		"email": "budi@example.com",
		"otp":   code,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyExpiredCode(t *testing.T) {
	r, db := setupAuthTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Budi",
		"email":    "budi@example.com",
		"password": "fairway88",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	code := unusedOTPCode(t, db, "budi@example.com", PurposeVerify)

	require.NoError(t, db.Model(&OTP{}).
		Where("email = ? AND code = ?", "budi@example.com", code).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	w = doJSON(r, http.MethodPost, "/api/auth/verify-register", gin.H{
		"email": "budi@example.com",
		"otp":   code,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownEmailAndUnverified(t *testing.T) {
	r, db := setupAuthTest(t)

	w := doJSON(r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "ghost@example.com",
		"password": "whatever1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")

	hashed, err := utils.HashPassword("fairway88")
	require.NoError(t, err)
	require.NoError(t, db.Create(&user.User{
		Name: "Budi", Email: "budi@example.com", Password: hashed, Verified: false,
	}).Error)

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "budi@example.com",
		"password": "fairway88",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Account not verified")
}

func TestLoginLegacyHashMigrates(t *testing.T) {
	r, db := setupAuthTest(t)

	require.NoError(t, db.Create(&user.User{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: legacyDigest("oldpass123"),
		Verified: true,
	}).Error)

	w := doJSON(r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "budi@example.com",
		"password": "oldpass123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var u user.User
	require.NoError(t, db.Where("email = ?", "budi@example.com").First(&u).Error)
	assert.Equal(t, HashStrong, ParsePasswordHash(u.Password).Kind(), "stored hash should be rewritten to bcrypt")
	assert.True(t, utils.CheckPassword(u.Password, "oldpass123"))

	// Wrong password against a legacy hash still fails and does not migrate.
	require.NoError(t, db.Model(&user.User{}).Where("email = ?", "budi@example.com").
		Update("password", legacyDigest("oldpass123")).Error)
	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "budi@example.com",
		"password": "wrongpass1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	r, db := setupAuthTest(t)

	hashed, err := utils.HashPassword("fairway88")
	require.NoError(t, err)
	require.NoError(t, db.Create(&user.User{
		Name: "Budi", Email: "budi@example.com", Password: hashed, Verified: true,
	}).Error)

	w := doJSON(r, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "budi@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	knownBody := w.Body.String()

	// Unknown email gets the identical response.
	w = doJSON(r, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "ghost@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, knownBody, w.Body.String())

	code := unusedOTPCode(t, db, "budi@example.com", PurposeReset)
	w = doJSON(r, http.MethodPost, "/api/auth/verify-reset", gin.H{
		"email": "budi@example.com",
		"otp":   code,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resetResp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resetResp))
	resetToken := resetResp["reset_token"]
	require.NotEmpty(t, resetToken)

	w = doJSON(r, http.MethodPost, "/api/auth/reset-password", gin.H{
		"email":       "budi@example.com",
		"reset_token": resetToken,
		"password":    "newpass123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var u user.User
	require.NoError(t, db.Where("email = ?", "budi@example.com").First(&u).Error)
	assert.True(t, utils.CheckPassword(u.Password, "newpass123"))
	assert.Empty(t, u.ResetToken)

	// The token is single use.
	w = doJSON(r, http.MethodPost, "/api/auth/reset-password", gin.H{
		"email":       "budi@example.com",
		"reset_token": resetToken,
		"password":    "another123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueOTPKeepsOneActiveCode(t *testing.T) {
	_, db := setupAuthTest(t)
	repo := NewAuthRepository(db)

	first := &OTP{Email: "budi@example.com", Code: "111111", Purpose: PurposeLogin, ExpiresAt: time.Now().Add(5 * time.Minute)}
	require.NoError(t, repo.IssueOTP(first))

	second := &OTP{Email: "budi@example.com", Code: "222222", Purpose: PurposeLogin, ExpiresAt: time.Now().Add(5 * time.Minute)}
	require.NoError(t, repo.IssueOTP(second))

	var unused int64
	require.NoError(t, db.Model(&OTP{}).
		Where("email = ? AND purpose = ? AND used = ?", "budi@example.com", PurposeLogin, false).
		Count(&unused).Error)
	assert.EqualValues(t, 1, unused)

	ok, err := repo.ConsumeOTP("budi@example.com", PurposeLogin, "111111")
	require.NoError(t, err)
	assert.False(t, ok, "superseded code must not verify")

	ok, err = repo.ConsumeOTP("budi@example.com", PurposeLogin, "222222")
	require.NoError(t, err)
	assert.True(t, ok)

	// A different purpose is untouched by the reissue.
	reset := &OTP{Email: "budi@example.com", Code: "333333", Purpose: PurposeReset, ExpiresAt: time.Now().Add(5 * time.Minute)}
	require.NoError(t, repo.IssueOTP(reset))
	ok, err = repo.ConsumeOTP("budi@example.com", PurposeReset, "333333")
	require.NoError(t, err)
	assert.True(t, ok)
}
