package auth

import (
	"time"

	"gorm.io/gorm"

	"github.com/wpras/golfku/internal/user"
)

type AuthRepository interface {
	CreateUser(u *user.User) error
	GetUserByEmail(email string) (*user.User, error)
	GetUserByID(id uint) (*user.User, error)
	UpdateUser(u *user.User) error

	IssueOTP(otp *OTP) error
	ConsumeOTP(email, purpose, code string) (bool, error)
	LatestOTP(email, purpose string) (*OTP, error)
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *authRepository) GetUserByEmail(email string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) UpdateUser(u *user.User) error {
	return r.db.Save(u).Error
}

// IssueOTP invalidates any unused code for the same (email, purpose) and
// inserts the new one. Both steps run in one transaction so exactly one
// active code exists per pair.
func (r *authRepository) IssueOTP(otp *OTP) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&OTP{}).
			Where("email = ? AND purpose = ? AND used = ?", otp.Email, otp.Purpose, false).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
}

// ConsumeOTP marks a matching live code as used. The check and the mark
// are a single conditional UPDATE, so a code can never be accepted twice.
func (r *authRepository) ConsumeOTP(email, purpose, code string) (bool, error) {
	res := r.db.Model(&OTP{}).
		Where("email = ? AND purpose = ? AND code = ? AND used = ? AND expires_at > ?",
			email, purpose, code, false, time.Now()).
		Update("used", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *authRepository) LatestOTP(email, purpose string) (*OTP, error) {
	var otp OTP
	if err := r.db.Where("email = ? AND purpose = ?", email, purpose).
		Order("created_at DESC").First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}
