package repository

import (
	"errors"
	"time"

	"astralis-ops-backend/internal/database/models"
	apperrors "astralis-ops-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordResetTokenRepository handles database operations for password reset tokens
type PasswordResetTokenRepository struct {
	db *gorm.DB
}

// NewPasswordResetTokenRepository creates a new password reset token repository
func NewPasswordResetTokenRepository(db *gorm.DB) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db}
}

// Create creates a new password reset token
func (r *PasswordResetTokenRepository) Create(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

// GetByToken retrieves a token by its opaque token string
func (r *PasswordResetTokenRepository) GetByToken(token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.db.First(&t, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByUserID retrieves all tokens belonging to a user
func (r *PasswordResetTokenRepository) GetByUserID(userID uuid.UUID) ([]models.PasswordResetToken, error) {
	var tokens []models.PasswordResetToken
	err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Consume performs the single-use token exchange in one transaction: the
// token row is claimed with a compare-and-set guarded on used and expiry, the
// user's password hash is replaced, and every other outstanding token for the
// same user is marked used. Under concurrent attempts at most one caller wins
// the CAS; the rest see ErrInvalidResetToken or ErrResetTokenExpired.
func (r *PasswordResetTokenRepository) Consume(token, newPasswordHash string, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var t models.PasswordResetToken
		if err := tx.First(&t, "token = ?", token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrInvalidResetToken
			}
			return err
		}

		res := tx.Model(&models.PasswordResetToken{}).
			Where("token = ? AND used = ? AND expires_at > ?", token, false, now).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the CAS: report expiry only for a fresh-but-stale token;
			// a used token is indistinguishable from an unknown one.
			if !t.Used && t.IsExpired(now) {
				return apperrors.ErrResetTokenExpired
			}
			return apperrors.ErrInvalidResetToken
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", t.UserID).
			Update("password_hash", newPasswordHash).Error; err != nil {
			return err
		}

		// One successful reset retires every other outstanding token
		return tx.Model(&models.PasswordResetToken{}).
			Where("user_id = ? AND used = ?", t.UserID, false).
			Update("used", true).Error
	})
}

// DeleteExpiredOrUsed removes tokens that can no longer be consumed. It
// never touches a token that is still valid and unused.
func (r *PasswordResetTokenRepository) DeleteExpiredOrUsed(now time.Time) (int64, error) {
	res := r.db.Where("expires_at < ? OR used = ?", now, true).Delete(&models.PasswordResetToken{})
	return res.RowsAffected, res.Error
}
