package investor

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) GetByUserID(userID uuid.UUID) (*Investor, error) {
	var (
		dummy = Investor{}
		_     = dummy.UserID
	)

	var inv Investor
	request := r.db.Where("user_id = ?", userID).Take(&inv)
	if err := request.Error; err != nil {
		return nil, fmt.Errorf("get investor by user #%s: %w", userID, err)
	}

	return &inv, nil
}
