package investor

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Investor struct {
	ID        int64
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	FullName            string
	JobTitle            *string
	CompanyName         *string
	InvestorType        *string
	Website             *string
	LinkedinProfile     *string
	CompanyDescription  *string
	TypicalCheckSize    *string
	PreferredIndustries pq.StringArray `gorm:"type:text[]"`
	PreferredGeography  pq.StringArray `gorm:"type:text[]"`
	PreferredStage      pq.StringArray `gorm:"type:text[]"`
}

func (Investor) TableName() string {
	return "investors"
}
