package startup

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type AnalysisStatus string

const (
	StatusPending    AnalysisStatus = "pending"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

func (s AnalysisStatus) Final() bool {
	return s == StatusCompleted || s == StatusFailed
}

type Startup struct {
	ID        int64
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	Name                 string
	Description          *string
	Industry             *string
	Sector               *string
	LocationCity         *string
	CountryOfOperation   *string
	OperationalStage     *string
	FoundingDate         *string
	NumEmployees         *int
	NumCustomers         *int
	AnnualRevenue        *decimal.Decimal
	AnnualExpenses       *decimal.Decimal
	TeamSize             *int
	HasCoFounder         *bool
	Website              *string
	PitchDeckURL         *string `gorm:"column:pitch_deck_url"`
	LogoURL              *string `gorm:"column:logo_url"`
	HighlightsSummary    *string
	KpiCac               *decimal.Decimal
	KpiClv               *decimal.Decimal
	KpiRetentionRate     *decimal.Decimal
	KpiMonthlyGrowth     *decimal.Decimal
	KpiConversionRate    *decimal.Decimal
	KpiPaybackPeriod     *decimal.Decimal
	KpiChurnRate         *decimal.Decimal
	KpiNps               *decimal.Decimal
	KpiTamSize           *string
	KpiAvgOrderValue     *decimal.Decimal
	KpiMarketShare       *decimal.Decimal
	KpiYoyGrowth         *decimal.Decimal
	FounderName          *string
	FounderTitle         *string
	FounderEducation     *string
	PreviousStartupExp   *string `gorm:"column:previous_startup_experience"`
	FounderBio           *string
	TechSkills           datatypes.JSON
	MarketGrowthRate     *string
	MarketKeyTrends      *string
	TargetCustomer       *string `gorm:"column:target_customer_profile"`
	CustomerPainPoints   *string
	MarketBarriers       *string
	CompetitiveAdvantage *string
	Competitor1Name      *string `gorm:"column:competitor1_name"`
	Competitor1Diff      *string `gorm:"column:competitor1_differentiator"`
	Competitor2Name      *string `gorm:"column:competitor2_name"`
	Competitor2Diff      *string `gorm:"column:competitor2_differentiator"`
	Competitor3Name      *string `gorm:"column:competitor3_name"`
	Competitor3Diff      *string `gorm:"column:competitor3_differentiator"`
	CurrentFunding       *string
	SeekingInvestment    *bool
	TargetRaiseAmount    *decimal.Decimal

	AIAnalysis            datatypes.JSON `gorm:"column:ai_analysis"`
	AnalysisStatus        AnalysisStatus
	AnalysisTimestamp     *time.Time
	AIInsights            *string `gorm:"column:ai_insights"`
	FundingReadinessScore *int
}

func (Startup) TableName() string {
	return "startups"
}

// WebhookPayload is the body the database webhooks send on row changes
type WebhookPayload struct {
	Type      string         `json:"type"`
	Table     string         `json:"table"`
	Schema    string         `json:"schema"`
	Record    *WebhookRecord `json:"record"`
	OldRecord *WebhookRecord `json:"old_record"`
}

type WebhookRecord struct {
	ID int64 `json:"id"`
}

func (p WebhookPayload) StartupID() int64 {
	if p.Record == nil {
		return 0
	}

	return p.Record.ID
}

type Competitor struct {
	Name           *string
	Differentiator *string
}

func (s *Startup) Competitors() []Competitor {
	return []Competitor{
		{Name: s.Competitor1Name, Differentiator: s.Competitor1Diff},
		{Name: s.Competitor2Name, Differentiator: s.Competitor2Diff},
		{Name: s.Competitor3Name, Differentiator: s.Competitor3Diff},
	}
}
