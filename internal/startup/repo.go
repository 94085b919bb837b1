package startup

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrClaimLost means the row left the processing state owned by the caller
var ErrClaimLost = errors.New("analysis claim lost")

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) GetByID(id int64) (*Startup, error) {
	var st Startup
	request := r.db.Where("id = ?", id).Take(&st)
	if err := request.Error; err != nil {
		return nil, fmt.Errorf("get startup by id #%d: %w", id, err)
	}

	return &st, nil
}

func (r *Repo) GetByUserID(userID uuid.UUID) (*Startup, error) {
	var (
		dummy = Startup{}
		_     = dummy.UserID
	)

	var st Startup
	request := r.db.Where("user_id = ?", userID).Order("id").Take(&st)
	if err := request.Error; err != nil {
		return nil, fmt.Errorf("get startup by user #%s: %w", userID, err)
	}

	return &st, nil
}

func (r *Repo) Find(filters ...Filter) ([]Startup, error) {
	db := r.db.Model(&Startup{})
	for _, f := range filters {
		db = f.Apply(db)
	}

	var list []Startup
	if err := db.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find startups: %w", err)
	}

	return list, nil
}

// MarkProcessing moves the row to processing unless another fresh claim exists.
// claimedAt becomes the claim token checked by FinishAnalysis.
func (r *Repo) MarkProcessing(id int64, claimedAt, staleBefore time.Time) (bool, error) {
	var (
		dummy = Startup{}
		_     = dummy.AnalysisStatus
		_     = dummy.AnalysisTimestamp
	)

	request := r.db.
		Model(&Startup{}).
		Where("id = ?", id).
		Where(
			"(analysis_status IS DISTINCT FROM ? OR analysis_timestamp IS NULL OR analysis_timestamp < ?)",
			StatusProcessing,
			staleBefore,
		).
		Updates(map[string]any{
			"analysis_status":    StatusProcessing,
			"analysis_timestamp": claimedAt,
			"updated_at":         claimedAt,
		})
	if err := request.Error; err != nil {
		return false, fmt.Errorf("mark startup #%d as processing: %w", id, err)
	}

	return request.RowsAffected == 1, nil
}

// FinishAnalysis stores the outcome only while the caller still owns the claim
func (r *Repo) FinishAnalysis(id int64, claimedAt time.Time, status AnalysisStatus, analysis datatypes.JSON, finishedAt time.Time) error {
	request := r.db.
		Model(&Startup{}).
		Where("id = ? AND analysis_status = ? AND analysis_timestamp = ?", id, StatusProcessing, claimedAt).
		Updates(map[string]any{
			"ai_analysis":        analysis,
			"analysis_status":    status,
			"analysis_timestamp": finishedAt,
			"updated_at":         finishedAt,
		})
	if err := request.Error; err != nil {
		return fmt.Errorf("store analysis for startup #%d: %w", id, err)
	}

	if request.RowsAffected == 0 {
		return fmt.Errorf("store analysis for startup #%d: %w", id, ErrClaimLost)
	}

	return nil
}

func (r *Repo) UpdateReadinessScore(id int64, score *int, updatedAt time.Time) error {
	var (
		dummy = Startup{}
		_     = dummy.FundingReadinessScore
	)

	request := r.db.
		Model(&Startup{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"funding_readiness_score": score,
			"updated_at":              updatedAt,
		})
	if err := request.Error; err != nil {
		return fmt.Errorf("update readiness score for startup #%d: %w", id, err)
	}

	if request.RowsAffected == 0 {
		return fmt.Errorf("update readiness score for startup #%d: %w", id, gorm.ErrRecordNotFound)
	}

	return nil
}

func (r *Repo) UpdateInsights(id int64, insights *string, updatedAt time.Time) error {
	var (
		dummy = Startup{}
		_     = dummy.AIInsights
	)

	request := r.db.
		Model(&Startup{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"ai_insights": insights,
			"updated_at":  updatedAt,
		})
	if err := request.Error; err != nil {
		return fmt.Errorf("update insights for startup #%d: %w", id, err)
	}

	if request.RowsAffected == 0 {
		return fmt.Errorf("update insights for startup #%d: %w", id, gorm.ErrRecordNotFound)
	}

	return nil
}
