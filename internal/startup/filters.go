package startup

import (
	"time"

	"gorm.io/gorm"
)

type Filter interface {
	Apply(*gorm.DB) *gorm.DB
}

type PageFilter struct {
	Offset int
	Limit  int
}

func (f PageFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(f.Offset).Limit(f.Limit)
}

type StageFilter struct {
	Stages []string
}

func (f StageFilter) Apply(db *gorm.DB) *gorm.DB {
	var (
		dummy = Startup{}
		_     = dummy.OperationalStage
	)

	if len(f.Stages) == 0 {
		return db
	}

	return db.Where("operational_stage IN ?", f.Stages)
}

type IndustryFilter struct {
	Industries []string
}

func (f IndustryFilter) Apply(db *gorm.DB) *gorm.DB {
	var (
		dummy = Startup{}
		_     = dummy.Industry
	)

	if len(f.Industries) == 0 {
		return db
	}

	return db.Where("industry IN ?", f.Industries)
}

type CountryFilter struct {
	Countries []string
}

func (f CountryFilter) Apply(db *gorm.DB) *gorm.DB {
	var (
		dummy = Startup{}
		_     = dummy.CountryOfOperation
	)

	if len(f.Countries) == 0 {
		return db
	}

	return db.Where("country_of_operation IN ?", f.Countries)
}

type OrderByIDFilter struct{}

func (f OrderByIDFilter) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

type StatusFilter struct {
	Statuses []AnalysisStatus
}

func (f StatusFilter) Apply(db *gorm.DB) *gorm.DB {
	var (
		dummy = Startup{}
		_     = dummy.AnalysisStatus
	)

	if len(f.Statuses) == 0 {
		return db
	}

	return db.Where("analysis_status IN ?", f.Statuses)
}

// AnalyzedBeforeFilter keeps rows whose analysis status changed before the moment
type AnalyzedBeforeFilter struct {
	Before time.Time
}

func (f AnalyzedBeforeFilter) Apply(db *gorm.DB) *gorm.DB {
	var (
		dummy = Startup{}
		_     = dummy.AnalysisTimestamp
	)

	return db.Where("analysis_timestamp < ?", f.Before)
}
