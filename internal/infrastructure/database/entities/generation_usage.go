package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerationUsage is one accounting row per served generation request.
type GenerationUsage struct {
	ID           string          `gorm:"type:varchar(40);primaryKey"`
	GenerationID string          `gorm:"type:varchar(40);index;not null"`
	Model        string          `gorm:"type:varchar(32);index:idx_usage_model_created;not null"`
	Style        string          `gorm:"type:varchar(64)"`
	Quality      string          `gorm:"type:varchar(16)"`
	Width        int             `gorm:"not null"`
	Height       int             `gorm:"not null"`
	Images       int             `gorm:"not null"`
	Steps        int             `gorm:"not null"`
	Guidance     float64         `gorm:"not null"`
	CacheHit     bool            `gorm:"not null;default:false"`
	Cost         decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	DurationMs   int64           `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"index:idx_usage_model_created;not null"`
}

func (GenerationUsage) TableName() string {
	return "generation_usage"
}
