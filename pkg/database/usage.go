package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UsageDelta is what one planner request adds to a key's daily usage row
type UsageDelta struct {
	Subjects int
	Days     int
	Minutes  int
}

// RecordUsage adds one request to the (key, date) row with a single upsert,
// which both postgres and sqlite support.
func RecordUsage(db *gorm.DB, keyID uint, date string, d UsageDelta) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":  gorm.Expr("request_count + ?", 1),
			"total_subjects": gorm.Expr("total_subjects + ?", d.Subjects),
			"total_days":     gorm.Expr("total_days + ?", d.Days),
			"total_minutes":  gorm.Expr("total_minutes + ?", d.Minutes),
		}),
	}).Create(&APIUsage{
		KeyID:         keyID,
		Date:          date,
		RequestCount:  1,
		TotalSubjects: d.Subjects,
		TotalDays:     d.Days,
		TotalMinutes:  d.Minutes,
	}).Error
}

// RecentUsage returns the newest rows for a key, at most limit of them
func RecentUsage(db *gorm.DB, keyID uint, limit int) ([]APIUsage, error) {
	var usage []APIUsage
	err := db.Where("key_id = ?", keyID).Order("date desc").Limit(limit).Find(&usage).Error
	return usage, err
}
