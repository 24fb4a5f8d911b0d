package models

// ImpactMetrics holds the headline figures shown on the about and donate
// pages. Stored as strings so formats like "120+" are possible.
type ImpactMetrics struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	YouthTrained       string `gorm:"type:varchar(50);default:'120+'" json:"youth_trained"`
	HealthSessions     string `gorm:"type:varchar(50);default:'35'" json:"health_sessions"`
	EnvironmentActions string `gorm:"type:varchar(50);default:'18'" json:"environment_actions"`
	InterventionZones  string `gorm:"type:varchar(50);default:'5'" json:"intervention_zones"`
}

// TableName specifies the table name for the ImpactMetrics model
func (ImpactMetrics) TableName() string {
	return "impact_metrics"
}
