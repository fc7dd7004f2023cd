package history

import "time"

// Pass is one recorded reconciliation pass.
type Pass struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	DryRun           bool      `json:"dry_run"`
	Started          time.Time `gorm:"index" json:"started"`
	Finished         time.Time `json:"finished"`
	Total            int       `json:"total"`
	Updated          int       `json:"updated"`
	Warned           int       `json:"warned"`
	QueryFailed      int       `json:"query_failed"`
	Current          int       `json:"current"`
	Ahead            int       `json:"ahead"`
	Pending          int       `json:"pending"`
	Skipped          int       `json:"skipped"`
	DescriptorBackup string    `gorm:"size:512" json:"descriptor_backup,omitempty"`
	RecoveryScript   string    `gorm:"size:512" json:"recovery_script,omitempty"`
	Entries          []Entry   `gorm:"foreignKey:PassID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

// TableName overrides the table name used by Pass.
func (Pass) TableName() string {
	return "reconcile_passes"
}

// Entry is the outcome of one dependency leg within a pass.
type Entry struct {
	ID             uint   `gorm:"primaryKey" json:"-"`
	PassID         string `gorm:"size:36;index" json:"-"`
	Coordinate     string `gorm:"size:255;index" json:"coordinate"`
	Source         string `gorm:"size:16" json:"source"`
	Classifier     string `gorm:"size:64" json:"classifier,omitempty"`
	FromVersion    string `gorm:"size:128" json:"from"`
	ToVersion      string `gorm:"size:128" json:"to,omitempty"`
	Classification string `gorm:"size:32" json:"classification,omitempty"`
	State          string `gorm:"size:32" json:"state"`
	Failure        string `gorm:"size:64" json:"failure,omitempty"`
	Message        string `gorm:"type:text" json:"message,omitempty"`
}

// TableName overrides the table name used by Entry.
func (Entry) TableName() string {
	return "reconcile_entries"
}

// StateSkipped marks an entry for an archive that was not found in the library.
const StateSkipped = "skipped"
