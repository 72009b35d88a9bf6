// model/report.go
package model

import "time"

type IssueType string

const (
	IssueNoQR                IssueType = "NO_QR"
	IssueBannedContent       IssueType = "BANNED_CONTENT"
	IssueIllegalInstallation IssueType = "ILLEGAL_INSTALLATION"
	IssueStructuralHazard    IssueType = "STRUCTURAL_HAZARD"
)

type ReportStatus string

const (
	ReportPending     ReportStatus = "PENDING"
	ReportReviewed    ReportStatus = "REVIEWED"
	ReportActionTaken ReportStatus = "ACTION_TAKEN"
)

type Report struct {
	ID            int64        `json:"id"`
	Token         *string      `json:"token,omitempty"`
	ReporterPhone string       `json:"reporter_phone"`
	IssueType     IssueType    `json:"issue_type"`
	Description   string       `json:"description"`
	ImageURL      *string      `json:"image_url,omitempty"`
	Status        ReportStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

type ReportStats struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	Reviewed    int64 `json:"reviewed"`
	ActionTaken int64 `json:"action_taken"`
}
