package webhookrepo

import (
	"context"
	"time"

	"github.com/Swagat003/gov-billboard-portal/model"
)

// ReportEvent is the payload delivered to the municipal intake webhook when
// a citizen files a report.
type ReportEvent struct {
	ReportID      int64     `json:"report_id"`
	Token         *string   `json:"token,omitempty"`
	IssueType     string    `json:"issue_type"`
	Description   string    `json:"description"`
	ReporterPhone string    `json:"reporter_phone"`
	CreatedAt     time.Time `json:"created_at"`
}

type Repo interface {
	NotifyReport(ctx context.Context, rep *model.Report) error
}

// EventFromReport shapes the outbound payload.
func EventFromReport(rep *model.Report) ReportEvent {
	return ReportEvent{
		ReportID:      rep.ID,
		Token:         rep.Token,
		IssueType:     string(rep.IssueType),
		Description:   rep.Description,
		ReporterPhone: rep.ReporterPhone,
		CreatedAt:     rep.CreatedAt,
	}
}
