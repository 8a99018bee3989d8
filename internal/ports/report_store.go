package ports

import "github.com/drueck/reboot/internal/domain"

// ReportStore persists replay reports for later inspection.
type ReportStore interface {
	SaveReport(report domain.Report) (id string, err error)
}
