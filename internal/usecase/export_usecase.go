package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
	exportSheet     = "Jobs"
	dateLayout      = "2006-01-02"
)

var exportHeaders = []string{"TITLE", "COMPANY", "STATUS", "DEADLINE", "APPLIED ON", "PORTAL", "STATUS LINK", "CREATED AT"}

// Archiver stores a finished export; pkg/archive.Uploader satisfies it.
type Archiver interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type exportUsecase struct {
	store    domain.JobStore
	archiver Archiver
	now      func() time.Time
}

// NewExportUsecase builds exports. archiver may be nil when no bucket is
// configured.
func NewExportUsecase(store domain.JobStore, archiver Archiver) domain.ExportUsecase {
	return &exportUsecase{store: store, archiver: archiver, now: time.Now}
}

func (u *exportUsecase) Export(ctx context.Context, id domain.Identity, format string, ids []string) ([]byte, string, string, error) {
	var (
		jobs []domain.Job
		err  error
	)
	if len(ids) > 0 {
		jobs, err = u.store.ListByIDs(ctx, id, ids)
	} else {
		jobs, err = u.store.List(ctx, id)
	}
	if err != nil {
		return nil, "", "", storeError(err)
	}

	stamp := u.now().Format("20060102_150405")
	switch format {
	case "xlsx", "":
		data, err := exportExcel(jobs)
		if err != nil {
			return nil, "", "", apperror.Internal(err)
		}
		return data, fmt.Sprintf("jobs_%s.xlsx", stamp), ContentTypeXLSX, nil
	case "csv":
		data, err := exportCSV(jobs)
		if err != nil {
			return nil, "", "", apperror.Internal(err)
		}
		return data, fmt.Sprintf("jobs_%s.csv", stamp), ContentTypeCSV, nil
	default:
		return nil, "", "", apperror.BadRequest(fmt.Sprintf("Unsupported export format: %s", format))
	}
}

func (u *exportUsecase) Archive(ctx context.Context, id domain.Identity) (string, error) {
	if !id.IsAuthenticated() {
		return "", apperror.Forbidden("Sign in with LinkedIn to archive exports")
	}
	if u.archiver == nil {
		return "", apperror.ServiceUnavailable("Export archiving is not configured")
	}

	data, filename, contentType, err := u.Export(ctx, id, "xlsx", nil)
	if err != nil {
		return "", err
	}

	location, err := u.archiver.Put(ctx, fmt.Sprintf("exports/%s/%s", id.AccountID, filename), contentType, data)
	if err != nil {
		return "", apperror.New(502, "Failed to archive export", err)
	}
	return location, nil
}

func exportRow(j domain.Job) []string {
	row := []string{j.Title, j.Company, string(j.Status), "", "", "", "", ""}
	if j.Deadline != nil {
		row[3] = j.Deadline.Format(dateLayout)
	}
	if j.AppliedOn != nil {
		row[4] = j.AppliedOn.Format(dateLayout)
	}
	if j.Portal != nil {
		row[5] = string(*j.Portal)
	}
	if j.StatusLink != nil {
		row[6] = *j.StatusLink
	}
	if !j.CreatedAt.IsZero() {
		row[7] = j.CreatedAt.UTC().Format(time.RFC3339)
	}
	return row
}

func exportExcel(jobs []domain.Job) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheet, "A1", endCell, headerStyle)

	for rowIdx, job := range jobs {
		for colIdx, value := range exportRow(job) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(exportSheet, cell, value)
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheet, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCSV(jobs []domain.Job) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, job := range jobs {
		if err := w.Write(exportRow(job)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
