package catalog

import (
	"context"
	"regexp"
	"strconv"

	"github.com/autopartsfinder/backend/internal/monitoring"
	"github.com/autopartsfinder/backend/internal/pkg/spreadsheet"
)

// Spreadsheet column headers. Rows are mapped by header name, never by
// column position.
const (
	colPartNumber  = "Part Number"
	colPartName    = "Part Name"
	colMake        = "Make"
	colModel       = "Model"
	colYear        = "Year"
	colPrice       = "Price"
	colStock       = "Stock"
	colDescription = "Description"
	colOwnerID     = "Owner ID"
)

// headerRowOffset maps a 0-based data row index to the row number the
// uploader sees in their spreadsheet (row 1 is the header).
const headerRowOffset = 2

// nonNumeric strips currency symbols, commas and other noise from
// price cells before parsing.
var nonNumeric = regexp.MustCompile(`[^0-9.]+`)

// Merge turns raw rows into validated parts and merges them into the
// catalog. Per row it is all-or-nothing; across rows partial success
// is expected and reported, never an error. Later rows silently win
// over earlier rows with the same part number, and parts absent from
// the batch are preserved unchanged.
func (s *service) Merge(ctx context.Context, rows []spreadsheet.Row, actingOwnerID string) (*UploadSummary, error) {
	summary := &UploadSummary{Errors: []RowError{}}

	staged := make(map[string]int) // part number -> index into batch
	batch := make([]Part, 0, len(rows))

	for i, row := range rows {
		part, rowErr := validateRow(row)
		if rowErr != "" {
			summary.FailedCount++
			summary.Errors = append(summary.Errors, RowError{
				Row:     i + headerRowOffset,
				Message: rowErr,
				Data:    row,
			})
			continue
		}

		if actingOwnerID != "" {
			part.OwnerID = actingOwnerID
		}

		if j, ok := staged[part.PartNumber]; ok {
			batch[j] = part
		} else {
			staged[part.PartNumber] = len(batch)
			batch = append(batch, part)
		}
		summary.SuccessCount++
	}

	if err := s.repo.UpsertAll(ctx, batch); err != nil {
		return nil, err
	}
	s.updateGauge(ctx)
	monitoring.RecordUploadOutcome(summary.SuccessCount, summary.FailedCount)
	return summary, nil
}

func validateRow(row spreadsheet.Row) (Part, string) {
	partNumber := row.Get(colPartNumber)
	partName := row.Get(colPartName)
	partMake := row.Get(colMake)
	model := row.Get(colModel)
	year := row.Get(colYear)
	price := row.Get(colPrice)
	stock := row.Get(colStock)

	if partNumber == "" || partName == "" || partMake == "" || model == "" ||
		year == "" || price == "" || stock == "" {
		return Part{}, "Missing required fields."
	}

	cleanPrice, priceErr := strconv.ParseFloat(nonNumeric.ReplaceAllString(price, ""), 64)
	cleanYear, yearErr := strconv.ParseFloat(year, 64)
	cleanStock, stockErr := strconv.ParseFloat(stock, 64)
	if priceErr != nil || yearErr != nil || stockErr != nil {
		return Part{}, "Year, Price, and Stock must be valid numbers."
	}

	return Part{
		PartNumber:  partNumber,
		PartName:    partName,
		Make:        partMake,
		Model:       model,
		Year:        int(cleanYear),
		Price:       cleanPrice,
		Stock:       int(cleanStock),
		Description: row.Get(colDescription),
		OwnerID:     row.Get(colOwnerID),
	}, ""
}
