package catalog

import "github.com/autopartsfinder/backend/internal/pkg/spreadsheet"

// Part is an inventory record. PartNumber is the primary key,
// case-sensitive; at most one Part per part number exists at any time.
// Records are replaced wholesale, never partially updated.
type Part struct {
	PartNumber  string  `json:"partNumber"`
	PartName    string  `json:"partName"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	OwnerID     string  `json:"ownerId,omitempty"` // empty means platform-owned
}

// RowError reports why a single uploaded row was rejected. Row numbers
// match the spreadsheet the user is looking at (header on row 1, data
// from row 2).
type RowError struct {
	Row     int             `json:"row"`
	Message string          `json:"message"`
	Data    spreadsheet.Row `json:"data"`
}

// UploadSummary is the per-upload result shown back to the uploader.
// SuccessCount + FailedCount always equals the number of input rows.
type UploadSummary struct {
	SuccessCount int        `json:"successCount"`
	FailedCount  int        `json:"failedCount"`
	Errors       []RowError `json:"errors"`
}
