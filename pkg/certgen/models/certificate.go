package models

import "time"

// Certificate describes one generated certificate image.
type Certificate struct {
	// ReferenceNumber identifies the certificate, e.g. COMPLETION_PYTH_B12SMITH_2024_1A2B3C4D.
	ReferenceNumber string `json:"reference_number"`
	// Row is the sheet row the certificate was generated from.
	Row        int    `json:"row"`
	HolderName string `json:"holder_name"`
	Course     string `json:"course"`
	Batch      string `json:"batch"`
	Email      string `json:"email"`
	Template   string `json:"template"`
	// Path is the written image path, relative to the working directory.
	Path string `json:"path"`
	// NameSize is the point size the holder name was fitted at.
	NameSize int `json:"name_size"`
	// Lines is the number of paragraph lines drawn.
	Lines    int       `json:"lines"`
	IssuedAt time.Time `json:"issued_at"`
}

// Manifest is the container written next to the generated images.
type Manifest struct {
	// Table is the workbook file name (no path).
	Table string `json:"table"`
	// Sheet is the sheet the records were read from.
	Sheet        string        `json:"sheet"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Certificates []Certificate `json:"certificates"`
}
