package models

import "time"

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ConversionSummary tells the client which download affordances exist
// after a generate request or on the results poll endpoint.
type ConversionSummary struct {
	SinglePDF        bool     `json:"single_pdf"`
	IndividualPDFs   []string `json:"individual_pdfs,omitempty"`
	CompressedImages []string `json:"compressed_images,omitempty"`
}

type HealthCheck struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
