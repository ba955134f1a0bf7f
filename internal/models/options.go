package models

import "fmt"

type PDFMode string

const (
	ModeSinglePDF      PDFMode = "single"
	ModeIndividualPDFs PDFMode = "individual"
)

const (
	DefaultRatioPercent = 70
	DefaultQuality      = 50

	MinRatioPercent = 10
	MaxRatioPercent = 100
	MinQuality      = 10
	MaxQuality      = 100
)

// ConversionOptions are supplied per generate request. Ratio and quality
// only matter when Compress is set; they are carried regardless so the
// session state can record the exact options of the last run.
type ConversionOptions struct {
	Compress     bool    `json:"compress"`
	RatioPercent int     `json:"ratio_percent"`
	Quality      int     `json:"quality"`
	Mode         PDFMode `json:"mode"`
}

func DefaultOptions() ConversionOptions {
	return ConversionOptions{
		Compress:     false,
		RatioPercent: DefaultRatioPercent,
		Quality:      DefaultQuality,
		Mode:         ModeSinglePDF,
	}
}

func (o ConversionOptions) Validate() error {
	if o.RatioPercent < MinRatioPercent || o.RatioPercent > MaxRatioPercent {
		return fmt.Errorf("ratio must be between %d and %d, got %d", MinRatioPercent, MaxRatioPercent, o.RatioPercent)
	}
	if o.Quality < MinQuality || o.Quality > MaxQuality {
		return fmt.Errorf("quality must be between %d and %d, got %d", MinQuality, MaxQuality, o.Quality)
	}
	if !o.Mode.Valid() {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeSinglePDF, ModeIndividualPDFs, o.Mode)
	}
	return nil
}

func (m PDFMode) Valid() bool {
	return m == ModeSinglePDF || m == ModeIndividualPDFs
}
