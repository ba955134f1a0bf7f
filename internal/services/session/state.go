// Package session holds the per-session result state: the artifacts of
// the most recent conversion run and the rules for when they go stale.
package session

import (
	"github.com/yourusername/image2pdf/internal/models"
	"github.com/yourusername/image2pdf/internal/services/convert"
)

// State is one session's result cell. It holds at most one generation
// of outputs at a time. The zero value is the empty state.
type State struct {
	LastOptions      *models.ConversionOptions `json:"last_options,omitempty"`
	SinglePDF        []byte                    `json:"single_pdf,omitempty"`
	IndividualPDFs   []convert.Artifact        `json:"individual_pdfs,omitempty"`
	CompressedImages []convert.Artifact        `json:"compressed_images,omitempty"`
}

// RecordRun replaces the held generation with the outputs of a
// successful run and remembers the options it ran with.
func (s *State) RecordRun(opts models.ConversionOptions, result *convert.Result) {
	recorded := opts
	s.LastOptions = &recorded
	s.SinglePDF = result.SinglePDF
	s.IndividualPDFs = result.IndividualPDFs
	s.CompressedImages = result.CompressedImages
}

// InvalidateIfOptionsChanged clears the held generation when a watched
// option differs from the last recorded run. Only compress and mode are
// watched; ratio and quality changes leave results in place until the
// next run overwrites them. Reports whether results were cleared.
//
// This must run before every generate attempt, triggered or not, so a
// stale generation is never exposed under changed watched options.
func (s *State) InvalidateIfOptionsChanged(opts models.ConversionOptions) bool {
	if s.LastOptions == nil {
		return false
	}
	if s.LastOptions.Compress == opts.Compress && s.LastOptions.Mode == opts.Mode {
		return false
	}

	s.SinglePDF = nil
	s.IndividualPDFs = nil
	s.CompressedImages = nil

	recorded := opts
	s.LastOptions = &recorded
	return true
}

func (s *State) HasSinglePDF() bool {
	return len(s.SinglePDF) > 0
}

func (s *State) HasIndividualPDFs() bool {
	return len(s.IndividualPDFs) > 0
}

func (s *State) HasCompressedImages() bool {
	return len(s.CompressedImages) > 0
}

// Summary lists the download affordances the current generation offers.
func (s *State) Summary() models.ConversionSummary {
	summary := models.ConversionSummary{
		SinglePDF: s.HasSinglePDF(),
	}
	for _, pdf := range s.IndividualPDFs {
		summary.IndividualPDFs = append(summary.IndividualPDFs, pdf.BaseName+".pdf")
	}
	for _, img := range s.CompressedImages {
		summary.CompressedImages = append(summary.CompressedImages, img.BaseName+".jpg")
	}
	return summary
}
