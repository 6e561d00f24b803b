package handlers

import (
	"lexcite/internal/models"
	"lexcite/pkg/citation"
	"lexcite/pkg/citation/model"
)

// toOptions turns the wire-friendly ExtractOptions into citation.Options.
func toOptions(o *models.ExtractOptions) citation.Options {
	if o == nil {
		return citation.Options{}
	}
	steps := make([]model.CleanStep, 0, len(o.CleanSteps))
	for _, s := range o.CleanSteps {
		steps = append(steps, model.CleanStep(s))
	}
	return citation.Options{
		RemoveAmbiguous: o.RemoveAmbiguous,
		CleanSteps:      steps,
		MergeReferences: o.MergeReferences,
	}
}

// toCitationDTO flattens a model.Citation into its wire representation.
func toCitationDTO(c model.Citation) *models.CitationDTO {
	meta := c.Metadata()
	start, end := c.Span()

	caseName := meta.ResolvedCaseName
	if caseName == "" && meta.Plaintiff != "" && meta.Defendant != "" {
		caseName = meta.Plaintiff + " v. " + meta.Defendant
	}

	return &models.CitationDTO{
		Variant:     c.Variant().String(),
		MatchedText: c.MatchedText(),
		SpanStart:   start,
		SpanEnd:     end,
		Volume:      meta.Volume,
		Reporter:    meta.Reporter,
		Page:        meta.Page,
		Court:       meta.Court,
		Year:        meta.Year,
		PinCite:     meta.PinCite,
		Plaintiff:   meta.Plaintiff,
		Defendant:   meta.Defendant,
		CaseName:    caseName,
		Warnings:    meta.Warnings,
	}
}

// toCitationDTOs converts a whole model.List, preserving order.
func toCitationDTOs(cites model.List) []*models.CitationDTO {
	out := make([]*models.CitationDTO, 0, len(cites))
	for _, c := range cites {
		out = append(out, toCitationDTO(c))
	}
	return out
}
