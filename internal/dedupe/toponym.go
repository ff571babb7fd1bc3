package dedupe

import "go.uber.org/zap"

// fieldVerdict records the contribution of one label to a toponym verdict.
type fieldVerdict struct {
	Label     string
	FieldType FieldType
	Status    DuplicateStatus
	Unmatched bool
}

// toponymAligner aligns two component sets by label and folds the
// per-field verdicts with weakest-link precedence.
type toponymAligner struct {
	fields fieldComparator
	logger *zap.Logger
}

// align returns the per-label verdicts in first-seen order (labels of c1,
// then labels only present in c2).
func (ta toponymAligner) align(c1, c2 ComponentSet, languages LanguageSet, opts Options) []fieldVerdict {
	idx1, idx2 := c1.Index(), c2.Index()
	penaltyRequired, penaltyOptional := opts.UnmatchedPenalties()

	verdicts := make([]fieldVerdict, 0, len(c1)+len(c2))
	visit := func(label string) {
		ft := FieldTypeForLabel(label)
		v1, in1 := idx1[label]
		v2, in2 := idx2[label]
		if in1 && in2 {
			verdicts = append(verdicts, fieldVerdict{
				Label:     label,
				FieldType: ft,
				Status:    ta.fields.compare(ft, v1, v2, languages, opts),
			})
			return
		}
		penalty := penaltyOptional
		if opts.IsRequired(label) {
			penalty = penaltyRequired
		}
		verdicts = append(verdicts, fieldVerdict{Label: label, FieldType: ft, Status: penalty, Unmatched: true})
	}

	for _, c := range c1 {
		visit(c.Label)
	}
	for _, c := range c2 {
		if _, seen := idx1[c.Label]; !seen {
			visit(c.Label)
		}
	}
	return verdicts
}

func (ta toponymAligner) compare(c1, c2 ComponentSet, languages LanguageSet, opts Options) DuplicateStatus {
	if len(c1) == 0 || len(c2) == 0 {
		return NullStatus
	}
	verdicts := ta.align(c1, c2, languages, opts)

	statuses := make([]DuplicateStatus, 0, len(verdicts))
	for _, v := range verdicts {
		statuses = append(statuses, v.Status)
		if ce := ta.logger.Check(zap.DebugLevel, "toponym field verdict"); ce != nil {
			ce.Write(
				zap.String("label", v.Label),
				zap.Stringer("field_type", v.FieldType),
				zap.Stringer("status", v.Status),
				zap.Bool("unmatched", v.Unmatched))
		}
	}
	return WeakestLink(statuses...)
}
