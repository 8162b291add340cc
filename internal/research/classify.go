package research

import (
	"fmt"

	"github.com/sells-group/collab-radar/internal/model"
)

// classification is the static label set assigned to every result from a
// source kind. Confidence comes from the source family, not the content:
// press releases and filings are authoritative, scraped news is not.
type classification struct {
	collabType model.CollaborationType
	impact     model.ImpactLevel
	sourceType string
}

var classifications = map[model.SourceKind]classification{
	model.KindNews: {
		collabType: model.CollabPotentialPartnership,
		impact:     model.ImpactMedium,
		sourceType: "News Article",
	},
	model.KindPressRelease: {
		collabType: model.CollabOfficialAnnouncement,
		impact:     model.ImpactHigh,
		sourceType: "Press Release",
	},
	model.KindRegulatory: {
		collabType: model.CollabRegulatoryDisclosure,
		impact:     model.ImpactHigh,
		sourceType: "Financial Filing (SEC)",
	},
}

// Classify turns a source's raw results into evidence records, one per
// result, carrying the kind's static classification and a note describing
// where the evidence was found.
func Classify(subject, counterparty string, kind model.SourceKind, results []model.RawResult) []model.EvidenceRecord {
	cls, ok := classifications[kind]
	if !ok || len(results) == 0 {
		return nil
	}

	records := make([]model.EvidenceRecord, 0, len(results))
	for _, r := range results {
		records = append(records, model.EvidenceRecord{
			SubjectCompany:    subject,
			Counterparty:      counterparty,
			CollaborationType: cls.collabType,
			ImpactLevel:       cls.impact,
			SourceType:        cls.sourceType,
			EvidenceLinks: []model.EvidenceLink{{
				URL:    r.URL,
				Title:  r.Title,
				Source: r.Source,
				Date:   r.Date,
			}},
			Notes: buildNote(kind, r),
		})
	}
	return records
}

func buildNote(kind model.SourceKind, r model.RawResult) string {
	switch kind {
	case model.KindNews:
		return fmt.Sprintf(`Found in news: "%s"`, r.Snippet)
	case model.KindPressRelease:
		return fmt.Sprintf(`Found in press release: "%s"`, r.Title)
	case model.KindRegulatory:
		return fmt.Sprintf("Found in filing (%s): %s", r.DocType, r.Snippet)
	}
	return ""
}
