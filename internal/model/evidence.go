package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// SourceKind identifies a family of evidence sources.
type SourceKind string

const (
	KindNews         SourceKind = "news"
	KindPressRelease SourceKind = "press_release"
	KindRegulatory   SourceKind = "regulatory"
)

// CollaborationType is the static classification assigned per source kind.
type CollaborationType string

const (
	CollabPotentialPartnership CollaborationType = "Potential Partnership/Collaboration"
	CollabOfficialAnnouncement CollaborationType = "Official Announcement"
	CollabRegulatoryDisclosure CollaborationType = "Regulatory Disclosure"
)

// ImpactLevel is a coarse significance rating assigned per source kind.
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "Low"
	ImpactMedium ImpactLevel = "Medium"
	ImpactHigh   ImpactLevel = "High"
)

// RawResult is one discovered item from a source adapter, before
// classification. Date is the source's own date string, unparsed.
// DocType is set only by the regulatory adapter (filing form type).
type RawResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
	Date    string `json:"date,omitempty"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	DocType string `json:"doc_type,omitempty"`
}

// EvidenceLink points at one supporting document.
type EvidenceLink struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// EvidenceRecord is the pipeline's output unit: one piece of evidence that
// the subject and counterparty have a business relationship.
type EvidenceRecord struct {
	SubjectCompany    string            `json:"subjectCompany"`
	Counterparty      string            `json:"counterparty"`
	CollaborationType CollaborationType `json:"collaborationType"`
	ImpactLevel       ImpactLevel       `json:"impactLevel"`
	SourceType        string            `json:"sourceType"`
	EvidenceLinks     []EvidenceLink    `json:"evidenceLinks"`
	Notes             string            `json:"notes"`
}

// ResearchRequest is the inbound request from the presentation layer.
type ResearchRequest struct {
	SubjectCompany string          `json:"subjectCompany"`
	Counterparties []string        `json:"counterparties"`
	EnabledSources map[string]bool `json:"enabledSources,omitempty"`
}

// Validate checks the request invariants. Validation failure is the only
// error that is fatal to a research run.
func (r ResearchRequest) Validate() error {
	if r.SubjectCompany == "" {
		return eris.New("research request: subjectCompany is required")
	}
	if len(r.Counterparties) == 0 {
		return eris.New("research request: at least one counterparty is required")
	}
	for _, c := range r.Counterparties {
		if c == "" {
			return eris.New("research request: counterparty names must be non-empty")
		}
	}
	return nil
}

// ResearchResponse is the outbound payload.
type ResearchResponse struct {
	RunID   string           `json:"runId"`
	Results []EvidenceRecord `json:"results"`
}

// ResearchRun is a completed research run, as recorded by the run store.
type ResearchRun struct {
	ID             string           `json:"id"`
	SubjectCompany string           `json:"subject_company"`
	Results        []EvidenceRecord `json:"results"`
	CreatedAt      time.Time        `json:"created_at"`
}
