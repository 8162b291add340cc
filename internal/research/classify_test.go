package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/collab-radar/internal/model"
)

func TestClassifyNews(t *testing.T) {
	results := []model.RawResult{{
		Title:   "Acme and Globex team up",
		Snippet: "a new partnership on widgets",
		Date:    "2 days ago",
		URL:     "https://news.test/1",
		Source:  "Google News",
	}}

	records := Classify("Acme", "Globex", model.KindNews, results)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Acme", rec.SubjectCompany)
	assert.Equal(t, "Globex", rec.Counterparty)
	assert.Equal(t, model.CollabPotentialPartnership, rec.CollaborationType)
	assert.Equal(t, model.ImpactMedium, rec.ImpactLevel)
	assert.Equal(t, "News Article", rec.SourceType)
	assert.Equal(t, `Found in news: "a new partnership on widgets"`, rec.Notes)

	require.Len(t, rec.EvidenceLinks, 1)
	assert.Equal(t, "https://news.test/1", rec.EvidenceLinks[0].URL)
	assert.Equal(t, "Google News", rec.EvidenceLinks[0].Source)
	assert.Equal(t, "2 days ago", rec.EvidenceLinks[0].Date)
}

func TestClassifyPressRelease(t *testing.T) {
	results := []model.RawResult{{
		Title:  "Acme Announces Strategic Alliance With Globex",
		URL:    "https://pr.test/1",
		Source: "PR Newswire",
	}}

	records := Classify("Acme", "Globex", model.KindPressRelease, results)
	require.Len(t, records, 1)
	assert.Equal(t, model.CollabOfficialAnnouncement, records[0].CollaborationType)
	assert.Equal(t, model.ImpactHigh, records[0].ImpactLevel)
	assert.Equal(t, "Press Release", records[0].SourceType)
	assert.Equal(t, `Found in press release: "Acme Announces Strategic Alliance With Globex"`, records[0].Notes)
}

func TestClassifyRegulatory(t *testing.T) {
	results := []model.RawResult{{
		Title:   "10-K Filing",
		Snippet: "...supply agreement with Globex Corp covering...",
		Date:    "2025-02-10",
		URL:     "https://www.sec.gov/Archives/edgar/data/1/x-index.htm",
		Source:  "SEC EDGAR",
		DocType: "10-K",
	}}

	records := Classify("Acme", "Globex", model.KindRegulatory, results)
	require.Len(t, records, 1)
	assert.Equal(t, model.CollabRegulatoryDisclosure, records[0].CollaborationType)
	assert.Equal(t, model.ImpactHigh, records[0].ImpactLevel)
	assert.Equal(t, "Financial Filing (SEC)", records[0].SourceType)
	assert.Equal(t, "Found in filing (10-K): ...supply agreement with Globex Corp covering...", records[0].Notes)
}

func TestClassifyEmpty(t *testing.T) {
	assert.Nil(t, Classify("Acme", "Globex", model.KindNews, nil))
	assert.Nil(t, Classify("Acme", "Globex", model.SourceKind("bogus"), []model.RawResult{{}}))
}
