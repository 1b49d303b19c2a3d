package proposal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "draft.yml")

	state := State{
		ProjectTitle:     "Weaving Futures",
		OrganizationName: "Riverbend Co-op",
		ExecutiveSummary: "A community-owned crafts enterprise.",
		Milestones: [4]Milestone{
			{Name: "Launch", Date: "2026-03"},
		},
		CommunityDocs: []Document{
			{Name: "charter.pdf", Path: "/tmp/charter.pdf", Size: 1234},
		},
	}
	require.NoError(t, SaveDraft(path, state))
	assert.True(t, DraftExists(path))

	loaded, err := LoadDraft(path)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestLoadDraftMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-draft.yml")

	state, err := LoadDraft(path)
	require.NoError(t, err, "a missing draft is a fresh session, not an error")
	assert.Equal(t, State{}, state)
	assert.False(t, DraftExists(path))
}

func TestLoadDraftMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.yml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0644))

	_, err := LoadDraft(path)
	assert.Error(t, err)
}
