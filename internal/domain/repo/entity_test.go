package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFormatStarCount(t *testing.T) {
	cases := map[int]string{
		0:     "0",
		7:     "7",
		999:   "999",
		1000:  "1.0k",
		1200:  "1.2k",
		15321: "15.3k",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatStarCount(in), "count %d", in)
	}
}

func TestTotalStars(t *testing.T) {
	repos := []Repository{
		{Name: "a", StargazersCount: 700},
		{Name: "b", StargazersCount: 500},
		{Name: "c", StargazersCount: -3},
	}
	assert.Equal(t, 1200, TotalStars(repos))
	assert.Equal(t, "1.2k", FormatStarCount(TotalStars(repos)))
	assert.Equal(t, 0, TotalStars(nil))
}

func TestSortByStars_StableAndCopy(t *testing.T) {
	in := []Repository{
		{Name: "low", StargazersCount: 1},
		{Name: "tie-1", StargazersCount: 5},
		{Name: "tie-2", StargazersCount: 5},
		{Name: "high", StargazersCount: 9},
	}
	out := SortByStars(in)

	names := make([]string, 0, len(out))
	for _, r := range out {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"high", "tie-1", "tie-2", "low"}, names)
	assert.Equal(t, "low", in[0].Name)
}

func TestAPIURL(t *testing.T) {
	got, err := APIURL("https://github.com/anugrahk21/Project-Cerberus", "https://api.github.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/repos/anugrahk21/Project-Cerberus", got)

	got, err = APIURL("https://github.com/owner/name/tree/main/P1", "http://127.0.0.1:9999")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999/repos/owner/name", got)

	_, err = APIURL("https://gitlab.com/owner/name", "https://api.github.com")
	assert.Error(t, err)
	_, err = APIURL("https://github.com/owner", "https://api.github.com")
	assert.Error(t, err)
}

func TestNameFromURL(t *testing.T) {
	assert.Equal(t, "Cyber-Projects", NameFromURL("https://github.com/anugrahk21/Cyber-Projects"))
	assert.Equal(t, "", NameFromURL("https://github.com/"))
}

func TestMerge(t *testing.T) {
	seed := Repository{
		Name:        "Project-Cerberus",
		HTMLURL:     "https://github.com/anugrahk21/Project-Cerberus",
		Description: strPtr("static description"),
		Language:    strPtr("Python"),
		Topics:      []string{"security"},
	}
	fresh := Repository{
		ID:              42,
		StargazersCount: 12,
		ForksCount:      3,
		Description:     strPtr(""),
		Language:        strPtr("Go"),
		Topics:          []string{"ignored"},
	}

	out := Merge(seed, fresh)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, 12, out.StargazersCount)
	assert.Equal(t, 3, out.ForksCount)
	assert.Equal(t, "static description", *out.Description)
	assert.Equal(t, "Go", *out.Language)
	assert.Equal(t, []string{"security"}, out.Topics)
	assert.Equal(t, DataSourceAPI, out.DataSource)
	assert.True(t, out.Highlighted())
}
