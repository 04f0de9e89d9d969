package exhibition

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curator/internal/artwork"
	"curator/internal/testutil"
)

func TestAddArtwork_Idempotent(t *testing.T) {
	exs := []Exhibition{{ID: "1", Name: "A", Artworks: []artwork.Artwork{}}}

	once := AddArtwork(exs, "1", testutil.StarryNight)
	twice := AddArtwork(once, "1", testutil.StarryNight)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second add changed the list (-once +twice):\n%s", diff)
	}
	assert.Len(t, twice[0].Artworks, 1)
	assert.Empty(t, exs[0].Artworks, "input must not be modified")
}

func TestAddArtwork_SameIDDifferentSource(t *testing.T) {
	aicArt := testutil.StarryNight
	metArt := testutil.WheatField
	metArt.ID = aicArt.ID

	exs := []Exhibition{{ID: "1", Artworks: []artwork.Artwork{}}}
	exs = AddArtwork(exs, "1", aicArt)
	exs = AddArtwork(exs, "1", metArt)

	assert.Len(t, exs[0].Artworks, 2)
}

func TestAddArtwork_OnlyTargetExhibition(t *testing.T) {
	exs := []Exhibition{
		{ID: "1", Artworks: []artwork.Artwork{}},
		{ID: "2", Artworks: []artwork.Artwork{}},
	}

	out := AddArtwork(exs, "2", testutil.WheatField)
	assert.Empty(t, out[0].Artworks)
	assert.Len(t, out[1].Artworks, 1)
}

func TestAddArtwork_EmptyOrUnknownID(t *testing.T) {
	exs := []Exhibition{{ID: "1", Artworks: []artwork.Artwork{}}}

	assert.Equal(t, exs, AddArtwork(exs, "", testutil.StarryNight))
	assert.Equal(t, exs, AddArtwork(exs, "missing", testutil.StarryNight))
}

func TestRemoveArtwork(t *testing.T) {
	exs := []Exhibition{
		{ID: "1", Artworks: []artwork.Artwork{testutil.StarryNight, testutil.WheatField}},
		{ID: "2", Artworks: []artwork.Artwork{testutil.StarryNight}},
	}

	out := RemoveArtwork(exs, "1", testutil.StarryNight.Identity())

	assert.False(t, IsSaved(out, "1", testutil.StarryNight.Identity()))
	assert.True(t, IsSaved(out, "1", testutil.WheatField.Identity()))
	assert.True(t, IsSaved(out, "2", testutil.StarryNight.Identity()), "other exhibitions keep their copy")
	assert.Len(t, exs[0].Artworks, 2, "input must not be modified")
}

func TestIsSaved(t *testing.T) {
	exs := []Exhibition{{ID: "1", Artworks: []artwork.Artwork{testutil.StarryNight}}}

	tests := []struct {
		name string
		id   ID
		art  artwork.Identity
		want bool
	}{
		{name: "saved", id: "1", art: testutil.StarryNight.Identity(), want: true},
		{name: "other source", id: "1", art: artwork.Identity{Source: artwork.SourceMet, ID: testutil.StarryNight.ID}, want: false},
		{name: "empty selection", id: "", art: testutil.StarryNight.Identity(), want: false},
		{name: "unknown exhibition", id: "9", art: testutil.StarryNight.Identity(), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSaved(exs, tt.id, tt.art))
		})
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{in: `"1712345678901"`, want: "1712345678901"},
		{in: `1712345678901`, want: "1712345678901"},
		{in: `"met-1712345678901"`, want: "met-1712345678901"},
	}
	for _, tt := range tests {
		var id ID
		require.NoError(t, json.Unmarshal([]byte(tt.in), &id))
		assert.Equal(t, tt.want, id)
	}

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestExhibition_JSONRoundTrip(t *testing.T) {
	in := []Exhibition{{ID: "42", Name: "Dutch", Artworks: []artwork.Artwork{testutil.StarryNight, testutil.WheatField}}}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out []Exhibition
	require.NoError(t, json.Unmarshal(data, &out))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
