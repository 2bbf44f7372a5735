package vocab

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "v1.0.0", p.Version())
	assert.GreaterOrEqual(t, p.Len(), 100)
	assert.Equal(t, []string{"base", "commands", "core", "food"}, p.Categories())

	e, ok := p.Get(1)
	require.True(t, ok)
	assert.Equal(t, "שלום", e.Headword)
	assert.Equal(t, "hello / peace", e.Gloss)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "major version",
			input:   `{"version":"v2.0.0","entries":[]}`,
			wantErr: ErrUnsupportedVersion,
		},
		{
			name: "duplicate id",
			input: `{"version":"v1.1.0","entries":[
				{"id":1,"headword":"a","gloss":"x","category":"core"},
				{"id":1,"headword":"b","gloss":"y","category":"core"}]}`,
			wantErr: ErrDuplicateID,
		},
		{
			name:  "missing gloss",
			input: `{"version":"v1.0.0","entries":[{"id":1,"headword":"a","category":"core"}]}`,
		},
		{
			name:  "not json",
			input: `{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func testPool() *Pool {
	return NewPool("v1.0.0", []Entry{
		{ID: 1, Headword: "קפה", Translit: "kafe", Gloss: "coffee", Category: CategoryFood},
		{ID: 2, Headword: "מים", Translit: "mayim", Gloss: "water", Category: CategoryFood},
		{ID: 3, Headword: "בסיס", Translit: "basis", Gloss: "base (army)", Category: CategoryBase},
		{ID: 4, Headword: "שלום", Translit: "shalom", Gloss: "hello / peace", Category: CategoryCore},
	})
}

func TestPool_Search(t *testing.T) {
	p := testPool()

	assert.Len(t, p.Search(CategoryAll, ""), 4)
	assert.Len(t, p.ByCategory(CategoryFood), 2)

	got := p.Search(CategoryAll, "KAF")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	got = p.Search(CategoryAll, "בסיס")
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)

	assert.Empty(t, p.Search(CategoryBase, "water"))
}

func TestPool_AllIsCopy(t *testing.T) {
	p := testPool()
	all := p.All()
	all[0].Gloss = "changed"

	e, _ := p.Get(1)
	assert.Equal(t, "coffee", e.Gloss)
}
