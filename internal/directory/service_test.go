package directory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commtrace-dev/commtrace/internal/model"
)

func TestMerge_NewContact(t *testing.T) {
	out := Merge(nil, model.Contact{Name: "Bob", Phone: "1"}, PolicySkip)
	require.Len(t, out, 1)
}

func TestMerge_Replace(t *testing.T) {
	contacts := []model.Contact{
		{Name: "Bob", Phone: "1"},
		{Name: "Alice", Phone: "2"},
	}

	out := Merge(contacts, model.Contact{Name: "Bobby", Phone: "1"}, PolicyReplace)
	require.Len(t, out, 2)
	assert.Equal(t, "Bobby", out[0].Name)
	assert.Equal(t, "Bob", contacts[0].Name, "input slice is not mutated")
}

func TestMerge_KeepBoth(t *testing.T) {
	contacts := []model.Contact{{Name: "Bob", Phone: "1"}}

	out := Merge(contacts, model.Contact{Name: "Bob", Phone: "1"}, PolicyKeepBoth)
	require.Len(t, out, 2)
	assert.Equal(t, "Bob (2)", out[1].Name)

	out = Merge(out, model.Contact{Name: "Bob", Phone: "1"}, PolicyKeepBoth)
	require.Len(t, out, 3)
	assert.Equal(t, "Bob (3)", out[2].Name)
}

func TestMerge_Skip(t *testing.T) {
	contacts := []model.Contact{{Name: "Bob", Phone: "1"}}

	out := Merge(contacts, model.Contact{Name: "Bobby", Phone: "1"}, PolicySkip)
	require.Len(t, out, 1)
	assert.Equal(t, "Bob", out[0].Name)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("keep-both")
	require.NoError(t, err)
	assert.Equal(t, PolicyKeepBoth, p)

	_, err = ParsePolicy("merge")
	require.Error(t, err)
}

func TestService_SaveLoad(t *testing.T) {
	svc := NewService(nil)
	svc.Add(model.Contact{Name: "Bob", Phone: "+15550100"}, PolicyReplace)
	svc.Add(model.Contact{Name: "Alice", Phone: "+15550101", FullName: "Alice B. Smith"}, PolicyReplace)

	path := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, svc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.All(), 2)

	c, ok := loaded.Get("+15550101")
	require.True(t, ok)
	assert.Equal(t, "Alice", c.Name)
	assert.Equal(t, "Alice B. Smith", c.FullName)
}

func TestReadContacts_RejectsIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	svc := NewService([]model.Contact{{Name: "Bob", Phone: "1"}})
	require.NoError(t, svc.Save(path))

	// A row without a phone fails the load.
	bad := NewService([]model.Contact{{Name: "NoPhone"}})
	require.NoError(t, bad.Save(path))
	_, err := Load(path)
	require.Error(t, err)
}
