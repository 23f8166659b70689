package nav

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, decl []Entry) *Tree {
	t.Helper()
	tree, _, err := Build(decl, Options{})
	require.NoError(t, err)
	return tree
}

func TestRender_ActivePathExpansion(t *testing.T) {
	tree := mustBuild(t, bookSidebar())

	m := Render(tree, "c01")
	require.True(t, m.HasActive())
	require.Equal(t, "c01", m.Current)
	require.Equal(t, 1, m.ActiveCount())

	for _, g := range m.Items {
		if g.Label == "Chapters" {
			assert.True(t, g.Expanded, "Chapters should be expanded")
			assert.True(t, g.Children[0].Active)
			assert.Equal(t, "01. Crash Course", g.Children[0].Label)
			assert.False(t, g.Children[1].Active)
			continue
		}
		assert.False(t, g.Expanded, "%s should be collapsed", g.Label)
	}
	assert.Equal(t, []string{"Chapters"}, m.Breadcrumb)
}

func TestRender_GracefulMiss(t *testing.T) {
	tree := mustBuild(t, bookSidebar())

	m := Render(tree, "does-not-exist")
	require.False(t, m.HasActive())
	require.Equal(t, 0, m.ActiveCount())
	require.Len(t, m.Items, 4)
	for _, g := range m.Items {
		assert.False(t, g.Expanded)
	}
	assert.Empty(t, m.Breadcrumb)
	assert.Nil(t, m.Prev)
	assert.Nil(t, m.Next)
}

func TestRender_OrderPreservedForAnyTarget(t *testing.T) {
	tree := mustBuild(t, bookSidebar())
	want := []string{"Professional C++ 6th", "Frontmatter", "Chapters", "Appendices"}

	for _, target := range []string{"", "index", "c02", "b01", "nope"} {
		m := Render(tree, target)
		var got []string
		for _, g := range m.Items {
			got = append(got, g.Label)
		}
		require.Equal(t, want, got, "target %q", target)
	}
}

func TestRender_NormalizesCurrentTarget(t *testing.T) {
	tree := mustBuild(t, bookSidebar())
	m := Render(tree, "/C02.md")
	require.Equal(t, "c02", m.Current)
}

func TestRender_Pagination(t *testing.T) {
	tree := mustBuild(t, bookSidebar())

	first := Render(tree, "index")
	assert.Nil(t, first.Prev)
	require.NotNil(t, first.Next)
	assert.Equal(t, PageLink{Label: "Copyright", Target: "f02"}, *first.Next)

	mid := Render(tree, "c01")
	require.NotNil(t, mid.Prev)
	require.NotNil(t, mid.Next)
	assert.Equal(t, "f03", mid.Prev.Target)
	assert.Equal(t, "c02", mid.Next.Target)

	last := Render(tree, "b01")
	require.NotNil(t, last.Prev)
	assert.Equal(t, "c03", last.Prev.Target)
	assert.Nil(t, last.Next)
}

func TestRender_NestedGroupExpansion(t *testing.T) {
	decl := []Entry{
		{Label: "Book", Items: []Entry{
			{Label: "Part I", Items: []Entry{{Label: "Ch 1", Slug: "c01"}}},
			{Label: "Part II", Items: []Entry{{Label: "Ch 2", Slug: "c02"}}},
		}},
		{Label: "Other", Items: []Entry{{Label: "Misc", Slug: "misc"}}},
	}
	tree := mustBuild(t, decl)

	m := Render(tree, "c02")
	book := m.Items[0]
	assert.True(t, book.Expanded)
	assert.False(t, book.Children[0].Expanded)
	assert.True(t, book.Children[1].Expanded)
	assert.True(t, book.Children[1].Children[0].Active)
	assert.False(t, m.Items[1].Expanded)
	assert.Equal(t, []string{"Book", "Part II"}, m.Breadcrumb)
}

func TestRender_NilTree(t *testing.T) {
	m := Render(nil, "c01")
	require.NotNil(t, m.Items)
	require.Empty(t, m.Items)
}

func TestRender_ConcurrentUse(t *testing.T) {
	tree := mustBuild(t, bookSidebar())
	want := Render(tree, "c02")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Render(tree, "c02"))
		}()
	}
	wg.Wait()
}

func TestTree_MarshalJSON(t *testing.T) {
	tree := mustBuild(t, []Entry{
		{Label: "Chapters", Items: []Entry{{Label: "01. Crash Course", Slug: "c01"}}},
	})

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	require.JSONEq(t, `[{"type":"group","label":"Chapters","children":[
		{"type":"link","label":"01. Crash Course","target":"c01"}]}]`, string(data))
}
