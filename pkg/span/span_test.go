package span_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcst/pkg/block"
	"github.com/yaklabco/mdcst/pkg/span"
)

func parse(t *testing.T, source string) *block.DocumentBlock {
	t.Helper()

	doc, err := block.ParseDocument(source)
	require.NoError(t, err)
	return doc
}

func TestFrontmatterItems(t *testing.T) {
	t.Parallel()

	doc := parse(t, "---\ntitle: x\ntags:\n- a\ndraft: true\n---\nbody\n")
	items := span.FrontmatterItems(doc)
	require.Equal(t, 3, items.Len())

	assert.True(t, items.Has(span.Key("tags")))
	assert.False(t, items.Has(span.Key("missing")))

	item, ok := items.Find(span.Key("draft"))
	require.True(t, ok)
	assert.Equal(t, true, item.Value())

	matches := items.FindAll(span.KeyMatch(regexp.MustCompile(`^t`)))
	assert.Len(t, matches, 2)

	require.NoError(t, items.RemoveSingle(span.Key("tags")))
	assert.Equal(t, 2, items.Len())
	assert.Equal(t, "---\ntitle: x\ndraft: true\n---\nbody\n", doc.String())
}

func TestFrontmatterItems_NoFrontmatter(t *testing.T) {
	t.Parallel()

	items := span.FrontmatterItems(parse(t, "# Title\n"))
	assert.Equal(t, 0, items.Len())
}

func TestSingle_QueryError(t *testing.T) {
	t.Parallel()

	doc := parse(t, "- a\n- b\n- a\n")
	items := span.ListItems(doc.Statement())

	_, err := items.Single(span.Key("a"))
	var qe *span.QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, 2, qe.Count)
	assert.Contains(t, qe.Error(), "2 blocks match")

	_, err = items.Single(span.Key("z"))
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, 0, qe.Count)
	assert.Contains(t, qe.Error(), "no block matches")

	err = items.RemoveSingle(span.Key("a"))
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "- a\n- b\n- a\n", doc.String())
}

func TestRemove_AllMatches(t *testing.T) {
	t.Parallel()

	doc := parse(t, "1. a\n2. b\n3. a\n")
	items := span.ListItems(doc.Statement())

	n, err := items.Remove(span.Key("a"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, items.Len())
	assert.Equal(t, "1. b\n", doc.String())
}

func TestRemove_NestedItems(t *testing.T) {
	t.Parallel()

	doc := parse(t, "- x\n\t- x\n- y\n")
	items := span.ListItems(doc.Statement())
	require.Equal(t, 3, items.Len())

	n, err := items.Remove(span.Key("x"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "- y\n", doc.String())
}

func TestRemoveBlockFromSpan_LeavesTree(t *testing.T) {
	t.Parallel()

	doc := parse(t, "see [[A]] and [[B]]\n")
	links := span.Links(doc.Statement())
	require.Equal(t, 2, links.Len())

	first := links.Blocks()[0]
	assert.True(t, links.RemoveBlockFromSpan(first))
	assert.False(t, links.RemoveBlockFromSpan(first))
	assert.Equal(t, "see [[A]] and [[B]]\n", doc.String())

	require.ErrorIs(t, links.RemoveBlock(first), block.ErrNotAttached)

	second := links.Blocks()[0]
	require.NoError(t, links.RemoveBlock(second))
	assert.Equal(t, 0, links.Len())
	assert.Equal(t, "see [[A]] and \n", doc.String())
}

func TestFunc(t *testing.T) {
	t.Parallel()

	doc := parse(t, "- [ ] open\n- [x] closed\n- plain\n")
	items := span.ListItems(doc.Statement())

	checked := items.FindAll(span.Func(func(item *block.ListItemBlock) bool { return item.Checked() }))
	require.Len(t, checked, 1)
	assert.Equal(t, "closed", checked[0].Text())

	wrongType := span.Func(func(*block.TagBlock) bool { return true })
	assert.False(t, items.Has(wrongType))
}

func TestKey_NFC(t *testing.T) {
	t.Parallel()

	// The source spells the key with a combining diaeresis.
	doc := parse(t, "---\nnai\u0308ve: yes\n---\n")
	items := span.FrontmatterItems(doc)

	assert.True(t, items.Has(span.Key("na\u00efve")))
	assert.False(t, items.Has(span.Key("naive")))
}

func TestGatherers(t *testing.T) {
	t.Parallel()

	doc := parse(t, "# A\n\n#tag\nkey:: v\n\n```go\nx\n```\n\n| h |\n|---|\n\n## B\n")
	root := doc.Statement()

	assert.Equal(t, 2, span.Headings(doc).Len())
	assert.Equal(t, 1, span.Tags(root).Len())
	assert.Equal(t, 1, span.MetadataItems(root).Len())
	assert.Equal(t, 1, span.Tables(root).Len())

	code := span.CodeBlocks(root)
	require.Equal(t, 1, code.Len())
	assert.True(t, code.Has(span.Key("go")))

	headings := span.Headings(doc)
	require.NoError(t, headings.RemoveSingle(span.Key("B")))
	assert.Equal(t, "# A\n\n#tag\nkey:: v\n\n```go\nx\n```\n\n| h |\n|---|\n\n", doc.String())
}

const treeSource = "# A\na:: 1\n\n## AA\naa:: 2\n\n### AAA\naaa:: 3\n\n# B\nb:: 4\n"

func TestMetadataTree_RemoveSection(t *testing.T) {
	t.Parallel()

	doc := parse(t, treeSource)
	tree := span.MetadataTree(doc)
	require.Equal(t, 8, tree.Len())
	assert.Len(t, tree.Sections(), 4)
	assert.Len(t, tree.Items(), 4)

	n, err := tree.Remove("B")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "# A\na:: 1\n\n## AA\naa:: 2\n\n### AAA\naaa:: 3\n\n", doc.String())

	n, err = tree.Remove("AA")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "# A\na:: 1\n\n", doc.String())
	assert.Equal(t, 2, tree.Len())
}

func TestMetadataTree_RemoveItem(t *testing.T) {
	t.Parallel()

	doc := parse(t, treeSource)
	tree := span.MetadataTree(doc)

	n, err := tree.Remove("aa")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "# A\na:: 1\n\n## AA\n### AAA\naaa:: 3\n\n# B\nb:: 4\n", doc.String())
}

func TestMetadataTree_Under(t *testing.T) {
	t.Parallel()

	tree := span.MetadataTree(parse(t, treeSource))

	under := tree.Under("AA")
	require.Len(t, under, 3)
	keys := make([]string, 0, len(under))
	for _, b := range under {
		key, ok := span.KeyOf(b)
		require.True(t, ok)
		keys = append(keys, key)
	}
	assert.Equal(t, []string{"aa", "AAA", "aaa"}, keys)

	assert.Nil(t, tree.Under("missing"))
}
