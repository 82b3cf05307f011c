package block_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcst/pkg/block"
	"github.com/yaklabco/mdcst/pkg/mdast"
	"github.com/yaklabco/mdcst/pkg/parser"
)

// reparse asserts that s parses back to the same text.
func reparse(t *testing.T, s string) *mdast.Document {
	t.Helper()

	doc, err := parser.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, s, doc.String())
	return doc
}

func TestCreateFrontmatter(t *testing.T) {
	t.Parallel()

	fm, err := block.CreateFrontmatter([]block.Entry{
		{Key: "foo", Value: "bar"},
		{Key: "tags", Value: []string{"a", "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "---\nfoo: bar\ntags:\n- a\n- b\n---", fm.String())

	assert.Equal(t, []string{"foo", "tags"}, fm.Keys())

	v, ok := fm.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "bar", v)

	v, ok = fm.Get("tags")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestCreateFrontmatter_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "hello", "k: hello\n"},
		{"bool", true, "k: true\n"},
		{"int", 3, "k: 3\n"},
		{"float", 1.5, "k: 1.5\n"},
		{"string looks like bool", "true", "k: \"true\"\n"},
		{"empty string", "", "k: \"\"\n"},
		{"nil", nil, "k:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item, err := block.CreateFrontmatterItem("k", tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, item.String())
			assert.Equal(t, tt.value, item.Value())
		})
	}
}

func TestCreateFrontmatter_InvalidKey(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", " padded", "a: b", "-dash", "line\nbreak"} {
		_, err := block.CreateFrontmatterItem(key, "v")
		require.ErrorIs(t, err, block.ErrInvalidValue, key)
	}
}

func TestFrontmatter_Mutations(t *testing.T) {
	t.Parallel()

	doc, err := block.ParseDocument("---\ntitle: a\ndraft: true\n---\n# H\n")
	require.NoError(t, err)

	fm, ok := doc.Frontmatter()
	require.True(t, ok)

	require.NoError(t, fm.Set("title", "b"))
	assert.Equal(t, "---\ntitle: b\ndraft: true\n---\n# H\n", doc.String())

	assert.True(t, fm.Remove("draft"))
	assert.False(t, fm.Remove("draft"))
	assert.Equal(t, "---\ntitle: b\n---\n# H\n", doc.String())

	require.NoError(t, fm.Set("n", 3))
	assert.Equal(t, "---\ntitle: b\nn: 3\n---\n# H\n", doc.String())

	require.NoError(t, fm.Set("tags", []string{"x"}))
	assert.Equal(t, "---\ntitle: b\nn: 3\ntags:\n- x\n---\n# H\n", doc.String())

	reparse(t, doc.String())
}

func TestFrontmatterItem_ListConversion(t *testing.T) {
	t.Parallel()

	fm, err := block.CreateFrontmatter([]block.Entry{{Key: "tags", Value: "one"}})
	require.NoError(t, err)

	item, ok := fm.Item("tags")
	require.True(t, ok)

	require.NoError(t, item.ToList())
	assert.True(t, item.IsList())
	assert.Equal(t, "---\ntags:\n- one\n---", fm.String())

	l, ok := item.List()
	require.True(t, ok)
	extra, err := block.CreateListItem("two words")
	require.NoError(t, err)
	require.NoError(t, l.Append(extra))
	assert.Equal(t, []string{"one", "two words"}, item.Value())

	require.NoError(t, item.ToScalar())
	assert.False(t, item.IsList())
	assert.Equal(t, "one, two words", item.Value())
}

func TestFrontmatter_BlankLineLists(t *testing.T) {
	t.Parallel()

	doc, err := block.ParseDocument("---\nfoo: bar\n\ntags:\n- a\n\n- b\n---\nbody\n")
	require.NoError(t, err)
	fm, ok := doc.Frontmatter()
	require.True(t, ok)

	v, ok := fm.Get("tags")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)

	item, ok := fm.Item("tags")
	require.True(t, ok)
	l, ok := item.List()
	require.True(t, ok)
	assert.Equal(t, 2, l.Len())

	second, err := l.Item(1)
	require.NoError(t, err)
	assert.Equal(t, "b", second.Text())

	extra, err := block.CreateListItem("c")
	require.NoError(t, err)
	require.NoError(t, l.Insert(1, extra))
	assert.Equal(t, "---\nfoo: bar\n\ntags:\n- a\n\n- c\n- b\n---\nbody\n", doc.String())

	require.NoError(t, l.Remove(2))
	assert.Equal(t, "---\nfoo: bar\n\ntags:\n- a\n\n- c\n---\nbody\n", doc.String())
	assert.Equal(t, []string{"a", "c"}, item.Value())

	require.NoError(t, l.Remove(0))
	assert.Equal(t, "---\nfoo: bar\n\ntags:\n- c\n---\nbody\n", doc.String())
	reparse(t, doc.String())
}

func TestFrontmatter_EmptiedListDetaches(t *testing.T) {
	t.Parallel()

	doc, err := block.ParseDocument("---\ntags:\n\n- a\n---\n")
	require.NoError(t, err)
	fm, ok := doc.Frontmatter()
	require.True(t, ok)
	item, ok := fm.Item("tags")
	require.True(t, ok)
	l, ok := item.List()
	require.True(t, ok)

	require.NoError(t, l.Remove(0))
	assert.False(t, item.IsList())
	assert.Nil(t, item.Value())
	assert.Equal(t, "---\ntags:\n---\n", doc.String())
	reparse(t, doc.String())
}

func TestFrontmatter_YAML(t *testing.T) {
	t.Parallel()

	fm, err := block.CreateFrontmatterYAML(map[string]any{"title": "Notes", "tags": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "---\ntags:\n  - a\n  - b\ntitle: Notes\n---", fm.String())

	var got struct {
		Title string   `yaml:"title"`
		Tags  []string `yaml:"tags"`
	}
	require.NoError(t, fm.Decode(&got))
	assert.Equal(t, "Notes", got.Title)
	assert.Equal(t, []string{"a", "b"}, got.Tags)

	empty, err := block.CreateFrontmatterYAML(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "---\n---", empty.String())
}

func TestDocument_Frontmatter(t *testing.T) {
	t.Parallel()

	doc, err := block.ParseDocument("# Title\n")
	require.NoError(t, err)

	_, ok := doc.Frontmatter()
	assert.False(t, ok)

	fm := doc.EnsureFrontmatter()
	require.NoError(t, fm.Set("k", "v"))
	assert.Equal(t, "---\nk: v\n---\n# Title\n", doc.String())
	reparse(t, doc.String())

	assert.True(t, doc.RemoveFrontmatter())
	assert.Equal(t, "# Title\n", doc.String())
}

func TestDocument_Sections(t *testing.T) {
	t.Parallel()

	doc, err := block.ParseDocument("# A\ntext\n")
	require.NoError(t, err)

	b, err := block.CreateSection(2, "B")
	require.NoError(t, err)
	require.NoError(t, doc.AppendSection(b))
	assert.Equal(t, "# A\ntext\n\n## B\n", doc.String())

	first, err := block.CreateSection(1, "Zero")
	require.NoError(t, err)
	require.NoError(t, doc.InsertSection(0, first))
	assert.Equal(t, "# Zero\n# A\ntext\n\n## B\n", doc.String())

	titles := make([]string, 0, 3)
	for _, s := range doc.Sections() {
		titles = append(titles, s.Title())
	}
	assert.Equal(t, []string{"Zero", "A", "B"}, titles)

	require.NoError(t, doc.RemoveSection(1))
	assert.Equal(t, "# Zero\n## B\n", doc.String())

	assert.ErrorIs(t, doc.RemoveSection(5), block.ErrIndexOutOfRange)

	reparse(t, doc.String())
}

func TestDocument_NewDocument(t *testing.T) {
	t.Parallel()

	doc := block.NewDocument()
	p, err := block.CreateParagraph("intro")
	require.NoError(t, err)
	require.NoError(t, doc.Lede().Append(p))

	s, err := block.CreateSection(1, "Title")
	require.NoError(t, err)
	require.NoError(t, doc.AppendSection(s))

	assert.Equal(t, "intro\n\n# Title\n", doc.String())
	reparse(t, doc.String())
}

func TestHeading_Edits(t *testing.T) {
	t.Parallel()

	h, err := block.CreateHeading(2, "Title")
	require.NoError(t, err)
	assert.Equal(t, "## Title", h.String())

	require.NoError(t, h.SetLevel(4))
	require.NoError(t, h.SetText("Other *text*"))
	assert.Equal(t, "#### Other *text*", h.String())
	assert.Equal(t, 4, h.Level())

	require.ErrorIs(t, h.SetLevel(7), block.ErrInvalidValue)
	_, err = block.CreateHeading(0, "x")
	require.ErrorIs(t, err, block.ErrInvalidValue)
}

func TestContent_Edits(t *testing.T) {
	t.Parallel()

	c, err := block.CreateContent("a\n\nb\n")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	p, err := block.CreateParagraph("c")
	require.NoError(t, err)
	require.NoError(t, c.Append(p))
	assert.Equal(t, "a\n\nb\n\nc\n", c.String())

	require.NoError(t, c.Insert(0, block.CreateHr()))
	assert.Equal(t, "---\n\na\n\nb\n\nc\n", c.String())

	require.NoError(t, c.RemoveAt(0))
	assert.Equal(t, "a\n\nb\n\nc\n", c.String())

	require.NoError(t, c.RemoveAt(2))
	assert.Equal(t, "a\n\nb\n", c.String())

	h, err := block.CreateHeading(1, "x")
	require.NoError(t, err)
	require.ErrorIs(t, c.Append(h), block.ErrDisallowedChild)
	require.ErrorIs(t, c.RemoveAt(9), block.ErrIndexOutOfRange)
}

func TestSectionContent_KeepsHeadingBreak(t *testing.T) {
	t.Parallel()

	doc, err := block.ParseDocument("# A\n")
	require.NoError(t, err)

	body := doc.Sections()[0].Content()
	p, err := block.CreateParagraph("text")
	require.NoError(t, err)
	require.NoError(t, body.Append(p))
	assert.Equal(t, "# A\n\ntext\n", doc.String())

	require.NoError(t, body.RemoveAt(0))
	assert.Equal(t, "# A\n", doc.String())
}

func TestQuote(t *testing.T) {
	t.Parallel()

	q, err := block.CreateQuote("first\nsecond")
	require.NoError(t, err)
	assert.Equal(t, "> first\n> second", q.String())
	assert.Equal(t, []string{"first", "second"}, q.Lines())
	assert.Equal(t, "first\nsecond", q.Text())
}

func TestNumberedList_Remove(t *testing.T) {
	t.Parallel()

	l, err := block.CreateNumberedList("one", "two", "three")
	require.NoError(t, err)
	assert.Equal(t, "1. one\n2. two\n3. three", l.String())

	require.NoError(t, l.Remove(1))
	assert.Equal(t, "1. one\n2. three", l.String())

	item, err := block.CreateNumberedItem(9, "zero")
	require.NoError(t, err)
	require.NoError(t, l.Insert(0, item))
	assert.Equal(t, "1. zero\n2. one\n3. three", l.String())

	require.ErrorIs(t, l.Remove(3), block.ErrIndexOutOfRange)
}

func TestList_AppendKeepsFinalBreak(t *testing.T) {
	t.Parallel()

	doc, err := block.ParseDocument("- a\n- b\n\ntext\n")
	require.NoError(t, err)

	l, ok := doc.Lede().Blocks()[0].(*block.ListBlock)
	require.True(t, ok)

	item, err := block.CreateListItem("c")
	require.NoError(t, err)
	require.NoError(t, l.Append(item))
	assert.Equal(t, "- a\n- b\n- c\n\ntext\n", doc.String())

	require.NoError(t, l.Remove(2))
	require.NoError(t, l.Remove(1))
	assert.Equal(t, "- a\n\ntext\n", doc.String())
	reparse(t, doc.String())
}

func TestListItem_Checkbox(t *testing.T) {
	t.Parallel()

	l, err := block.CreateChecklist("todo")
	require.NoError(t, err)

	item, err := l.Item(0)
	require.NoError(t, err)
	assert.Equal(t, mdast.MarkerCheckbox, item.Marker())
	assert.False(t, item.Checked())

	require.NoError(t, item.SetChecked(true))
	assert.Equal(t, "- [x] todo", l.String())

	item.ToPlain()
	assert.Equal(t, "- todo", l.String())
	require.ErrorIs(t, item.SetChecked(false), block.ErrWrongVariant)

	item.ToCheckbox(false)
	assert.Equal(t, "- [ ] todo", l.String())
}

func TestListItem_Sublist(t *testing.T) {
	t.Parallel()

	l, err := block.CreateList("a", "b")
	require.NoError(t, err)
	sub, err := block.CreateNumberedList("x", "y")
	require.NoError(t, err)

	first, err := l.Item(0)
	require.NoError(t, err)
	require.NoError(t, first.SetSublist(sub))
	assert.Equal(t, "- a\n\t1. x\n\t2. y\n- b", l.String())

	require.NoError(t, first.SetLevel(1))
	assert.Equal(t, "\t- a\n\t\t1. x\n\t\t2. y\n- b", l.String())
	require.NoError(t, first.SetLevel(0))

	require.NoError(t, sub.Remove(0))
	assert.Equal(t, "- a\n\t1. y\n- b", l.String())

	require.NoError(t, first.RemoveSublist())
	assert.Equal(t, "- a\n- b", l.String())
	require.ErrorIs(t, first.RemoveSublist(), block.ErrWrongVariant)
}

func TestRemove_LastSublistItem(t *testing.T) {
	t.Parallel()

	doc, err := block.ParseDocument("- a\n  - b\n\npara\n")
	require.NoError(t, err)
	root := doc.Statement()

	items := mdast.FindByKind(root, mdast.KindListItem)
	require.Len(t, items, 2)
	require.NoError(t, block.Remove(root, block.Wrap(items[1])))
	assert.Equal(t, "- a\n\npara\n", doc.String())

	parent := block.Wrap(items[0]).(*block.ListItemBlock)
	_, ok := parent.Sublist()
	assert.False(t, ok)

	again := reparse(t, doc.String())
	assert.Len(t, mdast.FindByKind(again, mdast.KindList), 1)
}

func TestListItem_SublistRemoveDetaches(t *testing.T) {
	t.Parallel()

	l, err := parser.ParseList("- a\n\t- b\n- c")
	require.NoError(t, err)
	first, err := block.Wrap(l).(*block.ListBlock).Item(0)
	require.NoError(t, err)
	sub, ok := first.Sublist()
	require.True(t, ok)

	require.NoError(t, sub.Remove(0))
	assert.Equal(t, "- a\n- c", l.String())
	_, ok = first.Sublist()
	assert.False(t, ok)
}

func TestList_RejectsMultilineItem(t *testing.T) {
	t.Parallel()

	_, err := block.CreateList("a\nb")
	require.Error(t, err)

	_, err = block.CreateList()
	require.ErrorIs(t, err, block.ErrInvalidValue)
}

func TestCodeBlock(t *testing.T) {
	t.Parallel()

	cb, err := block.CreateCodeBlock("go", "fmt.Println()", block.Entry{Key: "title", Value: "demo"})
	require.NoError(t, err)
	assert.Equal(t, "```go\ntitle: demo\nfmt.Println()\n```", cb.String())
	assert.Equal(t, "go", cb.Language())
	assert.Equal(t, 3, cb.Fence())

	meta := cb.Metadata()
	v, ok := meta.Get("title")
	require.True(t, ok)
	assert.Equal(t, "demo", v)

	require.NoError(t, meta.Set("file", "main.go"))
	assert.Equal(t, []string{"title", "file"}, meta.Keys())
	assert.True(t, meta.Remove("title"))
	assert.Equal(t, map[string]string{"file": "main.go"}, meta.ToMap())

	require.NoError(t, cb.SetSource("a\nb\n"))
	assert.Equal(t, "```go\nfile: main.go\na\nb\n```", cb.String())

	require.ErrorIs(t, cb.SetSource("x\n```\n"), block.ErrInvalidValue)
	require.ErrorIs(t, cb.SetSource("name: value\nbody\n"), block.ErrInvalidValue)
	assert.Equal(t, "a\nb\n", cb.Source())
	require.ErrorIs(t, meta.Set("bad key", "v"), block.ErrInvalidValue)

	require.NoError(t, cb.SetLanguage(""))
	assert.Equal(t, "```\nfile: main.go\na\nb\n```", cb.String())
}

func TestCodeBlock_SetSourceRejectsMetadataLine(t *testing.T) {
	t.Parallel()

	cb, err := block.CreateCodeBlock("", "")
	require.NoError(t, err)

	require.ErrorIs(t, cb.SetSource("name: value\nbody\n"), block.ErrInvalidValue)
	assert.Empty(t, cb.Source())

	require.NoError(t, cb.SetSource("name:value\nbody\n"))
	again, err := parser.ParseCodeBlock(cb.String())
	require.NoError(t, err)
	assert.Equal(t, cb.Source(), block.Wrap(again).(*block.CodeBlockBlock).Source())
}

func TestCodeBlock_EnsureLanguage(t *testing.T) {
	t.Parallel()

	cb, err := block.CreateCodeBlock("", "package main\n\nfunc main() {}\n")
	require.NoError(t, err)

	lang, added := cb.EnsureLanguage()
	require.True(t, added)
	assert.NotEmpty(t, lang)
	assert.Equal(t, lang, cb.Language())

	again, added := cb.EnsureLanguage()
	assert.False(t, added)
	assert.Equal(t, lang, again)
}

func TestTable(t *testing.T) {
	t.Parallel()

	tbl, err := block.CreateTable([][]string{{"a", "b"}, {"1", "2"}})
	require.NoError(t, err)
	assert.Equal(t, "| a | b |\n| --- | --- |\n| 1 | 2 |", tbl.String())
	assert.True(t, tbl.HasDivider())
	assert.Equal(t, map[string][]string{"a": {"1"}, "b": {"2"}}, tbl.ToMap())

	require.NoError(t, tbl.AppendRow("3", "4"))
	assert.Equal(t, "| a | b |\n| --- | --- |\n| 1 | 2 |\n| 3 | 4 |", tbl.String())
	assert.Equal(t, map[string][]string{"a": {"1", "3"}, "b": {"2", "4"}}, tbl.ToMap())

	require.NoError(t, tbl.RemoveRowAt(3))
	require.NoError(t, tbl.RemoveRowAt(2))
	assert.Equal(t, "| a | b |\n| --- | --- |", tbl.String())
	assert.Equal(t, map[string][]string{"a": {}, "b": {}}, tbl.ToMap())

	_, err = block.CreateTable([][]string{{"a|b"}})
	require.ErrorIs(t, err, block.ErrInvalidValue)
}

func TestTableRow_Cells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		edit   func(*block.TableRowBlock) error
		want   string
	}{
		{
			name:   "remove last cell keeps trailing pipe",
			source: "| a | b |",
			edit:   func(r *block.TableRowBlock) error { return r.RemoveCell(1) },
			want:   "| a |",
		},
		{
			name:   "remove last cell without trailing pipe",
			source: "| a | b",
			edit:   func(r *block.TableRowBlock) error { return r.RemoveCell(1) },
			want:   "| a",
		},
		{
			name:   "append cell",
			source: "| a |",
			edit:   func(r *block.TableRowBlock) error { return r.AppendCell("c") },
			want:   "| a | c |",
		},
		{
			name:   "append cell without trailing pipe",
			source: "| a | b",
			edit:   func(r *block.TableRowBlock) error { return r.AppendCell("c") },
			want:   "| a | b | c",
		},
		{
			name:   "insert first cell",
			source: "| a |",
			edit:   func(r *block.TableRowBlock) error { return r.InsertCell(0, "z") },
			want:   "| z | a |",
		},
		{
			name:   "set cell keeps padding",
			source: "|  a  | b |",
			edit:   func(r *block.TableRowBlock) error { return r.SetCell(0, "x") },
			want:   "|  x  | b |",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tbl, err := parser.ParseTable(tt.source)
			require.NoError(t, err)
			row, err := block.Wrap(tbl).(*block.TableBlock).Row(0)
			require.NoError(t, err)

			require.NoError(t, tt.edit(row))
			assert.Equal(t, tt.want, tbl.String())
		})
	}
}

func TestTable_Format(t *testing.T) {
	t.Parallel()

	tbl, err := parser.ParseTable("|a|bb|\n|-|-|\n|ccc|d|")
	require.NoError(t, err)

	block.Wrap(tbl).(*block.TableBlock).Format()
	assert.Equal(t, "| a   | bb  |\n| --- | --- |\n| ccc | d   |", tbl.String())
}

func TestTable_FormatWideRunes(t *testing.T) {
	t.Parallel()

	tbl, err := block.CreateTable([][]string{{"日本", "x"}, {"a", "b"}})
	require.NoError(t, err)

	tbl.Format()
	assert.Equal(t, "| 日本 | x   |\n| ---- | --- |\n| a    | b   |", tbl.String())
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	m, err := block.CreateMetadata(block.Entry{Key: "k", Value: "v"}, block.Entry{Key: "x", Value: "y"})
	require.NoError(t, err)
	assert.Equal(t, "k:: v\nx:: y", m.String())
	assert.Equal(t, []string{"k", "x"}, m.Keys())

	assert.True(t, m.Remove("k"))
	assert.Equal(t, "x:: y", m.String())

	require.NoError(t, m.Set("z", "1"))
	assert.Equal(t, "x:: y\nz:: 1", m.String())

	require.NoError(t, m.Set("x", "[[Note]]"))
	assert.Equal(t, "x:: [[Note]]\nz:: 1", m.String())

	item, ok := m.Item("x")
	require.True(t, ok)
	rt, ok := item.RichText()
	require.True(t, ok)
	require.Len(t, rt.Links(), 1)
	assert.Equal(t, "Note", rt.Links()[0].Target())

	require.NoError(t, m.RemoveAt(1))
	assert.Equal(t, "x:: [[Note]]", m.String())
}

func TestMetadata_Tags(t *testing.T) {
	t.Parallel()

	doc, err := block.ParseDocument("key:: value\n#one #two\n")
	require.NoError(t, err)

	m, ok := doc.Lede().Blocks()[0].(*block.MetadataBlock)
	require.True(t, ok)
	require.Len(t, m.Tags(), 1)
	assert.Equal(t, []string{"one", "two"}, m.Tags()[0].Names())

	require.NoError(t, m.RemoveAt(1))
	assert.Equal(t, "key:: value\n", doc.String())
}

func TestLinks(t *testing.T) {
	t.Parallel()

	internal, err := block.CreateInternalLink("Note", "alias")
	require.NoError(t, err)
	assert.Equal(t, "[[Note|alias]]", internal.String())
	assert.Equal(t, mdast.LinkInternal, internal.LinkKind())
	assert.Equal(t, "Note", internal.Target())
	assert.Equal(t, "alias", internal.Alias())

	require.NoError(t, internal.SetTarget("Other"))
	require.NoError(t, internal.SetAlias(""))
	assert.Equal(t, "[[Other]]", internal.String())

	image, err := block.CreateImageLink("img.png", "")
	require.NoError(t, err)
	assert.Equal(t, "![[img.png]]", image.String())
	assert.Equal(t, mdast.LinkImage, image.LinkKind())

	external, err := block.CreateExternalLink("label", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "[label](https://example.com)", external.String())
	assert.Equal(t, "https://example.com", external.Target())
	assert.Equal(t, "label", external.Alias())

	_, err = block.CreateExternalLink("x", "has space")
	require.ErrorIs(t, err, block.ErrInvalidValue)
}

func TestTagAndBookmark(t *testing.T) {
	t.Parallel()

	tag, err := block.CreateTag("project")
	require.NoError(t, err)
	assert.Equal(t, "#project", tag.String())
	require.NoError(t, tag.SetName("area"))
	assert.Equal(t, "area", tag.Name())

	_, err = block.CreateTag("two words")
	require.ErrorIs(t, err, block.ErrInvalidValue)

	bm, err := block.CreateBookmark("")
	require.NoError(t, err)
	_, err = uuid.Parse(bm.Name())
	require.NoError(t, err)

	named, err := block.CreateBookmark("here")
	require.NoError(t, err)
	assert.Equal(t, "{{here}}", named.String())
}

func TestRichText_Append(t *testing.T) {
	t.Parallel()

	rt, err := block.CreateRichText("see ")
	require.NoError(t, err)

	link, err := block.CreateInternalLink("Note", "")
	require.NoError(t, err)
	require.NoError(t, rt.Append(link))
	require.NoError(t, rt.AppendText(" and #tag"))
	assert.Equal(t, "see [[Note]] and #tag", rt.String())
	assert.Len(t, rt.Tags(), 1)

	p, err := block.CreateParagraph("x")
	require.NoError(t, err)
	require.ErrorIs(t, rt.Append(p), block.ErrDisallowedChild)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	source := "---\nk: v\n---\n- a\n- b\n\n| h |\n|---|\n| 1 |\n\n# S\n"
	doc, err := block.ParseDocument(source)
	require.NoError(t, err)
	root := doc.Statement()

	item := mdast.FindFirst(root, func(s mdast.Statement) bool { return s.Kind() == mdast.KindListItem })
	require.NotNil(t, item)
	require.NoError(t, block.Remove(root, block.Wrap(item)))
	assert.Equal(t, "---\nk: v\n---\n- b\n\n| h |\n|---|\n| 1 |\n\n# S\n", doc.String())

	rows := mdast.FindByKind(root, mdast.KindTableRow)
	require.Len(t, rows, 3)
	require.NoError(t, block.Remove(root, block.Wrap(rows[2])))
	assert.Equal(t, "---\nk: v\n---\n- b\n\n| h |\n|---|\n\n# S\n", doc.String())

	section := doc.Sections()[0]
	require.NoError(t, block.Remove(root, section))
	assert.Equal(t, "---\nk: v\n---\n- b\n\n| h |\n|---|\n\n", doc.String())

	fm, ok := doc.Frontmatter()
	require.True(t, ok)
	require.NoError(t, block.Remove(root, fm))
	assert.Equal(t, "- b\n\n| h |\n|---|\n\n", doc.String())

	detached, err := block.CreateParagraph("x")
	require.NoError(t, err)
	require.ErrorIs(t, block.Remove(root, detached), block.ErrNotAttached)
}

func TestWrap_ArityPanics(t *testing.T) {
	t.Parallel()

	bad := mdast.New(mdast.KindHeading, mdast.NewToken(mdast.TokHeadingHash, "#", 1))
	assert.Panics(t, func() { block.Wrap(bad) })

	assert.IsType(t, &block.RawBlock{}, block.Wrap(mdast.New(mdast.KindEmphasis)))
}
