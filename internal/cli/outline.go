package cli

import (
	"github.com/yaklabco/mdcst/internal/logging"
	"github.com/yaklabco/mdcst/pkg/mdast"
)

// outline tallies the structural statements of a document for debug logs.
type outline struct {
	mdast.BaseVisitor

	sections   int
	links      int
	tables     int
	codeBlocks int
}

func newOutline(root mdast.Statement) (*outline, error) {
	o := &outline{}
	o.Self = o
	if err := mdast.Accept(root, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *outline) VisitSection(s *mdast.Section) error {
	o.sections++
	return o.BaseVisitor.VisitSection(s)
}

func (o *outline) VisitLink(s *mdast.Link) error {
	o.links++
	return o.BaseVisitor.VisitLink(s)
}

func (o *outline) VisitTable(s *mdast.Table) error {
	o.tables++
	return o.BaseVisitor.VisitTable(s)
}

// Code blocks hold no links or tables.
func (o *outline) VisitCodeBlock(*mdast.CodeBlock) error {
	o.codeBlocks++
	return nil
}

// fields returns the counts as logger key/value pairs.
func (o *outline) fields() []any {
	return []any{
		logging.FieldSections, o.sections,
		logging.FieldLinks, o.links,
		logging.FieldTables, o.tables,
		logging.FieldCodeBlocks, o.codeBlocks,
	}
}
