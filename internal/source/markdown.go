package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/blocksearch/internal/geometry"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownSource synthesizes geometry from markdown using goldmark. Heading
// levels become synthetic font sizes; everything else is body-sized. The
// whole document lands on a single page.
type MarkdownSource struct{}

func (s *MarkdownSource) Pages(r io.Reader, filename string) ([]geometry.Page, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var blocks []geometry.Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(string(node.Text(src)))
			if title == "" {
				continue
			}
			blocks = append(blocks, textBlock(title, headingSize(node.Level), syntheticHeadingFont))
		default:
			t := extractText(n, src)
			if t != "" {
				blocks = append(blocks, textBlock(t, sizeBody, syntheticBodyFont))
			}
		}
	}

	return []geometry.Page{{Number: 0, Blocks: blocks}}, nil
}

// extractText gets the text content of a goldmark AST node. Raw source
// lines are used only for leaf blocks (code blocks); blocks with inline
// children render through the children so text is not emitted twice.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
