package blocks

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/accimport/core"
	"golang.org/x/net/html"
)

// Collect reads back the block tables appended to root, in order.
func Collect(root *html.Node) []core.Block {
	var out []core.Block
	goquery.NewDocumentFromNode(root).ChildrenFiltered("table").Each(func(_ int, table *goquery.Selection) {
		var block core.Block
		table.ChildrenFiltered("tr").Each(func(i int, tr *goquery.Selection) {
			var cells []string
			tr.Children().Each(func(_ int, cell *goquery.Selection) {
				inner, _ := cell.Html()
				cells = append(cells, strings.TrimSpace(inner))
			})
			if i == 0 && len(cells) > 0 {
				block.Name = strings.TrimSpace(tr.Children().First().Text())
				return
			}
			block.Rows = append(block.Rows, cells)
		})
		out = append(out, block)
	})
	return out
}
