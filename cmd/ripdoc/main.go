package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/jackburrus/ripdoc"
)

func usage() {
	fmt.Println("Usage: ripdoc <text|words|tables|search|meta> [flags] <pdf-file>")
	fmt.Println("  text   [-page N] [-layout]  extract page text")
	fmt.Println("  words  [-page N]            list clustered words with positions")
	fmt.Println("  tables [-page N]            detect tables and print them as markdown")
	fmt.Println("  search [-page N] -q QUERY   find literal matches with bounding boxes")
	fmt.Println("  meta                        print document metadata")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	command := os.Args[1]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	pageNum := fs.Int("page", 0, "1-based page number, 0 for all pages")
	layout := fs.Bool("layout", false, "layout-preserving text")
	query := fs.String("q", "", "search query")
	if err := fs.Parse(os.Args[2:]); err != nil {
		usage()
	}
	if fs.NArg() < 1 {
		usage()
	}

	doc, err := ripdoc.Open(fs.Arg(0))
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	pages := doc.Pages()
	if *pageNum > 0 {
		page, err := doc.Page(*pageNum)
		if err != nil {
			log.Fatalf("%v", err)
		}
		pages = []*ripdoc.Page{page}
	}

	switch command {
	case "text":
		var opts []ripdoc.TextOption
		if *layout {
			opts = append(opts, ripdoc.WithLayout(true))
		}
		for _, page := range pages {
			fmt.Printf("=== Page %d ===\n", page.Number)
			fmt.Println(page.ExtractText(opts...))
		}
	case "words":
		for _, page := range pages {
			fmt.Printf("=== Page %d ===\n", page.Number)
			for _, w := range page.ExtractWords() {
				fmt.Printf("%q (%.2f, %.2f, %.2f, %.2f) %s %.1fpt\n",
					w.Text, w.X0, w.Top, w.X1, w.Bottom, w.Fontname, w.Size)
			}
		}
	case "tables":
		for _, page := range pages {
			tables := page.FindTables()
			fmt.Printf("=== Page %d: %d table(s) ===\n", page.Number, len(tables))
			for i, t := range tables {
				fmt.Printf("--- Table %d (%dx%d) ---\n", i+1, t.RowCount(), t.ColCount())
				fmt.Println(t.ToMarkdown())
			}
		}
	case "search":
		if *query == "" {
			usage()
		}
		for _, page := range pages {
			for _, m := range page.Search(*query) {
				fmt.Printf("page %d: %q at (%.2f, %.2f, %.2f, %.2f)\n",
					m.PageNumber, m.Text, m.BBox.X0, m.BBox.Top, m.BBox.X1, m.BBox.Bottom)
			}
		}
	case "meta":
		meta := doc.Metadata()
		keys := make([]string, 0, len(meta))
		for k := range meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %s\n", k, meta[k])
		}
		fmt.Printf("Pages: %d\n", doc.PageCount())
	default:
		usage()
	}
}
