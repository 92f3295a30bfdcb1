package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/jackburrus/ripdoc"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: benchmark <pdf-file>")
		os.Exit(1)
	}
	path := os.Args[1]

	// warm-up
	if doc, err := ripdoc.Open(path); err == nil {
		doc.Close()
	}

	start := time.Now()
	doc, err := ripdoc.Open(path)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()
	openTime := time.Since(start)

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Pages: %d\n", doc.PageCount())
	fmt.Printf("Open time: %v\n", openTime)

	var totalChars, totalRulings int
	start = time.Now()
	for _, page := range doc.Pages() {
		totalChars += len(page.Chars())
		totalRulings += len(page.Lines()) + len(page.Rects())
	}
	primTime := time.Since(start)
	fmt.Printf("Primitive extraction: %v (%d chars, %d rulings)\n",
		primTime, totalChars, totalRulings)

	start = time.Now()
	texts, err := doc.ExtractAllText(runtime.NumCPU())
	if err != nil {
		log.Fatalf("Text extraction failed: %v", err)
	}
	textTime := time.Since(start)
	var textLen int
	for _, t := range texts {
		textLen += len(t)
	}
	fmt.Printf("Text extraction (%d workers): %v (%d bytes)\n",
		runtime.NumCPU(), textTime, textLen)

	var totalTables int
	start = time.Now()
	for _, page := range doc.Pages() {
		totalTables += len(page.FindTables())
	}
	tableTime := time.Since(start)
	fmt.Printf("Table detection: %v (%d tables)\n", tableTime, totalTables)

	total := openTime + primTime + textTime + tableTime
	fmt.Printf("Total: %v, %.2f pages/sec\n",
		total, float64(doc.PageCount())/total.Seconds())
}
