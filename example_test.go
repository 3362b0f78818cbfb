package hwp_test

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/tsawler/hwp"
	"github.com/tsawler/hwp/hwp5"
	"github.com/tsawler/hwp/model"
)

// These examples show the README code samples. They are not run since
// they need document files.

func Example_extractText() {
	text, warnings, err := hwp.Open("report.hwp").Text()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(text)

	for _, w := range warnings {
		fmt.Println("Warning:", w.Message)
	}
}

func Example_extractWithOptions() {
	text, warnings, err := hwp.Open("report.hwp").
		TableStyle(model.TableStyleCSV). // Tables as CSV blocks
		ImageMarker("[image {index}: {filename}]").
		NormalizeUnicode(). // Compose decomposed Hangul
		Text()
	_ = text
	_ = warnings
	_ = err
}

func Example_notesAndLinks() {
	result, _, err := hwp.Open("report.hwp").TextWithNotes()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Text)
	for _, note := range result.Notes() {
		fmt.Printf("%s %s\n", note.Marker(), note.Text)
	}
	for _, link := range result.Hyperlinks {
		fmt.Printf("%s -> %s\n", link.Text, link.URL)
	}
	for _, memo := range result.Memos {
		fmt.Printf("%s on %q: %s\n", memo.Marker(), memo.ReferencedText, memo.Text)
	}
}

func Example_tables() {
	tables, _, err := hwp.Open("report.hwp").Tables()
	if err != nil {
		log.Fatal(err)
	}
	for i, t := range tables {
		fmt.Printf("Table %d (%dx%d)\n", i+1, t.RowCount(), t.ColCount())
		fmt.Println(t.Format(model.TableStyleHTML, ""))
	}
}

func Example_images() {
	images, warnings, err := hwp.Open("report.hwp").OCR().Images()
	if err != nil {
		log.Fatal(err)
	}
	if len(warnings) > 0 {
		log.Println("Warnings:", hwp.FormatWarnings(warnings))
	}
	for _, img := range images {
		if err := img.Save(img.Filename); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s %s %dx%d %q\n", img.Filename, img.Format.MIMEType(), img.Width, img.Height, img.Text)
	}
}

func Example_optionsFile() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	text, _, err := hwp.Open("report.hwp").
		OptionsFile("hwp.yaml").
		WithLogger(logger).
		Text()
	_ = text
	_ = err
}

func Example_lowLevelReader() {
	r, err := hwp5.Open("report.hwp")
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	if v, ok := r.Version(); ok {
		fmt.Println("HWP version", v)
	}
	text, err := r.Text(&hwp5.Options{
		ParagraphSeparator: "\n\n",
		LineSeparator:      "\n",
		TableStyle:         model.TableStyleMarkdown,
	})
	_ = text
	_ = err
}

func Example_errorHandling() {
	_, _, err := hwp.Open("secret.hwp").Text()
	switch {
	case errors.Is(err, hwp5.ErrEncrypted):
		fmt.Println("document is password protected")
	case errors.Is(err, hwp5.ErrInvalidContainer):
		fmt.Println("not an HWP 5.0 document")
	case errors.Is(err, hwp.ErrUnsupportedFormat):
		fmt.Println("HWPX is not supported")
	case err != nil:
		log.Fatal(err)
	}
}

func Example_inspectionMethods() {
	ext := hwp.Open("report.hwp")
	defer ext.Close()

	encrypted, _ := ext.IsEncrypted()
	sections := hwp.Must(ext.SectionCount())
	fmt.Println(encrypted, sections)
}
