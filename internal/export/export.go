// Package export renders a snapshot of the task list as json, csv or pdf.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"tasker/internal/output"
	"tasker/internal/task"
)

// Formats lists the accepted format names.
var Formats = []string{"json", "csv", "pdf"}

// Binary reports whether format produces non-text output.
func Binary(format string) bool {
	return strings.ToLower(format) == "pdf"
}

// Export renders tasks in the named format. counts feeds the summary line
// of the pdf report.
func Export(tasks []task.Task, counts task.Counts, format string) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "csv":
		var b bytes.Buffer
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "text", "completed"})
		for _, t := range tasks {
			_ = w.Write([]string{strconv.FormatInt(t.ID, 10), t.Text, strconv.FormatBool(t.Completed)})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	case "pdf":
		return renderPDF(tasks, counts)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func renderPDF(tasks []task.Task, counts task.Counts) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		mark := output.OpenMark
		if t.Completed {
			mark = output.DoneMark
		}
		line := fmt.Sprintf("%d  %s %s", t.ID, mark, t.Text)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(0, 6, output.Counter(counts))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
