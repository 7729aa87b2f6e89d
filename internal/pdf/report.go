package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	GenerateTaskReport(data TaskReportData) (string, error)
}

// ReportGenerator renders a viewer's task list into a PDF under RootDir.
type ReportGenerator struct {
	RootDir string // корень хранения, например "./files"
}

type TaskRow struct {
	Title    string
	Status   string
	Priority string
	Due      string
	Shared   bool
}

type TaskReportData struct {
	ViewerEmail string
	GeneratedAt time.Time
	Rows        []TaskRow
	Filename    string // имя файла (без путей); если пусто — сгенерируем
}

func NewReportGenerator(rootDir string) *ReportGenerator {
	return &ReportGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *ReportGenerator) GenerateTaskReport(data TaskReportData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("tasks_%s.pdf", data.GeneratedAt.Format("20060102_150405"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Task report", false)
	pdf.SetAuthor("TaskBoard", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// ===== Заголовок
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "TASK REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("%s  —  %s", data.ViewerEmail, data.GeneratedAt.Format("02.01.2006 15:04"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	// ===== Таблица задач
	g.sectionTitle(pdf, fmt.Sprintf("Tasks (%d)", len(data.Rows)))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(75, 7, "Title", "B", 0, "L", false, 0, "")
	pdf.CellFormat(28, 7, "Status", "B", 0, "L", false, 0, "")
	pdf.CellFormat(22, 7, "Priority", "B", 0, "L", false, 0, "")
	pdf.CellFormat(33, 7, "Due", "B", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Shared", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range data.Rows {
		title := row.Title
		if len(title) > 42 {
			title = title[:39] + "..."
		}
		due := row.Due
		if due == "" {
			due = "-"
		}
		shared := ""
		if row.Shared {
			shared = "yes"
		}
		pdf.CellFormat(75, 6, title, "", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, row.Status, "", 0, "L", false, 0, "")
		pdf.CellFormat(22, 6, row.Priority, "", 0, "L", false, 0, "")
		pdf.CellFormat(33, 6, due, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, shared, "", 1, "L", false, 0, "")
	}
	if len(data.Rows) == 0 {
		pdf.CellFormat(0, 6, "No visible tasks.", "", 1, "L", false, 0, "")
	}

	// ===== Нумерация страниц
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ===== helpers =====

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // безопасность
	return filepath.Join(g.RootDir, filename), nil
}
