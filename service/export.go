package service

import (
	"bytes"
	"context"
	"fmt"

	"projectledger/config"
	"projectledger/logger"
	"projectledger/models"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

const (
	// SpreadsheetContentType xlsx 下载类型
	SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// DocumentContentType pdf 下载类型
	DocumentContentType = "application/pdf"

	spreadsheetSheet = "Expenses"

	pdfMarginX    = 15.0
	pdfLogoHeight = 20.0
	pdfTitleY     = 45.0
	pdfFirstLineY = 60.0
	pdfLineStep   = 10.0
	pdfFontFamily = "Helvetica"
	pdfUTF8Family = "ledger"
)

// Artifact 生成的导出文件，完全在内存中构建
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService 导出项目支出为表格和 PDF
type ExportService struct {
	cfg      config.ExportConfig
	log      *logger.Logger
	projects *ProjectService
	ledger   *LedgerService
	compress bool
}

// NewExportService 创建导出服务
func NewExportService(cfg config.ExportConfig, log *logger.Logger, projects *ProjectService, ledger *LedgerService) *ExportService {
	return &ExportService{cfg: cfg, log: log, projects: projects, ledger: ledger, compress: true}
}

// load 读取项目和调用者可见的支出，导出与详情页使用相同的可见性规则
func (s *ExportService) load(ctx context.Context, caller models.Session, projectID uint) (*models.Project, []models.ExpenseLine, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.ledger.List(ctx, projectID, caller)
	if err != nil {
		return nil, nil, err
	}
	return project, lines, nil
}

// Spreadsheet 导出两列表格：描述、金额
func (s *ExportService) Spreadsheet(ctx context.Context, caller models.Session, projectID uint) (*Artifact, error) {
	project, lines, err := s.load(ctx, caller, projectID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", spreadsheetSheet)

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("创建表头样式失败: %w", err)
	}
	// 金额保留两位小数
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, fmt.Errorf("创建金额样式失败: %w", err)
	}

	if err := f.SetColWidth(spreadsheetSheet, "A", "A", 40); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(spreadsheetSheet, "B", "B", 15); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(spreadsheetSheet, "A1", &[]interface{}{"Description", "Amount"}); err != nil {
		return nil, fmt.Errorf("写入表头失败: %w", err)
	}
	if err := f.SetCellStyle(spreadsheetSheet, "A1", "B1", headerStyle); err != nil {
		return nil, err
	}

	for i, line := range lines {
		row := i + 2
		if err := f.SetCellValue(spreadsheetSheet, fmt.Sprintf("A%d", row), line.Description); err != nil {
			return nil, fmt.Errorf("写入第 %d 行失败: %w", row, err)
		}
		if err := f.SetCellValue(spreadsheetSheet, fmt.Sprintf("B%d", row), line.Amount.InexactFloat64()); err != nil {
			return nil, fmt.Errorf("写入第 %d 行失败: %w", row, err)
		}
		if err := f.SetCellStyle(spreadsheetSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), amountStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("生成 Excel 失败: %w", err)
	}

	return &Artifact{
		Filename:    fmt.Sprintf("project_%d_expenses.xlsx", project.ID),
		ContentType: SpreadsheetContentType,
		Body:        buf.Bytes(),
	}, nil
}

// Document 导出单页 PDF：可选 logo、标题、每条支出一行
// 超过一页的内容不分页
func (s *ExportService) Document(ctx context.Context, caller models.Session, projectID uint) (*Artifact, error) {
	project, lines, err := s.load(ctx, caller, projectID)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(s.compress)
	pdf.SetTitle(fmt.Sprintf("%s: %s", s.cfg.Title, project.Name), true)
	pdf.SetCreator("projectledger", true)

	family, translate := s.setupFont(pdf)
	pdf.AddPage()

	if s.cfg.LogoPath != "" {
		pdf.ImageOptions(s.cfg.LogoPath, pdfMarginX, 10, 0, pdfLogoHeight, false,
			fpdf.ImageOptions{ReadDpi: true}, 0, "")
		if pdf.Err() {
			s.log.Warn().Err(pdf.Error()).Str("logo", s.cfg.LogoPath).Msg("logo 加载失败，已跳过")
			pdf.ClearError()
		}
	}

	pdf.SetFont(family, "B", 16)
	pdf.Text(pdfMarginX, pdfTitleY, translate(fmt.Sprintf("%s: %s", s.cfg.Title, project.Name)))

	pdf.SetFont(family, "", 12)
	y := pdfFirstLineY
	for _, line := range lines {
		pdf.Text(pdfMarginX, y, translate(fmt.Sprintf("%s - %s", line.Description, line.Amount.StringFixed(2))))
		y += pdfLineStep
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("生成 PDF 失败: %w", err)
	}

	return &Artifact{
		Filename:    fmt.Sprintf("project_%d_expenses.pdf", project.ID),
		ContentType: DocumentContentType,
		Body:        buf.Bytes(),
	}, nil
}

// setupFont 配置了 TTF 字体时使用 UTF-8 字体，否则使用内置 Helvetica 与 cp1252 转换
func (s *ExportService) setupFont(pdf *fpdf.Fpdf) (string, func(string) string) {
	if s.cfg.FontPath != "" {
		pdf.AddUTF8Font(pdfUTF8Family, "", s.cfg.FontPath)
		pdf.AddUTF8Font(pdfUTF8Family, "B", s.cfg.FontPath)
		if !pdf.Err() {
			return pdfUTF8Family, func(v string) string { return v }
		}
		s.log.Warn().Err(pdf.Error()).Str("font", s.cfg.FontPath).Msg("字体加载失败，使用内置字体")
		pdf.ClearError()
	}
	return pdfFontFamily, pdf.UnicodeTranslatorFromDescriptor("")
}
