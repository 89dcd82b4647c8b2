package services

import (
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"context"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"
)

// InsightService — мок AI-подсказок: категоризация по ключевым словам,
// консервированное «извлечение» из документа и поиск по запросу на
// естественном языке поверх реальной базы.
type InsightService struct {
	checkIns  CheckInRepo
	documents DocumentSearchRepo
}

type DocumentSearchRepo interface {
	List(ctx context.Context, status string, userID int) ([]*models.Document, error)
	SearchByStatusAndPeriod(ctx context.Context, status string, since, until *time.Time) ([]*models.Document, error)
}

func NewInsightService(checkIns CheckInRepo, documents DocumentSearchRepo) *InsightService {
	return &InsightService{checkIns: checkIns, documents: documents}
}

var categoryRules = []struct {
	re  *regexp.Regexp
	tag string
}{
	{regexp.MustCompile(`(?i)meeting|call|sync`), "meeting"},
	{regexp.MustCompile(`(?i)procure|purchase|order|vendor`), "procurement"},
	{regexp.MustCompile(`(?i)report|analysis|review`), "reporting"},
	{regexp.MustCompile(`(?i)design|ui|ux`), "design"},
	{regexp.MustCompile(`(?i)code|dev|bug|feature`), "development"},
}

// Categorize подбирает тег активности по описанию. Дефолт — general.
func (s *InsightService) Categorize(description string) string {
	for _, rule := range categoryRules {
		if rule.re.MatchString(description) {
			return rule.tag
		}
	}
	return "general"
}

// AnalyzeDocument возвращает фиксированный «извлечённый» payload;
// номер PO выводится из ID документа.
func (s *InsightService) AnalyzeDocument(documentID int) *models.ExtractedInfo {
	poNumber := "PO-12345"
	if documentID > 0 {
		poNumber = fmt.Sprintf("PO-%d", documentID)
	}
	return &models.ExtractedInfo{
		Vendor:   "Acme Corp.",
		Amount:   "$1,250.00",
		Date:     "2024-07-01",
		PONumber: poNumber,
		Items: []models.ExtractedItem{
			{Name: "Widget A", Qty: 10, Price: "$50.00"},
			{Name: "Widget B", Qty: 5, Price: "$100.00"},
		},
	}
}

// SuggestWorkflow — детерминированная подсказка по ID документа.
func (s *InsightService) SuggestWorkflow(documentID int) string {
	switch documentID % 3 {
	case 0:
		return "Send for approval."
	case 1:
		return "Request missing signature."
	default:
		return "Archive document."
	}
}

var (
	nlsStatusRules = []struct {
		re     *regexp.Regexp
		status string
	}{
		{regexp.MustCompile(`(?i)approved`), models.DocumentStatusApproved},
		{regexp.MustCompile(`(?i)rejected`), models.DocumentStatusRejected},
		{regexp.MustCompile(`(?i)in review`), models.DocumentStatusInReview},
		{regexp.MustCompile(`(?i)pending`), models.DocumentStatusPending},
	}
	nlsLastMonthRe = regexp.MustCompile(`(?i)last month`)
)

// SearchDocuments — «поиск на естественном языке» по документам: из запроса
// вытаскиваются статус и период, дальше обычный запрос к базе.
func (s *InsightService) SearchDocuments(ctx context.Context, query string) ([]*models.Document, error) {
	logger.Log.Info("NLS-поиск по документам (service)", zap.String("query", query))

	status := ""
	for _, rule := range nlsStatusRules {
		if rule.re.MatchString(query) {
			status = rule.status
			break
		}
	}

	var since, until *time.Time
	if nlsLastMonthRe.MatchString(query) {
		now := time.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		prevStart := monthStart.AddDate(0, -1, 0)
		since, until = &prevStart, &monthStart
	}

	return s.documents.SearchByStatusAndPeriod(ctx, status, since, until)
}

// SearchCheckIns — аналогичный поиск по чек-инам: тег угадывается теми же
// правилами, что и категоризация.
func (s *InsightService) SearchCheckIns(ctx context.Context, query string) ([]*models.CheckIn, error) {
	logger.Log.Info("NLS-поиск по чек-инам (service)", zap.String("query", query))

	for _, rule := range categoryRules {
		if rule.re.MatchString(query) {
			return s.checkIns.SearchByTag(ctx, rule.tag)
		}
	}
	return s.checkIns.ListAll(ctx)
}
