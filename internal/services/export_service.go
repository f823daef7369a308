package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jeffholland/drillbuilder/internal/models"
	"github.com/jeffholland/drillbuilder/internal/repositories"
)

// ExportService produces downloadable snapshots of a quiz's content and its
// attempt results. Only the quiz creator may export; the content export
// includes answers, so it is an authoring artifact.
type ExportService interface {
	ExportQuizToExcel(ctx context.Context, quizID, userID uint) ([]byte, error)
	ExportQuizToCSV(ctx context.Context, quizID, userID uint) ([]byte, error)
	ExportQuizResults(ctx context.Context, quizID, userID uint) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var quizExportHeaders = []string{
	"Position", "Type", "Prompt", "Answer Material", "Correct Answers", "Explanation",
}

func (s *exportService) ExportQuizToExcel(ctx context.Context, quizID, userID uint) ([]byte, error) {
	questions, err := s.getQuestionsForExport(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range quizExportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, question := range questions {
		for colIndex, value := range questionToExportRow(question) {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) ExportQuizToCSV(ctx context.Context, quizID, userID uint) ([]byte, error) {
	questions, err := s.getQuestionsForExport(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(quizExportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, question := range questions {
		if err := writer.Write(questionToExportRow(question)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) ExportQuizResults(ctx context.Context, quizID, userID uint) ([]byte, error) {
	if err := s.requireOwnership(ctx, quizID, userID, "export_results"); err != nil {
		return nil, err
	}

	stats, err := s.repo.Quiz().GetAccuracyStats(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz stats: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"Quiz ID", "Total Attempts", "Completed Attempts", "Average Score"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellValue(sheetName, "A2", stats.QuizID)
	f.SetCellValue(sheetName, "B2", stats.TotalAttempts)
	f.SetCellValue(sheetName, "C2", stats.CompletedAttempts)
	f.SetCellValue(sheetName, "D2", stats.AverageScore)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) getQuestionsForExport(ctx context.Context, quizID, userID uint) ([]*models.Question, error) {
	if err := s.requireOwnership(ctx, quizID, userID, "export"); err != nil {
		return nil, err
	}
	return s.repo.Question().GetByQuiz(ctx, quizID)
}

func (s *exportService) requireOwnership(ctx context.Context, quizID, userID uint, action string) error {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.CreatorID != userID {
		return NewPermissionError(userID, quizID, "quiz", action, "not the creator")
	}
	return nil
}

func questionToExportRow(q *models.Question) []string {
	var material, correct []string

	for _, c := range q.OrderedComponents() {
		switch c.Type {
		case models.ComponentTypeMCQOption:
			material = append(material, c.Text)
			if c.IsCorrect {
				correct = append(correct, c.Text)
			}
		case models.ComponentTypeClozeBlank:
			accepted := append([]string{c.CorrectAnswer}, c.Alternates()...)
			material = append(material, fmt.Sprintf("blank %d", c.Position))
			correct = append(correct, strings.Join(accepted, "/"))
		case models.ComponentTypeWordMatchPair:
			material = append(material, c.LeftWord)
			correct = append(correct, fmt.Sprintf("%s=%s", c.LeftWord, c.RightWord))
		}
	}

	explanation := ""
	if q.AnswerExplanation != nil {
		explanation = *q.AnswerExplanation
	}

	return []string{
		fmt.Sprintf("%d", q.Position),
		string(q.Type),
		q.PromptText,
		strings.Join(material, " | "),
		strings.Join(correct, " | "),
		explanation,
	}
}
