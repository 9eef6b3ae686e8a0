package service

import (
	"brainink_backend/internal/config"
	"brainink_backend/internal/model"
	"brainink_backend/internal/repository"
	"brainink_backend/pkg/logger"
	"brainink_backend/pkg/monitoring"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GradingService sends submissions to the remote AI grading service and
// applies the returned score and feedback. The grader is opaque: an
// OpenAI-compatible chat completions endpoint that answers with a JSON
// object {"score": <0-100>, "feedback": "<text>"}.
type GradingService struct {
	cfg         config.GraderConfig
	threshold   float64
	StudentRepo *repository.StudentAssignmentRepository
	queue       chan uint
	stop        chan struct{}
}

func NewGradingService(cfg *config.Config, studentRepo *repository.StudentAssignmentRepository) *GradingService {
	return &GradingService{
		cfg:         cfg.Grader,
		threshold:   cfg.Gating.PassThreshold,
		StudentRepo: studentRepo,
		queue:       make(chan uint, 256),
		stop:        make(chan struct{}),
	}
}

func (s *GradingService) Enqueue(studentAssignmentID uint) {
	select {
	case s.queue <- studentAssignmentID:
		monitoring.GradingQueueDepth.Set(float64(len(s.queue)))
	default:
		// queue full; the requeue sweep picks the submission up later
		logger.Log.Warn("grading queue full, deferring submission",
			zap.Uint("studentAssignmentId", studentAssignmentID))
	}
}

// Run drains the queue until Stop. Started with `go` from the app.
func (s *GradingService) Run() {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 2
	}
	for i := 0; i < workers; i++ {
		go s.worker()
	}

	// sweep for submissions that never made it into the queue (restart,
	// queue overflow)
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.requeuePending()
		case <-s.stop:
			return
		}
	}
}

func (s *GradingService) Stop() {
	close(s.stop)
}

func (s *GradingService) worker() {
	for {
		select {
		case id := <-s.queue:
			monitoring.GradingQueueDepth.Set(float64(len(s.queue)))
			if err := s.gradeOne(id); err != nil {
				logger.Log.Error("grading failed",
					zap.Uint("studentAssignmentId", id), zap.Error(err))
				monitoring.GradingTotal.WithLabelValues("error").Inc()
			}
		case <-s.stop:
			return
		}
	}
}

func (s *GradingService) requeuePending() {
	pending, err := s.StudentRepo.ListPendingGrading(50)
	if err != nil {
		logger.Log.Error("failed to list pending submissions", zap.Error(err))
		return
	}
	for _, sa := range pending {
		s.Enqueue(sa.ID)
	}
}

func (s *GradingService) gradeOne(id uint) error {
	sa, err := s.StudentRepo.FindByID(id)
	if err != nil {
		return err
	}
	if sa.Status != model.StatusSubmitted {
		return nil
	}

	score, feedback, err := s.requestGrade(sa)
	if err != nil {
		return err
	}

	now := time.Now()
	sa.Grade = &score
	sa.Feedback = &feedback
	sa.GradedAt = &now
	if score >= s.passThreshold() {
		sa.Status = model.StatusPassed
		monitoring.GradingTotal.WithLabelValues("passed").Inc()
	} else {
		sa.Status = model.StatusNeedsRetry
		monitoring.GradingTotal.WithLabelValues("needs_retry").Inc()
	}
	return s.StudentRepo.Update(sa)
}

func (s *GradingService) passThreshold() float64 {
	if s.threshold > 0 {
		return s.threshold
	}
	return 80
}

type graderMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type graderRequest struct {
	Model    string          `json:"model"`
	Messages []graderMessage `json:"messages"`
}

type graderResponse struct {
	Choices []struct {
		Message graderMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *GradingService) requestGrade(sa *model.StudentAssignment) (float64, string, error) {
	title := ""
	description := ""
	if sa.Assignment != nil {
		title = sa.Assignment.Title
		if sa.Assignment.Description != nil {
			description = *sa.Assignment.Description
		}
	}

	system := "You are a strict but encouraging tutor grading an after-school assignment. " +
		"Reply with a single JSON object: {\"score\": <integer 0-100>, \"feedback\": \"<2-4 sentences for the student>\"}. " +
		"No markdown, no extra text."
	user := fmt.Sprintf("Assignment: %s\n\n%s\n\nStudent submission:\n%s", title, description, sa.SubmissionText)

	body, err := json.Marshal(graderRequest{
		Model: s.cfg.Model,
		Messages: []graderMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return 0, "", err
	}

	req, err := http.NewRequest("POST", strings.TrimRight(s.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, "", fmt.Errorf("grader returned %d: %s", resp.StatusCode, string(payload))
	}

	var parsed graderResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return 0, "", err
	}
	if parsed.Error != nil {
		return 0, "", fmt.Errorf("grader error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return 0, "", fmt.Errorf("grader returned no choices")
	}

	return parseGradeContent(parsed.Choices[0].Message.Content)
}

type gradePayload struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// parseGradeContent extracts {score, feedback} from the model output,
// tolerating code fences and surrounding prose.
func parseGradeContent(content string) (float64, string, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	// tolerate prose around the object
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			trimmed = trimmed[start : end+1]
		}
	}

	var payload gradePayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return 0, "", fmt.Errorf("unparseable grader output: %w", err)
	}
	if payload.Score < 0 {
		payload.Score = 0
	}
	if payload.Score > 100 {
		payload.Score = 100
	}
	return payload.Score, payload.Feedback, nil
}
