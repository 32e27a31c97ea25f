package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Rrens/mock-analyst/internal/classifier"
	"github.com/Rrens/mock-analyst/internal/config"
	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/Rrens/mock-analyst/internal/metrics"
	"github.com/Rrens/mock-analyst/internal/progress"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ArtifactGenerator produces the canned payloads of assistant replies
type ArtifactGenerator interface {
	Text() string
	Chart(subtype domain.ChartSubtype) *domain.ChartDescriptor
	File() *domain.FileDescriptor
}

// QueryService accepts queries and runs their simulated analysis in the background
type QueryService struct {
	sessions  domain.SessionStore
	progress  *progress.Channel
	artifacts ArtifactGenerator
	cfg       config.SimulationConfig

	sleep func(time.Duration)
	locks *sessionLocks
	tasks errgroup.Group
}

// NewQueryService creates a new query service
func NewQueryService(
	sessions domain.SessionStore,
	progress *progress.Channel,
	artifacts ArtifactGenerator,
	cfg config.SimulationConfig,
) *QueryService {
	return &QueryService{
		sessions:  sessions,
		progress:  progress,
		artifacts: artifacts,
		cfg:       cfg,
		sleep:     time.Sleep,
		locks:     newSessionLocks(),
	}
}

// Submit records the query in its session, classifies it and starts the
// simulated analysis without waiting for it.
func (s *QueryService) Submit(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	if req.SessionID != "" {
		if err := domain.ValidateSessionID(req.SessionID); err != nil {
			return nil, err
		}
	}

	session, created := s.sessions.CreateOrGet(req.SessionID, domain.SessionTitle(req.UserQuery), req.UserEmail)

	userMsg := domain.Message{
		Role:    domain.RoleUser,
		Content: req.UserQuery,
	}
	if err := s.sessions.AppendMessage(session.ID, userMsg); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}
	if err := s.sessions.SetStatus(session.ID, domain.StatusProcessing); err != nil {
		return nil, fmt.Errorf("failed to update session status: %w", err)
	}

	classification := classifier.Classify(req.UserQuery)
	metrics.RecordQuery(string(classification.Kind))

	log.Info().
		Str("session_id", session.ID).
		Bool("new_session", created).
		Str("response_type", string(classification.Kind)).
		Str("chart_type", string(classification.ChartSubtype)).
		Msg("query accepted")

	s.tasks.Go(func() error {
		s.simulate(session.ID, classification)
		return nil
	})

	return &domain.QueryResponse{
		SessionID:    session.ID,
		Status:       domain.StatusProcessing,
		Message:      acknowledgeMessage,
		ResponseType: classification.Kind,
		ChartType:    classification.ChartSubtype,
	}, nil
}

// Wait blocks until every started simulation has finished or ctx is done
func (s *QueryService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.tasks.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// simulate is the error boundary of one background analysis. Simulations
// are detached from the request that started them and are never cancelled.
func (s *QueryService) simulate(sessionID string, classification domain.Classification) {
	ctx := context.Background()
	start := time.Now()

	if s.cfg.SerializeSessionQueries {
		unlock := s.locks.lock(sessionID)
		defer unlock()
	}

	if err := s.run(ctx, sessionID, classification); err != nil {
		s.fail(ctx, sessionID, err)
		metrics.RecordSimulation(metrics.OutcomeError, time.Since(start))
		return
	}

	metrics.RecordSimulation(metrics.OutcomeCompleted, time.Since(start))
	log.Info().
		Str("session_id", sessionID).
		Dur("duration", time.Since(start)).
		Msg("analysis completed")
}

func (s *QueryService) run(ctx context.Context, sessionID string, classification domain.Classification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simulation panicked: %v", r)
		}
	}()

	script := Script(classification.Kind)
	total := len(script)

	for i, step := range script {
		s.progress.Emit(ctx, sessionID, step.Name, step.Message, i+1, total)
		s.sleep(s.stepDelay())
	}

	if err := s.sessions.AppendMessage(sessionID, s.reply(classification)); err != nil {
		return fmt.Errorf("failed to save reply: %w", err)
	}
	if err := s.sessions.Complete(sessionID, completionNotice); err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}

	s.progress.Emit(ctx, sessionID, StepFinished, finishedMessage, total+1, total+1)
	return nil
}

func (s *QueryService) fail(ctx context.Context, sessionID string, cause error) {
	log.Error().Err(cause).Str("session_id", sessionID).Msg("analysis failed")

	if err := s.sessions.SetStatus(sessionID, domain.StatusError); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to mark session as errored")
	}
	s.progress.Emit(ctx, sessionID, StepError, fmt.Sprintf("An error occurred: %v", cause), 0, 0)
}

func (s *QueryService) reply(classification domain.Classification) domain.Message {
	msg := domain.Message{Role: domain.RoleAssistant}

	switch classification.Kind {
	case domain.KindChart:
		msg.Content = s.artifacts.Text()
		msg.Chart = s.artifacts.Chart(classification.ChartSubtype)
	case domain.KindFile:
		msg.File = s.artifacts.File()
		msg.Content = fmt.Sprintf("Your %s report has been generated and is ready for download.", strings.ToUpper(msg.File.FileType))
	default:
		msg.Content = s.artifacts.Text()
	}

	return msg
}

// stepDelay draws a uniform delay in [MinStepDelay, MaxStepDelay]
func (s *QueryService) stepDelay() time.Duration {
	spread := s.cfg.MaxStepDelay - s.cfg.MinStepDelay
	if spread <= 0 {
		return s.cfg.MinStepDelay
	}
	return s.cfg.MinStepDelay + rand.N(spread+1)
}
