package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Rrens/mock-analyst/internal/artifact"
	"github.com/Rrens/mock-analyst/internal/config"
	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/Rrens/mock-analyst/internal/progress"
	"github.com/Rrens/mock-analyst/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	sessions      *memory.SessionStore
	notifications *memory.NotificationStore
	progress      *progress.Channel
	query         *QueryService
	session       *SessionService
}

func newTestEnv(t *testing.T, artifacts ArtifactGenerator, cfg config.SimulationConfig) *testEnv {
	t.Helper()

	notifications := memory.NewNotificationStore()
	sessions := memory.NewSessionStore(notifications)
	channel := progress.NewChannel(nil, progress.Options{})
	if artifacts == nil {
		artifacts = artifact.NewGenerator()
	}

	env := &testEnv{
		sessions:      sessions,
		notifications: notifications,
		progress:      channel,
		query:         NewQueryService(sessions, channel, artifacts, cfg),
		session:       NewSessionService(sessions, notifications, channel),
	}
	t.Cleanup(func() { env.wait(t) })
	return env
}

func (e *testEnv) wait(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.query.Wait(ctx))
}

func submit(t *testing.T, e *testEnv, query, sessionID string) *domain.QueryResponse {
	t.Helper()
	resp, err := e.query.Submit(context.Background(), domain.QueryRequest{
		UserQuery: query,
		UserEmail: "analyst@example.com",
		SessionID: sessionID,
	})
	require.NoError(t, err)
	return resp
}

func stepNames(events []domain.ProgressEvent) []string {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Step)
	}
	return names
}

func scriptNames(kind domain.ResponseKind) []string {
	var names []string
	for _, s := range Script(kind) {
		names = append(names, s.Name)
	}
	return names
}

func TestQueryService_SubmitReturnsImmediately(t *testing.T) {
	release := make(chan struct{})
	env := newTestEnv(t, nil, config.SimulationConfig{})
	env.query.sleep = func(time.Duration) { <-release }

	resp := submit(t, env, "Show me a bar chart of revenue", "")
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, domain.StatusProcessing, resp.Status)
	assert.Equal(t, domain.KindChart, resp.ResponseType)
	assert.Equal(t, domain.ChartBar, resp.ChartType)
	assert.Equal(t, acknowledgeMessage, resp.Message)

	session, err := env.sessions.Peek(resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, session.Status)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, domain.RoleUser, session.Messages[0].Role)
	assert.Equal(t, "Show me a bar chart of revenue", session.Messages[0].Content)

	close(release)
}

func TestQueryService_FileQueryEndToEnd(t *testing.T) {
	env := newTestEnv(t, nil, config.SimulationConfig{})

	resp := submit(t, env, "Export sales data to spreadsheet", "")
	assert.Equal(t, domain.KindFile, resp.ResponseType)
	assert.Empty(t, resp.ChartType)
	env.wait(t)

	session, err := env.sessions.Peek(resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, session.Status)
	require.Len(t, session.Messages, 2)

	reply := session.Messages[1]
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	require.NotNil(t, reply.File)
	assert.Contains(t, artifact.FileExtensions, reply.File.FileType)
	assert.NotEmpty(t, reply.File.Filename)
	assert.Equal(t, "Your "+strings.ToUpper(reply.File.FileType)+" report has been generated and is ready for download.", reply.Content)

	events := env.progress.Read(context.Background(), resp.SessionID)
	assert.Equal(t, append(scriptNames(domain.KindFile), StepFinished), stepNames(events))
}

func TestQueryService_LineChartEndToEnd(t *testing.T) {
	env := newTestEnv(t, nil, config.SimulationConfig{})

	resp := submit(t, env, "Create a customer satisfaction trend line", "")
	assert.Equal(t, domain.KindChart, resp.ResponseType)
	assert.Equal(t, domain.ChartLine, resp.ChartType)
	env.wait(t)

	session, err := env.sessions.Peek(resp.SessionID)
	require.NoError(t, err)
	reply := session.Messages[len(session.Messages)-1]
	require.NotNil(t, reply.Chart)
	assert.Equal(t, domain.ChartLine, reply.Chart.Type)
	assert.NotEmpty(t, reply.Content)

	require.Len(t, reply.Chart.Data.Labels, 12)
	require.Len(t, reply.Chart.Data.Datasets, 1)
	scores, ok := reply.Chart.Data.Datasets[0].Data.([]float64)
	require.True(t, ok)
	require.Len(t, scores, 12)
	for _, score := range scores {
		assert.GreaterOrEqual(t, score, 3.8)
		assert.LessOrEqual(t, score, 4.8)
	}
}

func TestQueryService_EventsFollowScriptThenFinished(t *testing.T) {
	for _, tc := range []struct {
		query string
		kind  domain.ResponseKind
	}{
		{"Show me a pie chart", domain.KindChart},
		{"Download the report as csv", domain.KindFile},
		{"Give me a summary of Q3", domain.KindText},
		{"What is the status of my job", domain.KindProgress},
	} {
		t.Run(string(tc.kind), func(t *testing.T) {
			env := newTestEnv(t, nil, config.SimulationConfig{})
			resp := submit(t, env, tc.query, "")
			require.Equal(t, tc.kind, resp.ResponseType)
			env.wait(t)

			events := env.progress.Read(context.Background(), resp.SessionID)
			script := Script(tc.kind)
			require.Len(t, events, len(script)+1)

			for i, step := range script {
				assert.Equal(t, step.Name, events[i].Step)
				assert.Equal(t, step.Message, events[i].Message)
				assert.Equal(t, i+1, events[i].StepNumber)
				assert.Equal(t, len(script), events[i].TotalSteps)
			}

			last := events[len(events)-1]
			assert.Equal(t, StepFinished, last.Step)
			assert.Equal(t, finishedMessage, last.Message)
			assert.Equal(t, len(script)+1, last.StepNumber)
			assert.Equal(t, len(script)+1, last.TotalSteps)

			assert.True(t, env.notifications.HasUnread(resp.SessionID))
			notification, ok := env.notifications.Get(resp.SessionID)
			require.True(t, ok)
			assert.Equal(t, completionNotice, notification.Message)
		})
	}
}

func TestQueryService_StatusCompletesAfterLastScriptStep(t *testing.T) {
	env := newTestEnv(t, nil, config.SimulationConfig{})

	var mu sync.Mutex
	var observed []domain.SessionStatus
	var sessionID string
	env.query.sleep = func(time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		if sessionID == "" {
			return
		}
		session, err := env.sessions.Peek(sessionID)
		if err == nil {
			observed = append(observed, session.Status)
		}
	}

	mu.Lock()
	resp := submit(t, env, "Give me a summary", "fixed-session")
	sessionID = resp.SessionID
	mu.Unlock()
	env.wait(t)

	mu.Lock()
	defer mu.Unlock()
	for _, status := range observed {
		assert.Equal(t, domain.StatusProcessing, status)
	}
	session, err := env.sessions.Peek(sessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, session.Status)
}

func TestQueryService_ReusesExplicitSession(t *testing.T) {
	env := newTestEnv(t, nil, config.SimulationConfig{})

	first := submit(t, env, "Give me a summary of the quarterly performance of the northern region", "s-1")
	env.wait(t)
	second := submit(t, env, "Another question", "s-1")
	env.wait(t)

	assert.Equal(t, "s-1", first.SessionID)
	assert.Equal(t, "s-1", second.SessionID)

	session, err := env.sessions.Peek("s-1")
	require.NoError(t, err)
	assert.Len(t, session.Messages, 4)
	assert.Equal(t, domain.SessionTitle("Give me a summary of the quarterly performance of the northern region"), session.Title)
	assert.True(t, strings.HasSuffix(session.Title, "..."))
}

func TestQueryService_RejectsUnsafeSessionID(t *testing.T) {
	env := newTestEnv(t, nil, config.SimulationConfig{})

	_, err := env.query.Submit(context.Background(), domain.QueryRequest{
		UserQuery: "hello",
		UserEmail: "a@example.com",
		SessionID: "../../etc",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSessionID)
	assert.Empty(t, env.sessions.List())
}

func TestQueryService_ArtifactPanicBecomesError(t *testing.T) {
	artifacts := new(MockArtifactGenerator)
	artifacts.On("Text").Panic("generator exploded")
	env := newTestEnv(t, artifacts, config.SimulationConfig{})

	resp := submit(t, env, "Give me a summary", "")
	env.wait(t)

	session, err := env.sessions.Peek(resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, session.Status)
	assert.Len(t, session.Messages, 1)
	assert.False(t, env.notifications.HasUnread(resp.SessionID))

	events := env.progress.Read(context.Background(), resp.SessionID)
	last := events[len(events)-1]
	assert.Equal(t, StepError, last.Step)
	assert.Contains(t, last.Message, "An error occurred: ")
	assert.Contains(t, last.Message, "generator exploded")
	assert.Zero(t, last.StepNumber)
	assert.Zero(t, last.TotalSteps)
}

func TestQueryService_ChartUsesRequestedSubtype(t *testing.T) {
	artifacts := new(MockArtifactGenerator)
	chart := &domain.ChartDescriptor{Type: domain.ChartScatter, Title: "Revenue vs Spend"}
	artifacts.On("Text").Return("canned report")
	artifacts.On("Chart", domain.ChartScatter).Return(chart)
	env := newTestEnv(t, artifacts, config.SimulationConfig{})

	resp := submit(t, env, "Plot a scatter of revenue vs spend", "")
	env.wait(t)

	session, err := env.sessions.Peek(resp.SessionID)
	require.NoError(t, err)
	reply := session.Messages[1]
	assert.Equal(t, "canned report", reply.Content)
	assert.Same(t, chart, reply.Chart)

	artifacts.AssertExpectations(t)
}

func TestQueryService_DeletedSessionEndsInErrorEvent(t *testing.T) {
	release := make(chan struct{})
	env := newTestEnv(t, nil, config.SimulationConfig{})
	var once sync.Once
	started := make(chan struct{})
	env.query.sleep = func(time.Duration) {
		once.Do(func() { close(started) })
		<-release
	}

	resp := submit(t, env, "Give me a summary", "")
	<-started
	require.NoError(t, env.session.Delete(resp.SessionID))
	close(release)
	env.wait(t)

	events := env.progress.Read(context.Background(), resp.SessionID)
	last := events[len(events)-1]
	assert.Equal(t, StepError, last.Step)
	assert.Contains(t, last.Message, domain.ErrSessionNotFound.Error())
	_, ok := env.notifications.Get(resp.SessionID)
	assert.False(t, ok)
}

func TestQueryService_SerializesSameSessionWhenConfigured(t *testing.T) {
	env := newTestEnv(t, nil, config.SimulationConfig{SerializeSessionQueries: true})

	var mu sync.Mutex
	active, maxActive := 0, 0
	env.query.sleep = func(time.Duration) {
		mu.Lock()
		active++
		maxActive = max(maxActive, active)
		mu.Unlock()
		time.Sleep(time.Millisecond)
		mu.Lock()
		active--
		mu.Unlock()
	}

	submit(t, env, "Give me a summary", "shared")
	submit(t, env, "Give me another summary", "shared")
	env.wait(t)

	assert.Equal(t, 1, maxActive)

	events := env.progress.Read(context.Background(), "shared")
	names := stepNames(events)
	expected := append(scriptNames(domain.KindText), StepFinished)
	assert.Equal(t, append(expected, expected...), names)
}

func TestQueryService_StepDelay(t *testing.T) {
	svc := &QueryService{cfg: config.SimulationConfig{MinStepDelay: time.Second, MaxStepDelay: 3 * time.Second}}
	for i := 0; i < 100; i++ {
		d := svc.stepDelay()
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 3*time.Second)
	}

	svc.cfg = config.SimulationConfig{MinStepDelay: 5 * time.Millisecond, MaxStepDelay: 5 * time.Millisecond}
	assert.Equal(t, 5*time.Millisecond, svc.stepDelay())
}
