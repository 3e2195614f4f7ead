package mission

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/roost/pkg/blackboard"
)

// happyAgents returns four stub agents that produce list outputs of the
// given sizes plus a report URL.
func happyAgents(sources, samples, results int) (Agent, Agent, Agent, Agent) {
	listOf := func(n int, prefix string) []map[string]string {
		items := make([]map[string]string, n)
		for i := range items {
			items[i] = map[string]string{"id": fmt.Sprintf("%s-%d", prefix, i)}
		}
		return items
	}

	discovery := AgentFunc{AgentName: "discovery", Fn: func(ctx context.Context, b blackboard.Board) (any, error) {
		return listOf(sources, "src"), nil
	}}
	acquisition := AgentFunc{AgentName: "acquisition", Fn: func(ctx context.Context, b blackboard.Board) (any, error) {
		// Agents read their inputs from the board, never from each other.
		if _, err := b.Query(ctx, blackboard.KeyActiveSources); err != nil {
			return nil, fmt.Errorf("missing discovery output: %w", err)
		}
		return listOf(samples, "sample"), nil
	}}
	analysis := AgentFunc{AgentName: "analysis", Fn: func(ctx context.Context, b blackboard.Board) (any, error) {
		if _, err := b.Query(ctx, blackboard.KeySamples); err != nil {
			return nil, fmt.Errorf("missing acquisition output: %w", err)
		}
		return listOf(results, "result"), nil
	}}
	reporting := AgentFunc{AgentName: "reporting", Fn: func(ctx context.Context, b blackboard.Board) (any, error) {
		if _, err := b.Query(ctx, blackboard.KeyAnalysisResults); err != nil {
			return nil, fmt.Errorf("missing analysis output: %w", err)
		}
		return map[string]string{"url": "file:///tmp/dashboard.html"}, nil
	}}

	return discovery, acquisition, analysis, reporting
}

func TestExecuteCompletedRun(t *testing.T) {
	board := blackboard.NewMemoryBoard()
	discovery, acquisition, analysis, reporting := happyAgents(3, 9, 9)
	o := New(board, discovery, acquisition, analysis, reporting)

	report, err := o.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusMissionCompleted, report.Status)
	assert.Equal(t, NumPhases, report.PhasesCompleted)
	assert.Equal(t, NumPhases, report.AgentsExecuted)
	assert.Equal(t, StateCompleted, o.State())
	assert.NotEmpty(t, report.MissionID)
	assert.Equal(t, "file:///tmp/dashboard.html", report.DashboardURL)

	require.Len(t, report.ExecutionLog, NumPhases)
	wantOrder := []Phase{PhaseDiscovery, PhaseAcquisition, PhaseAnalysis, PhaseReporting}
	for i, rec := range report.ExecutionLog {
		assert.Equal(t, wantOrder[i], rec.Phase)
		assert.Equal(t, PhaseStatusCompleted, rec.Status)
		assert.False(t, rec.EndedAt.Before(rec.StartedAt))
	}

	assert.Equal(t, Summary{SourcesDiscovered: 3, SamplesAcquired: 9, SamplesAnalyzed: 9}, report.Summary)
}

func TestExecuteStoresEveryPhaseOutput(t *testing.T) {
	board := blackboard.NewMemoryBoard()
	discovery, acquisition, analysis, reporting := happyAgents(2, 4, 4)
	o := New(board, discovery, acquisition, analysis, reporting)

	_, err := o.Execute(context.Background())
	require.NoError(t, err)

	ctx := context.Background()
	for _, key := range []string{
		blackboard.KeyActiveSources,
		blackboard.KeySamples,
		blackboard.KeyAnalysisResults,
		blackboard.KeyReportReady,
	} {
		_, err := board.Query(ctx, key)
		assert.NoError(t, err, "key %s should be on the board", key)
	}

	// The per-phase status signal fired too.
	entry, err := board.Query(ctx, blackboard.KeyMissionStatus)
	require.NoError(t, err)
	var status map[string]string
	require.NoError(t, entry.Decode(&status))
	assert.Equal(t, string(PhaseReporting), status["phase"])
	assert.Equal(t, string(PhaseStatusCompleted), status["status"])
}

func TestExecuteFailureAbortsRemainingPhases(t *testing.T) {
	board := blackboard.NewMemoryBoard()
	discovery, _, analysis, reporting := happyAgents(3, 9, 9)

	analysisCalled := false
	brokenAcquisition := AgentFunc{AgentName: "acquisition", Fn: func(ctx context.Context, b blackboard.Board) (any, error) {
		return nil, fmt.Errorf("no storage space")
	}}
	spyAnalysis := AgentFunc{AgentName: "analysis", Fn: func(ctx context.Context, b blackboard.Board) (any, error) {
		analysisCalled = true
		return analysis.Execute(ctx, b)
	}}

	o := New(board, discovery, brokenAcquisition, spyAnalysis, reporting)

	report, err := o.Execute(context.Background())
	require.Error(t, err)

	var phaseErr *PhaseError
	require.True(t, errors.As(err, &phaseErr))
	assert.Equal(t, PhaseAcquisition, phaseErr.Phase)

	assert.Equal(t, StatusMissionFailed, report.Status)
	assert.Equal(t, StateFailed, o.State())
	assert.False(t, analysisCalled, "phases after the failure must not run")

	// Log covers exactly the phases attempted: discovery + acquisition.
	require.Len(t, report.ExecutionLog, 2)
	assert.Equal(t, PhaseStatusCompleted, report.ExecutionLog[0].Status)
	assert.Equal(t, PhaseStatusFailed, report.ExecutionLog[1].Status)
	assert.Contains(t, report.ExecutionLog[1].Err, "no storage space")
	assert.Equal(t, 1, report.PhasesCompleted)
	assert.Equal(t, 2, report.AgentsExecuted)
	assert.Contains(t, report.Err, "no storage space")
}

func TestExecuteFailedPhasePublishesNothing(t *testing.T) {
	board := blackboard.NewMemoryBoard()
	discovery, _, analysis, reporting := happyAgents(3, 9, 9)
	brokenAcquisition := AgentFunc{AgentName: "acquisition", Fn: func(ctx context.Context, b blackboard.Board) (any, error) {
		return nil, fmt.Errorf("boom")
	}}

	o := New(board, discovery, brokenAcquisition, analysis, reporting)
	_, err := o.Execute(context.Background())
	require.Error(t, err)

	ctx := context.Background()
	_, err = board.Query(ctx, blackboard.KeyActiveSources)
	assert.NoError(t, err, "completed phase output stays published")

	_, err = board.Query(ctx, blackboard.KeySamples)
	assert.True(t, blackboard.IsNotFound(err), "failed phase must not publish output")
}

func TestExecuteFirstPhaseFailure(t *testing.T) {
	board := blackboard.NewMemoryBoard()
	_, acquisition, analysis, reporting := happyAgents(3, 9, 9)
	brokenDiscovery := AgentFunc{AgentName: "discovery", Fn: func(ctx context.Context, b blackboard.Board) (any, error) {
		return nil, fmt.Errorf("all enumerators down")
	}}

	o := New(board, brokenDiscovery, acquisition, analysis, reporting)
	report, err := o.Execute(context.Background())
	require.Error(t, err)

	assert.Len(t, report.ExecutionLog, 1)
	assert.Equal(t, 0, report.PhasesCompleted)
	assert.Equal(t, Summary{}, report.Summary)
	assert.Empty(t, report.DashboardURL)
}

func TestExecuteRejectsSecondRun(t *testing.T) {
	board := blackboard.NewMemoryBoard()
	discovery, acquisition, analysis, reporting := happyAgents(1, 1, 1)
	o := New(board, discovery, acquisition, analysis, reporting)

	_, err := o.Execute(context.Background())
	require.NoError(t, err)

	_, err = o.Execute(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already executed")
}

func TestExecutePhaseStepwise(t *testing.T) {
	board := blackboard.NewMemoryBoard()
	discovery, acquisition, analysis, reporting := happyAgents(2, 6, 6)
	o := New(board, discovery, acquisition, analysis, reporting)
	ctx := context.Background()

	t.Run("rejects out-of-range phase numbers", func(t *testing.T) {
		assert.Error(t, o.ExecutePhase(ctx, 0))
		assert.Error(t, o.ExecutePhase(ctx, 5))
	})

	t.Run("drives phases one at a time", func(t *testing.T) {
		require.NoError(t, o.ExecutePhase(ctx, 1))
		assert.Equal(t, State("DISCOVERY"), o.State())

		_, err := board.Query(ctx, blackboard.KeyActiveSources)
		assert.NoError(t, err)
		_, err = board.Query(ctx, blackboard.KeySamples)
		assert.True(t, blackboard.IsNotFound(err))

		require.NoError(t, o.ExecutePhase(ctx, 2))
		require.NoError(t, o.ExecutePhase(ctx, 3))
		require.NoError(t, o.ExecutePhase(ctx, 4))

		assert.Len(t, o.ExecutionLog(), NumPhases)
	})
}

func TestExecuteCancelledContextFailsPhase(t *testing.T) {
	board := blackboard.NewMemoryBoard()
	discovery := AgentFunc{AgentName: "discovery", Fn: func(ctx context.Context, b blackboard.Board) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	_, acquisition, analysis, reporting := happyAgents(1, 1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := New(board, discovery, acquisition, analysis, reporting)
	report, err := o.Execute(ctx)
	require.Error(t, err)
	assert.Equal(t, StatusMissionFailed, report.Status)
	assert.ErrorIs(t, err, context.Canceled)
}
