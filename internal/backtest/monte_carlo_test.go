package backtest

import (
	"context"
	"testing"

	"github.com/yourusername/edge-picks/internal/models"
)

func TestRunMonteCarloPositiveEdge(t *testing.T) {
	picks := make([]*SettledPick, 0, 20)
	for i := 0; i < 20; i++ {
		picks = append(picks, &SettledPick{
			Pick:    &models.Pick{WinProb: 0.9},
			Outcome: OutcomeWin,
			Stake:   10,
			Price:   2.0,
		})
	}

	result, err := RunMonteCarlo(context.Background(), picks, MonteCarloConfig{
		Iterations:      500,
		Seed:            42,
		InitialBankroll: 1000,
	})
	if err != nil {
		t.Fatalf("RunMonteCarlo failed: %v", err)
	}

	if result.Iterations != 500 {
		t.Errorf("expected 500 iterations, got %d", result.Iterations)
	}
	// 90% winners at evens: strongly positive expectation.
	if result.MeanReturn <= 0 {
		t.Errorf("expected positive mean return, got %.4f", result.MeanReturn)
	}
	// 20 picks at 10 stake cannot ruin a 1000 bankroll.
	if result.ProbabilityOfRuin != 0 {
		t.Errorf("expected zero ruin probability, got %.4f", result.ProbabilityOfRuin)
	}
	if len(result.ConfidenceIntervals) != 3 {
		t.Errorf("expected 3 confidence intervals, got %d", len(result.ConfidenceIntervals))
	}
}

func TestRunMonteCarloDeterministicWithSeed(t *testing.T) {
	picks := []*SettledPick{
		{Pick: &models.Pick{WinProb: 0.5}, Outcome: OutcomeWin, Stake: 10, Price: 2.0},
		{Pick: &models.Pick{WinProb: 0.5}, Outcome: OutcomeLoss, Stake: 10, Price: 2.0},
	}
	cfg := MonteCarloConfig{Iterations: 100, Seed: 7, InitialBankroll: 100}

	first, err := RunMonteCarlo(context.Background(), picks, cfg)
	if err != nil {
		t.Fatalf("RunMonteCarlo failed: %v", err)
	}
	second, err := RunMonteCarlo(context.Background(), picks, cfg)
	if err != nil {
		t.Fatalf("RunMonteCarlo failed: %v", err)
	}

	if first.MeanReturn != second.MeanReturn {
		t.Errorf("same seed should reproduce results: %.6f vs %.6f", first.MeanReturn, second.MeanReturn)
	}
}

func TestRunMonteCarloSkipsUnsettledPicks(t *testing.T) {
	picks := []*SettledPick{
		{Pick: &models.Pick{WinProb: 0.5}, Outcome: OutcomeSkipped, Stake: 0, Price: 0},
	}

	result, err := RunMonteCarlo(context.Background(), picks, MonteCarloConfig{
		Iterations:      50,
		Seed:            1,
		InitialBankroll: 100,
	})
	if err != nil {
		t.Fatalf("RunMonteCarlo failed: %v", err)
	}
	if result.MeanReturn != 0 || result.StdReturn != 0 {
		t.Errorf("skipped picks should leave the bankroll untouched, got %.4f/%.4f",
			result.MeanReturn, result.StdReturn)
	}
}

func TestRunMonteCarloRequiresBankroll(t *testing.T) {
	if _, err := RunMonteCarlo(context.Background(), nil, MonteCarloConfig{}); err == nil {
		t.Error("expected error for missing bankroll")
	}
}
