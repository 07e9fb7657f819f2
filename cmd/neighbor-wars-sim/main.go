// Command neighbor-wars-sim plays batches of computer-versus-computer
// matches and reports how they ended.
package main

import (
	"flag"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/config"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/logging"
)

// tally counts records across every simulated match.
type tally struct {
	moves    atomic.Int64
	powers   atomic.Int64
	mu       sync.Mutex
	outcomes map[game.Outcome]int
	rounds   int
}

func (t *tally) RecordMove(engine.MoveRecord)        { t.moves.Add(1) }
func (t *tally) RecordPowerUsage(engine.PowerRecord) { t.powers.Add(1) }
func (t *tally) RecordOutcome(r engine.OutcomeRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outcomes[r.Outcome]++
	t.rounds += r.Rounds
}

func main() {
	games := flag.Int("games", 1000, "Number of matches to play")
	seed := flag.Uint64("seed", 1, "Seed of the first match; match i uses seed+i")
	parallelism := flag.Int("parallel", runtime.NumCPU(), "Matches played at once")
	configPath := flag.String("config", "", "Optional YAML config whose rules are used")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	logging.Init(*level, true)
	rules := engine.DefaultRules()
	if *configPath != "" {
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			logging.Fatal("Missing or invalid configuration", err, logging.Fields{"config_path": *configPath})
		}
		rules = cfg.Rules
	}
	if *parallelism < 1 {
		*parallelism = 1
	}

	t := &tally{outcomes: make(map[game.Outcome]int)}
	sem := make(chan struct{}, *parallelism)
	var wg sync.WaitGroup
	var failed atomic.Int64
	for i := 0; i < *games; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(s uint64) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := play(rules, s, t); err != nil {
				failed.Add(1)
				logging.Error("match failed", err, logging.Fields{"seed": s})
			}
		}(*seed + uint64(i))
	}
	wg.Wait()

	played := *games - int(failed.Load())
	avg := 0.0
	if played > 0 {
		avg = float64(t.rounds) / float64(played)
	}
	logging.Info("simulation finished", logging.Fields{
		"games":       played,
		"failed":      failed.Load(),
		"side_a_wins": t.outcomes[game.OutcomeSideAWins],
		"side_b_wins": t.outcomes[game.OutcomeSideBWins],
		"draws":       t.outcomes[game.OutcomeDraw],
		"avg_rounds":  avg,
		"moves":       t.moves.Load(),
		"powers_used": t.powers.Load(),
		"max_rounds":  rules.MaxRounds,
		"tie_break":   string(rules.TieBreak),
	})
}

// play runs one match to its end. With both sides computer controlled and
// AutoPlay on, NewMatch returns a finished match.
func play(rules engine.Rules, seed uint64, sink engine.Sink) error {
	rng := engine.NewRand(seed)
	tier2 := []game.Tier2Kind{game.PowerSpyDrone, game.PowerFence, game.PowerFertilizer}
	m, err := engine.NewMatch(engine.MatchConfig{
		Rules:       rules,
		Tier2:       [2]game.Tier2Kind{tier2[rng.Intn(len(tier2))], tier2[rng.Intn(len(tier2))]},
		Controllers: [2]engine.Controller{engine.AI, engine.AI},
		Starter:     game.SideA,
		Seed:        seed,
		Sink:        sink,
		AutoPlay:    true,
	})
	if err != nil {
		return err
	}
	logging.Debug("match finished", logging.Fields{"seed": seed, "outcome": string(m.Outcome()), "rounds": m.Round()})
	return nil
}
