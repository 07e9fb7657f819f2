package service

import (
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/logging"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/storage"
)

// repoSink writes engine records through the repository once the match
// header exists. Failures are logged and never reach the match. It also follows round changes so the
// match header shows progress.
type repoSink struct {
	engine.NopObserver
	repo    storage.Repository
	matchID uint
	players [2]uint
	round   int
}

func (s *repoSink) fields(extra logging.Fields) logging.Fields {
	f := logging.Fields{constants.LogFieldMatchID: s.matchID}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func (s *repoSink) RecordMove(r engine.MoveRecord) {
	if s.matchID == 0 {
		return
	}
	mv := game.Move{
		MatchID:           s.matchID,
		RoundNumber:       r.Round,
		AttackingPlayerID: s.players[r.Attacker],
		AttackingSide:     r.Attacker,
		TargetRow:         r.Row,
		TargetCol:         r.Col,
		WasHit:            r.WasHit,
		DefenderChoice:    r.DefenderPick,
		Result:            r.Result,
	}
	if len(r.AttackerPicks) > 0 {
		mv.AttackerChoice = r.AttackerPicks[0]
	}
	if len(r.AttackerPicks) > 1 {
		mv.AttackerSecond = r.AttackerPicks[1]
	}
	if err := s.repo.SaveMove(&mv); err != nil {
		logging.Error("failed to save move", err, s.fields(logging.Fields{constants.LogFieldRound: r.Round}))
	}
}

func (s *repoSink) RecordPowerUsage(r engine.PowerRecord) {
	if s.matchID == 0 {
		return
	}
	pu := game.PowerUsage{MatchID: s.matchID, PlayerID: s.players[r.Side], PowerName: r.Power, UsedAtRound: r.Round}
	if err := s.repo.SavePowerUsage(&pu); err != nil {
		logging.Error("failed to save power usage", err, s.fields(logging.Fields{constants.LogFieldSide: r.Side.String()}))
	}
}

func (s *repoSink) RecordOutcome(r engine.OutcomeRecord) {
	if s.matchID == 0 {
		return
	}
	res := storage.MatchResult{MatchID: s.matchID, Outcome: r.Outcome, Rounds: r.Rounds}
	if w, ok := r.Outcome.Winner(); ok {
		if id := s.players[w]; id != 0 {
			res.WinnerID = &id
		}
		if id := s.players[w.Opponent()]; id != 0 {
			res.LoserID = &id
		}
	}
	for side, st := range r.Stats {
		if s.players[side] == 0 {
			continue
		}
		res.Stats = append(res.Stats, game.MatchStats{
			PlayerID:           s.players[side],
			TotalAttacks:       st.Attacks,
			SuccessfulHits:     st.Hits,
			UnitsDestroyed:     st.UnitsDestroyed,
			PowersUsed:         st.PowersUsed,
			AccuracyPercentage: st.Accuracy(),
		})
	}
	if err := s.repo.FinishMatch(res); err != nil {
		logging.Error("failed to finish match", err, s.fields(logging.Fields{constants.LogFieldOutcome: string(r.Outcome)}))
		return
	}
	logging.Info("match finished", s.fields(logging.Fields{constants.LogFieldOutcome: string(r.Outcome), constants.LogFieldRound: r.Rounds}))
}

func (s *repoSink) OnTurnChanged(_ game.Side, round int) {
	if round == s.round || s.matchID == 0 {
		return
	}
	s.round = round
	if err := s.repo.UpdateMatchRound(s.matchID, round); err != nil {
		logging.Warn("failed to update match round", s.fields(logging.Fields{"error": err.Error()}))
	}
}
