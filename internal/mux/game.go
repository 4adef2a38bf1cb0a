package mux

import (
	"net/http"
	"sort"

	"drawpoker-server/pkg/poker/draw"

	gmux "github.com/gorilla/mux"
)

type gameSummary struct {
	ID    string `json:"id"`
	Round int    `json:"round"`
	Phase string `json:"phase"`
	Pot   int    `json:"pot"`
}

func summarize(lg *LiveGame) gameSummary {
	summary := gameSummary{ID: lg.id}
	if latest := lg.Latest(); latest != nil {
		summary.Round = latest.Round
		summary.Phase = latest.Phase.String()
		summary.Pot = latest.Pot
	}

	return summary
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games := m.liveGames()
		summaries := make([]gameSummary, len(games))
		for i, lg := range games {
			summaries[i] = summarize(lg)
		}
		sort.Slice(summaries, func(i, j int) bool {
			return summaries[i].ID < summaries[j].ID
		})

		writeJSON(w, http.StatusOK, summaries)
	}
}

func (m *Mux) getGameUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lg := m.liveGame(gmux.Vars(r)["uuid"])
		if lg == nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		latest := lg.Latest()
		if latest == nil {
			// the game is registered but has not completed a phase
			writeJSON(w, http.StatusOK, summarize(lg))
			return
		}

		writeJSON(w, http.StatusOK, latest)
	}
}

func (m *Mux) getGameUUIDSnapshots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.snapshots == nil {
			writeJSONError(w, http.StatusServiceUnavailable, nil)
			return
		}

		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		snapshots, err := m.snapshots.GetSnapshots(r.Context(), gmux.Vars(r)["uuid"], start, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if snapshots == nil {
			snapshots = []*draw.Snapshot{}
		}

		writeJSON(w, http.StatusOK, snapshots)
	}
}
