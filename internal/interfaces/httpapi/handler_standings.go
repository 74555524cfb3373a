package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	standings, err := h.leagueStandingService.ListByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(standings))
}

func (h *Handler) StandingsOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StandingsOverview")
	defer span.End()

	tables, err := h.leagueStandingService.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "standings overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueTableDTO, 0, len(tables))
	for _, table := range tables {
		items = append(items, leagueTableDTO{
			League:    leagueToDTO(table.League),
			Standings: standingsToDTO(table.Standings),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
