package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
)

func (h *Handler) ListFixturesByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesByLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	fixtures, err := h.fixtureService.ListByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeFixtures(ctx, w, http.StatusOK, leagueID, fixtures)
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req generateScheduleRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.fixtureService.GenerateSchedule(ctx, leagueID, req.Force)
	if err != nil {
		h.logger.WarnContext(ctx, "generate schedule failed", "league_id", leagueID, "force", req.Force, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeFixtures(ctx, w, http.StatusCreated, leagueID, fixtures)
}

func (h *Handler) ReorderFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReorderFixtures")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req reorderFixturesRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.fixtureService.Reorder(ctx, leagueID, req.FixtureIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "reorder fixtures failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeFixtures(ctx, w, http.StatusOK, leagueID, fixtures)
}

func (h *Handler) writeFixtures(ctx context.Context, w http.ResponseWriter, status int, leagueID string, fixtures []fixture.Fixture) {
	teamNameByID := h.teamNames(ctx, leagueID)
	items := make([]fixtureDTO, 0, len(fixtures))
	for _, item := range fixtures {
		items = append(items, fixtureToDTO(item, teamNameByID))
	}

	writeSuccess(ctx, w, status, items)
}

// teamNames maps team ids to names for responses; a roster lookup failure only drops the names.
func (h *Handler) teamNames(ctx context.Context, leagueID string) map[string]string {
	out := make(map[string]string)
	teams, err := h.leagueService.ListTeamsByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed while mapping fixtures", "league_id", leagueID, "error", err)
		return out
	}
	for _, t := range teams {
		out[t.ID] = t.Name
	}
	return out
}
