package httpapi

import (
	"net/http"
	"strings"

	"github.com/cyklop/vb-liga-manager-sub000/internal/usecase"
)

func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitResult")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	var req scoreRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.resultService.Submit(ctx, leagueID, fixtureID, req.toRawScore())
	if err != nil {
		h.logger.WarnContext(ctx, "submit result failed", "league_id", leagueID, "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(item, h.teamNames(ctx, leagueID)))
}

func (h *Handler) ClearResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearResult")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	if err := h.resultService.Clear(ctx, leagueID, fixtureID); err != nil {
		h.logger.WarnContext(ctx, "clear result failed", "league_id", leagueID, "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ImportResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportResults")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req importResultsRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]usecase.ImportItem, 0, len(req.Results))
	for _, item := range req.Results {
		items = append(items, usecase.ImportItem{
			FixtureID: item.FixtureID,
			Score:     item.scoreRequest.toRawScore(),
		})
	}

	report, err := h.resultService.Import(ctx, leagueID, items)
	if err != nil {
		h.logger.WarnContext(ctx, "import results failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importReportToDTO(report))
}
