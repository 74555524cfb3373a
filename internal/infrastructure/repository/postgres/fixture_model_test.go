package postgres

import (
	"database/sql"
	"testing"

	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/result"
)

func TestResultCodec_KeepsUnenteredSets(t *testing.T) {
	res := &result.MatchResult{
		SetsHome: 2,
		SetsAway: 1,
		Sets: []result.SetScore{
			{Home: result.IntPtr(25), Away: result.IntPtr(20)},
			{Home: result.IntPtr(18), Away: result.IntPtr(25)},
			{Home: result.IntPtr(25), Away: result.IntPtr(23)},
			{Home: result.IntPtr(0), Away: result.IntPtr(0)},
		},
		PointsHome:     3,
		HasPlaceholder: true,
	}

	encoded, err := encodeResult(res)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !encoded.Valid {
		t.Fatalf("expected non-null column value")
	}

	decoded, err := decodeResult(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.SetsHome != 2 || decoded.SetsAway != 1 || decoded.PointsHome != 3 || !decoded.HasPlaceholder {
		t.Fatalf("unexpected decoded result: %+v", decoded)
	}
	if len(decoded.Sets) != 4 || *decoded.Sets[3].Home != 0 || decoded.BallsHome != nil {
		t.Fatalf("unexpected decoded sets: %+v", decoded.Sets)
	}
}

func TestResultCodec_NullMeansNoResult(t *testing.T) {
	encoded, err := encodeResult(nil)
	if err != nil || encoded.Valid {
		t.Fatalf("expected NULL for missing result, got %+v %v", encoded, err)
	}

	decoded, err := decodeResult(sql.NullString{})
	if err != nil || decoded != nil {
		t.Fatalf("expected nil result, got %+v %v", decoded, err)
	}
}

func TestDecodeResult_RejectsMalformedDocument(t *testing.T) {
	if _, err := decodeResult(sql.NullString{String: "{\"sets_home\":", Valid: true}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFixtureTableModel_ToDomain(t *testing.T) {
	row := fixtureTableModel{
		PublicID:      "fx-1",
		LeagueID:      "lg-1",
		Round:         2,
		DisplayOrder:  5,
		HomeTeamID:    "a",
		AwayTeamID:    "b",
		SuggestedTime: "19:30",
		Result:        sql.NullString{String: `{"sets_home":3,"sets_away":0,"decided":true,"points_home":3}`, Valid: true},
	}

	item, err := row.toDomain()
	if err != nil {
		t.Fatalf("to domain: %v", err)
	}
	if item.Order != 5 || item.Round != 2 || item.SuggestedTime != "19:30" || !item.IsDecided() {
		t.Fatalf("unexpected fixture: %+v", item)
	}
}
