package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder_WhereOrderLimit(t *testing.T) {
	sql, args, err := Select("id", "name", "price").
		From("players").
		Where(Eq("county", "Galway"), Expr("price <= ?", int64(9))).
		OrderBy("id ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id, name, price FROM players WHERE county = $1 AND price <= $2 ORDER BY id ASC LIMIT 10"
	if sql != want {
		t.Fatalf("sql=%q want=%q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"Galway", int64(9)}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectBuilder_EmptyInShortCircuits(t *testing.T) {
	sql, args, err := Select("id").
		From("players").
		Where(In("id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id FROM players WHERE 1=0"
	if sql != want {
		t.Fatalf("sql=%q want=%q", sql, want)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestSelectBuilder_InNumbersPlaceholders(t *testing.T) {
	sql, args, err := Select("id").
		From("players").
		Where(Eq("status", "available"), In("id", []any{"a", "b", "c"})).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id FROM players WHERE status = $1 AND id IN ($2, $3, $4)"
	if sql != want {
		t.Fatalf("sql=%q want=%q", sql, want)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %v", args)
	}
}

func TestInsertBuilder_MultiRowWithSuffix(t *testing.T) {
	sql, args, err := InsertInto("gameweeks").
		Columns("number", "is_active").
		Values(1, true).
		Values(2, false).
		Suffix("ON CONFLICT (number) DO UPDATE SET is_active = EXCLUDED.is_active").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO gameweeks (number, is_active) VALUES ($1, $2), ($3, $4) ON CONFLICT (number) DO UPDATE SET is_active = EXCLUDED.is_active"
	if sql != want {
		t.Fatalf("sql=%q want=%q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{1, true, 2, false}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("gameweeks").
		Columns("number", "is_active").
		Values(1).
		ToSQL()
	if err == nil {
		t.Fatal("expected error for row width mismatch")
	}
}

func TestUpdateBuilder_SetExprAndWhere(t *testing.T) {
	sql, args, err := Update("players").
		SetExpr("total_points", "total_points + ?", 4).
		Set("updated_at", "2026-05-01T00:00:00Z").
		Where(Eq("id", "gal-fwd-01")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "UPDATE players SET total_points = total_points + $1, updated_at = $2 WHERE id = $3"
	if sql != want {
		t.Fatalf("sql=%q want=%q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{4, "2026-05-01T00:00:00Z", "gal-fwd-01"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDeleteBuilder_RequiresConditions(t *testing.T) {
	if _, _, err := DeleteFrom("teams").ToSQL(); err == nil {
		t.Fatal("expected error for unconditional delete")
	}

	sql, args, err := DeleteFrom("teams").Where(Eq("id", "team-1")).ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "DELETE FROM teams WHERE id = $1" {
		t.Fatalf("unexpected sql: %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"team-1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}
