package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionByDialectSQLite(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{"name", " ", "short_code"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	want := "name LIKE ? OR short_code LIKE ?"
	if condition != want {
		t.Fatalf("condition mismatch, want %s got %s", want, condition)
	}
}

func TestBuildLikeConditionByDialectPostgres(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("postgres", []string{"campaigns.name"})
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
	if !strings.Contains(condition, "campaigns.name ILIKE ?") {
		t.Fatalf("condition should use ILIKE, got %s", condition)
	}
}

func TestDBDialectNameDefaultsToSQLite(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("dialect want sqlite got %s", got)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
