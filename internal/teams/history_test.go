package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pable/ns2-stats/internal/model"
)

func summary(length float64, marines, aliens []string, mc, ac string) model.GameSummary {
	return model.GameSummary{
		RoundLength: length,
		Marines:     model.TeamSummary{Players: marines, Commander: mc},
		Aliens:      model.TeamSummary{Players: aliens, Commander: ac},
	}
}

func TestPastGames(t *testing.T) {
	history := []model.GameSummary{
		summary(600, []string{"a", "b"}, []string{"c", "d"}, "a", "c"),
		summary(900, []string{"a", "c"}, []string{"b", "d"}, "a", "c"),
		summary(1200, []string{"a", "b"}, []string{"c", "e"}, "a", "c"), // e instead of d
		summary(300, []string{"a", "b", "x"}, []string{"c", "d"}, "a", "c"),
		summary(700, []string{"a", "b"}, []string{"c", "d"}, "b", "c"), // other commander
	}

	got := PastGames(history, []string{"a", "b", "c", "d"}, "a", "c")
	if assert.Len(t, got, 2) {
		assert.Equal(t, 900.0, got[0].RoundLength, "longest round first")
		assert.Equal(t, 600.0, got[1].RoundLength)
	}

	assert.Empty(t, PastGames(history, []string{"a", "b", "c", "d"}, "", ""))
}
