package analyze

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunFacts(t *testing.T) {
	records := at(0, 30, 95, 200)
	records[1].Command = "git status"

	facts := FunFacts(records, time.Hour)

	require.Len(t, facts, 3)
	assert.Equal(t, FunFact{Emoji: "🏃", Fact: "Your longest coding session was 0 hours 30 minutes"}, facts[0])
	assert.Equal(t, FunFact{Emoji: "⏰", Fact: "You're most productive at 9:00 with 2 commands"}, facts[1])
	assert.Equal(t, FunFact{Emoji: "🎭", Fact: "You've used 2 unique commands out of 4 total executions"}, facts[2])
}

func TestFunFacts_Empty(t *testing.T) {
	facts := FunFacts(nil, time.Hour)

	require.Len(t, facts, 1)
	assert.Equal(t, "You've used 0 unique commands out of 0 total executions", facts[0].Fact)
}

func TestRoast(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		assert.Contains(t, Roasts, Roast(rng, Roasts))
	}
}

func TestRoast_SameSeedSameLine(t *testing.T) {
	a := Roast(rand.New(rand.NewSource(42)), Roasts)
	b := Roast(rand.New(rand.NewSource(42)), Roasts)
	assert.Equal(t, a, b)
}

func TestRoast_EmptyPool(t *testing.T) {
	assert.Equal(t, noRoast, Roast(rand.New(rand.NewSource(1)), nil))
}
