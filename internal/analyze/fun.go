package analyze

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/runnerr0/timecraft/internal/history"
)

// FunFact is a one-line observation about the history.
type FunFact struct {
	Emoji string `json:"emoji"`
	Fact  string `json:"fact"`
}

// Roasts is the pool Roast picks from.
var Roasts = []string{
	"I see you're still typing 'gut status' instead of 'git status'. Maybe it's time for a typing course? 😏",
	"Wow, another 'sudo !!' - planning ahead isn't your strong suit, is it? 😅",
	"You've used 'vim' and immediately ':q' so many times. VS Code is waiting for you... 🎯",
	"The number of times you've run 'npm install' without '--save' is concerning. 📦",
	"Your command history suggests you're in a very committed relationship with Stack Overflow. 💑",
}

const noRoast = "You're doing great! (I couldn't find anything to roast) 😇"

// FunFacts reports the longest session, the busiest hour and command variety.
// The first two are skipped for an empty history.
func FunFacts(records []history.Record, gap time.Duration) []FunFact {
	var facts []FunFact

	if longest, ok := LongestSession(records, gap); ok {
		h, m := SplitDuration(longest)
		facts = append(facts, FunFact{
			Emoji: "🏃",
			Fact:  fmt.Sprintf("Your longest coding session was %d hours %d minutes", h, m),
		})
	}

	if busiest, ok := MostActiveHour(records); ok {
		facts = append(facts, FunFact{
			Emoji: "⏰",
			Fact:  fmt.Sprintf("You're most productive at %d:00 with %d commands", busiest.Hour, busiest.Count),
		})
	}

	facts = append(facts, FunFact{
		Emoji: "🎭",
		Fact: fmt.Sprintf("You've used %d unique commands out of %d total executions",
			UniqueCommands(records), len(records)),
	})

	return facts
}

// Roast picks one line from pool uniformly using rng.
func Roast(rng *rand.Rand, pool []string) string {
	if len(pool) == 0 {
		return noRoast
	}
	return pool[rng.Intn(len(pool))]
}
