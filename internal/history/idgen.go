package history

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

var adjectives = []string{
	"alpine", "amber", "ancient", "arid", "azure",
	"barren", "bold", "breezy", "bright", "brisk",
	"calm", "cedar", "chilly", "clear", "coastal",
	"cool", "crisp", "dappled", "dawn", "deep",
	"dusky", "dusty", "early", "eastern", "emerald",
	"fern", "foggy", "fresh", "frosty", "gentle",
	"golden", "granite", "grassy", "green", "hazy",
	"hidden", "high", "hushed", "icy", "jagged",
	"leafy", "lofty", "lone", "lunar", "lush",
	"mellow", "misty", "mossy", "muddy", "native",
	"northern", "open", "pale", "piney", "quiet",
	"rainy", "rocky", "rugged", "rustic", "sandy",
	"shady", "sheer", "silent", "silver", "snowy",
	"solar", "southern", "starry", "steep", "still",
	"stony", "sunny", "swift", "tall", "tidal",
	"timber", "twilight", "verdant", "vast", "western",
	"wild", "windy", "wooded", "young", "zesty",
}

var nouns = []string{
	"arch", "aspen", "basin", "bay", "bear",
	"bluff", "boulder", "brook", "butte", "cabin",
	"cairn", "campfire", "canyon", "cascade", "cave",
	"cedar", "cliff", "condor", "cove", "coyote",
	"creek", "crest", "delta", "dome", "dune",
	"eagle", "elk", "falls", "fern", "fir",
	"fjord", "forest", "fox", "geyser", "glacier",
	"glade", "gorge", "grove", "gulch", "harbor",
	"hawk", "heron", "hollow", "inlet", "island",
	"juniper", "kestrel", "lagoon", "lake", "lantern",
	"ledge", "lodge", "lynx", "marmot", "marsh",
	"meadow", "mesa", "moose", "otter", "owl",
	"pass", "peak", "pine", "plateau", "pond",
	"prairie", "quail", "rapids", "raven", "redwood",
	"reef", "ridge", "river", "sequoia", "shore",
	"spring", "spruce", "summit", "tarn", "tent",
	"trail", "trout", "tundra", "valley", "vista",
	"willow", "wolf", "yucca",
}

// GenerateID creates an identifier in adjective_noun_YYYYMMDD_HHMMSS format for t.
// Uses crypto/rand for the word selection so entries written in the same second differ.
func GenerateID(t time.Time) (string, error) {
	adj, err := randomWord(adjectives)
	if err != nil {
		return "", fmt.Errorf("selecting random adjective: %w", err)
	}

	noun, err := randomWord(nouns)
	if err != nil {
		return "", fmt.Errorf("selecting random noun: %w", err)
	}

	return fmt.Sprintf("%s_%s_%s", adj, noun, t.Format("20060102_150405")), nil
}

// randomWord selects a random word from the given slice using crypto/rand.
func randomWord(words []string) (string, error) {
	if len(words) == 0 {
		return "", fmt.Errorf("word list is empty")
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return "", fmt.Errorf("generating random number: %w", err)
	}

	return words[n.Int64()], nil
}
