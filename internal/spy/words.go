package spy

import "github.com/lox/partytable/internal/random"

// secretWords is the static dictionary the secret word is drawn from.
// Draws are uniform with no repeat avoidance, within or across sessions.
var secretWords = []string{
	"airport", "aquarium", "bakery", "beach", "bowling alley",
	"campfire", "carnival", "casino", "castle", "cinema",
	"circus", "cruise ship", "desert island", "elevator", "farm",
	"fire station", "hospital", "hot air balloon", "jungle", "karaoke bar",
	"library", "lighthouse", "museum", "night market", "opera house",
	"pirate ship", "planetarium", "polar station", "rooftop bar", "sauna",
	"school bus", "ski resort", "space station", "submarine", "subway",
	"supermarket", "theater", "train station", "vineyard", "zoo",
}

// SecretWord draws one word uniformly from the dictionary.
func SecretWord(rng random.Source) string {
	return secretWords[rng.IntN(len(secretWords))]
}
