package words

import (
	"math/rand"
	"strings"
)

// List is the shared word pool. Concrete, drawable nouns work best;
// a few multi-word entries exercise the space-preserving mask.
var List = []string{
	// Animals
	"elephant", "penguin", "octopus", "giraffe", "butterfly",
	"kangaroo", "dolphin", "hedgehog", "flamingo", "squirrel",
	"crocodile", "jellyfish", "peacock", "tortoise", "raccoon",

	// Objects
	"umbrella", "telescope", "hourglass", "anchor", "compass",
	"lantern", "scissors", "hammock", "backpack", "snowglobe",
	"typewriter", "accordion", "chandelier", "periscope", "stethoscope",

	// Food
	"pineapple", "croissant", "spaghetti", "watermelon", "pretzel",
	"cupcake", "taco", "pancake", "popcorn", "avocado",

	// Places
	"lighthouse", "waterfall", "volcano", "igloo", "windmill",
	"pyramid", "treehouse", "castle", "harbor", "stadium",

	// Vehicles
	"submarine", "helicopter", "unicycle", "sailboat", "bulldozer",
	"skateboard", "zeppelin", "rickshaw", "snowplow", "gondola",

	// Nature
	"tornado", "glacier", "rainbow", "cactus", "coral reef",
	"lightning", "sand dune", "geyser", "meteor", "tide pool",

	// Activities & misc
	"juggling", "campfire", "snowball fight", "hopscotch", "tug of war",
	"ice cream truck", "ferris wheel", "hot air balloon", "roller coaster", "bumper car",
	"scarecrow", "marionette", "kaleidoscope", "boomerang", "trampoline",
	"dream catcher", "treasure map", "magnifying glass", "rubber duck", "paper airplane",
}

// Choose draws k options from the list, sampling with replacement.
// Duplicate options in one offer are possible and accepted.
func Choose(k int) []string {
	options := make([]string, k)
	for i := range options {
		options[i] = List[rand.Intn(len(List))]
	}
	return options
}

// Mask replaces every non-space character with an underscore, preserving
// spaces so the word structure stays visible.
func Mask(word string) string {
	masked := []rune(word)
	for i, r := range masked {
		if r != ' ' {
			masked[i] = '_'
		}
	}
	return string(masked)
}

// Reveal copies one random still-hidden letter of word into masked and
// returns the result. The last hidden letter is never revealed, so a
// fully-hinted word still takes a guess.
func Reveal(word, masked string) string {
	wr := []rune(word)
	mr := []rune(masked)
	if len(wr) != len(mr) {
		return masked
	}

	hidden := make([]int, 0, len(mr))
	for i, r := range mr {
		if r == '_' {
			hidden = append(hidden, i)
		}
	}
	if len(hidden) <= 1 {
		return masked
	}

	i := hidden[rand.Intn(len(hidden))]
	mr[i] = wr[i]
	return string(mr)
}

// Matches reports whether a guess equals the secret word, ignoring case
// and surrounding whitespace.
func Matches(guess, word string) bool {
	return strings.EqualFold(strings.TrimSpace(guess), word)
}

// IsClose reports whether a wrong guess is one edit away from the secret
// word, used to send the guesser a private "close" nudge.
func IsClose(guess, word string) bool {
	g := strings.ToLower(strings.TrimSpace(guess))
	w := strings.ToLower(word)
	if g == w {
		return false
	}
	return editDistance(g, w) <= 1
}

// editDistance computes the Levenshtein distance between two strings
func editDistance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
