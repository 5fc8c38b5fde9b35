package wordcloud

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordCount is a word and the number of times it occurs.
type WordCount struct {
	Word  string
	Count int
}

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a about above after again against all am an and any are aren't as at
		be because been before being below between both but by
		can can't cannot could couldn't did didn't do does doesn't doing don't down during
		each few for from further had hadn't has hasn't have haven't having he he'd he'll
		he's her here here's hers herself him himself his how how's i i'd i'll i'm i've
		if in into is isn't it it's its itself let's me more most mustn't my myself
		no nor not of off on once only or other ought our ours ourselves out over own
		same shan't she she'd she'll she's should shouldn't so some such than that that's
		the their theirs them themselves then there there's these they they'd they'll
		they're they've this those through to too under until up very was wasn't we we'd
		we'll we're we've were weren't what what's when when's where where's which while
		who who's whom why why's with won't would wouldn't you you'd you'll you're you've
		your yours yourself yourselves
		also just get got like really http https www com
	`) {
		stopwords[w] = struct{}{}
	}
}

// Frequencies counts the non-stopword words of text. Words are lower-cased
// runs of letters, digits and apostrophes; single-rune words are dropped.
func Frequencies(text string) map[string]int {
	freqs := make(map[string]int)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	for _, w := range words {
		w = strings.Trim(w, "'")
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		if _, skip := stopwords[w]; skip {
			continue
		}
		freqs[w]++
	}
	return freqs
}

// TopWords orders freqs by count descending then alphabetically, keeping at
// most limit entries.
func TopWords(freqs map[string]int, limit int) []WordCount {
	out := make([]WordCount, 0, len(freqs))
	for w, c := range freqs {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
