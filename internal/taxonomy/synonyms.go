package taxonomy

import "strings"

// lexicon is a static synonym table derived from WordNet synsets for the
// seed words the taxonomy designates for expansion. A lookup miss is not an
// error; unknown words simply expand to nothing.
var lexicon = map[string][]string{
	"terrorism":  {"act of terrorism", "terrorist act"},
	"protest":    {"protestation", "objection", "dissent", "resist", "remonstrance", "demonstrate"},
	"violence":   {"force", "ferocity", "fierceness", "furiousness", "fury", "wildness"},
	"riot":       {"rioting", "public violence", "carousal", "run riot", "bacchanal"},
	"conflict":   {"struggle", "battle", "clash", "dispute", "engagement", "difference of opinion"},
	"happy":      {"felicitous", "glad", "well-chosen", "cheerful"},
	"positive":   {"affirmative", "confident", "incontrovertible", "favorable"},
	"success":    {"winner", "achiever", "succeeder", "prosperity"},
	"celebrate":  {"observe", "fete", "lionize", "rejoice"},
	"earthquake": {"quake", "temblor", "seism"},
	"flood":      {"inundation", "deluge", "alluvion", "overflow", "torrent"},
	"disaster":   {"catastrophe", "calamity", "cataclysm", "tragedy"},
	"storm":      {"tempest", "violent storm", "surprise attack", "rage"},
}

// Synonyms returns every known synonym of word, or nothing when the word is
// absent from the lexicon.
func Synonyms(word string) []string {
	return lexicon[strings.ToLower(word)]
}
