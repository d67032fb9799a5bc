// Package catalog holds the verb catalog and catalog file helpers.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/verbroulette/internal/model"
)

// Size is the number of verbs in the built-in catalog.
const Size = 100

// ErrEmptyCatalog reports a catalog with no verbs.
var ErrEmptyCatalog = errors.New("verb catalog is empty")

// Regular verbs come first, then irregular ones, each group alphabetical.
var builtin = [Size]model.VerbRecord{
	{Verb: "accept", Kind: model.Regular, Past: "accepted", PastParticiple: "accepted"},
	{Verb: "achieve", Kind: model.Regular, Past: "achieved", PastParticiple: "achieved"},
	{Verb: "add", Kind: model.Regular, Past: "added", PastParticiple: "added"},
	{Verb: "agree", Kind: model.Regular, Past: "agreed", PastParticiple: "agreed"},
	{Verb: "appear", Kind: model.Regular, Past: "appeared", PastParticiple: "appeared"},
	{Verb: "arrive", Kind: model.Regular, Past: "arrived", PastParticiple: "arrived"},
	{Verb: "ask", Kind: model.Regular, Past: "asked", PastParticiple: "asked"},
	{Verb: "belong", Kind: model.Regular, Past: "belonged", PastParticiple: "belonged"},
	{Verb: "call", Kind: model.Regular, Past: "called", PastParticiple: "called"},
	{Verb: "carry", Kind: model.Regular, Past: "carried", PastParticiple: "carried"},
	{Verb: "clean", Kind: model.Regular, Past: "cleaned", PastParticiple: "cleaned"},
	{Verb: "close", Kind: model.Regular, Past: "closed", PastParticiple: "closed"},
	{Verb: "cook", Kind: model.Regular, Past: "cooked", PastParticiple: "cooked"},
	{Verb: "create", Kind: model.Regular, Past: "created", PastParticiple: "created"},
	{Verb: "decide", Kind: model.Regular, Past: "decided", PastParticiple: "decided"},
	{Verb: "deliver", Kind: model.Regular, Past: "delivered", PastParticiple: "delivered"},
	{Verb: "develop", Kind: model.Regular, Past: "developed", PastParticiple: "developed"},
	{Verb: "enjoy", Kind: model.Regular, Past: "enjoyed", PastParticiple: "enjoyed"},
	{Verb: "enter", Kind: model.Regular, Past: "entered", PastParticiple: "entered"},
	{Verb: "explain", Kind: model.Regular, Past: "explained", PastParticiple: "explained"},
	{Verb: "follow", Kind: model.Regular, Past: "followed", PastParticiple: "followed"},
	{Verb: "happen", Kind: model.Regular, Past: "happened", PastParticiple: "happened"},
	{Verb: "help", Kind: model.Regular, Past: "helped", PastParticiple: "helped"},
	{Verb: "include", Kind: model.Regular, Past: "included", PastParticiple: "included"},
	{Verb: "join", Kind: model.Regular, Past: "joined", PastParticiple: "joined"},
	{Verb: "jump", Kind: model.Regular, Past: "jumped", PastParticiple: "jumped"},
	{Verb: "kill", Kind: model.Regular, Past: "killed", PastParticiple: "killed"},
	{Verb: "learn", Kind: model.Regular, Past: "learned", PastParticiple: "learned"},
	{Verb: "listen", Kind: model.Regular, Past: "listened", PastParticiple: "listened"},
	{Verb: "live", Kind: model.Regular, Past: "lived", PastParticiple: "lived"},
	{Verb: "love", Kind: model.Regular, Past: "loved", PastParticiple: "loved"},
	{Verb: "manage", Kind: model.Regular, Past: "managed", PastParticiple: "managed"},
	{Verb: "move", Kind: model.Regular, Past: "moved", PastParticiple: "moved"},
	{Verb: "need", Kind: model.Regular, Past: "needed", PastParticiple: "needed"},
	{Verb: "play", Kind: model.Regular, Past: "played", PastParticiple: "played"},
	{Verb: "receive", Kind: model.Regular, Past: "received", PastParticiple: "received"},
	{Verb: "remember", Kind: model.Regular, Past: "remembered", PastParticiple: "remembered"},
	{Verb: "save", Kind: model.Regular, Past: "saved", PastParticiple: "saved"},
	{Verb: "serve", Kind: model.Regular, Past: "served", PastParticiple: "served"},
	{Verb: "show", Kind: model.Regular, Past: "showed", PastParticiple: "showed"},
	{Verb: "stop", Kind: model.Regular, Past: "stopped", PastParticiple: "stopped"},
	{Verb: "study", Kind: model.Regular, Past: "studied", PastParticiple: "studied"},
	{Verb: "talk", Kind: model.Regular, Past: "talked", PastParticiple: "talked"},
	{Verb: "travel", Kind: model.Regular, Past: "traveled", PastParticiple: "traveled"},
	{Verb: "turn", Kind: model.Regular, Past: "turned", PastParticiple: "turned"},
	{Verb: "use", Kind: model.Regular, Past: "used", PastParticiple: "used"},
	{Verb: "visit", Kind: model.Regular, Past: "visited", PastParticiple: "visited"},
	{Verb: "walk", Kind: model.Regular, Past: "walked", PastParticiple: "walked"},
	{Verb: "want", Kind: model.Regular, Past: "wanted", PastParticiple: "wanted"},
	{Verb: "watch", Kind: model.Regular, Past: "watched", PastParticiple: "watched"},
	{Verb: "be", Kind: model.Irregular, Past: "was/were", PastParticiple: "been"},
	{Verb: "become", Kind: model.Irregular, Past: "became", PastParticiple: "become"},
	{Verb: "begin", Kind: model.Irregular, Past: "began", PastParticiple: "begun"},
	{Verb: "break", Kind: model.Irregular, Past: "broke", PastParticiple: "broken"},
	{Verb: "bring", Kind: model.Irregular, Past: "brought", PastParticiple: "brought"},
	{Verb: "buy", Kind: model.Irregular, Past: "bought", PastParticiple: "bought"},
	{Verb: "catch", Kind: model.Irregular, Past: "caught", PastParticiple: "caught"},
	{Verb: "choose", Kind: model.Irregular, Past: "chose", PastParticiple: "chosen"},
	{Verb: "come", Kind: model.Irregular, Past: "came", PastParticiple: "come"},
	{Verb: "do", Kind: model.Irregular, Past: "did", PastParticiple: "done"},
	{Verb: "draw", Kind: model.Irregular, Past: "drew", PastParticiple: "drawn"},
	{Verb: "drink", Kind: model.Irregular, Past: "drank", PastParticiple: "drunk"},
	{Verb: "drive", Kind: model.Irregular, Past: "drove", PastParticiple: "driven"},
	{Verb: "fall", Kind: model.Irregular, Past: "fell", PastParticiple: "fallen"},
	{Verb: "feel", Kind: model.Irregular, Past: "felt", PastParticiple: "felt"},
	{Verb: "find", Kind: model.Irregular, Past: "found", PastParticiple: "found"},
	{Verb: "fly", Kind: model.Irregular, Past: "flew", PastParticiple: "flown"},
	{Verb: "get", Kind: model.Irregular, Past: "got", PastParticiple: "gotten"},
	{Verb: "give", Kind: model.Irregular, Past: "gave", PastParticiple: "given"},
	{Verb: "go", Kind: model.Irregular, Past: "went", PastParticiple: "gone"},
	{Verb: "grow", Kind: model.Irregular, Past: "grew", PastParticiple: "grown"},
	{Verb: "hear", Kind: model.Irregular, Past: "heard", PastParticiple: "heard"},
	{Verb: "hide", Kind: model.Irregular, Past: "hid", PastParticiple: "hidden"},
	{Verb: "hold", Kind: model.Irregular, Past: "held", PastParticiple: "held"},
	{Verb: "keep", Kind: model.Irregular, Past: "kept", PastParticiple: "kept"},
	{Verb: "leave", Kind: model.Irregular, Past: "left", PastParticiple: "left"},
	{Verb: "lose", Kind: model.Irregular, Past: "lost", PastParticiple: "lost"},
	{Verb: "make", Kind: model.Irregular, Past: "made", PastParticiple: "made"},
	{Verb: "meet", Kind: model.Irregular, Past: "met", PastParticiple: "met"},
	{Verb: "pay", Kind: model.Irregular, Past: "paid", PastParticiple: "paid"},
	{Verb: "read", Kind: model.Irregular, Past: "read", PastParticiple: "read"},
	{Verb: "ride", Kind: model.Irregular, Past: "rode", PastParticiple: "ridden"},
	{Verb: "ring", Kind: model.Irregular, Past: "rang", PastParticiple: "rung"},
	{Verb: "run", Kind: model.Irregular, Past: "ran", PastParticiple: "run"},
	{Verb: "see", Kind: model.Irregular, Past: "saw", PastParticiple: "seen"},
	{Verb: "sell", Kind: model.Irregular, Past: "sold", PastParticiple: "sold"},
	{Verb: "send", Kind: model.Irregular, Past: "sent", PastParticiple: "sent"},
	{Verb: "sing", Kind: model.Irregular, Past: "sang", PastParticiple: "sung"},
	{Verb: "sleep", Kind: model.Irregular, Past: "slept", PastParticiple: "slept"},
	{Verb: "speak", Kind: model.Irregular, Past: "spoke", PastParticiple: "spoken"},
	{Verb: "spend", Kind: model.Irregular, Past: "spent", PastParticiple: "spent"},
	{Verb: "stand", Kind: model.Irregular, Past: "stood", PastParticiple: "stood"},
	{Verb: "take", Kind: model.Irregular, Past: "took", PastParticiple: "taken"},
	{Verb: "teach", Kind: model.Irregular, Past: "taught", PastParticiple: "taught"},
	{Verb: "tell", Kind: model.Irregular, Past: "told", PastParticiple: "told"},
	{Verb: "think", Kind: model.Irregular, Past: "thought", PastParticiple: "thought"},
	{Verb: "understand", Kind: model.Irregular, Past: "understood", PastParticiple: "understood"},
	{Verb: "wake", Kind: model.Irregular, Past: "woke", PastParticiple: "woken"},
	{Verb: "wear", Kind: model.Irregular, Past: "wore", PastParticiple: "worn"},
	{Verb: "win", Kind: model.Irregular, Past: "won", PastParticiple: "won"},
}

// Default returns a copy of the built-in catalog.
func Default() []model.VerbRecord {
	out := make([]model.VerbRecord, len(builtin))
	copy(out, builtin[:])
	return out
}

// Validate checks that a catalog can back a session.
func Validate(verbs []model.VerbRecord) error {
	if len(verbs) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]struct{}, len(verbs))
	for i, v := range verbs {
		if strings.TrimSpace(v.Verb) == "" {
			return fmt.Errorf("verb %d: verb is empty", i+1)
		}
		if _, err := model.ParseKind(string(v.Kind)); err != nil {
			return fmt.Errorf("verb %q: %w", v.Verb, err)
		}
		if strings.TrimSpace(v.Past) == "" || strings.TrimSpace(v.PastParticiple) == "" {
			return fmt.Errorf("verb %q: past forms must not be empty", v.Verb)
		}
		key := strings.ToLower(v.Verb)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("verb %q is listed twice", v.Verb)
		}
		seen[key] = struct{}{}
	}
	return nil
}
