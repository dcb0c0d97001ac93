package team

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	lzstring "github.com/daku10/go-lz-string"
)

const (
	// VersionPrefix marks the current token format.
	VersionPrefix = "v2~"
	// Delimiter separates fields inside the compressed payload (unit separator).
	Delimiter = "\x1f"
	// MaxDeckNameLen is the number of runes (not UTF-16 units) of a deck name
	// kept on encode.
	MaxDeckNameLen = 50

	fieldsPerDeck = 1 + SlotCount + 1
	fieldCount    = 1 + DeckCount*fieldsPerDeck
)

// uriAlphabet is the output alphabet of compressToEncodedURIComponent.
const uriAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+-$"

var (
	// ErrLegacyOrInvalid marks a token without the current VersionPrefix.
	ErrLegacyOrInvalid = errors.New("legacy or invalid team token")
	// ErrCorruptPayload marks a current-format token whose payload does not decompress.
	ErrCorruptPayload = errors.New("corrupt team token payload")
)

// DecodeError is returned by DecodeTeam. Kind is ErrLegacyOrInvalid or
// ErrCorruptPayload.
type DecodeError struct {
	Kind  error
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return e.Kind.Error() + ": " + e.Cause.Error()
	}
	return e.Kind.Error()
}

func (e *DecodeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// EncodeTeam packs up to three decks and a team name into a URL-safe token.
// Extra decks are ignored, missing ones encode as empty decks.
func EncodeTeam(decks []DeckIdentity, name string) string {
	fields := make([]string, 0, fieldCount)
	fields = append(fields, cleanField(name))
	for i := 0; i < DeckCount; i++ {
		var d DeckIdentity
		if i < len(decks) {
			d = decks[i]
		}
		fields = append(fields, cleanField(d.SpellcasterID))
		for _, id := range d.SlotIDs {
			fields = append(fields, cleanField(id))
		}
		fields = append(fields, truncate(cleanField(d.Name), MaxDeckNameLen))
	}

	compressed, err := lzstring.CompressToEncodedURIComponent(strings.Join(fields, Delimiter))
	if err != nil {
		// unreachable: every field is valid UTF-8 after cleanField
		compressed = ""
	}
	return VersionPrefix + compressed
}

// DecodeTeam reverses EncodeTeam. The returned team always holds three decks;
// missing trailing fields decode as empty strings.
func DecodeTeam(token string) (TeamIdentity, error) {
	token = strings.ReplaceAll(token, " ", "+")
	if !strings.HasPrefix(token, VersionPrefix) {
		return TeamIdentity{}, &DecodeError{Kind: ErrLegacyOrInvalid}
	}

	payload := strings.TrimPrefix(token, VersionPrefix)
	if payload == "" || strings.ContainsFunc(payload, outsideAlphabet) {
		return TeamIdentity{}, &DecodeError{Kind: ErrCorruptPayload}
	}
	raw, err := decompress(payload)
	if err != nil {
		return TeamIdentity{}, &DecodeError{Kind: ErrCorruptPayload, Cause: err}
	}
	// A payload of a single field is a team name with every deck missing.
	if raw == "" || !utf8.ValidString(raw) {
		return TeamIdentity{}, &DecodeError{Kind: ErrCorruptPayload}
	}

	fields := strings.Split(raw, Delimiter)
	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	t := TeamIdentity{Name: field(0)}
	for k := range t.Decks {
		base := 1 + k*fieldsPerDeck
		d := DeckIdentity{SpellcasterID: field(base)}
		for s := range d.SlotIDs {
			d.SlotIDs[s] = field(base + 1 + s)
		}
		d.Name = field(base + 1 + SlotCount)
		t.Decks[k] = d
	}
	return t, nil
}

// Encode is EncodeTeam for an assembled TeamIdentity.
func Encode(t TeamIdentity) string {
	return EncodeTeam(t.Decks[:], t.Name)
}

// decompress turns a decompressor panic on hostile input into an error.
func decompress(payload string) (raw string, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw, err = "", fmt.Errorf("decompress: %v", r)
		}
	}()
	return lzstring.DecompressFromEncodedURIComponent(payload)
}

func outsideAlphabet(r rune) bool {
	return !strings.ContainsRune(uriAlphabet, r)
}

// cleanField drops values that would break the payload layout.
func cleanField(s string) string {
	if !utf8.ValidString(s) {
		return ""
	}
	return strings.ReplaceAll(s, Delimiter, "")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
