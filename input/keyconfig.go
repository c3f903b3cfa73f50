package input

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

// ErrInvalidKeymap wraps every keymap authoring error
var ErrInvalidKeymap = errors.New("invalid keymap")

// keyFile is the on-disk keymap layout:
//
//	[runes]
//	w = "forward"
//	space = "fire"
//
//	[keys]
//	Up = "forward"
//	F2 = "none"
type keyFile struct {
	Runes map[string]string `toml:"runes"`
	Keys  map[string]string `toml:"keys"`
}

// runeAliases names runes that are awkward as bare TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"comma":     ',',
	"period":    '.',
}

// keysByName inverts tcell.KeyNames for the [keys] section
var keysByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// LoadKeyConfig parses a keymap file into an override table
// Entries bound to "none" are kept so MergeKeyTable can unbind them
func LoadKeyConfig(path string) (*KeyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap %s: %w", path, err)
	}
	return ParseKeyConfig(string(data))
}

// ParseKeyConfig decodes a keymap from TOML text
func ParseKeyConfig(data string) (*KeyTable, error) {
	var kf keyFile
	md, err := toml.Decode(data, &kf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeymap, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidKeymap, undecoded[0].String())
	}

	kt := &KeyTable{
		Runes: make(map[rune]Action, len(kf.Runes)),
		Keys:  make(map[tcell.Key]Action, len(kf.Keys)),
	}
	for name, actionName := range kf.Runes {
		r, err := resolveRune(name)
		if err != nil {
			return nil, err
		}
		a, err := resolveAction(actionName)
		if err != nil {
			return nil, err
		}
		kt.Runes[r] = a
	}
	for name, actionName := range kf.Keys {
		k, ok := keysByName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown key name %q", ErrInvalidKeymap, name)
		}
		a, err := resolveAction(actionName)
		if err != nil {
			return nil, err
		}
		kt.Keys[k] = a
	}
	return kt, nil
}

func resolveRune(name string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(name)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(name) != 1 {
		return 0, fmt.Errorf("%w: rune key %q must be one character or an alias", ErrInvalidKeymap, name)
	}
	r, _ := utf8.DecodeRuneInString(name)
	return r, nil
}

func resolveAction(name string) (Action, error) {
	a, ok := LookupAction(name)
	if !ok {
		return ActionNone, fmt.Errorf("%w: unknown action %q", ErrInvalidKeymap, name)
	}
	return a, nil
}

// MergeKeyTable overlays overrides onto a clone of base
// An override bound to ActionNone removes the base binding
func MergeKeyTable(base, overrides *KeyTable) *KeyTable {
	out := base.Clone()
	if overrides == nil {
		return out
	}
	for r, a := range overrides.Runes {
		if a == ActionNone {
			delete(out.Runes, r)
			continue
		}
		out.Runes[r] = a
	}
	for k, a := range overrides.Keys {
		if a == ActionNone {
			delete(out.Keys, k)
			continue
		}
		out.Keys[k] = a
	}
	return out
}
