package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/pokeduel/internal/errors"
	"github.com/KirkDiggler/pokeduel/internal/repositories/userconfig"
)

// ParseParty reads the compact party syntax used by /party set:
//
//	[nickname=]species[@item]:move,move; ...
//
// for example "Lax=snorlax@leftovers:tackle,rest; chansey:wish".
func ParseParty(s string) ([]userconfig.PartyMember, error) {
	var party []userconfig.PartyMember
	for n, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		head, moveList, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, errors.InvalidArgumentf("member %d: expected species:moves", n+1)
		}

		var m userconfig.PartyMember
		if nick, rest, found := strings.Cut(head, "="); found {
			m.Nickname = strings.TrimSpace(nick)
			head = rest
		}
		if species, item, found := strings.Cut(head, "@"); found {
			m.Item = identifier(item)
			head = species
		}
		m.Species = identifier(head)
		if m.Species == "" {
			return nil, errors.InvalidArgumentf("member %d: species is required", n+1)
		}

		for _, move := range strings.Split(moveList, ",") {
			if move = identifier(move); move != "" {
				m.Moves = append(m.Moves, move)
			}
		}
		party = append(party, m)
	}

	if len(party) == 0 {
		return nil, errors.InvalidArgument("party is empty")
	}
	return party, nil
}

// FormatParty renders a party one member per line.
func FormatParty(party []userconfig.PartyMember) string {
	if len(party) == 0 {
		return "No party saved."
	}
	var sb strings.Builder
	for i, m := range party {
		fmt.Fprintf(&sb, "%d. ", i+1)
		if m.Nickname != "" {
			fmt.Fprintf(&sb, "%s (%s)", m.Nickname, m.Species)
		} else {
			sb.WriteString(m.Species)
		}
		if m.Item != "" {
			fmt.Fprintf(&sb, " @ %s", m.Item)
		}
		fmt.Fprintf(&sb, ": %s\n", strings.Join(m.Moves, ", "))
	}
	return sb.String()
}

// identifier normalises "Leftovers" or "Body Slam" to reference ids.
func identifier(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
