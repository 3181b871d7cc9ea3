// Package render turns battle state into text and Discord embeds.
package render

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/pokeduel/internal/battle"
	"github.com/KirkDiggler/pokeduel/internal/narration"
)

// Embed colours
const (
	ColorNarration = 0x3498DB
	ColorHealthy   = 0x228B22
	ColorWounded   = 0xFFA500
	ColorCritical  = 0xDC143C
)

// SpritePlaceholder stands in for a sprite that could not be found.
const SpritePlaceholder = "?"

const hpBarWidth = 10

var weatherNames = map[battle.WeatherKind]string{
	battle.WeatherHail:      "Hail",
	battle.WeatherSandstorm: "Sandstorm",
	battle.WeatherRain:      "Rain",
	battle.WeatherSun:       "Sun",
	battle.WeatherHeavyRain: "Heavy Rain",
	battle.WeatherHeavySun:  "Harsh Sun",
	battle.WeatherHeavyWind: "Strong Winds",
}

// SpriteIndex maps a form identifier ("castform-rainy") or a dex number
// ("351") to a sprite URL.
type SpriteIndex map[string]string

// Lookup finds the sprite of p's current form, falling back to its dex
// number.
func (s SpriteIndex) Lookup(p *battle.Pokemon) (string, bool) {
	if url, ok := s[p.FormIdentifier()]; ok {
		return url, true
	}
	url, ok := s[strconv.Itoa(p.DexNumber())]
	return url, ok
}

// Summary renders the field and both active creatures as stable text.
func Summary(b *battle.Battle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Battle between %s and %s\n", b.Trainer1.Name, b.Trainer2.Name)
	fmt.Fprintf(&sb, "Turn %d\n", b.Turn)
	sb.WriteString(fieldLines(b))
	for _, t := range b.Trainers() {
		sb.WriteString("\n")
		sb.WriteString(creatureBlock(t))
	}
	return sb.String()
}

func fieldLines(b *battle.Battle) string {
	var sb strings.Builder
	if kind := b.Weather.Kind(); kind != battle.WeatherNone {
		fmt.Fprintf(&sb, "Weather: %s%s\n", weatherNames[kind], turnsLeft(b.Weather.Turns()))
	}
	if kind := b.Terrain.Get(); kind != battle.TerrainNone {
		fmt.Fprintf(&sb, "Terrain: %s%s\n", title(kind.String()), turnsLeft(b.Terrain.Turns()))
	}
	if b.TrickRoom.Active() {
		fmt.Fprintf(&sb, "Trick Room: Active%s\n", turnsLeft(b.TrickRoom.Turns()))
	}
	if b.MagicRoom.Active() {
		fmt.Fprintf(&sb, "Magic Room: Active%s\n", turnsLeft(b.MagicRoom.Turns()))
	}
	for _, t := range b.Trainers() {
		if t.Safeguard.Active() {
			fmt.Fprintf(&sb, "Safeguard: %s%s\n", t.Name, turnsLeft(t.Safeguard.Turns()))
		}
	}
	return sb.String()
}

func creatureBlock(t *battle.Trainer) string {
	p := t.Current()
	if p == nil {
		return fmt.Sprintf("%s has no creature in battle\n", t.Name)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s's %s\n", t.Name, displayName(p))
	fmt.Fprintf(&sb, " HP: %d/%d\n", max(0, p.HP), p.MaxHP)
	if status := p.NV.Current(); status != battle.StatusNone {
		fmt.Fprintf(&sb, " Status: %s\n", status)
	}
	if p.Substitute > 0 {
		sb.WriteString(" Behind a substitute!\n")
	}
	fmt.Fprintf(&sb, " Remaining: %d/%d\n", t.Remaining(), len(t.Party))
	return sb.String()
}

// TeamPreview lists a trainer's party.
func TeamPreview(t *battle.Trainer) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s's team\n", t.Name)
	for i, p := range t.Party {
		fmt.Fprintf(&sb, "%d. %s Lv. %d", i+1, displayName(p), p.Level)
		if item := p.HeldItem.Name(); item != "" {
			fmt.Fprintf(&sb, " @ %s", title(item))
		}
		fmt.Fprintf(&sb, " (%s)\n", title(p.Ability()))
	}
	return sb.String()
}

// HPColor picks an embed colour for the given HP ratio.
func HPColor(hp, maxHP int) int {
	if maxHP <= 0 {
		return ColorCritical
	}
	ratio := float64(hp) / float64(maxHP)
	switch {
	case ratio > 0.5:
		return ColorHealthy
	case ratio > 0.25:
		return ColorWounded
	default:
		return ColorCritical
	}
}

// HPBar draws a fixed width bar of hp out of maxHP.
func HPBar(hp, maxHP int) string {
	filled := 0
	if maxHP > 0 && hp > 0 {
		filled = max(1, hp*hpBarWidth/maxHP)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", hpBarWidth-filled)
}

// Embed builds the battle state message. The colour follows the most hurt
// active creature. Missing sprites are logged and replaced by a placeholder.
func Embed(b *battle.Battle, sprites SpriteIndex) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Battle between %s and %s", b.Trainer1.Name, b.Trainer2.Name),
		Description: fieldLines(b),
		Color:       ColorHealthy,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Turn %d - Who Wins!?", b.Turn)},
	}

	worst := 2.0
	for i, t := range b.Trainers() {
		p := t.Current()
		if p == nil {
			continue
		}
		if ratio := float64(p.HP) / float64(p.MaxHP); ratio < worst {
			worst = ratio
			e.Color = HPColor(p.HP, p.MaxHP)
		}

		value := fmt.Sprintf("HP: %d/%d %s", max(0, p.HP), p.MaxHP, HPBar(p.HP, p.MaxHP))
		if status := p.NV.Current(); status != battle.StatusNone {
			value += "\nStatus: " + strings.ToUpper(status.String())
		}
		if p.Substitute > 0 {
			value += "\nBehind a substitute!"
		}

		url, ok := sprites.Lookup(p)
		if !ok {
			slog.Warn("Sprite not found",
				"battle_id", b.ID,
				"form", p.FormIdentifier(),
				"dex_number", p.DexNumber(),
			)
			value = SpritePlaceholder + "\n" + value
		}
		switch {
		case !ok:
		case i == 0:
			e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: url}
		default:
			e.Image = &discordgo.MessageEmbedImage{URL: url}
		}

		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s's %s", t.Name, displayName(p)),
			Value:  value,
			Inline: true,
		})
	}
	return e
}

// NarrationEmbeds pages narration text into plain embeds.
func NarrationEmbeds(text string) []*discordgo.MessageEmbed {
	pages := narration.Paginate(text, narration.PageBudget)
	embeds := make([]*discordgo.MessageEmbed, 0, len(pages))
	for _, page := range pages {
		embeds = append(embeds, &discordgo.MessageEmbed{
			Description: page,
			Color:       ColorNarration,
		})
	}
	return embeds
}

// displayName shows a nickname next to the species.
func displayName(p *battle.Pokemon) string {
	if p.Nickname != "" {
		return fmt.Sprintf("%s (%s)", p.Nickname, p.SpeciesName())
	}
	return p.SpeciesName()
}

func turnsLeft(turns int) string {
	if turns < 0 {
		return ""
	}
	return fmt.Sprintf(" (%d turns left)", turns)
}

func title(identifier string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(identifier, "-", " "))
}
