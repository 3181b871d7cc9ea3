package battle

import "fmt"

const (
	fieldTurns         = 5
	extendedFieldTurns = 8
)

type weatherInfo struct {
	rock     string
	message  string
	forecast string
}

var weatherTable = map[WeatherKind]weatherInfo{
	WeatherHail:      {rock: "icy-rock", message: "It starts to hail!\n", forecast: "Castform-snowy"},
	WeatherSandstorm: {rock: "smooth-rock", message: "A sandstorm is brewing up!\n", forecast: "Castform"},
	WeatherRain:      {rock: "damp-rock", message: "It starts to rain!\n", forecast: "Castform-rainy"},
	WeatherSun:       {rock: "heat-rock", message: "The sunlight is strong!\n", forecast: "Castform-sunny"},
	WeatherHeavyRain: {message: "Heavy rain begins to fall!\n", forecast: "Castform-rainy"},
	WeatherHeavySun:  {message: "The sunlight is extremely harsh!\n", forecast: "Castform-sunny"},
	WeatherHeavyWind: {message: "The winds are extremely strong!\n", forecast: "Castform"},
}

// weatherAnchors keep a heavy weather alive while a creature with the
// ability is on the field.
var weatherAnchors = map[WeatherKind]string{
	WeatherHeavyRain: AbilityPrimordialSea,
	WeatherHeavySun:  AbilityDesolateLand,
	WeatherHeavyWind: AbilityDeltaStream,
}

// Weather is the field weather slot.
type Weather struct {
	ExpiringEffect
	kind WeatherKind
}

// Kind returns the installed weather, ignoring Cloud Nine and Air Lock.
func (w *Weather) Kind() WeatherKind { return w.kind }

// Get returns the weather in effect. It reads as none while a creature with
// Cloud Nine or Air Lock is on the field.
func (w *Weather) Get(b *Battle) WeatherKind {
	for _, p := range b.Actives() {
		if p == nil {
			continue
		}
		if ab := p.Ability(); ab == AbilityCloudNine || ab == AbilityAirLock {
			return WeatherNone
		}
	}
	return w.kind
}

// Set installs kind, summoned by setter (which may be nil). Ordinary weather
// cannot replace heavy weather; either case returns no narration.
func (w *Weather) Set(b *Battle, kind WeatherKind, setter *Pokemon) string {
	if kind == w.kind {
		return ""
	}
	info, ok := weatherTable[kind]
	if !ok {
		return ""
	}
	if !kind.IsHeavy() && w.kind.IsHeavy() {
		return ""
	}

	turns := Forever
	if !kind.IsHeavy() {
		turns = fieldTurns
		if setter != nil && setter.HeldItem.Is(b, info.rock) {
			turns = extendedFieldTurns
		}
	}

	w.kind = kind
	w.SetTurns(turns)
	b.emit(EventWeatherChanged, b, nil, map[string]any{KeyWeather: kind.String()})

	return info.message + refreshForecast(b)
}

// NextTurn counts the weather down, clearing and narrating it on expiry.
func (w *Weather) NextTurn(b *Battle) bool {
	if !w.ExpiringEffect.NextTurn() {
		return false
	}
	w.clear(b)
	return true
}

// RecheckAbilityWeather clears heavy weather once no active creature holds
// its anchoring ability.
func (w *Weather) RecheckAbilityWeather(b *Battle) bool {
	anchor, heavy := weatherAnchors[w.kind]
	if !heavy {
		return false
	}
	for _, p := range b.Actives() {
		if p != nil && p.Ability() == anchor {
			return false
		}
	}
	w.clear(b)
	return true
}

func (w *Weather) clear(b *Battle) {
	b.Narrate(weatherEndMessage(w.kind))
	w.kind = WeatherNone
	w.SetTurns(0)
	b.emit(EventWeatherChanged, b, nil, map[string]any{KeyWeather: "none"})
	b.Narrate(refreshForecast(b))
}

// refreshForecast moves every active Forecast creature into the form that
// matches the installed weather, or back to its normal form when there is
// none.
func refreshForecast(b *Battle) string {
	target := "Castform"
	if info, ok := weatherTable[b.Weather.kind]; ok {
		target = info.forecast
	}
	msg := ""
	for _, p := range b.Actives() {
		if p == nil || p.Fainted() || p.Ability() != AbilityForecast || p.FormName() == target {
			continue
		}
		if p.SetForm(b, target) {
			msg += fmt.Sprintf("%s transformed into a %s type using its forecast!\n", p.Name(), p.Types()[0])
		}
	}
	return msg
}

// weatherEndMessage narrates a weather running out.
func weatherEndMessage(kind WeatherKind) string {
	switch kind {
	case WeatherHail:
		return "The hail stopped.\n"
	case WeatherSandstorm:
		return "The sandstorm subsided.\n"
	case WeatherRain:
		return "The rain stopped.\n"
	case WeatherSun:
		return "The sunlight faded.\n"
	case WeatherHeavyRain:
		return "The heavy rain has lifted!\n"
	case WeatherHeavySun:
		return "The harsh sunlight faded!\n"
	case WeatherHeavyWind:
		return "The mysterious strong winds have dissipated!\n"
	}
	return ""
}
