// Package dashboard holds the presentation state observed by the kiosk view.
package dashboard

import (
	"fyne.io/fyne/v2/data/binding"
)

// Initial display texts.
const (
	InitialTime     = "--:--:--"
	InitialDate     = "----------"
	InitialWeather  = "Sää: (ei haettu vielä)"
	InitialCalendar = "Kalenteri: (placeholder)"
	InitialShopping = "Ostoslista:\n- maito\n- kahvi\n- banaani"

	shoppingPlaceholderNote = "\n\n(placeholder: ei vielä käytössä)"
)

// State is the dashboard's displayed strings and the screensaver flag.
//
// The refresh scheduler writes the time, date and weather texts and the idle
// controller writes the screensaver flag. The view only binds to the values.
type State struct {
	timeText          binding.String
	dateText          binding.String
	weatherText       binding.String
	calendarText      binding.String
	shoppingText      binding.String
	screensaverActive binding.Bool
}

// New returns a State with the initial texts.
func New() *State {
	s := &State{
		timeText:          binding.NewString(),
		dateText:          binding.NewString(),
		weatherText:       binding.NewString(),
		calendarText:      binding.NewString(),
		shoppingText:      binding.NewString(),
		screensaverActive: binding.NewBool(),
	}
	set(s.timeText, InitialTime)
	set(s.dateText, InitialDate)
	set(s.weatherText, InitialWeather)
	set(s.calendarText, InitialCalendar)
	set(s.shoppingText, InitialShopping)
	return s
}

func (s *State) TimeText() string     { return get(s.timeText) }
func (s *State) DateText() string     { return get(s.dateText) }
func (s *State) WeatherText() string  { return get(s.weatherText) }
func (s *State) CalendarText() string { return get(s.calendarText) }
func (s *State) ShoppingText() string { return get(s.shoppingText) }

// ScreensaverActive reports whether the screensaver is shown.
func (s *State) ScreensaverActive() bool {
	v, _ := s.screensaverActive.Get()
	return v
}

// SetClock updates the time and date texts.
func (s *State) SetClock(timeText, dateText string) {
	set(s.timeText, timeText)
	set(s.dateText, dateText)
}

// SetWeather updates the weather text.
func (s *State) SetWeather(text string) {
	set(s.weatherText, text)
}

// SetScreensaverActive updates the screensaver flag.
func (s *State) SetScreensaverActive(active bool) {
	_ = s.screensaverActive.Set(active)
}

// SendShoppingList is the shopping list action. Sending is not available yet,
// so it only appends a note to the list.
func (s *State) SendShoppingList() {
	set(s.shoppingText, get(s.shoppingText)+shoppingPlaceholderNote)
}

// Bindings exposes the values for data-bound widgets.
func (s *State) Bindings() Bindings {
	return Bindings{
		Time:              s.timeText,
		Date:              s.dateText,
		Weather:           s.weatherText,
		Calendar:          s.calendarText,
		Shopping:          s.shoppingText,
		ScreensaverActive: s.screensaverActive,
	}
}

// Bindings are the observable values of a State.
type Bindings struct {
	Time              binding.String
	Date              binding.String
	Weather           binding.String
	Calendar          binding.String
	Shopping          binding.String
	ScreensaverActive binding.Bool
}

func get(value binding.String) string {
	v, _ := value.Get()
	return v
}

func set(value binding.String, text string) {
	_ = value.Set(text)
}
