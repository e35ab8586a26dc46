package timetable

// Preference selects the ranking objective for generated schedules. The
// empty value means no preference: a neutral ordering that mildly favours
// free days and compact timetables.
type Preference string

const (
	PreferenceNone            Preference = ""
	PreferenceShortBreaks     Preference = "shortBreaks"
	PreferenceLongBreaks      Preference = "longBreaks"
	PreferenceConsistentStart Preference = "consistentStart"
	PreferenceStartLate       Preference = "startLate"
	PreferenceEndEarly        Preference = "endEarly"
	PreferenceDaysOff         Preference = "daysOff"
)

// Preferences lists the selectable ranking objectives.
func Preferences() []Preference {
	return []Preference{
		PreferenceShortBreaks,
		PreferenceLongBreaks,
		PreferenceConsistentStart,
		PreferenceStartLate,
		PreferenceEndEarly,
		PreferenceDaysOff,
	}
}

// Valid reports whether p is a known preference value.
func (p Preference) Valid() bool {
	if p == PreferenceNone {
		return true
	}
	for _, known := range Preferences() {
		if p == known {
			return true
		}
	}
	return false
}
