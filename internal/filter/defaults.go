package filter

const (
	EntityConference = "conference"
	EntitySession    = "session"
)

// Registries holds one registry per queryable entity.
type Registries map[string]*Registry

// Defaults returns the built-in conference and session registries.
func Defaults() Registries {
	conf, err := NewRegistry("name",
		Field{Token: "CITY", Name: "city"},
		Field{Token: "TOPIC", Name: "topics", Repeated: true},
		Field{Token: "MONTH", Name: "month", Numeric: true},
		Field{Token: "MAX_ATTENDEES", Name: "maxAttendees", Column: "max_attendees", Numeric: true},
	)
	if err != nil {
		panic(err)
	}
	sess, err := NewRegistry("name",
		Field{Token: "CONFERENCE", Name: "websafeConferenceKey", Column: "conference_id", Cast: "uuid"},
		Field{Token: "TYPE_OF_SESSION", Name: "typeOfSession", Column: "type_of_session"},
		Field{Token: "SPEAKER", Name: "speaker"},
		Field{Token: "DURATION", Name: "duration", Numeric: true},
		Field{Token: "DATE", Name: "date", Column: "session_date", Cast: "date"},
		Field{Token: "START_TIME", Name: "startTime", Column: "start_time"},
		Field{Token: "MONTH", Name: "month", Numeric: true},
	)
	if err != nil {
		panic(err)
	}
	return Registries{
		EntityConference: conf,
		EntitySession:    sess,
	}
}
