package entity

// GlobalStats is the single aggregate record holding running counts of live
// entities. It is maintained exclusively through atomic counter
// transactions paired with entity creates and deletes, never recomputed.
type GlobalStats struct {
	Jobs         int64 `firestore:"jobs" json:"jobs"`
	Seekers      int64 `firestore:"seekers" json:"seekers"`
	Competitions int64 `firestore:"competitions" json:"competitions"`
	Immigration  int64 `firestore:"immigration" json:"immigration"`
	Users        int64 `firestore:"users" json:"users"`
}

// Stats counter field names, matching the GlobalStats document fields.
const (
	CounterJobs         = "jobs"
	CounterSeekers      = "seekers"
	CounterCompetitions = "competitions"
	CounterImmigration  = "immigration"
	CounterUsers        = "users"
)
