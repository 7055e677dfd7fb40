package entity

import "time"

// ImmigrationPost represents an immigration opportunity announcement.
type ImmigrationPost struct {
	ID             string    `firestore:"-" json:"id"`
	Title          string    `firestore:"title" json:"title"`
	Slug           string    `firestore:"slug" json:"slug"`
	TargetCountry  string    `firestore:"targetCountry" json:"targetCountry"`
	City           string    `firestore:"city" json:"city"`
	ProgramType    string    `firestore:"programType" json:"programType"`
	TargetAudience string    `firestore:"targetAudience" json:"targetAudience"`
	Description    string    `firestore:"description" json:"description"`
	CreatedAt      time.Time `firestore:"createdAt" json:"-"`
	UpdatedAt      time.Time `firestore:"updatedAt" json:"-"`

	// IconName derives from ProgramType at read time.
	IconName string `firestore:"-" json:"iconName"`

	Derived
}

// ProgramTypeDetails describes the presentation metadata attached to an
// immigration program type.
type ProgramTypeDetails struct {
	Name string
	Icon string
}

// programTypes maps program type identifiers to their display details.
var programTypes = map[string]ProgramTypeDetails{
	"work":     {Name: "الهجرة للعمل", Icon: "Briefcase"},
	"study":    {Name: "الهجرة للدراسة", Icon: "GraduationCap"},
	"lottery":  {Name: "قرعة الهجرة", Icon: "Ticket"},
	"seasonal": {Name: "العمل الموسمي", Icon: "Sun"},
	"training": {Name: "التدريب والتكوين", Icon: "Wrench"},
}

// defaultProgramType is used when an immigration post carries an unknown
// program type.
var defaultProgramType = ProgramTypeDetails{Name: "الهجرة", Icon: "Plane"}

// GetProgramTypeDetails resolves the display details for a program type,
// falling back to a generic entry for unknown values.
func GetProgramTypeDetails(programType string) ProgramTypeDetails {
	if d, ok := programTypes[programType]; ok {
		return d
	}
	return defaultProgramType
}
