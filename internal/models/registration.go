package models

import "time"

// RegistrationType distinguishes full students from club members.
type RegistrationType string

// Possible registration types.
const (
	RegistrationTypeStudent RegistrationType = "student"
	RegistrationTypeMember  RegistrationType = "member"
)

// Valid reports whether the type is one of the two accepted values.
func (t RegistrationType) Valid() bool {
	return t == RegistrationTypeStudent || t == RegistrationTypeMember
}

// ProofTypes enumerates the accepted identity document kinds.
var ProofTypes = []string{
	"Aadhaar Card",
	"PAN Card",
	"Driving Licence",
	"School ID Card",
	"Passport",
	"Voter ID",
}

// Registration is one persisted enrollment application. Rows are
// immutable after insert; there is no update or delete path. Optional
// fields are pointers so that "never answered" is stored as NULL.
type Registration struct {
	ID   int64            `db:"id" json:"id"`
	Type RegistrationType `db:"type" json:"type"`

	StudentName  string  `db:"student_name" json:"studentName"`
	DOB          *string `db:"dob" json:"dob,omitempty"`
	Age          *string `db:"age" json:"age,omitempty"`
	Sex          *string `db:"sex" json:"sex,omitempty"`
	Nationality  *string `db:"nationality" json:"nationality,omitempty"`
	SchoolName   *string `db:"school_name" json:"schoolName,omitempty"`
	SiblingsName *string `db:"siblings_name" json:"siblingsName,omitempty"`
	RegNo        *string `db:"reg_no" json:"regNo,omitempty"`
	Occupation   *string `db:"occupation" json:"occupation,omitempty"`
	Area         *string `db:"area" json:"area,omitempty"`

	FatherName    *string `db:"father_name" json:"fatherName,omitempty"`
	FatherContact *string `db:"father_contact" json:"fatherContact,omitempty"`
	FatherEmail   *string `db:"father_email" json:"fatherEmail,omitempty"`
	MotherName    *string `db:"mother_name" json:"motherName,omitempty"`
	MotherContact *string `db:"mother_contact" json:"motherContact,omitempty"`
	MotherEmail   *string `db:"mother_email" json:"motherEmail,omitempty"`

	TshirtSize       *string `db:"tshirt_size" json:"tshirtSize,omitempty"`
	SessionsPerMonth *string `db:"sessions_per_month" json:"sessionsPerMonth,omitempty"`
	EnrollmentDate   *string `db:"enrollment_date" json:"enrollmentDate,omitempty"`
	FeesPerMonth     *string `db:"fees_per_month" json:"feesPerMonth,omitempty"`
	SquadLevel       *string `db:"squad_level" json:"squadLevel,omitempty"`

	StudentSignature *string `db:"student_signature" json:"studentSignature,omitempty"`
	DeclarationDate  *string `db:"declaration_date" json:"declarationDate,omitempty"`
	ProofType        *string `db:"proof_type" json:"proofType,omitempty"`

	PhotoURL *string `db:"photo_url" json:"photoUrl,omitempty"`
	ProofURL *string `db:"proof_url" json:"proofUrl,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
