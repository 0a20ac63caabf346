package dto

// RegistrationDraft is the wire shape of a submitted enrollment form:
// every field a plain string exactly as the form collected it. The
// service normalizes empty strings to NULL before persistence, so a
// field the applicant never answered and one they cleared are
// indistinguishable at rest.
type RegistrationDraft struct {
	Type        string `json:"type" validate:"required,oneof=student member"`
	StudentName string `json:"studentName" validate:"required,max=100"`

	DOB          string `json:"dob" validate:"omitempty"`
	Age          string `json:"age" validate:"omitempty"`
	Sex          string `json:"sex" validate:"omitempty"`
	Nationality  string `json:"nationality" validate:"omitempty"`
	SchoolName   string `json:"schoolName" validate:"omitempty"`
	SiblingsName string `json:"siblingsName" validate:"omitempty"`
	RegNo        string `json:"regNo" validate:"omitempty"`
	Occupation   string `json:"occupation" validate:"omitempty"`
	Area         string `json:"area" validate:"omitempty"`

	FatherName    string `json:"fatherName" validate:"omitempty"`
	FatherContact string `json:"fatherContact" validate:"omitempty"`
	FatherEmail   string `json:"fatherEmail" validate:"omitempty,email"`
	MotherName    string `json:"motherName" validate:"omitempty"`
	MotherContact string `json:"motherContact" validate:"omitempty"`
	MotherEmail   string `json:"motherEmail" validate:"omitempty,email"`

	TshirtSize       string `json:"tshirtSize" validate:"omitempty,oneof=XS S M L XL XXL"`
	SessionsPerMonth string `json:"sessionsPerMonth" validate:"omitempty"`
	EnrollmentDate   string `json:"enrollmentDate" validate:"omitempty"`
	FeesPerMonth     string `json:"feesPerMonth" validate:"omitempty"`
	SquadLevel       string `json:"squadLevel" validate:"omitempty,oneof=Beginner Intermediate Advanced Elite"`

	StudentSignature string `json:"studentSignature" validate:"omitempty"`
	DeclarationDate  string `json:"declarationDate" validate:"omitempty"`
	ProofType        string `json:"proofType" validate:"omitempty,oneof='Aadhaar Card' 'PAN Card' 'Driving Licence' 'School ID Card' 'Passport' 'Voter ID'"`

	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
	ProofURL string `json:"proofUrl" validate:"omitempty,url"`
}

// BlobDescriptor mirrors the upload endpoint response: the public URL
// plus where and how the bytes landed in the blob store.
type BlobDescriptor struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size"`
}
