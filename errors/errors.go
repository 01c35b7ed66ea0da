package errors

const (
	NotLoggedIn                 = "User is not logged in"
	InvalidCredentials          = "Invalid email or password"
	EmailAlreadyExist           = "Email already exists in database"
	AccountNotFound             = "No user record found for account"
	InvalidEmailFormat          = "Invalid email format"
	InvalidPhoneFormat          = "Invalid contact number format"
	InvalidWebsiteFormat        = "Invalid website format"
	UnknownMunicipality         = "Unrecognized municipality"
	InvalidRole                 = "Invalid role value"
	ElevatedRoleNotAllowed      = "Only an administrator can assign elevated roles"
	InvalidStatus               = "Invalid status value"
	StatusLocked                = "Cannot change status of an approved form"
	DeclineReasonRequired       = "Decline reason cannot be empty"
	AppointmentRequiresApproval = "Appointment can only be set for an approved form"
	AppointmentAlreadySet       = "Appointment has already been confirmed for this form"
	AppointmentNotSet           = "An appointment date must be set before approval"
	AccommodationNotFound       = "Accommodation not found"
	DatabaseError               = "Error in database"
	ErrorToken                  = "Error generating token"
	InvalidRequestFormatError   = "Invalid request format"
)
