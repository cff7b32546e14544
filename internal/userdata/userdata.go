// Package userdata defines the normalized user-data shape produced by the
// provider extractors, the raw profile it is derived from, and the
// transport contract the extractors load profiles through.
package userdata

import "context"

// Field names one normalized user-data field.
type Field string

const (
	FieldUniqueID      Field = "uniqueId"
	FieldUsername      Field = "username"
	FieldFirstName     Field = "firstName"
	FieldLastName      Field = "lastName"
	FieldFullName      Field = "fullName"
	FieldEmail         Field = "email"
	FieldVerifiedEmail Field = "verifiedEmail"
	FieldDescription   Field = "description"
	FieldProfileURL    Field = "profileUrl"
	FieldLocation      Field = "location"
	FieldWebsites      Field = "websites"
	FieldImageURL      Field = "imageUrl"
	FieldExtra         Field = "extra"
)

// AllFields returns every normalized field in declaration order.
func AllFields() []Field {
	return []Field{
		FieldUniqueID,
		FieldUsername,
		FieldFirstName,
		FieldLastName,
		FieldFullName,
		FieldEmail,
		FieldVerifiedEmail,
		FieldDescription,
		FieldProfileURL,
		FieldLocation,
		FieldWebsites,
		FieldImageURL,
		FieldExtra,
	}
}

// UserData is the provider-independent view of a user profile.
// Nil string pointers mean the provider did not supply the field.
type UserData struct {
	UniqueID      *string        `json:"uniqueId"`
	Username      *string        `json:"username"`
	FirstName     *string        `json:"firstName"`
	LastName      *string        `json:"lastName"`
	FullName      *string        `json:"fullName"`
	Email         *string        `json:"email"`
	VerifiedEmail bool           `json:"verifiedEmail"`
	Description   *string        `json:"description"`
	ProfileURL    *string        `json:"profileUrl"`
	Location      *string        `json:"location"`
	Websites      []string       `json:"websites"`
	ImageURL      *string        `json:"imageUrl"`
	Extra         map[string]any `json:"extra"`
}

// Get returns a single field. Unset string fields come back as nil.
func (u *UserData) Get(f Field) (any, bool) {
	switch f {
	case FieldUniqueID:
		return deref(u.UniqueID), true
	case FieldUsername:
		return deref(u.Username), true
	case FieldFirstName:
		return deref(u.FirstName), true
	case FieldLastName:
		return deref(u.LastName), true
	case FieldFullName:
		return deref(u.FullName), true
	case FieldEmail:
		return deref(u.Email), true
	case FieldVerifiedEmail:
		return u.VerifiedEmail, true
	case FieldDescription:
		return deref(u.Description), true
	case FieldProfileURL:
		return deref(u.ProfileURL), true
	case FieldLocation:
		return deref(u.Location), true
	case FieldWebsites:
		return u.Websites, true
	case FieldImageURL:
		return deref(u.ImageURL), true
	case FieldExtra:
		return u.Extra, true
	}
	return nil, false
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// Service performs authenticated requests against a provider API and
// returns the raw response body.
type Service interface {
	Request(ctx context.Context, endpoint string) ([]byte, error)
}
