package signup

import (
	"strings"

	"github.com/dmitrymomot/formkit/pkg/availability"
	"github.com/dmitrymomot/formkit/pkg/suite"
)

// Signup is the model bound to a signup form.
type Signup struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	SeniorRole      bool   `json:"seniorRole"`
	Bio             string `json:"bio"`
}

const (
	FieldEmail           = "email"
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldSeniorRole      = "seniorRole"
	// FieldBio is registered only while seniorRole is set.
	FieldBio = "bio"
)

// Fields lists the fields registered on every new form, in display order.
var Fields = []string{FieldEmail, FieldUsername, FieldPassword, FieldConfirmPassword, FieldSeniorRole}

// DefaultDependencies revalidates the confirmation whenever the password
// settles.
var DefaultDependencies = map[string][]string{
	FieldPassword: {FieldConfirmPassword},
}

var freemail = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com"}

// NewSuite returns the signup validation rules. Username uniqueness is
// answered by checker.
func NewSuite(checker availability.Checker) suite.Suite[Signup] {
	return suite.New(func(s *suite.Context, m Signup) {
		s.Apply(
			suite.Required(FieldEmail, m.Email, "Email is required"),
			suite.Email(FieldEmail, m.Email, "Email must be a valid email address"),
			suite.Required(FieldUsername, m.Username, "Username is required"),
			suite.MinLen(FieldUsername, m.Username, 3, "Username must be at least 3 characters"),
			suite.Required(FieldPassword, m.Password, "Password is required"),
			suite.MinLen(FieldPassword, m.Password, 8, "Password must be at least 8 characters"),
			suite.Equal(FieldConfirmPassword, m.ConfirmPassword, m.Password, "Passwords must match"),
		)
		s.Warn(FieldEmail, "Consider using a work email", func() bool {
			return !isFreemail(m.Email)
		})
		availability.Test(s, FieldUsername, m.Username, "Username is already taken", checker)

		s.SkipWhen(!m.SeniorRole, func() {
			s.Apply(suite.Required(FieldBio, m.Bio, "Bio is required for senior roles"))
		})

		s.Test(suite.RootKey, "Username and password must differ", func() bool {
			return m.Username == "" || !strings.EqualFold(m.Username, m.Password)
		})
	})
}

func isFreemail(email string) bool {
	_, domain, ok := strings.Cut(strings.ToLower(email), "@")
	if !ok {
		return false
	}
	for _, d := range freemail {
		if domain == d {
			return true
		}
	}
	return false
}
