package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Password length bounds. 72 bytes is bcrypt's practical limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User represents a registered QuickRecap player.
// The password hash is never serialized.
type User struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	HashedPassword  string     `json:"-"`
	Nombres         string     `json:"nombres"`
	Apellidos       string     `json:"apellidos"`
	Celular         *string    `json:"celular"`
	Genero          *string    `json:"genero"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	ProfileImage    *string    `json:"profile_image"`
	Puntos          int        `json:"puntos"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Registration holds the normalized input of a sign-up request.
type Registration struct {
	Email     string
	Password  string
	Nombres   string
	Apellidos string
	Celular   *string
	Genero    *string
}

// Normalize trims every field and lower-cases the email.
// Optional fields that are blank after trimming become nil.
func (r Registration) Normalize() Registration {
	r.Email = NormalizeEmail(r.Email)
	r.Nombres = strings.TrimSpace(r.Nombres)
	r.Apellidos = strings.TrimSpace(r.Apellidos)
	r.Celular = trimOptional(r.Celular)
	r.Genero = trimOptional(r.Genero)
	return r
}

// Validate checks field presence and the password policy.
func (r Registration) Validate() error {
	switch {
	case r.Email == "":
		return MissingField("email")
	case r.Password == "":
		return MissingField("password")
	case r.Nombres == "":
		return MissingField("nombres")
	case r.Apellidos == "":
		return MissingField("apellidos")
	}
	if !ValidEmail(r.Email) {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	return ValidatePassword("password", r.Password)
}

// NewUser builds a User from a registration and an already hashed password.
// The plaintext password never reaches the entity.
func NewUser(reg Registration, hashedPassword string) (*User, error) {
	reg = reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	if hashedPassword == "" {
		return nil, NewValidationError("password", "hash cannot be empty", ErrInvalidPassword)
	}

	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Email:          reg.Email,
		HashedPassword: hashedPassword,
		Nombres:        reg.Nombres,
		Apellidos:      reg.Apellidos,
		Celular:        reg.Celular,
		Genero:         reg.Genero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return user, nil
}

// Validate checks that a stored user is complete.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if u.Email == "" {
		return MissingField("email")
	}
	if !ValidEmail(u.Email) {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "hash cannot be empty", ErrInvalidPassword)
	}
	if u.Nombres == "" {
		return MissingField("nombres")
	}
	if u.Apellidos == "" {
		return MissingField("apellidos")
	}
	return nil
}

// ProfileUpdate carries the mutable profile fields. Nil Puntos leaves the
// balance unchanged.
type ProfileUpdate struct {
	Nombres         string
	Apellidos       string
	Celular         *string
	Genero          *string
	FechaNacimiento *time.Time
	ProfileImage    *string
	Puntos          *int
}

// Apply copies the update onto u and bumps UpdatedAt.
func (p ProfileUpdate) Apply(u *User) error {
	nombres := strings.TrimSpace(p.Nombres)
	apellidos := strings.TrimSpace(p.Apellidos)
	if nombres == "" {
		return MissingField("nombres")
	}
	if apellidos == "" {
		return MissingField("apellidos")
	}

	u.Nombres = nombres
	u.Apellidos = apellidos
	u.Celular = trimOptional(p.Celular)
	u.Genero = trimOptional(p.Genero)
	u.FechaNacimiento = p.FechaNacimiento
	u.ProfileImage = trimOptional(p.ProfileImage)
	if p.Puntos != nil {
		u.Puntos = *p.Puntos
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var emailValidator = validator.New()

// ValidEmail reports whether email is a bare address with a dotted domain.
func ValidEmail(email string) bool {
	if emailValidator.Var(email, "required,email") != nil {
		return false
	}
	domainPart := email[strings.LastIndexByte(email, '@')+1:]
	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}

// ValidatePassword applies the length policy to a plaintext password.
func ValidatePassword(field, password string) error {
	if password == "" {
		return MissingField(field)
	}
	if len(password) < MinPasswordLength {
		return NewValidationError(field, "is too short", ErrInvalidPassword)
	}
	if len(password) > MaxPasswordLength {
		return NewValidationError(field, "is too long", ErrInvalidPassword)
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
