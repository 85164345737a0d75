package doctor

import "github.com/cliniq/cliniq/internal/platform/apperr"

type Doctor struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Specialty *string `json:"specialty"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type Input struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Active    *bool  `json:"active"`
}

func (in *Input) Validate() error {
	if in.Name == "" {
		return apperr.Invalid("Field 'name' is required")
	}
	return nil
}

// IsActive defaults to true when the payload omits the flag.
func (in *Input) IsActive() bool {
	if in.Active == nil {
		return true
	}
	return *in.Active
}
