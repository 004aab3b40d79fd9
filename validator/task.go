package validator

import (
	"strings"

	"github.com/ncobase/tasklist/types"
)

// MinTitleLength is the minimum length of a trimmed title, in UTF-16 code units.
const MinTitleLength = 3

// TaskForm holds the fields entered on the create and edit forms.
type TaskForm struct {
	Title string `json:"title" validate:"required,title"`
	Color string `json:"color" validate:"required,color"`
}

// Normalize trims surrounding whitespace from the title.
func (f *TaskForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
}

// Validate normalizes the form and returns the first *ecode.ValidationError, if any.
func (f *TaskForm) Validate() error {
	f.Normalize()
	return Validate(f)
}

// ValidateTask checks a title and color pair the way the task forms do.
// It returns the trimmed title on success.
func ValidateTask(title string, color types.Color) (string, error) {
	form := &TaskForm{Title: title, Color: string(color)}
	if err := form.Validate(); err != nil {
		return "", err
	}
	return form.Title, nil
}

// ValidateTitle checks only the title.
func ValidateTitle(title string) error {
	_, err := ValidateTask(title, types.Blue)
	return err
}
