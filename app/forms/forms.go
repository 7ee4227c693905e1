// Package forms validates submitted form data. Each form yields a list of
// field errors, at most one per field, so handlers can re-render the form
// with per-field messages while preserving what the user typed.
package forms

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"inkwell/app/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the form field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RegisterForm carries the registration submission.
type RegisterForm struct {
	Email     string `form:"email" validate:"required,email"`
	Username  string `form:"username" validate:"required,alphanum"`
	Password  string `form:"password" validate:"required"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
}

// LoginForm carries the login submission.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// PostForm carries a blog create or update submission. Visibility arrives
// as the form value "true" or "false".
type PostForm struct {
	Title      string `form:"title" validate:"required,max=100"`
	Content    string `form:"content" validate:"required"`
	Visibility string `form:"visibility" validate:"required,boolean"`
}

// messages maps field+rule to the message shown next to the field.
var messages = map[string]string{
	"email.required":      "Email is required",
	"email.email":         "Email not valid",
	"username.required":   "Username is required",
	"username.alphanum":   "Username should only have numbers and letters, with no space",
	"password.required":   "Password is required",
	"password2.required":  "Please confirm your password",
	"password2.eqfield":   "Passwords dont match",
	"title.required":      "Blog title is required",
	"title.max":           "Blog title is too long (maximum 100 characters)",
	"content.required":    "Blog content is required",
	"visibility.required": "Please choose the blog's visibility",
	"visibility.boolean":  "Please choose the blog's visibility",
}

// ParseRegister binds the request form to a RegisterForm.
func ParseRegister(r *http.Request) *RegisterForm {
	return &RegisterForm{
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		Password:  r.PostFormValue("password"),
		Password2: r.PostFormValue("password2"),
	}
}

// ParseLogin binds the request form to a LoginForm.
func ParseLogin(r *http.Request) *LoginForm {
	return &LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

// ParsePost binds the request form to a PostForm.
func ParsePost(r *http.Request) *PostForm {
	return &PostForm{
		Title:      strings.TrimSpace(r.PostFormValue("title")),
		Content:    strings.TrimSpace(r.PostFormValue("content")),
		Visibility: strings.TrimSpace(r.PostFormValue("visibility")),
	}
}

// Validate returns the field errors of the registration form.
func (f *RegisterForm) Validate() []apperror.FieldError {
	return check(f)
}

// Validate returns the field errors of the login form.
func (f *LoginForm) Validate() []apperror.FieldError {
	return check(f)
}

// Validate returns the field errors of the post form.
func (f *PostForm) Validate() []apperror.FieldError {
	return check(f)
}

// Visible returns the parsed visibility flag. Call only after Validate
// reported no error on the field.
func (f *PostForm) Visible() bool {
	visible, _ := strconv.ParseBool(f.Visibility)
	return visible
}

// check runs the validator and translates failures into field errors,
// keeping the first error per field.
func check(form interface{}) []apperror.FieldError {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperror.FieldError{{Field: "", Rule: "invalid", Message: "Invalid submission"}}
	}

	var fields []apperror.FieldError
	seen := make(map[string]bool)
	for _, ve := range verrs {
		field := ve.Field()
		if seen[field] {
			continue
		}
		seen[field] = true

		message, ok := messages[field+"."+ve.Tag()]
		if !ok {
			message = "Invalid value for " + field
		}
		fields = append(fields, apperror.FieldError{
			Field:   field,
			Rule:    ve.Tag(),
			Message: message,
		})
	}
	return fields
}
