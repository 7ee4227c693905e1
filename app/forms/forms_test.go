package forms

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFormValidate(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		form := &RegisterForm{
			Email:     "alice@example.com",
			Username:  "alice99",
			Password:  "hunter22",
			Password2: "hunter22",
		}
		assert.Empty(t, form.Validate())
	})

	t.Run("all fields missing", func(t *testing.T) {
		form := &RegisterForm{}
		errs := form.Validate()
		require.Len(t, errs, 4)

		byField := map[string]string{}
		for _, fe := range errs {
			byField[fe.Field] = fe.Message
		}
		assert.Equal(t, "Email is required", byField["email"])
		assert.Equal(t, "Username is required", byField["username"])
		assert.Equal(t, "Password is required", byField["password"])
	})

	t.Run("first error per field wins", func(t *testing.T) {
		// Empty email fails both required and email; only required is shown.
		form := &RegisterForm{Username: "alice", Password: "x", Password2: "x"}
		errs := form.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "email", errs[0].Field)
		assert.Equal(t, "required", errs[0].Rule)
		assert.Equal(t, "Email is required", errs[0].Message)
	})

	t.Run("bad email format", func(t *testing.T) {
		form := &RegisterForm{Email: "nope", Username: "alice", Password: "x", Password2: "x"}
		errs := form.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Email not valid", errs[0].Message)
	})

	t.Run("username with space", func(t *testing.T) {
		form := &RegisterForm{Email: "a@b.com", Username: "alice smith", Password: "x", Password2: "x"}
		errs := form.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "username", errs[0].Field)
	})

	t.Run("password mismatch", func(t *testing.T) {
		form := &RegisterForm{Email: "a@b.com", Username: "alice", Password: "one", Password2: "two"}
		errs := form.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "password2", errs[0].Field)
		assert.Equal(t, "Passwords dont match", errs[0].Message)
	})
}

func TestPostFormValidate(t *testing.T) {
	t.Run("valid form", func(t *testing.T) {
		form := &PostForm{Title: "Hello", Content: "World", Visibility: "true"}
		assert.Empty(t, form.Validate())
		assert.True(t, form.Visible())
	})

	t.Run("private visibility", func(t *testing.T) {
		form := &PostForm{Title: "Hello", Content: "World", Visibility: "false"}
		assert.Empty(t, form.Validate())
		assert.False(t, form.Visible())
	})

	t.Run("missing everything", func(t *testing.T) {
		form := &PostForm{}
		errs := form.Validate()
		require.Len(t, errs, 3)
	})

	t.Run("title too long", func(t *testing.T) {
		form := &PostForm{Title: strings.Repeat("a", 101), Content: "c", Visibility: "true"}
		errs := form.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "title", errs[0].Field)
		assert.Equal(t, "max", errs[0].Rule)
	})

	t.Run("title at limit is fine", func(t *testing.T) {
		form := &PostForm{Title: strings.Repeat("a", 100), Content: "c", Visibility: "true"}
		assert.Empty(t, form.Validate())
	})

	t.Run("non-boolean visibility", func(t *testing.T) {
		form := &PostForm{Title: "t", Content: "c", Visibility: "maybe"}
		errs := form.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "visibility", errs[0].Field)
		assert.Equal(t, "Please choose the blog's visibility", errs[0].Message)
	})
}

func TestParseForms(t *testing.T) {
	form := url.Values{
		"email":     {" Alice@example.com "},
		"username":  {"alice"},
		"password":  {"secret"},
		"password2": {"secret"},
	}
	r := httptest.NewRequest("POST", "/users/register", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	parsed := ParseRegister(r)
	assert.Equal(t, "Alice@example.com", parsed.Email)
	assert.Equal(t, "alice", parsed.Username)
	assert.Equal(t, "secret", parsed.Password)

	postVals := url.Values{
		"title":      {"  My Post  "},
		"content":    {"Body"},
		"visibility": {"true"},
	}
	r = httptest.NewRequest("POST", "/catalog/blog/create", strings.NewReader(postVals.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	post := ParsePost(r)
	assert.Equal(t, "My Post", post.Title)
	assert.Equal(t, "Body", post.Content)
	assert.Equal(t, "true", post.Visibility)
}
