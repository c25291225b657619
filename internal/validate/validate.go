// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package validate holds the field-level validation rules for every
// form the application accepts. All checks are pure and synchronous;
// rules per field apply in order with the first failure winning, while
// independent fields are always reported together.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Result maps a field name to a human-readable error message. An empty
// Result means the candidate record passed validation.
type Result map[string]string

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r) == 0
}

// emailPattern matches the local@domain.tld shape the forms accept.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	// MaxImageBytes is the largest accepted image upload.
	MaxImageBytes = 5 << 20

	minPasswordLen = 6
	maxPasswordLen = 128
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// SignupForm is a candidate sign-up submission.
type SignupForm struct {
	DisplayName     string `json:"displayName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginForm is a candidate sign-in submission.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RecipeForm is a candidate recipe draft. It deliberately carries no
// author field; the author is always the authenticated user.
type RecipeForm struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	PrepTime    int      `json:"prepTime"`
	CookTime    int      `json:"cookTime"`
	Servings    int      `json:"servings"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Tags        []string `json:"tags"`
}

// ReviewForm is a candidate review draft.
type ReviewForm struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Signup validates a sign-up submission.
func Signup(f SignupForm) Result {
	f.DisplayName = strings.TrimSpace(f.DisplayName)
	f.Email = strings.TrimSpace(f.Email)

	return toResult(validation.ValidateStruct(&f,
		validation.Field(&f.DisplayName, displayNameRules()...),
		validation.Field(&f.Email, emailRules()...),
		validation.Field(&f.Password, passwordRules()...),
		validation.Field(&f.ConfirmPassword,
			validation.Required.Error("Please confirm your password"),
			validation.By(matches(f.Password)),
		),
	))
}

// Login validates a sign-in submission. Only presence and the minimum
// length are checked; strength rules apply at sign-up.
func Login(f LoginForm) Result {
	f.Email = strings.TrimSpace(f.Email)

	return toResult(validation.ValidateStruct(&f,
		validation.Field(&f.Email, emailRules()...),
		validation.Field(&f.Password,
			validation.Required.Error("Password is required"),
			validation.RuneLength(minPasswordLen, 0).Error("Password must be at least 6 characters long"),
		),
	))
}

// Recipe validates a recipe draft.
func Recipe(f RecipeForm) Result {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.ImageURL = strings.TrimSpace(f.ImageURL)

	return toResult(validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required.Error("Recipe title is required"),
			validation.RuneLength(3, 0).Error("Recipe title must be at least 3 characters long"),
			validation.RuneLength(0, 100).Error("Recipe title must not exceed 100 characters"),
		),
		validation.Field(&f.Description,
			validation.Required.Error("Recipe description is required"),
			validation.RuneLength(10, 0).Error("Recipe description must be at least 10 characters long"),
			validation.RuneLength(0, 1000).Error("Recipe description must not exceed 1000 characters"),
		),
		validation.Field(&f.ImageURL,
			validation.Required.Error("Recipe image is required"),
		),
		validation.Field(&f.Difficulty,
			validation.In("Easy", "Medium", "Hard").Error("Difficulty must be Easy, Medium, or Hard"),
		),
		validation.Field(&f.PrepTime,
			validation.Min(0).Error("Prep time must not be negative"),
		),
		validation.Field(&f.CookTime,
			validation.Min(0).Error("Cook time must not be negative"),
		),
		validation.Field(&f.Servings,
			validation.Required.Error("Servings must be at least 1"),
			validation.Min(1).Error("Servings must be at least 1"),
		),
		validation.Field(&f.Ingredients, validation.By(itemList(3,
			"At least one ingredient is required",
			"Each ingredient must be at least 3 characters long"))),
		validation.Field(&f.Steps, validation.By(itemList(5,
			"At least one instruction step is required",
			"Each instruction step must be at least 5 characters long"))),
	))
}

// Review validates a review draft. The rating bound is checked even
// though the form only offers discrete star choices.
func Review(f ReviewForm) Result {
	f.Comment = strings.TrimSpace(f.Comment)

	return toResult(validation.ValidateStruct(&f,
		validation.Field(&f.Rating,
			validation.Required.Error("Rating must be between 1 and 5"),
			validation.Min(1).Error("Rating must be between 1 and 5"),
			validation.Max(5).Error("Rating must be between 1 and 5"),
		),
		validation.Field(&f.Comment,
			validation.Required.Error("Review must be at least 5 characters long"),
			validation.RuneLength(5, 0).Error("Review must be at least 5 characters long"),
		),
	))
}

// Image validates an uploaded image by declared content type and size.
func Image(contentType string, size int64) Result {
	if size > MaxImageBytes {
		return Result{"image": "Image size must be less than 5MB"}
	}
	if !allowedImageTypes[contentType] {
		return Result{"image": fmt.Sprintf("Invalid image format. Allowed formats: JPEG, PNG, WebP, GIF. You selected: %s", contentType)}
	}
	return Result{}
}

// Email checks a single email value, returning an error message or ""
// when the value passes.
func Email(email string) string {
	return firstError(strings.TrimSpace(email), emailRules())
}

// Password checks a single password against the sign-up rules.
func Password(password string) string {
	return firstError(password, passwordRules())
}

// DisplayName checks a single display-name value.
func DisplayName(name string) string {
	return firstError(strings.TrimSpace(name), displayNameRules())
}

// Ingredients checks an ingredient list after discarding blank items.
func Ingredients(items []string) string {
	if err := itemList(3,
		"At least one ingredient is required",
		"Each ingredient must be at least 3 characters long")(items); err != nil {
		return err.Error()
	}
	return ""
}

// Steps checks an instruction-step list after discarding blank items.
func Steps(items []string) string {
	if err := itemList(5,
		"At least one instruction step is required",
		"Each instruction step must be at least 5 characters long")(items); err != nil {
		return err.Error()
	}
	return ""
}

// CleanList trims every item and drops the blank ones, preserving order.
func CleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Email is required"),
		validation.Match(emailPattern).Error("Please enter a valid email address"),
	}
}

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Password is required"),
		validation.RuneLength(minPasswordLen, 0).Error("Password must be at least 6 characters long"),
		validation.RuneLength(0, maxPasswordLen).Error("Password must not exceed 128 characters"),
		validation.By(strongPassword),
	}
}

func displayNameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Display name is required"),
		validation.RuneLength(2, 0).Error("Display name must be at least 2 characters long"),
		validation.RuneLength(0, 50).Error("Display name must not exceed 50 characters"),
	}
}

func strongPassword(value any) error {
	password, _ := value.(string)
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return errors.New("Password must contain uppercase, lowercase, and numbers")
	}
	return nil
}

func matches(password string) validation.RuleFunc {
	return func(value any) error {
		confirm, _ := value.(string)
		if confirm != password {
			return errors.New("Passwords do not match")
		}
		return nil
	}
}

// itemList validates a string list after discarding blank items: the
// cleaned list must be non-empty and every item at least minLen runes.
func itemList(minLen int, emptyMsg string, lengthMsg string) validation.RuleFunc {
	return func(value any) error {
		items, _ := value.([]string)
		cleaned := CleanList(items)
		if len(cleaned) == 0 {
			return errors.New(emptyMsg)
		}
		for _, item := range cleaned {
			if len([]rune(item)) < minLen {
				return errors.New(lengthMsg)
			}
		}
		return nil
	}
}

func firstError(value any, rules []validation.Rule) string {
	if err := validation.Validate(value, rules...); err != nil {
		return err.Error()
	}
	return ""
}

func toResult(err error) Result {
	result := Result{}
	var errs validation.Errors
	if errors.As(err, &errs) {
		for field, fieldErr := range errs {
			result[field] = fieldErr.Error()
		}
	} else if err != nil {
		result["form"] = err.Error()
	}
	return result
}
