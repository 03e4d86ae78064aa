package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	UsernameMinLength  = 3
	UsernameMaxLength  = 50
	PasswordMinLength  = 8
	TaskTitleMinLength = 1
	TaskTitleMaxLength = 255
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidateUsername returns every rule the username violates.
func ValidateUsername(username string) []string {
	if strings.TrimSpace(username) == "" {
		return []string{"username is required"}
	}

	trimmed := strings.TrimSpace(username)

	var details []string
	if n := utf8.RuneCountInString(trimmed); n < UsernameMinLength || n > UsernameMaxLength {
		details = append(details, "username must be between 3 and 50 characters")
	}
	if !usernamePattern.MatchString(trimmed) {
		details = append(details, "username can only contain letters, numbers, and underscores")
	}
	return details
}

// ValidatePassword returns every rule the password violates.
func ValidatePassword(password string) []string {
	if password == "" {
		return []string{"password is required"}
	}

	var details []string
	if len(password) < PasswordMinLength {
		details = append(details, "password must be at least 8 characters")
	}
	return details
}

// ValidateRegister collects all username and password violations.
func ValidateRegister(username, password string) error {
	details := append(ValidateUsername(username), ValidatePassword(password)...)
	return NewValidationError(details)
}

// ValidateLogin only checks presence; format rules would leak which
// usernames can exist.
func ValidateLogin(username, password string) error {
	var details []string
	if strings.TrimSpace(username) == "" {
		details = append(details, "username is required")
	}
	if password == "" {
		details = append(details, "password is required")
	}
	return NewValidationError(details)
}

// ValidateTaskTitle returns every rule the title violates.
func ValidateTaskTitle(title string) []string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return []string{"title is required"}
	}

	// Limits count characters, not bytes; multibyte titles up to 255
	// runes fit the varchar(255) column.
	var details []string
	if n := utf8.RuneCountInString(trimmed); n < TaskTitleMinLength || n > TaskTitleMaxLength {
		details = append(details, "title must be between 1 and 255 characters")
	}
	return details
}

// ValidateCreateTask validates a task creation payload.
func ValidateCreateTask(title string) error {
	return NewValidationError(ValidateTaskTitle(title))
}

// ValidateUpdateTask validates a partial update: at least one field must be
// supplied, and a supplied title must still satisfy the title rules.
func ValidateUpdateTask(update TaskUpdate) error {
	var details []string

	if update.Title != nil {
		details = append(details, ValidateTaskTitle(*update.Title)...)
	}

	if update.IsEmpty() {
		details = append(details, "at least one field must be provided")
	}

	return NewValidationError(details)
}
