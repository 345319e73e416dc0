// Package validation provides centralized input validation logic.
// This includes bucket name validation, object key validation, and local
// path checks.
//
// All user inputs are validated before any transfer starts so that bad
// input fails the call instead of producing a half-run batch.
package validation

import (
	"strings"
	"unicode"

	"github.com/rohaquinlop/robinzhon/errors"
)

// ValidateBucketName validates that a bucket name is DNS-compliant according to AWS S3 rules.
// Returns ErrInvalidInput if the bucket name is invalid.
func ValidateBucketName(bucket string) error {
	if bucket == "" {
		return errors.NewError("validateBucketName", errors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("bucket name cannot be empty")
	}

	// Bucket names must be between 3 and 63 characters long
	if len(bucket) < 3 || len(bucket) > 63 {
		return errors.NewError("validateBucketName", errors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("bucket name must be between 3 and 63 characters long")
	}

	// Bucket names can consist only of lowercase letters, numbers, dots (.), and hyphens (-)
	for _, char := range bucket {
		if !isValidBucketChar(char) {
			return errors.NewError("validateBucketName", errors.ErrInvalidInput).
				WithBucket(bucket).
				WithMessage("bucket name can only contain lowercase letters, numbers, dots, and hyphens")
		}
	}

	return validateBucketNameStructure(bucket)
}

// ValidateObjectKey validates that an object key is valid according to AWS S3 rules.
// This includes preventing path traversal attacks, since keys are used to
// derive local file names.
func ValidateObjectKey(key string) error {
	if key == "" {
		return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("object key cannot be empty")
	}

	if hasPathTraversal(key) {
		return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("object key cannot contain path traversal sequences")
	}

	// S3 supports keys up to 1024 bytes
	if len(key) > 1024 {
		return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("object key cannot exceed 1024 characters")
	}

	// S3 keys can contain any UTF-8 character but we reject control characters
	if hasControlCharacters(key) {
		return errors.NewError("validateObjectKey", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("object key cannot contain control characters")
	}

	return nil
}

// ValidateLocalPath validates a local file path used as a transfer source
// or destination.
func ValidateLocalPath(path string) error {
	if path == "" {
		return errors.NewError("validateLocalPath", errors.ErrInvalidInput).
			WithMessage("local path cannot be empty")
	}

	if hasControlCharacters(path) {
		return errors.NewError("validateLocalPath", errors.ErrInvalidInput).
			WithMessage("local path cannot contain control characters")
	}

	return nil
}

// validateBucketNameStructure validates bucket name structural requirements
func validateBucketNameStructure(bucket string) error {
	// Bucket names must not start or end with a hyphen or dot
	if bucket[0] == '-' || bucket[0] == '.' || bucket[len(bucket)-1] == '-' || bucket[len(bucket)-1] == '.' {
		return errors.NewError("validateBucketName", errors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("bucket name cannot start or end with a hyphen or dot")
	}

	// Bucket names cannot be formatted as an IP address
	if isIPAddress(bucket) {
		return errors.NewError("validateBucketName", errors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("bucket name cannot be formatted as an IP address")
	}

	// Bucket names cannot contain two adjacent periods or hyphens
	if hasAdjacentSpecialChars(bucket) {
		return errors.NewError("validateBucketName", errors.ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("bucket name cannot contain two adjacent periods or hyphens")
	}

	return nil
}

// isValidBucketChar checks if a character is valid in a bucket name
func isValidBucketChar(char rune) bool {
	return (char >= '0' && char <= '9') || (char >= 'a' && char <= 'z') || char == '.' || char == '-'
}

// hasAdjacentSpecialChars checks for adjacent special characters
func hasAdjacentSpecialChars(bucket string) bool {
	for i := 0; i < len(bucket)-1; i++ {
		if (bucket[i] == '.' && bucket[i+1] == '.') || (bucket[i] == '-' && bucket[i+1] == '-') {
			return true
		}
	}
	return false
}

// isIPAddress checks if a string is formatted as an IP address
func isIPAddress(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}

	for _, part := range parts {
		if len(part) == 0 {
			return true // Empty part indicates IP-like format (e.g., "192.168..1")
		}
		// Check if each part is a valid number 0-255
		num := 0
		for _, char := range part {
			if char < '0' || char > '9' {
				return false
			}
			num = num*10 + int(char-'0')
		}
		if num > 255 {
			return false
		}
	}

	return true
}

// hasPathTraversal checks for path traversal attempts in object keys
func hasPathTraversal(key string) bool {
	if strings.Contains(key, "..") {
		return true
	}

	// Absolute keys would escape the destination root when joined
	if strings.HasPrefix(key, "/") {
		return true
	}

	return false
}

// hasControlCharacters checks for control characters in the string
func hasControlCharacters(s string) bool {
	for _, char := range s {
		if unicode.IsControl(char) {
			return true
		}
	}
	return false
}
