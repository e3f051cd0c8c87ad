package provider

import (
	"regexp"
)

// reCode only anchors the start: "6000271" is accepted as well.
var reCode = regexp.MustCompile(`^[036]\d{5}`)

// IsValidCode reports whether code looks like an A-share ticker.
func IsValidCode(code string) bool {
	return reCode.MatchString(code)
}

// FormatCode prefixes code with its exchange: "sz" below 6, "sh" otherwise.
// A non-digit first character counts as 0.
func FormatCode(code string) string {
	var d byte
	if code != "" && code[0] >= '0' && code[0] <= '9' {
		d = code[0] - '0'
	}
	if d < 6 {
		return "sz" + code
	}
	return "sh" + code
}

// CheckCode returns an InvalidArgument error for a malformed code.
func CheckCode(code string) error {
	if !IsValidCode(code) {
		return InvalidArgument("Invalid code format: " + code)
	}
	return nil
}

// CheckCodes validates a batch. A nil slice is rejected separately from an empty one.
func CheckCodes(codes []string) error {
	if codes == nil {
		return InvalidArgument("Codes must be array.")
	}
	if len(codes) < 1 {
		return InvalidArgument("Codes size must be at least 1.")
	}
	for _, code := range codes {
		if err := CheckCode(code); err != nil {
			return err
		}
	}
	return nil
}
