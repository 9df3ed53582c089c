package utils

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
)

func ValidateEmail(email string) (bool, error) {
	email_regex_pattern := `^[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`

	regex, err := regexp.Compile(email_regex_pattern)
	if err != nil {
		return false, fmt.Errorf("error: compiling regex: %s", err)
	}

	if !regex.MatchString(email) {
		return false, fmt.Errorf("error: email format incorrect")
	}
	return true, nil
}

func GetQueryParamAsInt(c *gin.Context, paramName string, defaultValue int) (int, error) {
	// Get the query parameter value
	paramValue := c.Query(paramName)

	// If parameter is not provided or empty, return default value
	if paramValue == "" {
		return defaultValue, nil
	}

	// Try to convert to integer
	intValue, err := strconv.Atoi(paramValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	// Offsets may legitimately be zero
	if intValue < 0 {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	return intValue, nil
}
