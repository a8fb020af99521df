package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
)

// callerFromContext extracts employee_id and role from the JWT context.
// AuthRequired has already rejected tokens without an employee_id.
func callerFromContext(r *http.Request) (string, employee.Role) {
	_, claims, _ := jwtauth.FromContext(r.Context())
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)
	return employeeID, employee.Role(role)
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
