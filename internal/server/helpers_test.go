package server

import (
	"strconv"

	userservice "github.com/thenoetrevino/tablero/internal/services/user"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func userRequest(name string) userservice.CreateUserRequest {
	return userservice.CreateUserRequest{Name: name, Email: name + "@example.com", Role: "Developer"}
}
