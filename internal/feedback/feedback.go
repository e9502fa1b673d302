// Package feedback maps operation outcomes to the single user-visible
// message each one gets. Handlers funnel their errors through here so
// the API speaks with one voice: validation problems name the missing
// requirement, unauthenticated mutations point at the login endpoint,
// and store failures show a generic retry message while the underlying
// error is logged server-side, never echoed to the client.
package feedback

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vismay-farm/agri-market/internal/repository"
)

// LoginPrompt is the actionable payload returned whenever a request
// needs a signed-in farmer. The login_url gives clients a navigation
// affordance instead of a dead-end error.
func LoginPrompt(message string) echo.Map {
	return echo.Map{
		"error":     message,
		"action":    "login",
		"login_url": "/v1/auth/login",
	}
}

// Validation responds 400 with the requirement that was not met.
func Validation(c echo.Context, requirement string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": requirement})
}

// Confirm responds with a success message naming the affected entity
// alongside the entity payload itself under the given key.
func Confirm(c echo.Context, status int, message, key string, entity any) error {
	return c.JSON(status, echo.Map{"message": message, key: entity})
}

// Error translates a repository or store error into its one HTTP
// response. Sentinels map to specific statuses; anything unrecognized
// is treated as the store being unavailable, logged, and reported with
// a retry suggestion.
func Error(c echo.Context, err error, entity string) error {
	switch {
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not own this " + entity})
	case errors.Is(err, repository.ErrInvalidState):
		return c.JSON(http.StatusConflict, echo.Map{"error": "this " + entity + " has already been resolved"})
	case errors.Is(err, repository.ErrNoInventory):
		return c.JSON(http.StatusConflict, echo.Map{"error": "you need to list at least one " + entity + " of your own first"})
	case errors.Is(err, repository.ErrMachineNotFound),
		errors.Is(err, repository.ErrCropNotFound),
		errors.Is(err, repository.ErrBarterNotFound),
		errors.Is(err, repository.ErrPurchaseNotFound),
		errors.Is(err, repository.ErrProfileNotFound),
		errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": entity + " not found"})
	default:
		log.Printf("store error on %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong, please try again"})
	}
}
