package middleware

import "github.com/labstack/echo/v4"

const customerIDKey = "customer_id"

// CustomerID returns the customer id stored by JWTAuth, or "" on
// unauthenticated routes.
func CustomerID(c echo.Context) string {
	id, _ := c.Get(customerIDKey).(string)
	return id
}
